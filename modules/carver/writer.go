package carver

import (
	"os"
	"path/filepath"
)

// minWriteBufSize and maxWriteBufSize clamp the configured write size to avoid
// tiny writes (no benefit) or very large ones (latency).
const (
	minWriteBufSize = 32 * 1024       // 32 KiB
	maxWriteBufSize = 4 * 1024 * 1024 // 4 MiB
)

func (c *Carver) writeBufSize() int {
	size := c.cfg.WriteBufferSize
	if size < minWriteBufSize {
		size = minWriteBufSize
	}
	if size > maxWriteBufSize {
		size = maxWriteBufSize
	}
	return size
}

// writeStream writes data to a temp file next to destPath and renames it
// into place once synced, so a partial file never carries the final name.
func (c *Carver) writeStream(destPath string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(destPath), "*.mp3.tmp")
	if err != nil {
		c.logger.Error("error creating temp file", "err", err)
		return err
	}
	tempPath := f.Name()

	size := c.writeBufSize()
	for len(data) > 0 {
		n := min(size, len(data))
		if _, err = f.Write(data[:n]); err != nil {
			c.logger.Error("error writing to file", "err", err, "path", tempPath)
			_ = f.Close()
			_ = os.Remove(tempPath)
			return err
		}
		data = data[n:]
	}

	if err := f.Sync(); err != nil {
		c.logger.Error("error syncing file", "err", err)
	}
	if err := f.Close(); err != nil {
		c.logger.Error("error closing file", "err", err)
		_ = os.Remove(tempPath)
		return err
	}

	return c.commitTempFile(tempPath, destPath)
}

// commitTempFile renames tempPath to destPath, replacing an earlier recovery.
func (c *Carver) commitTempFile(tempPath, destPath string) error {
	destInfo, err := os.Stat(destPath)
	switch {
	case err == nil && destInfo.IsDir():
		_ = os.Remove(tempPath)
		return &os.PathError{Op: "commit", Path: destPath, Err: os.ErrExist}
	case err != nil && !os.IsNotExist(err):
		c.logger.Error("error stating dest file", "err", err, "path", destPath)
		_ = os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		c.logger.Error("error renaming temp to dest", "err", err, "temp", tempPath, "dest", destPath)
		_ = os.Remove(tempPath)
		return err
	}

	if destInfo != nil {
		c.logger.Debug("replaced earlier recovery", "path", destPath, "previous_size", destInfo.Size())
	} else {
		c.logger.Debug("saved new recovery", "path", destPath)
	}

	return nil
}
