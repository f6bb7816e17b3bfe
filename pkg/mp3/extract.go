package mp3

// Threshold is the default minimum run length. A run must be strictly
// longer to be reported; shorter runs are treated as coincidental headers
// in non-audio data.
const Threshold = 50 * 1024

// Run is a contiguous sequence of valid frames.
type Run struct {
	// Offset of the first header byte in the scanned buffer.
	Offset int
	// Data aliases the scanned buffer.
	Data []byte
}

// Extractor scans buffers for runs of MPEG-1 Layer III frames.
type Extractor struct {
	// MinSize is the length a run must exceed to be reported. Zero means
	// Threshold.
	MinSize int
}

var defaultExtractor = &Extractor{}

// Extract scans buf with the default threshold. See (*Extractor).Extract.
func Extract(buf []byte) []Run {
	return defaultExtractor.Extract(buf)
}

func (e *Extractor) minSize() int {
	if e.MinSize <= 0 {
		return Threshold
	}
	return e.MinSize
}

// Extract walks buf once, following chains of valid frame headers, and
// returns every run longer than the threshold in buffer order.
//
// A header that fails validation moves the window one byte forward and
// ends the current run. The pending run is checked against the threshold
// on every exit path.
//
// A frame is accepted only when at least its full length remains after its
// header, so every frame needs 4 more bytes behind it. A complete frame
// ending exactly at the end of buf is dropped: a buffer holding nothing
// but 51201 bytes of frames yields no run, while the same frames followed
// by 4 or more bytes yield one.
func (e *Extractor) Extract(buf []byte) []Run {
	if len(buf) < HeaderSize-1 {
		return nil
	}

	var (
		runs    []Run
		minSize = e.minSize()
		pos     int
		header  uint32
		inFrame bool

		// pending run is buf[runStart:runEnd]
		runStart, runEnd int
	)

	flush := func() {
		if runEnd-runStart > minSize {
			runs = append(runs, Run{Offset: runStart, Data: buf[runStart:runEnd]})
		}
		runStart, runEnd = 0, 0
	}

	refill := func() bool {
		if len(buf)-pos < HeaderSize-1 {
			return false
		}
		header = uint32(buf[pos])<<16 | uint32(buf[pos+1])<<8 | uint32(buf[pos+2])
		pos += HeaderSize - 1
		return true
	}

	refill()

	for {
		if !inFrame {
			flush()
		}
		inFrame = false

		if pos >= len(buf) {
			break
		}
		header = header<<8 | uint32(buf[pos])
		pos++

		n, err := FrameHeader(header).FrameLength()
		if err != nil {
			continue
		}

		if len(buf)-pos < n {
			break
		}

		start := pos - HeaderSize
		pos = start + n

		if runEnd == runStart {
			runStart = start
		}
		runEnd = pos
		inFrame = true

		if !refill() {
			break
		}
	}

	flush()

	return runs
}

// CountFrames returns the number of back-to-back valid frames at the start
// of data.
func CountFrames(data []byte) int {
	var count, pos int

	for len(data)-pos >= HeaderSize {
		n, err := ParseFrameHeader(data[pos:]).FrameLength()
		if err != nil || len(data)-pos < n {
			break
		}
		pos += n
		count++
	}

	return count
}
