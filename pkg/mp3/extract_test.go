package mp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractThresholdBoundary(t *testing.T) {
	above := sized48k(9)
	require.Len(t, above, Threshold+1)

	runs := Extract(concat(above, noise(8)))
	require.Len(t, runs, 1)
	assert.Equal(t, 0, runs[0].Offset)
	assert.Len(t, runs[0].Data, Threshold+1)
	assert.Equal(t, 55, CountFrames(runs[0].Data))

	exact := sized48k(8)
	require.Len(t, exact, Threshold)

	assert.Empty(t, Extract(concat(exact, noise(8))))
}

func TestExtractNeedsBytesAfterLastFrame(t *testing.T) {
	// the last frame of a bare buffer is dropped, leaving 51009 bytes
	assert.Empty(t, Extract(sized48k(9)))
	assert.Empty(t, Extract(frames(50, 14, 0)))

	runs := Extract(concat(sized48k(9), make([]byte, 4)))
	require.Len(t, runs, 1)
	assert.Len(t, runs[0].Data, Threshold+1)

	runs = Extract(concat(frames(50, 14, 0), make([]byte, 4)))
	require.Len(t, runs, 1)
	assert.Equal(t, 50, CountFrames(runs[0].Data))
}

func TestExtractOffsetAfterNoise(t *testing.T) {
	run := frames(50, 14, 0)
	buf := concat(noise(100), run, noise(16))

	runs := Extract(buf)
	require.Len(t, runs, 1)
	assert.Equal(t, 100, runs[0].Offset)
	assert.Equal(t, run, runs[0].Data)
	assert.Equal(t, 50, CountFrames(runs[0].Data))
}

func TestExtractShortBuffers(t *testing.T) {
	assert.Empty(t, Extract(nil))
	assert.Empty(t, Extract([]byte{0xFF}))
	assert.Empty(t, Extract([]byte{0xFF, 0xFB}))
	assert.Empty(t, Extract([]byte{0xFF, 0xFB, 0x90}))
	assert.Empty(t, Extract(NewFrameHeader(9, 0, false).Bytes()))
}

func TestExtractFlushesRunBeforeTruncatedFrame(t *testing.T) {
	run := frames(50, 14, 0)
	truncated := frame(14, 0, false)[:500]

	runs := Extract(concat(noise(4), run, truncated))
	require.Len(t, runs, 1)
	assert.Equal(t, 4, runs[0].Offset)
	assert.Equal(t, 50, CountFrames(runs[0].Data))
}

func TestExtractRunAtEndOfStream(t *testing.T) {
	runs := Extract(concat(frames(50, 14, 0), make([]byte, 4)))
	require.Len(t, runs, 1)
	assert.Equal(t, 50, CountFrames(runs[0].Data))

	// the last frame needs its own length in bytes after its header, so a
	// frame ending exactly at the end of the buffer is dropped
	runs = Extract(frames(60, 14, 0))
	require.Len(t, runs, 1)
	assert.Equal(t, 59, CountFrames(runs[0].Data))
	assert.Len(t, runs[0].Data, 59*1044)
}

func TestExtractMultipleRuns(t *testing.T) {
	first := frames(50, 14, 0)
	second := frames(60, 14, 1)
	buf := concat(first, noise(100), second, noise(4))

	runs := Extract(buf)
	require.Len(t, runs, 2)

	assert.Equal(t, 0, runs[0].Offset)
	assert.Equal(t, first, runs[0].Data)

	assert.Equal(t, len(first)+100, runs[1].Offset)
	assert.Equal(t, second, runs[1].Data)
	assert.Equal(t, 60, CountFrames(runs[1].Data))
}

func TestExtractDropsShortRuns(t *testing.T) {
	buf := concat(frames(3, 14, 0), noise(10), frames(50, 14, 0), noise(8))

	runs := Extract(buf)
	require.Len(t, runs, 1)
	assert.Equal(t, 3*1044+10, runs[0].Offset)

	e := &Extractor{MinSize: 1000}
	runs = e.Extract(buf)
	require.Len(t, runs, 2)
	assert.Equal(t, 0, runs[0].Offset)
	assert.Equal(t, 3, CountFrames(runs[0].Data))
}

func TestExtractCorruptHeaderSplitsRun(t *testing.T) {
	buf := concat(frames(111, 14, 0), noise(8))
	// break the sync of the 51st frame
	buf[50*1044+1] = 0x00

	runs := Extract(buf)
	require.Len(t, runs, 2)

	assert.Equal(t, 0, runs[0].Offset)
	assert.Equal(t, 50, CountFrames(runs[0].Data))

	assert.Equal(t, 51*1044, runs[1].Offset)
	assert.Equal(t, 60, CountFrames(runs[1].Data))
}

func TestExtractVariableFrameSizes(t *testing.T) {
	var run []byte
	for i := 0; i < 80; i++ {
		run = append(run, frame(9+i%6, i%2, i%3 == 0)...)
	}
	require.Greater(t, len(run), Threshold)

	runs := Extract(concat(noise(33), run, noise(8)))
	require.Len(t, runs, 1)
	assert.Equal(t, 33, runs[0].Offset)
	assert.Equal(t, 80, CountFrames(runs[0].Data))
}

func TestExtractDoesNotModifyInput(t *testing.T) {
	buf := concat(noise(10), frames(50, 14, 0), noise(10))
	orig := append([]byte(nil), buf...)

	runs := Extract(buf)
	require.Len(t, runs, 1)
	assert.Equal(t, orig, buf)
	assert.Same(t, &buf[10], &runs[0].Data[0])
}

func TestCountFrames(t *testing.T) {
	assert.Equal(t, 0, CountFrames(nil))
	assert.Equal(t, 0, CountFrames(noise(2000)))
	assert.Equal(t, 3, CountFrames(frames(3, 9, 0)))
	assert.Equal(t, 2, CountFrames(concat(frames(2, 9, 0), frame(9, 0, false)[:100])))
}
