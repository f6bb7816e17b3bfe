package mp3

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Field values accepted by the validator.
const (
	VersionMPEG1     = 0b11
	LayerIII         = 0b01
	EmphasisReserved = 0b10

	syncMask = 0xFFE00000

	// HeaderSize is the size of a frame header in bytes.
	HeaderSize = 4
)

var (
	ErrNoSync     = errors.New("frame sync not found")
	ErrVersion    = errors.New("not MPEG-1")
	ErrLayer      = errors.New("not layer III")
	ErrBitRate    = errors.New("invalid bit-rate index")
	ErrSampleRate = errors.New("invalid sample-rate index")
	ErrEmphasis   = errors.New("reserved emphasis")
)

// FrameHeader is a 4 byte MPEG audio frame header read big-endian.
//
//	AAAAAAAA AAABBCCD EEEEFFGH IIJJKLMM
//
// A sync, B version, C layer, D protection, E bit-rate index,
// F sample-rate index, G padding, H private, I mode, J mode extension,
// K copyright, L original, M emphasis.
type FrameHeader uint32

// ParseFrameHeader reads a header from the first 4 bytes of b.
func ParseFrameHeader(b []byte) FrameHeader {
	return FrameHeader(binary.BigEndian.Uint32(b))
}

// NewFrameHeader builds an MPEG-1 Layer III header without CRC protection.
func NewFrameHeader(bitRateIndex, sampleRateIndex int, padding bool) FrameHeader {
	h := uint32(syncMask) |
		VersionMPEG1<<19 |
		LayerIII<<17 |
		1<<16 | // no CRC
		uint32(bitRateIndex&0xF)<<12 |
		uint32(sampleRateIndex&0x3)<<10
	if padding {
		h |= 1 << 9
	}
	return FrameHeader(h)
}

// Bytes returns the header in stream order.
func (h FrameHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(b, uint32(h))
	return b
}

func (h FrameHeader) Sync() bool {
	return h&syncMask == syncMask
}

func (h FrameHeader) Version() int {
	return int(h&0x00180000) >> 19
}

func (h FrameHeader) Layer() int {
	return int(h&0x00060000) >> 17
}

func (h FrameHeader) BitRateIndex() int {
	return int(h&0x0000F000) >> 12
}

func (h FrameHeader) SampleRateIndex() int {
	return int(h&0x00000C00) >> 10
}

func (h FrameHeader) Padding() bool {
	return h&0x00000200 != 0
}

func (h FrameHeader) Emphasis() int {
	return int(h & 0x00000003)
}

// Validate checks the header fields in stream order and returns the first
// rejection reason.
func (h FrameHeader) Validate() error {
	switch {
	case !h.Sync():
		return ErrNoSync
	case h.Version() != VersionMPEG1:
		return ErrVersion
	case h.Layer() != LayerIII:
		return ErrLayer
	}

	if _, ok := BitRate(h.BitRateIndex()); !ok {
		return ErrBitRate
	}
	if _, ok := SampleRate(h.SampleRateIndex()); !ok {
		return ErrSampleRate
	}
	if h.Emphasis() == EmphasisReserved {
		return ErrEmphasis
	}

	return nil
}

// FrameLength returns the length in bytes of the frame this header starts,
// header included.
func (h FrameHeader) FrameLength() (int, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}

	bitRate, _ := BitRate(h.BitRateIndex())
	sampleRate, _ := SampleRate(h.SampleRateIndex())

	return FrameLength(bitRate, sampleRate, h.Padding()), nil
}

// FrameLength computes the Layer III frame length for the given rates.
func FrameLength(bitRate, sampleRate int, padding bool) int {
	n := 144 * bitRate / sampleRate
	if padding {
		n++
	}
	return n
}
