package mp3

import "bytes"

// frame returns a complete frame with a zeroed payload.
func frame(bitRateIndex, sampleRateIndex int, padding bool) []byte {
	h := NewFrameHeader(bitRateIndex, sampleRateIndex, padding)
	n, err := h.FrameLength()
	if err != nil {
		panic(err)
	}

	out := make([]byte, n)
	copy(out, h.Bytes())
	return out
}

func frames(count, bitRateIndex, sampleRateIndex int) []byte {
	return bytes.Repeat(frame(bitRateIndex, sampleRateIndex, false), count)
}

// noise returns n bytes that can never start a frame sync.
func noise(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i*31+7) % 0xFF
	}
	return out
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// sized48k returns 55 frames at 48 kHz totalling 51192 bytes plus one byte
// for each of the first padded frames.
func sized48k(padded int) []byte {
	var out []byte
	idx := 0
	add := func(bitRateIndex int) {
		out = append(out, frame(bitRateIndex, 1, idx < padded)...)
		idx++
	}

	for i := 0; i < 53; i++ {
		add(14) // 960
	}
	add(2) // 120
	add(5) // 192

	return out
}
