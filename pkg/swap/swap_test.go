package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeobfuscateReference(t *testing.T) {
	in := []byte{0, 1, 2, 3, 4, 5, 6, 7}

	cases := []struct {
		phase int
		want  []byte
	}{
		{0, []byte{1, 0, 2, 3, 5, 4, 6, 7}},
		{1, []byte{0, 2, 1, 3, 4, 6, 5, 7}},
		{2, []byte{0, 1, 3, 2, 4, 5, 7, 6}},
		// index 7 is the last byte and has no neighbour to swap with
		{3, []byte{0, 1, 2, 4, 3, 5, 6, 7}},
	}

	for _, tc := range cases {
		got := Deobfuscate(in, tc.phase)
		assert.Equal(t, tc.want, got, "phase %d", tc.phase)
	}

	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7}, in, "input must not be modified")
}

func TestDeobfuscateOddLength(t *testing.T) {
	in := []byte{0xA, 0xB, 0xC, 0xD, 0xE}
	assert.Equal(t, []byte{0xB, 0xA, 0xC, 0xD, 0xE}, Deobfuscate(in, 0))
	assert.Equal(t, []byte{0xA, 0xB, 0xC, 0xE, 0xD}, Deobfuscate(in, 3))
}

func TestDeobfuscatePreservesLength(t *testing.T) {
	for n := 0; n <= 17; n++ {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(i * 7)
		}

		for _, phase := range Phases() {
			out := Deobfuscate(buf, phase)
			require.Len(t, out, n, "length %d phase %d", n, phase)
		}
	}
}

func TestDeobfuscateTinyBuffers(t *testing.T) {
	for _, phase := range Phases() {
		assert.Empty(t, Deobfuscate(nil, phase))
		assert.Equal(t, []byte{0x42}, Deobfuscate([]byte{0x42}, phase))
	}
}

func TestDeobfuscateUnknownPhase(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5}
	assert.Equal(t, in, Deobfuscate(in, 4))
	assert.Equal(t, in, Deobfuscate(in, -1))
}

func TestObfuscateRoundTrip(t *testing.T) {
	buf := []byte("the quick brown fox jumps over the lazy dog")

	for _, phase := range Phases() {
		hidden := Obfuscate(buf, phase)
		assert.NotEqual(t, buf, hidden, "phase %d", phase)
		assert.Equal(t, buf, Deobfuscate(hidden, phase), "phase %d", phase)
	}
}

func TestPhasesIsACopy(t *testing.T) {
	p := Phases()
	p[0] = 9

	assert.Equal(t, [Period]int{0, 1, 2, 3}, Phases())
}
