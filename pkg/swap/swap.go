// Package swap implements the period-4 byte swap used to hide MP3 streams
// inside container files.
//
// For a given phase p, every byte at an index i with i%4 == p is exchanged
// with its right-hand neighbour. The swapped pairs never overlap, so the
// transform is its own inverse.
package swap

// Period is the cycle length of the swap pattern.
const Period = 4

// Phases returns every phase a buffer may have been obfuscated with.
func Phases() [Period]int {
	return [Period]int{0, 1, 2, 3}
}

// Deobfuscate returns a copy of buf with the swap for phase undone. The
// input is never modified. A phase outside 0..3 matches no index and
// yields an unchanged copy.
func Deobfuscate(buf []byte, phase int) []byte {
	out := make([]byte, len(buf))
	copy(out, buf)

	for i := 0; i < len(out)-1; i++ {
		if i%Period == phase {
			out[i], out[i+1] = out[i+1], out[i]
		}
	}

	return out
}

// Obfuscate applies the swap for phase to a copy of buf.
func Obfuscate(buf []byte, phase int) []byte {
	return Deobfuscate(buf, phase)
}
