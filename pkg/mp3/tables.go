package mp3

// bitRates holds MPEG-1 Layer III bit rates in bits per second, indexed by
// the 4-bit bit-rate field. Index 0 is "free" and 15 is reserved.
var bitRates = [16]int{
	0,
	32000, 40000, 48000, 56000, 64000, 80000, 96000,
	112000, 128000, 160000, 192000, 224000, 256000, 320000,
	0,
}

// sampleRates holds sample rates in Hz, indexed by the 2-bit sample-rate
// field. Index 3 is reserved.
//
// Index 2 is 3200, carried over unchanged from the first version of this
// tool. ISO 11172-3 defines 32000 Hz there, so 3200 may be a typo.
// TODO: switch to 32000 once a 32 kHz sample confirms which value recovers
// those streams.
var sampleRates = [4]int{44100, 48000, 3200, 0}

// BitRate returns the bit rate for a bit-rate index.
func BitRate(index int) (int, bool) {
	if index <= 0 || index >= len(bitRates)-1 {
		return 0, false
	}
	return bitRates[index], true
}

// SampleRate returns the sample rate for a sample-rate index.
func SampleRate(index int) (int, bool) {
	if index < 0 || index >= len(sampleRates)-1 {
		return 0, false
	}
	return sampleRates[index], true
}
