package timecode

import "math/bits"

// parity returns the XOR-reduction of the bits of v that are set in
// mask: 1 if an odd number of masked bits are set, 0 otherwise.
func parity(v, mask uint32) uint32 {
	return uint32(bits.OnesCount32(v&mask)) & 1
}

// lfsrForward computes the next B-bit LFSR state from c using tap mask
// taps. The new bit enters at the MSB; taps|1 always includes bit 0 so
// forward and reverse remain exact inverses of each other.
func lfsrForward(c, taps uint32, bitsWidth uint) uint32 {
	l := parity(c, taps|1)
	return (c >> 1) | (l << (bitsWidth - 1))
}

// lfsrReverse computes the previous B-bit LFSR state from c using tap
// mask taps. The new bit enters at the LSB.
func lfsrReverse(c, taps uint32, bitsWidth uint) uint32 {
	maskB := uint32(1)<<bitsWidth - 1
	l := parity(c, (taps>>1)|(1<<(bitsWidth-1)))
	return ((c << 1) & maskB) | l
}
