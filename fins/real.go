package fins

import (
	"encoding/binary"
	"math"
)

// decodeReal decodes a 4-byte OMRON REAL payload. OMRON stores 32-bit
// IEEE-754 across two words with the words swapped relative to a
// straight big-endian float: given wire bytes b0 b1 b2 b3, the value is
// read from b2 b3 b0 b1.
func decodeReal(b [4]byte) float32 {
	swapped := [4]byte{b[2], b[3], b[0], b[1]}
	bits := binary.BigEndian.Uint32(swapped[:])
	return math.Float32frombits(bits)
}

// encodeReal is the mirror of decodeReal: produces the word-swapped
// wire bytes for a float32.
func encodeReal(f float32) [4]byte {
	var straight [4]byte
	binary.BigEndian.PutUint32(straight[:], math.Float32bits(f))
	return [4]byte{straight[2], straight[3], straight[0], straight[1]}
}
