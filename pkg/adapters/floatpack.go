// Package adapters holds the two thin external-collaborator helpers the
// core relies on for test fixtures and the decimal CLI convenience: a
// host-float packer (native float -> IEEE bit pattern) and a decimal
// string codec built only from L1 adds and L2 shifts.
package adapters

import (
	"math"

	"github.com/oisee/riscv-numeric-core/pkg/bits"
)

// PackF32 returns x's IEEE 754 binary32 bit pattern, MSB-first.
func PackF32(x float32) bits.Vector {
	return uintToBits(uint64(math.Float32bits(x)), 32)
}

// PackF64 returns x's IEEE 754 binary64 bit pattern, MSB-first.
func PackF64(x float64) bits.Vector {
	return uintToBits(math.Float64bits(x), 64)
}

func uintToBits(u uint64, n int) bits.Vector {
	out := make(bits.Vector, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = uint8(u & 1)
		u >>= 1
	}
	return out
}

// BitsToHex32 renders a 32-bit vector as an 8-nibble hex string.
func BitsToHex32(v bits.Vector) string {
	return bits.ToHexString(v, 8)
}

// BitsToHex64 renders a 64-bit vector as a 16-nibble hex string.
func BitsToHex64(v bits.Vector) string {
	return bits.ToHexString(v, 16)
}
