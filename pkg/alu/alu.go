// Package alu implements the L3 layer: ADD/SUB over the L1 adder, producing
// the integer condition flags N, Z, C, V alongside the result.
package alu

import (
	"github.com/oisee/riscv-numeric-core/pkg/adder"
	"github.com/oisee/riscv-numeric-core/pkg/bits"
)

// Flags holds the four integer condition flags. For SUB, C means "no
// borrow" (the RISC-V/ARM two's-complement convention), not "carry".
type Flags struct {
	N, Z, C, V uint8
}

// Add computes a+b via adder.RippleAdd and derives N/Z/C/V.
// V is set iff sign(a)==sign(b) and sign(result)!=sign(a).
func Add(a, b bits.Vector) (bits.Vector, Flags) {
	s, c := adder.RippleAdd(a, b, 0)
	aSign, bSign, rSign := bits.Msb(a), bits.Msb(b), bits.Msb(s)
	v := uint8(0)
	if aSign == bSign && rSign != aSign {
		v = 1
	}
	return s, Flags{N: rSign, Z: boolBit(bits.IsZero(s)), C: c, V: v}
}

// Sub computes a-b via adder.Sub and derives N/Z/C/V.
// V is set iff sign(a)!=sign(b) and sign(result)!=sign(a).
func Sub(a, b bits.Vector) (bits.Vector, Flags) {
	s, c := adder.Sub(a, b)
	aSign, bSign, rSign := bits.Msb(a), bits.Msb(b), bits.Msb(s)
	v := uint8(0)
	if aSign != bSign && rSign != aSign {
		v = 1
	}
	return s, Flags{N: rSign, Z: boolBit(bits.IsZero(s)), C: c, V: v}
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
