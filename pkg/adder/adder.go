// Package adder implements the L1 layer: a full adder, ripple-carry
// add/subtract, bitwise invert, and two's-complement negate. These are the
// only primitives in the whole module allowed to "do arithmetic" — the
// higher arithmetic layers (alu, mdu, fpu) are built out of calls down to
// ripple_add / sub / twos_negate rather than Go's native + - on bit values.
package adder

import (
	"fmt"

	"github.com/oisee/riscv-numeric-core/pkg/bits"
)

// ErrWidthMismatch is returned when two bit-vectors passed to a binary
// operation do not share a width.
var ErrWidthMismatch = fmt.Errorf("adder: width mismatch")

// FullAdder computes s = a xor b xor cin and cout = majority(a,b,cin) for
// single bits (each expected to be 0 or 1).
func FullAdder(a, b, cin uint8) (s, cout uint8) {
	axb := (a ^ b) & 1
	s = (axb ^ cin) & 1
	cout = ((a & b) | (a & cin) | (b & cin)) & 1
	return s, cout
}

// RippleAdd adds two equal-width bit-vectors with an input carry, threading
// the carry from LSB (index n-1) to MSB (index 0). Returns the sum and the
// carry out of the MSB.
func RippleAdd(a, b bits.Vector, cin uint8) (bits.Vector, uint8) {
	if len(a) != len(b) {
		panic(fmt.Errorf("%w: %d vs %d", ErrWidthMismatch, len(a), len(b)))
	}
	n := len(a)
	out := make(bits.Vector, n)
	c := cin & 1
	for i := n - 1; i >= 0; i-- {
		out[i], c = FullAdder(a[i], b[i], c)
	}
	return out, c
}

// Invert returns the per-bit NOT of v.
func Invert(v bits.Vector) bits.Vector {
	out := make(bits.Vector, len(v))
	for i, b := range v {
		out[i] = 1 - b
	}
	return out
}

// TwosNegate returns the two's-complement negation of v: invert(v) + 1.
func TwosNegate(v bits.Vector) bits.Vector {
	one := make(bits.Vector, len(v))
	if len(one) > 0 {
		one[len(one)-1] = 1
	}
	s, _ := RippleAdd(Invert(v), one, 0)
	return s
}

// Sub computes a - b as a + ~b + 1 (the same sum as a + twos_negate(b)). The
// returned carry is 1 when no borrow occurred (the two's-complement
// convention), matching the carry out of the ripple add of a and ~b+1.
func Sub(a, b bits.Vector) (bits.Vector, uint8) {
	if len(a) != len(b) {
		panic(fmt.Errorf("%w: %d vs %d", ErrWidthMismatch, len(a), len(b)))
	}
	return RippleAdd(a, Invert(b), 1)
}
