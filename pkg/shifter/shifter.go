// Package shifter implements the L2 layer: logical left, logical right, and
// arithmetic right shift by a non-negative amount k, reduced modulo width
// (matching RV32's 5-bit shamt when width=32). Shifts are built from
// slicing and fill, never Go's native << or >>.
package shifter

import "github.com/oisee/riscv-numeric-core/pkg/bits"

// Sll shifts v left logically by k (mod width): drops the top k bits and
// appends k zeros at the LSB end.
func Sll(v bits.Vector, k int) bits.Vector {
	n := len(v)
	if n == 0 {
		return v
	}
	k = k % n
	out := make(bits.Vector, n)
	copy(out, v[k:])
	return out
}

// Srl shifts v right logically by k (mod width): prepends k zeros at the
// MSB end and drops the bottom k bits.
func Srl(v bits.Vector, k int) bits.Vector {
	n := len(v)
	if n == 0 {
		return v
	}
	k = k % n
	out := make(bits.Vector, n)
	copy(out[k:], v[:n-k])
	return out
}

// Sra shifts v right arithmetically by k (mod width): prepends k copies of
// v's original MSB instead of zeros.
func Sra(v bits.Vector, k int) bits.Vector {
	n := len(v)
	if n == 0 {
		return v
	}
	k = k % n
	sign := bits.Msb(v)
	out := make(bits.Vector, n)
	for i := 0; i < k; i++ {
		out[i] = sign
	}
	copy(out[k:], v[:n-k])
	return out
}
