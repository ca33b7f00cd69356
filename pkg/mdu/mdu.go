// Package mdu implements the L4 layer: the RV32M extension. A 32x32->64
// shift-add multiplier (signed/unsigned/mixed high halves, and the low-32
// product), and a restoring divider (signed and unsigned) with RISC-V
// divide-by-zero and INT_MIN/-1 semantics.
//
// Every routine here is built out of pkg/adder.RippleAdd/TwosNegate and
// slice manipulation — no native * or / ever touches a bit-vector.
package mdu

import (
	"github.com/oisee/riscv-numeric-core/pkg/adder"
	"github.com/oisee/riscv-numeric-core/pkg/bits"
	"github.com/oisee/riscv-numeric-core/pkg/trace"
)

// MulFlags holds flags for the low-32 multiply.
type MulFlags struct {
	Overflow uint8
}

// DivFlags holds flags for divide/remainder. Overflow is set only by the
// signed INT_MIN / -1 case; DivByZero is set only by a zero divisor.
type DivFlags struct {
	DivByZero uint8
	Overflow  uint8
}

func vecString(v bits.Vector) string {
	b := make([]byte, len(v))
	for i, bit := range v {
		if bit != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// MulShiftAdd multiplies two n-bit vectors into a 2n-bit product using
// shift-and-add over n iterations. The initial accumulator is 2n zeros; the
// initial multiplicand is n zeros concatenated with a on the LSB side. Each
// step conditionally ripple-adds the multiplicand into the accumulator
// (when the multiplier's LSB is 1), then shifts the multiplicand toward the
// MSB and the multiplier toward the LSB. If rec is non-nil, a snapshot of
// acc/mulcand/mult is recorded for every step.
func MulShiftAdd(a, b bits.Vector, rec *trace.Recorder) bits.Vector {
	n := len(a)
	acc := bits.Zeros(2 * n)
	mulcand := append(bits.Zeros(n), a...)
	mult := append(bits.Vector(nil), b...)

	for i := 0; i < n; i++ {
		if mult[len(mult)-1] == 1 {
			acc, _ = adder.RippleAdd(acc, mulcand, 0)
		}
		if rec != nil {
			rec.Add(i, map[string]string{
				"acc":     vecString(acc),
				"mulcand": vecString(mulcand),
				"mult":    vecString(mult),
			})
		}
		mulcand = append(mulcand[1:], 0)
		mult = append(bits.Vector{0}, mult[:len(mult)-1]...)
	}
	return acc
}

func absSigned(v bits.Vector) (bits.Vector, uint8) {
	sign := bits.Msb(v)
	if sign == 0 {
		return v, sign
	}
	return adder.TwosNegate(v), sign
}

// MulLow32 returns the low n bits of rs1*rs2 (treated as signed operands)
// together with the RISC-V MUL overflow indicator: 1 iff any bit of the
// high half differs from the sign of the low half.
func MulLow32(rs1, rs2 bits.Vector, rec *trace.Recorder) (bits.Vector, MulFlags) {
	n := len(rs1)
	a, s1 := absSigned(rs1)
	b, s2 := absSigned(rs2)
	neg := s1 ^ s2

	acc := MulShiftAdd(a, b, rec)
	if neg == 1 {
		acc = adder.TwosNegate(acc)
	}
	low := acc[n:]
	hi := acc[:n]
	sign := bits.Msb(low)
	overflow := uint8(0)
	for _, bit := range hi {
		if bit != sign {
			overflow = 1
			break
		}
	}
	return low, MulFlags{Overflow: overflow}
}

// MulhSigned returns the high n bits of the full signed 2n-bit product.
func MulhSigned(rs1, rs2 bits.Vector) bits.Vector {
	n := len(rs1)
	a, s1 := absSigned(rs1)
	b, s2 := absSigned(rs2)
	neg := s1 ^ s2

	acc := MulShiftAdd(a, b, nil)
	if neg == 1 {
		acc = adder.TwosNegate(acc)
	}
	return acc[:n]
}

// MulhuUnsigned returns the high n bits of the full unsigned 2n-bit product.
func MulhuUnsigned(rs1, rs2 bits.Vector) bits.Vector {
	n := len(rs1)
	acc := MulShiftAdd(rs1, rs2, nil)
	return acc[:n]
}

// Mulhsu returns the high n bits of rs1 (signed) * rs2 (unsigned).
func Mulhsu(rs1, rs2 bits.Vector) bits.Vector {
	n := len(rs1)
	a, s1 := absSigned(rs1)
	acc := MulShiftAdd(a, rs2, nil)
	if s1 == 1 {
		acc = adder.TwosNegate(acc)
	}
	return acc[:n]
}

func isIntMin(v bits.Vector) bool {
	if bits.Msb(v) != 1 {
		return false
	}
	for _, b := range v[1:] {
		if b != 0 {
			return false
		}
	}
	return true
}

func isAllOnes(v bits.Vector) bool {
	for _, b := range v {
		if b != 1 {
			return false
		}
	}
	return true
}

// restoringDivide runs n iterations of restoring division over magnitudes
// a (dividend) and b (divisor), walking a's bits MSB-first. Each step
// shifts the remainder left, ORs in the next dividend bit, and tries
// rem-b: if the subtract's carry is 1 (no borrow, rem>=b) the new remainder
// is kept and a 1 shifts into the quotient; otherwise the old remainder is
// kept and a 0 shifts in.
func restoringDivide(a, b bits.Vector, rec *trace.Recorder) (quo, rem bits.Vector) {
	n := len(a)
	rem = bits.Zeros(n)
	quo = bits.Zeros(n)
	for i := 0; i < n; i++ {
		rem = append(rem[1:], a[i])
		trial, carry := adder.Sub(rem, b)
		bit := uint8(0)
		action := "restore"
		if carry == 1 {
			rem = trial
			bit = 1
			action = "sub"
		}
		quo = append(quo[1:], bit)
		if rec != nil {
			rec.Add(i, map[string]string{
				"rem":    vecString(rem),
				"quo":    vecString(quo),
				"action": action,
			})
		}
	}
	return quo, rem
}

// DivuUnsigned performs unsigned restoring division. If b is zero, the
// RISC-V convention applies: quotient is all-ones, remainder is a, and
// DivByZero is set.
func DivuUnsigned(a, b bits.Vector, rec *trace.Recorder) (bits.Vector, bits.Vector, DivFlags) {
	n := len(a)
	if bits.IsZero(b) {
		return bits.Ones(n), append(bits.Vector(nil), a...), DivFlags{DivByZero: 1}
	}
	q, r := restoringDivide(a, b, rec)
	return q, r, DivFlags{}
}

// RemuUnsigned returns the remainder of DivuUnsigned.
func RemuUnsigned(a, b bits.Vector, rec *trace.Recorder) (bits.Vector, DivFlags) {
	_, r, f := DivuUnsigned(a, b, rec)
	return r, f
}

// DivSigned performs signed restoring division with RISC-V divide-by-zero
// and INT_MIN/-1 semantics: division by zero yields q=all-ones, r=a,
// DivByZero=1; INT_MIN/-1 yields q=INT_MIN, r=0, Overflow=1. Otherwise the
// magnitudes are divided and the quotient/remainder signs are corrected:
// quotient negative iff sign(a)^sign(b); remainder negative iff sign(a)
// and the remainder is nonzero.
func DivSigned(a, b bits.Vector, rec *trace.Recorder) (bits.Vector, bits.Vector, DivFlags) {
	n := len(a)
	if bits.IsZero(b) {
		return bits.Ones(n), append(bits.Vector(nil), a...), DivFlags{DivByZero: 1}
	}
	if isIntMin(a) && isAllOnes(b) {
		return append(bits.Vector(nil), a...), bits.Zeros(n), DivFlags{Overflow: 1}
	}

	magA, s1 := absSigned(a)
	magB, s2 := absSigned(b)
	quo, rem := restoringDivide(magA, magB, rec)

	if s1^s2 == 1 {
		quo = adder.TwosNegate(quo)
	}
	if s1 == 1 && !bits.IsZero(rem) {
		rem = adder.TwosNegate(rem)
	}
	return quo, rem, DivFlags{}
}

// RemSigned returns the remainder of DivSigned.
func RemSigned(a, b bits.Vector, rec *trace.Recorder) (bits.Vector, DivFlags) {
	_, r, f := DivSigned(a, b, rec)
	return r, f
}
