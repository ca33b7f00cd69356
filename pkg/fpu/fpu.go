// Package fpu implements the L5 layer: parametric IEEE-754 binary32/binary64
// add, subtract, and multiply, with alignment, normalization, rounding
// (RNE/RTZ/RUP/RDN), and exception flags (invalid/overflow/underflow/
// inexact). Subnormals are flushed to zero with underflow+inexact; there is
// no signaling-NaN distinction, no FMA, no sqrt, and no FPU division.
//
// Significand arithmetic is built entirely out of pkg/adder (RippleAdd,
// TwosNegate) and slice shifts/concatenation — never Go's native + - * /
// on the significand bits. Exponent bookkeeping (comparisons, +/-1) is
// plain Go int arithmetic on the small unbiased exponent, the same way the
// reference implementation keeps exponents as native integers while
// routing every significand operation through its bit-level adder.
package fpu

import (
	"github.com/oisee/riscv-numeric-core/pkg/adder"
	"github.com/oisee/riscv-numeric-core/pkg/bits"
)

// RoundMode selects the IEEE rounding direction.
type RoundMode int

const (
	RNE RoundMode = iota // round to nearest, ties to even (default)
	RTZ                  // round toward zero
	RUP                  // round toward +infinity
	RDN                  // round toward -infinity
)

// Flags holds the four FPU exception flags produced by an operation.
type Flags struct {
	Invalid, Overflow, Underflow, Inexact uint8
}

// Format describes an IEEE binary format: 1 sign bit, We exponent bits, Wf
// fraction bits, and the exponent bias.
type Format struct {
	We, Wf, Bias int
}

// Binary32 is the IEEE 754 single-precision format.
var Binary32 = Format{We: 8, Wf: 23, Bias: 127}

// Binary64 is the IEEE 754 double-precision format.
var Binary64 = Format{We: 11, Wf: 52, Bias: 1023}

func isZeroVec(v bits.Vector) bool { return bits.IsZero(v) }

func orAll(v bits.Vector) uint8 {
	for _, b := range v {
		if b == 1 {
			return 1
		}
	}
	return 0
}

func matchLen(a, b bits.Vector) (bits.Vector, bits.Vector) {
	if len(a) == len(b) {
		return a, b
	}
	if len(a) < len(b) {
		return bits.ZeroExtend(a, len(b)), b
	}
	return a, bits.ZeroExtend(b, len(a))
}

func addu(a, b bits.Vector) bits.Vector {
	a, b = matchLen(a, b)
	s, _ := adder.RippleAdd(a, b, 0)
	return s
}

// subu returns a-b and the carry (1 => no borrow, i.e. a>=b).
func subu(a, b bits.Vector) (bits.Vector, uint8) {
	a, b = matchLen(a, b)
	return adder.Sub(a, b)
}

func bitsToInt(v bits.Vector) int {
	x := 0
	for _, b := range v {
		x = (x << 1) | int(b)
	}
	return x
}

func intToBits(x, n int) bits.Vector {
	out := make(bits.Vector, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = uint8(x & 1)
		x >>= 1
	}
	return out
}

// round decides whether to increment sig by one LSB, per the rounding mode
// and the guard/round/sticky bits gathered during alignment or
// multiplication.
func round(sig bits.Vector, rm RoundMode, sign, guard, rnd, sticky uint8) (bits.Vector, uint8) {
	var inc uint8
	switch rm {
	case RNE:
		if guard == 1 && (rnd == 1 || sticky == 1 || sig[len(sig)-1] == 1) {
			inc = 1
		}
	case RTZ:
		inc = 0
	case RUP:
		if (guard|rnd|sticky) == 1 && sign == 0 {
			inc = 1
		}
	case RDN:
		if (guard|rnd|sticky) == 1 && sign == 1 {
			inc = 1
		}
	}
	if inc == 1 {
		one := make(bits.Vector, len(sig))
		one[len(one)-1] = 1
		sig, _ = adder.RippleAdd(sig, one, 0)
	}
	return sig, inc
}

// normalizeLeft shifts sig left until its MSB is 1 or it is exhausted,
// returning the normalized significand and the shift count.
func normalizeLeft(sig bits.Vector) (bits.Vector, int) {
	sh := 0
	for sig[0] == 0 && orAll(sig) == 1 && sh < len(sig)+1 {
		sig = append(sig[1:], 0)
		sh++
	}
	return sig, sh
}

// normalizeRight shifts sig right by one bit (used after a same-sign
// addition overflows into an extra bit).
func normalizeRight(sig bits.Vector) bits.Vector {
	out := make(bits.Vector, len(sig))
	copy(out[1:], sig[:len(sig)-1])
	return out
}

func pack(sign uint8, exp, frac bits.Vector) bits.Vector {
	out := make(bits.Vector, 0, 1+len(exp)+len(frac))
	out = append(out, sign)
	out = append(out, exp...)
	out = append(out, frac...)
	return out
}

func canonicalNaN(f Format) bits.Vector {
	frac := make(bits.Vector, f.Wf)
	frac[0] = 1
	return pack(0, bits.Ones(f.We), frac)
}

// align right-shifts mSmall by shift, preserving its length, and returns
// the guard, round, and sticky bits gathered from the bits shifted out
// (sticky is the OR of everything beyond round).
func align(mSmall bits.Vector, shift int) (bits.Vector, uint8, uint8, uint8) {
	l := len(mSmall)
	if shift <= 0 {
		return append(bits.Vector(nil), mSmall...), 0, 0, 0
	}
	if shift >= l+2 {
		return bits.Zeros(l), 0, 0, orAll(mSmall)
	}
	kept := mSmall
	if l-shift > 0 {
		kept = mSmall[:l-shift]
	} else {
		kept = bits.Vector{}
	}
	body := append(bits.Zeros(shift), kept...)
	var tail bits.Vector
	if shift <= l {
		tail = mSmall[l-shift:]
	} else {
		tail = append(bits.Zeros(shift-l), mSmall...)
	}
	var guard, rnd, sticky uint8
	if len(tail) >= 1 {
		guard = tail[0]
	}
	if len(tail) >= 2 {
		rnd = tail[1]
	}
	if len(tail) > 2 {
		sticky = orAll(tail[2:])
	}
	if len(body) != l {
		body = bits.PadToWidth(body, l, 0)
	}
	return body, guard, rnd, sticky
}

type unpacked struct {
	sign uint8
	exp  bits.Vector
	frac bits.Vector
	isZeroExp, isOnesExp bool
}

func unpack(f Format, v bits.Vector) unpacked {
	sign := v[0]
	exp := v[1 : 1+f.We]
	frac := v[1+f.We : 1+f.We+f.Wf]
	return unpacked{
		sign:      sign,
		exp:       exp,
		frac:      frac,
		isZeroExp: isZeroVec(exp),
		isOnesExp: allOnes(exp),
	}
}

func allOnes(v bits.Vector) bool {
	for _, b := range v {
		if b != 1 {
			return false
		}
	}
	return true
}

func noFlags() Flags { return Flags{} }

// addSubCore implements the shared add/sub algorithm (spec.md §4.6
// Add/Sub algorithm). It always adds its two operands; FSubF32/FSubF64
// get subtraction by flipping b's sign bit before calling in, so the
// core never needs to know whether it was reached via add or sub.
func addSubCore(f Format, aBits, bBits bits.Vector, rm RoundMode) (bits.Vector, Flags) {
	a := unpack(f, aBits)
	b := unpack(f, bBits)

	aNan := a.isOnesExp && !isZeroVec(a.frac)
	bNan := b.isOnesExp && !isZeroVec(b.frac)
	if aNan || bNan {
		return canonicalNaN(f), Flags{Invalid: 1}
	}

	aInf := a.isOnesExp && isZeroVec(a.frac)
	bInf := b.isOnesExp && isZeroVec(b.frac)
	if aInf || bInf {
		if aInf && bInf && a.sign != b.sign {
			return canonicalNaN(f), Flags{Invalid: 1}
		}
		sign := b.sign
		if aInf {
			sign = a.sign
		}
		return pack(sign, bits.Ones(f.We), bits.Zeros(f.Wf)), noFlags()
	}

	aZero := a.isZeroExp && isZeroVec(a.frac)
	bZero := b.isZeroExp && isZeroVec(b.frac)
	if aZero && bZero {
		sign := a.sign & b.sign
		return pack(sign, bits.Zeros(f.We), bits.Zeros(f.Wf)), noFlags()
	}
	if aZero {
		return pack(b.sign, b.exp, b.frac), noFlags()
	}
	if bZero {
		return pack(a.sign, a.exp, a.frac), noFlags()
	}

	mA := append(bits.Vector{1}, a.frac...)
	mB := append(bits.Vector{1}, b.frac...)
	eA := bitsToInt(a.exp)
	eB := bitsToInt(b.exp)

	var mBig, mSmall bits.Vector
	var sBig, sSmall uint8
	var e, shift int
	if eA >= eB {
		mBig, mSmall, e = mA, mB, eA
		sBig = a.sign
		sSmall = b.sign
		shift = eA - eB
	} else {
		mBig, mSmall, e = mB, mA, eB
		sBig = b.sign
		sSmall = a.sign
		shift = eB - eA
	}

	mSmallAligned, gAlign, rAlign, sAlign := align(mSmall, shift)
	mBig, mSmallAligned = matchLen(mBig, mSmallAligned)
	same := sBig == sSmall

	var m bits.Vector
	var guard, roundBit, sticky uint8
	var resSign uint8 = sBig

	if same {
		sum := addu(append(bits.Vector{0}, mBig...), append(bits.Vector{0}, mSmallAligned...))
		if sum[0] == 1 {
			guard = sum[len(sum)-1]
			roundBit = 0
			sticky = orIf(sAlign == 1 || rAlign == 1 || gAlign == 1)
			shifted := normalizeRight(sum)
			e++
			m = shifted[1:]
		} else {
			m = sum[1:]
			guard = gAlign
			roundBit = rAlign
			sticky = sAlign
		}
	} else {
		diff, noBorrow := subu(mBig, mSmallAligned)
		if noBorrow == 0 {
			// Equal exponents with the other operand larger in magnitude:
			// subtract the other way round and take that operand's sign.
			diff, _ = subu(mSmallAligned, mBig)
			resSign = sSmall
		}
		if isZeroVec(diff) && gAlign == 0 && rAlign == 0 && sAlign == 0 {
			// Full cancellation: the exact result is zero, not a finite
			// value at the operand's old exponent. IEEE-754 gives +0 here
			// except under round-toward-negative-infinity, which gives -0.
			sign := uint8(0)
			if rm == RDN {
				sign = 1
			}
			return pack(sign, bits.Zeros(f.We), bits.Zeros(f.Wf)), noFlags()
		}
		norm, sh := normalizeLeft(diff)
		e -= sh
		m = norm
		guard = gAlign
		roundBit = rAlign
		sticky = sAlign
	}

	mBeforeRound := m
	mRounded, inc := round(m, rm, resSign, guard, roundBit, sticky)
	if inc == 1 && mRounded[0] == 0 && mBeforeRound[0] == 1 {
		mRounded = normalizeRight(append(bits.Vector{1}, mRounded...))[1:]
		e++
	}

	if e >= (1<<uint(f.We))-1 {
		return pack(resSign, bits.Ones(f.We), bits.Zeros(f.Wf)), Flags{Overflow: 1, Inexact: 1}
	}
	if e <= 0 {
		return pack(resSign, bits.Zeros(f.We), bits.Zeros(f.Wf)), Flags{Underflow: 1, Inexact: 1}
	}

	exp := intToBits(e, f.We)
	frac := mRounded[1 : 1+f.Wf]
	inexact := orIf(guard == 1 || roundBit == 1 || sticky == 1)
	return pack(resSign, exp, frac), Flags{Inexact: inexact}
}

func orIf(cond bool) uint8 {
	if cond {
		return 1
	}
	return 0
}

// mulCore implements the multiply algorithm (spec.md §4.6 Multiply
// algorithm) via the L4 shift-add multiplier.
func mulCore(f Format, aBits, bBits bits.Vector, rm RoundMode) (bits.Vector, Flags) {
	a := unpack(f, aBits)
	b := unpack(f, bBits)
	sign := a.sign ^ b.sign

	aNan := a.isOnesExp && !isZeroVec(a.frac)
	bNan := b.isOnesExp && !isZeroVec(b.frac)
	if aNan || bNan {
		return canonicalNaN(f), Flags{Invalid: 1}
	}

	aInf := a.isOnesExp && isZeroVec(a.frac)
	bInf := b.isOnesExp && isZeroVec(b.frac)
	aZero := a.isZeroExp && isZeroVec(a.frac)
	bZero := b.isZeroExp && isZeroVec(b.frac)

	if (aInf && bZero) || (bInf && aZero) {
		return canonicalNaN(f), Flags{Invalid: 1}
	}
	if aInf || bInf {
		return pack(sign, bits.Ones(f.We), bits.Zeros(f.Wf)), noFlags()
	}
	if aZero || bZero {
		return pack(sign, bits.Zeros(f.We), bits.Zeros(f.Wf)), noFlags()
	}

	mA := append(bits.Vector{1}, a.frac...)
	mB := append(bits.Vector{1}, b.frac...)
	prod := bits.Zeros(2 * (f.Wf + 1))
	mcand := append(bits.Zeros(f.Wf+1), mA...)
	mult := append(bits.Vector(nil), mB...)
	for i := 0; i < f.Wf+1; i++ {
		if mult[len(mult)-1] == 1 {
			prod, _ = adder.RippleAdd(prod, mcand, 0)
		}
		mcand = append(mcand[1:], 0)
		mult = append(bits.Vector{0}, mult[:len(mult)-1]...)
	}

	e := bitsToInt(a.exp) + bitsToInt(b.exp) - f.Bias + 1
	m := prod
	if prod[0] != 1 {
		sh := 0
		for m[0] == 0 && sh < f.Wf+2 {
			m = append(m[1:], 0)
			sh++
		}
		e -= sh
	}

	frac := m[1 : 1+f.Wf]
	extra := m[1+f.Wf:]
	var guard, rnd, sticky uint8
	if len(extra) > 0 {
		guard = extra[0]
	}
	if len(extra) > 1 {
		rnd = extra[1]
	}
	if len(extra) > 2 {
		sticky = orAll(extra[2:])
	}

	fracBefore := frac
	fracRounded, inc := round(frac, rm, sign, guard, rnd, sticky)
	if inc == 1 && fracRounded[0] == 0 && fracBefore[0] == 1 {
		e++
	}

	if e >= (1<<uint(f.We))-1 {
		return pack(sign, bits.Ones(f.We), bits.Zeros(f.Wf)), Flags{Overflow: 1, Inexact: 1}
	}
	if e <= 0 {
		return pack(sign, bits.Zeros(f.We), bits.Zeros(f.Wf)), Flags{Underflow: 1, Inexact: 1}
	}

	exp := intToBits(e, f.We)
	inexact := orIf(guard == 1 || rnd == 1 || sticky == 1)
	return pack(sign, exp, fracRounded), Flags{Inexact: inexact}
}

func flipSign(v bits.Vector) bits.Vector {
	out := append(bits.Vector(nil), v...)
	out[0] = 1 - out[0]
	return out
}

// FAddF32 adds two binary32 operands.
func FAddF32(a, b bits.Vector, rm RoundMode) (bits.Vector, Flags) {
	return addSubCore(Binary32, a, b, rm)
}

// FSubF32 subtracts two binary32 operands (a - b).
func FSubF32(a, b bits.Vector, rm RoundMode) (bits.Vector, Flags) {
	return addSubCore(Binary32, a, flipSign(b), rm)
}

// FMulF32 multiplies two binary32 operands.
func FMulF32(a, b bits.Vector, rm RoundMode) (bits.Vector, Flags) {
	return mulCore(Binary32, a, b, rm)
}

// FAddF64 adds two binary64 operands.
func FAddF64(a, b bits.Vector, rm RoundMode) (bits.Vector, Flags) {
	return addSubCore(Binary64, a, b, rm)
}

// FSubF64 subtracts two binary64 operands (a - b).
func FSubF64(a, b bits.Vector, rm RoundMode) (bits.Vector, Flags) {
	return addSubCore(Binary64, a, flipSign(b), rm)
}

// FMulF64 multiplies two binary64 operands.
func FMulF64(a, b bits.Vector, rm RoundMode) (bits.Vector, Flags) {
	return mulCore(Binary64, a, b, rm)
}
