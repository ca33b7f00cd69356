package adapters

import (
	"fmt"
	"strings"

	"github.com/oisee/riscv-numeric-core/pkg/adder"
	"github.com/oisee/riscv-numeric-core/pkg/bits"
	"github.com/oisee/riscv-numeric-core/pkg/shifter"
)

// ErrBadDecimalDigit is returned when a decimal string contains a
// character other than an optional leading sign and 0-9.
var ErrBadDecimalDigit = fmt.Errorf("adapters: invalid decimal digit")

// DecimalEncoding is the result of encoding a decimal string into a 32-bit
// two's-complement bit-vector.
type DecimalEncoding struct {
	Bin          string
	Hex          string
	OverflowFlag uint8
}

const decimalWidth = 32

var decimalDigits = buildDecimalDigits()

func buildDecimalDigits() [10]bits.Vector {
	var table [10]bits.Vector
	for d := 0; d < 10; d++ {
		v, err := bits.FromHexString(fmt.Sprintf("0x0000000%d", d), decimalWidth)
		if err != nil {
			panic(err) // unreachable: digits 0-9 are always valid hex
		}
		table[d] = v
	}
	return table
}

// mul10 computes x*10 as (x<<3)+(x<<1), using only the L1 adder and L2
// shifter.
func mul10(x bits.Vector) bits.Vector {
	x8 := shifter.Sll(x, 3)
	x2 := shifter.Sll(x, 1)
	s, _ := adder.RippleAdd(x8, x2, 0)
	return s
}

// EncodeDecimal parses a signed decimal string ([+-]?[0-9]+) into a 32-bit
// two's-complement bit-vector, built by repeated (acc*10 + digit) using
// only L1 adds and L2 shifts; overflow silently wraps, matching the
// fixed-width adder semantics. Non-digit characters (other than a leading
// sign) return ErrBadDecimalDigit.
func EncodeDecimal(s string) (DecimalEncoding, error) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		s = s[1:]
		neg = true
	}

	acc := bits.Zeros(decimalWidth)
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return DecimalEncoding{}, fmt.Errorf("%w: %q", ErrBadDecimalDigit, ch)
		}
		acc = mul10(acc)
		acc, _ = adder.RippleAdd(acc, decimalDigits[ch-'0'], 0)
	}
	if neg {
		acc = adder.TwosNegate(acc)
	}
	return DecimalEncoding{
		Bin:          bits.PrettyBin(acc),
		Hex:          bits.ToHexString(acc, decimalWidth/4),
		OverflowFlag: 0,
	}, nil
}

// DecodeDecimal interprets a 32-bit hex string as two's-complement and
// returns its signed decimal value. Unlike EncodeDecimal this is a
// display-only convenience (the value is surfaced as a native int for
// printing, not used in any further core computation).
func DecodeDecimal(hex string) (int64, error) {
	v, err := bits.FromHexString(hex, decimalWidth)
	if err != nil {
		return 0, err
	}
	sign := bits.Msb(v)
	mag := v
	if sign == 1 {
		mag = adder.TwosNegate(v)
	}
	var val int64
	for _, b := range mag {
		val = (val << 1) | int64(b)
	}
	if sign == 1 {
		val = -val
	}
	return val, nil
}
