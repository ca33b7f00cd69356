package alu

import (
	"testing"

	"github.com/oisee/riscv-numeric-core/pkg/bits"
)

func hx(s string, w int) bits.Vector {
	v, err := bits.FromHexString(s, w)
	if err != nil {
		panic(err)
	}
	return v
}

func TestAdd(t *testing.T) {
	tests := []struct {
		a, b          string
		wantR         string
		n, z, c, v    uint8
	}{
		{"0x7FFFFFFF", "0x00000001", "0x80000000", 1, 0, 0, 1}, // signed overflow pos+pos=neg
		{"0x80000000", "0x80000000", "0x00000000", 0, 1, 1, 1}, // neg+neg=pos, carry out
		{"0x00000001", "0x00000001", "0x00000002", 0, 0, 0, 0},
		{"0xFFFFFFFF", "0x00000001", "0x00000000", 0, 1, 1, 0}, // -1+1=0, carry out, no overflow
	}
	for _, tc := range tests {
		a, b := hx(tc.a, 32), hx(tc.b, 32)
		r, f := Add(a, b)
		gotR := bits.ToHexString(r, 8)
		if gotR != tc.wantR {
			t.Errorf("Add(%s,%s) = %s, want %s", tc.a, tc.b, gotR, tc.wantR)
		}
		if f.N != tc.n || f.Z != tc.z || f.C != tc.c || f.V != tc.v {
			t.Errorf("Add(%s,%s) flags = %+v, want N=%d Z=%d C=%d V=%d", tc.a, tc.b, f, tc.n, tc.z, tc.c, tc.v)
		}
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		a, b       string
		wantR      string
		n, z, c, v uint8
	}{
		{"0x00000005", "0x00000003", "0x00000002", 0, 0, 1, 0},
		{"0x80000000", "0x00000001", "0x7FFFFFFF", 0, 0, 1, 1}, // INT_MIN - 1 overflows to positive
		{"0x00000003", "0x00000003", "0x00000000", 0, 1, 1, 0},
		{"0x00000000", "0x00000001", "0xFFFFFFFF", 1, 0, 0, 0}, // 0-1 borrows, C=0
	}
	for _, tc := range tests {
		a, b := hx(tc.a, 32), hx(tc.b, 32)
		r, f := Sub(a, b)
		gotR := bits.ToHexString(r, 8)
		if gotR != tc.wantR {
			t.Errorf("Sub(%s,%s) = %s, want %s", tc.a, tc.b, gotR, tc.wantR)
		}
		if f.N != tc.n || f.Z != tc.z || f.C != tc.c || f.V != tc.v {
			t.Errorf("Sub(%s,%s) flags = %+v, want N=%d Z=%d C=%d V=%d", tc.a, tc.b, f, tc.n, tc.z, tc.c, tc.v)
		}
	}
}
