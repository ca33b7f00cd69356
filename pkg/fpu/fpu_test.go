package fpu

import (
	"math"
	"testing"

	"github.com/oisee/riscv-numeric-core/pkg/adapters"
	"github.com/oisee/riscv-numeric-core/pkg/bits"
)

func f32(x float32) bits.Vector { return adapters.PackF32(x) }
func f64(x float64) bits.Vector { return adapters.PackF64(x) }

func wantF32(t *testing.T, got bits.Vector, want float32) {
	t.Helper()
	gotHex := bits.ToHexString(got, 8)
	wantHex := bits.ToHexString(f32(want), 8)
	if gotHex != wantHex {
		t.Errorf("got %s, want %s (%v)", gotHex, wantHex, want)
	}
}

func TestFAddF32Exact(t *testing.T) {
	r, f := FAddF32(f32(1.0), f32(2.0), RNE)
	wantF32(t, r, 3.0)
	if f.Inexact != 0 || f.Invalid != 0 {
		t.Errorf("unexpected flags %+v", f)
	}
}

func TestFSubF32Exact(t *testing.T) {
	r, f := FSubF32(f32(5.0), f32(2.0), RNE)
	wantF32(t, r, 3.0)
	if f.Inexact != 0 {
		t.Errorf("unexpected flags %+v", f)
	}
}

func TestFMulF32Exact(t *testing.T) {
	r, _ := FMulF32(f32(2.0), f32(3.0), RNE)
	wantF32(t, r, 6.0)
}

func TestFAddF32InfPropagates(t *testing.T) {
	r, f := FAddF32(f32(float32(math.Inf(1))), f32(1.0), RNE)
	wantF32(t, r, float32(math.Inf(1)))
	if f.Invalid != 0 {
		t.Errorf("Inf+1 should not raise invalid, got %+v", f)
	}
}

func TestFSubF32InfMinusInfIsNaN(t *testing.T) {
	r, f := FSubF32(f32(float32(math.Inf(1))), f32(float32(math.Inf(1))), RNE)
	if f.Invalid != 1 {
		t.Errorf("Inf - Inf should raise invalid, got %+v", f)
	}
	u := unpack(Binary32, r)
	if !u.isOnesExp || isZeroVec(u.frac) {
		t.Errorf("Inf - Inf result %s should be a NaN bit pattern", bits.ToHexString(r, 8))
	}
}

func TestFMulF32ZeroTimesInfIsNaN(t *testing.T) {
	r, f := FMulF32(f32(0.0), f32(float32(math.Inf(1))), RNE)
	if f.Invalid != 1 {
		t.Errorf("0 * Inf should raise invalid, got %+v", f)
	}
	u := unpack(Binary32, r)
	if !u.isOnesExp || isZeroVec(u.frac) {
		t.Errorf("0 * Inf result %s should be a NaN bit pattern", bits.ToHexString(r, 8))
	}
}

func TestFAddF32NaNPropagates(t *testing.T) {
	nan := f32(float32(math.NaN()))
	r, f := FAddF32(nan, f32(1.0), RNE)
	if f.Invalid != 1 {
		t.Errorf("NaN+1 should raise invalid, got %+v", f)
	}
	u := unpack(Binary32, r)
	if !u.isOnesExp || isZeroVec(u.frac) {
		t.Errorf("NaN+1 result %s should be a NaN bit pattern", bits.ToHexString(r, 8))
	}
}

func TestFMulF32Overflow(t *testing.T) {
	big := f32(1e30)
	r, f := FMulF32(big, big, RNE)
	if f.Overflow != 1 {
		t.Errorf("1e30 * 1e30 should overflow binary32, got flags %+v", f)
	}
	u := unpack(Binary32, r)
	if !u.isOnesExp || !isZeroVec(u.frac) {
		t.Errorf("overflow result %s should be +/-Inf", bits.ToHexString(r, 8))
	}
}

func TestFAddF64Exact(t *testing.T) {
	r, f := FAddF64(f64(1.5), f64(2.25), RNE)
	gotHex := bits.ToHexString(r, 16)
	wantHex := bits.ToHexString(f64(3.75), 16)
	if gotHex != wantHex {
		t.Errorf("1.5+2.25 = %s, want %s", gotHex, wantHex)
	}
	if f.Inexact != 0 {
		t.Errorf("unexpected flags %+v", f)
	}
}

func TestFMulF64Exact(t *testing.T) {
	r, _ := FMulF64(f64(2.0), f64(4.0), RNE)
	gotHex := bits.ToHexString(r, 16)
	wantHex := bits.ToHexString(f64(8.0), 16)
	if gotHex != wantHex {
		t.Errorf("2.0*4.0 = %s, want %s", gotHex, wantHex)
	}
}
