package adapters

import (
	"math"
	"testing"
)

func TestPackF32(t *testing.T) {
	v := PackF32(1.0)
	if len(v) != 32 {
		t.Fatalf("want 32 bits, got %d", len(v))
	}
	if BitsToHex32(v) != "0x3F800000" {
		t.Errorf("PackF32(1.0) = %s, want 0x3F800000", BitsToHex32(v))
	}
}

func TestPackF32NegativeZero(t *testing.T) {
	v := PackF32(float32(math.Copysign(0, -1)))
	if v[0] != 1 {
		t.Error("negative zero should have sign bit set")
	}
}

func TestPackF64(t *testing.T) {
	v := PackF64(2.0)
	if len(v) != 64 {
		t.Fatalf("want 64 bits, got %d", len(v))
	}
	if BitsToHex64(v) != "0x4000000000000000" {
		t.Errorf("PackF64(2.0) = %s, want 0x4000000000000000", BitsToHex64(v))
	}
}
