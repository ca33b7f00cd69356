package adapters

import "testing"

func TestEncodeDecimalPositive(t *testing.T) {
	enc, err := EncodeDecimal("12345")
	if err != nil {
		t.Fatal(err)
	}
	if enc.Hex != "0x00003039" {
		t.Errorf("EncodeDecimal(12345).Hex = %s, want 0x00003039", enc.Hex)
	}
}

func TestEncodeDecimalNegative(t *testing.T) {
	enc, err := EncodeDecimal("-1")
	if err != nil {
		t.Fatal(err)
	}
	if enc.Hex != "0xFFFFFFFF" {
		t.Errorf("EncodeDecimal(-1).Hex = %s, want 0xFFFFFFFF", enc.Hex)
	}
}

func TestEncodeDecimalBadDigit(t *testing.T) {
	if _, err := EncodeDecimal("12x45"); err == nil {
		t.Fatal("expected error for non-digit character")
	}
}

func TestDecodeDecimal(t *testing.T) {
	v, err := DecodeDecimal("0xFFFFFFFF")
	if err != nil {
		t.Fatal(err)
	}
	if v != -1 {
		t.Errorf("DecodeDecimal(0xFFFFFFFF) = %d, want -1", v)
	}

	v2, err := DecodeDecimal("0x0000007B")
	if err != nil {
		t.Fatal(err)
	}
	if v2 != 123 {
		t.Errorf("DecodeDecimal(0x7B) = %d, want 123", v2)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc, err := EncodeDecimal("-98765")
	if err != nil {
		t.Fatal(err)
	}
	v, err := DecodeDecimal(enc.Hex)
	if err != nil {
		t.Fatal(err)
	}
	if v != -98765 {
		t.Errorf("round trip = %d, want -98765", v)
	}
}
