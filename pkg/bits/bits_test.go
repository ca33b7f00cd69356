package bits

import "testing"

func TestFromHexStringRoundTrip(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"0x0000000F", 32, "0x0000000F"},
		{"0xFFFFFFFF", 32, "0xFFFFFFFF"},
		{"0x7FFF_FFFF", 32, "0x7FFFFFFF"},
		{"0x1", 8, "0x01"},
		{"0", 4, "0x0"},
	}
	for _, tc := range tests {
		v, err := FromHexString(tc.in, tc.width)
		if err != nil {
			t.Fatalf("FromHexString(%q, %d): %v", tc.in, tc.width, err)
		}
		if len(v) != tc.width {
			t.Fatalf("FromHexString(%q, %d): got width %d", tc.in, tc.width, len(v))
		}
		got := ToHexString(v, tc.width/4)
		if got != tc.want {
			t.Errorf("ToHexString(FromHexString(%q)) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestFromHexStringBadChar(t *testing.T) {
	if _, err := FromHexString("0xGG", 8); err == nil {
		t.Fatal("expected error for invalid hex char, got nil")
	}
}

func TestZerosOnes(t *testing.T) {
	if !IsZero(Zeros(16)) {
		t.Error("Zeros(16) should be zero")
	}
	if IsZero(Ones(16)) {
		t.Error("Ones(16) should not be zero")
	}
	if Msb(Ones(16)) != 1 {
		t.Error("Ones(16) should have Msb 1")
	}
	if Msb(Zeros(16)) != 0 {
		t.Error("Zeros(16) should have Msb 0")
	}
}

func TestPadToWidth(t *testing.T) {
	v := Vector{1, 0, 1}
	padded := PadToWidth(v, 6, 0)
	want := Vector{0, 0, 0, 1, 0, 1}
	if !vecEqual(padded, want) {
		t.Errorf("PadToWidth = %v, want %v", padded, want)
	}

	truncated := PadToWidth(Vector{1, 1, 0, 1, 0, 1}, 3, 0)
	wantT := Vector{1, 0, 1}
	if !vecEqual(truncated, wantT) {
		t.Errorf("PadToWidth truncate = %v, want %v", truncated, wantT)
	}
}

func TestSignExtendZeroExtend(t *testing.T) {
	neg := Vector{1, 0, 1}
	se := SignExtend(neg, 6)
	if !vecEqual(se, Vector{1, 1, 1, 1, 0, 1}) {
		t.Errorf("SignExtend(negative) = %v", se)
	}

	pos := Vector{0, 1, 1}
	ze := ZeroExtend(pos, 6)
	if !vecEqual(ze, Vector{0, 0, 0, 0, 1, 1}) {
		t.Errorf("ZeroExtend = %v", ze)
	}
}

func TestPrettyBin(t *testing.T) {
	v, _ := FromHexString("0xFF00FF00", 32)
	got := PrettyBin(v)
	want := "11111111_00000000_11111111_00000000"
	if got != want {
		t.Errorf("PrettyBin = %q, want %q", got, want)
	}
}

func vecEqual(a, b Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
