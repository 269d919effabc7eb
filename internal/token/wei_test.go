package token

import (
	"testing"
)

func TestFromWei(t *testing.T) {
	tests := []struct {
		wei  string
		want float64
	}{
		{"", 0},
		{"0", 0},
		{"000", 0},
		{"1000000000000000000", 1},
		{"1500000000000000000", 1.5},
		{"500000000000000000", 0.5},
		{"1", 1e-18},
		{"50000000000000000000", 50},
		{"not-a-number", 0},
	}

	for _, tt := range tests {
		if got := FromWei(tt.wei); got != tt.want {
			t.Errorf("FromWei(%q) = %v, want %v", tt.wei, got, tt.want)
		}
	}
}

func TestFromWei_ExceedsFloatIntegerPrecision(t *testing.T) {
	// 12345678901234567890123456789 base units = 12345678901.234... tokens.
	// The integer part has more digits than float64 can hold exactly as an
	// integer wei value, so it must be sliced as a string first.
	got := FromWei("12345678901234567890123456789")
	if got < 12345678901.2 || got > 12345678901.3 {
		t.Errorf("unexpected value for huge wei string: %v", got)
	}
}

func TestToWei(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"", "0"},
		{"0", "0"},
		{"1", "1000000000000000000"},
		{"1.5", "1500000000000000000"},
		{"0.5", "500000000000000000"},
		{"1000", "1000000000000000000000"},
		{"0.000000000000000001", "1"},
		// Fraction longer than the precision is truncated.
		{"1.0000000000000000019", "1000000000000000001"},
	}

	for _, tt := range tests {
		if got := ToWei(tt.amount); got != tt.want {
			t.Errorf("ToWei(%q) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestWeiRoundTrip(t *testing.T) {
	// toWei(fromWei-style display) must reproduce the base string for values
	// within the configured precision.
	cases := []string{
		"1",
		"1000000000000000000",
		"1500000000000000000",
		"50000000000000000000",
		"123450000000000000000000",
	}

	for _, wei := range cases {
		amt, err := ParseBase(wei, Decimals)
		if err != nil {
			t.Fatalf("ParseBase(%q): %v", wei, err)
		}
		if got := ToWei(amt.String()); got != wei {
			t.Errorf("round trip %q -> %q -> %q", wei, amt.String(), got)
		}
	}
}

func TestCompact(t *testing.T) {
	tests := []struct {
		n    float64
		want string
	}{
		{0, "0"},
		{1_234_567, "1.2M"},
		{1_000_000, "1M"},
		{2_500_000, "2.5M"},
		{45_000, "45K"},
		{10_000, "10K"},
		{12_345, "12.3K"},
		{1_234, "1.234"},
		{9_999, "9.999"},
		{999, "999"},
		{123.456, "123.46"},
		{1.5, "1.50"},
		{42, "42"},
	}

	for _, tt := range tests {
		if got := Compact(tt.n); got != tt.want {
			t.Errorf("Compact(%v) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFmtWei(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"", "0"},
		{"0", "0"},
		{"1234567000000000000000000", "1.2M"},
		{"45000000000000000000000", "45K"},
		{"50000000000000000000", "50"},
	}

	for _, tt := range tests {
		if got := FmtWei(tt.wei); got != tt.want {
			t.Errorf("FmtWei(%q) = %q, want %q", tt.wei, got, tt.want)
		}
	}
}

func TestParseDisplay(t *testing.T) {
	amt, err := ParseDisplay("1.5", 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amt.BaseString() != "1500000000000000000" {
		t.Errorf("expected 1.5e18 base units, got %s", amt.BaseString())
	}

	if _, err := ParseDisplay("-1", 18); err == nil {
		t.Error("expected error for negative amount")
	}

	// 6-decimal token cannot hold 7 fractional digits.
	if _, err := ParseDisplay("1.1234567", 6); err == nil {
		t.Error("expected error for too many decimals")
	}
}

func TestAmount_Cmp(t *testing.T) {
	a, _ := ParseBase("100", 18)
	b, _ := ParseBase("200", 18)

	if a.Cmp(b) >= 0 {
		t.Error("expected a < b")
	}
	if b.Cmp(a) <= 0 {
		t.Error("expected b > a")
	}
	if a.Cmp(a) != 0 {
		t.Error("expected a == a")
	}
}
