package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1,234.56", "1234.56", true},
		{"1234,56", "1234.56", true},
		{"436.20", "436.20", true},
		{"436200", "436200", true},
		{"1,234", "1.234", true}, // lone comma acts as the decimal point
		{" 45.30 ", "45.30", true},
		{"-12,5", "-12.5", true},
		{"₪1,234.56", "1234.56", true}, // currency glyphs stripped
		{"2,500 ", "2.5", true},
		{"1.234.567", "", false}, // dot-only ambiguity stays unparsable
		{"abc", "", false},
		{",,,", "", false},
		{"-", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		if ok != tt.ok {
			t.Errorf("Normalize(%q): ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		want := decimal.RequireFromString(tt.want)
		if !got.Equal(want) {
			t.Errorf("Normalize(%q) = %s, want %s", tt.in, got, want)
		}
	}
}
