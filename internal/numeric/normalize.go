// Package numeric turns raw numeric-looking page tokens into canonical decimals.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize parses a raw token containing digits, separators and an optional
// sign into a decimal. Ambiguous separators are resolved in a fixed order:
// when both "." and "," are present, "," is a thousands separator; when only
// "," is present it is the decimal point; otherwise any "," is dropped.
// The second return value is false when the cleaned token is not numeric;
// callers must treat that as "no candidate", not an error.
func Normalize(raw string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			b.WriteRune(r)
		}
	}
	t := b.String()

	switch {
	case strings.Contains(t, ",") && strings.Contains(t, "."):
		t = strings.ReplaceAll(t, ",", "")
	case strings.Contains(t, ","):
		t = strings.ReplaceAll(t, ",", ".")
	}

	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
