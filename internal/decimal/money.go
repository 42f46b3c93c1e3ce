package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

const currencySymbol = "R$"

// FromString parses a plain decimal string such as "1500000.00"
func FromString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, nil
	}
	return decimal.NewFromString(s)
}

// ParseBRL parses a Brazilian currency string such as "R$ 10.316,00".
// Dots group thousands and the comma separates cents.
func ParseBRL(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), currencySymbol))
	if v == "" {
		return Zero, fmt.Errorf("empty amount %q", s)
	}
	v = strings.ReplaceAll(v, ".", "")
	v = strings.Replace(v, ",", ".", 1)
	d, err := decimal.NewFromString(v)
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Round(2), nil
}

// FormatBRL renders d as "R$ 1.234,56"
func FormatBRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + currencySymbol + " " + b.String() + "," + cents
}
