// Package checksum implements the mod-11 check digit schemes of CPF and CNPJ.
package checksum

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rezonia/tucano/internal/model"
)

// Clean strips every non-digit character
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitsOf strips punctuation from raw and checks the expected length.
// Letters and other symbols are rejected rather than silently dropped.
func digitsOf(kind model.Kind, raw string, length int) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", model.NewFormatError(kind, raw, "empty value")
	}
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '/', r == ' ':
		default:
			return "", model.NewFormatError(kind, raw, fmt.Sprintf("unexpected character %q", r))
		}
	}
	digits := Clean(raw)
	if len(digits) != length {
		return "", model.NewFormatError(kind, raw, lengthMessage(length, len(digits)))
	}
	return digits, nil
}

func lengthMessage(want, got int) string {
	return fmt.Sprintf("expected %d digits, got %d", want, got)
}

// checkDigit computes one mod-11 digit over the leading len(weights) digits
func checkDigit(digits string, weights []int) byte {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

// computeCheckDigits returns the two check digits of base. The second
// digit is computed over base plus the first digit.
func computeCheckDigits(base string, first, second []int) string {
	d1 := checkDigit(base, first)
	d2 := checkDigit(base+string(d1), second)
	return string([]byte{d1, d2})
}

func allEqual(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func randomDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + rand.IntN(10))
	}
	return string(b)
}
