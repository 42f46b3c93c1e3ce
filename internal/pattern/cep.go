// Package pattern validates Brazilian identifiers that carry no check digit:
// postal codes, phone numbers and vehicle plates.
package pattern

import (
	"fmt"
	"strings"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
)

const cepLength = 8

// CleanCEP strips every non-digit character
func CleanCEP(raw string) string {
	return checksum.Clean(raw)
}

// ValidateCEP returns true if raw is a well-formed postal code
func ValidateCEP(raw string) bool {
	return CheckCEP(raw) == nil
}

// CheckCEP returns a *model.FormatError when raw is not 8 digits or is all zeros
func CheckCEP(raw string) error {
	_, err := cepDigits(raw)
	return err
}

// FormatCEP renders a postal code as 00000-000
func FormatCEP(raw string) (string, error) {
	d, err := cepDigits(raw)
	if err != nil {
		return "", err
	}
	return d[:5] + "-" + d[5:], nil
}

func cepDigits(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", model.NewFormatError(model.KindCEP, raw, "empty value")
	}
	for _, r := range raw {
		if !(r >= '0' && r <= '9') && r != '-' && r != '.' && r != ' ' {
			return "", model.NewFormatError(model.KindCEP, raw, fmt.Sprintf("unexpected character %q", r))
		}
	}
	d := CleanCEP(raw)
	if len(d) != cepLength {
		return "", model.NewFormatError(model.KindCEP, raw, fmt.Sprintf("expected %d digits, got %d", cepLength, len(d)))
	}
	if d == "00000000" {
		return "", model.NewFormatError(model.KindCEP, raw, "all zeros")
	}
	return d, nil
}
