package checksum

import (
	"github.com/rezonia/tucano/internal/model"
)

const cpfLength = 11

var (
	cpfFirstWeights  = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfSecondWeights = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateCPF returns true if raw is a valid CPF
func ValidateCPF(raw string) bool {
	return CheckCPF(raw) == nil
}

// CheckCPF returns nil for a valid CPF, a *model.FormatError for malformed
// or degenerate input and a *model.ChecksumError for wrong check digits
func CheckCPF(raw string) error {
	digits, err := digitsOf(model.KindCPF, raw, cpfLength)
	if err != nil {
		return err
	}
	if allEqual(digits) {
		return model.NewFormatError(model.KindCPF, raw, "repeated digits")
	}
	if computeCheckDigits(digits[:9], cpfFirstWeights, cpfSecondWeights) != digits[9:] {
		return model.NewChecksumError(model.KindCPF, raw)
	}
	return nil
}

// FormatCPF renders a CPF as 000.000.000-00. Check digits are not verified.
func FormatCPF(raw string) (string, error) {
	d, err := digitsOf(model.KindCPF, raw, cpfLength)
	if err != nil {
		return "", err
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:], nil
}

// CPFCheckDigits returns the two check digits for the first 9 digits of base
func CPFCheckDigits(base string) (string, error) {
	digits := Clean(base)
	if len(digits) < 9 {
		return "", model.NewFormatError(model.KindCPF, base, "base needs at least 9 digits")
	}
	return computeCheckDigits(digits[:9], cpfFirstWeights, cpfSecondWeights), nil
}

// GenerateCPF returns a random valid CPF as 11 digits
func GenerateCPF() string {
	for {
		base := randomDigits(9)
		if allEqual(base) {
			continue
		}
		return base + computeCheckDigits(base, cpfFirstWeights, cpfSecondWeights)
	}
}

// GenerateCPFFormatted returns a random valid CPF as 000.000.000-00
func GenerateCPFFormatted() string {
	formatted, _ := FormatCPF(GenerateCPF())
	return formatted
}
