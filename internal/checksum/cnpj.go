package checksum

import (
	"fmt"
	"strconv"

	"github.com/rezonia/tucano/internal/model"
)

const (
	cnpjLength = 14

	// HeadquartersBranch is the branch number of a company's head office
	HeadquartersBranch = 1

	// MaxBranch is the largest branch number a CNPJ can carry
	MaxBranch = 9999
)

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateCNPJ returns true if raw is a valid CNPJ
func ValidateCNPJ(raw string) bool {
	return CheckCNPJ(raw) == nil
}

// CheckCNPJ returns nil for a valid CNPJ, a *model.FormatError for malformed
// or degenerate input and a *model.ChecksumError for wrong check digits
func CheckCNPJ(raw string) error {
	digits, err := digitsOf(model.KindCNPJ, raw, cnpjLength)
	if err != nil {
		return err
	}
	if allEqual(digits) {
		return model.NewFormatError(model.KindCNPJ, raw, "repeated digits")
	}
	if computeCheckDigits(digits[:12], cnpjFirstWeights, cnpjSecondWeights) != digits[12:] {
		return model.NewChecksumError(model.KindCNPJ, raw)
	}
	return nil
}

// FormatCNPJ renders a CNPJ as 00.000.000/0000-00. Check digits are not verified.
func FormatCNPJ(raw string) (string, error) {
	d, err := digitsOf(model.KindCNPJ, raw, cnpjLength)
	if err != nil {
		return "", err
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:], nil
}

// CNPJCheckDigits returns the two check digits for the first 12 digits of base
func CNPJCheckDigits(base string) (string, error) {
	digits := Clean(base)
	if len(digits) < 12 {
		return "", model.NewFormatError(model.KindCNPJ, base, "base needs at least 12 digits")
	}
	return computeCheckDigits(digits[:12], cnpjFirstWeights, cnpjSecondWeights), nil
}

// GenerateCNPJ returns a random valid headquarters CNPJ as 14 digits
func GenerateCNPJ() string {
	digits, _ := GenerateCNPJBranch(HeadquartersBranch)
	return digits
}

// GenerateCNPJFormatted returns a random valid headquarters CNPJ as 00.000.000/0001-00
func GenerateCNPJFormatted() string {
	formatted, _ := FormatCNPJ(GenerateCNPJ())
	return formatted
}

// GenerateCNPJBranch returns a random valid CNPJ for the given branch number
func GenerateCNPJBranch(branch int) (string, error) {
	if branch < HeadquartersBranch || branch > MaxBranch {
		return "", model.NewFormatError(model.KindCNPJ, strconv.Itoa(branch),
			fmt.Sprintf("branch must be between %d and %d", HeadquartersBranch, MaxBranch))
	}
	base := randomDigits(8) + fmt.Sprintf("%04d", branch)
	return base + computeCheckDigits(base, cnpjFirstWeights, cnpjSecondWeights), nil
}

// IsHeadquarters reports whether a valid CNPJ belongs to the head office
func IsHeadquarters(raw string) (bool, error) {
	branch, err := BranchNumber(raw)
	if err != nil {
		return false, err
	}
	return branch == HeadquartersBranch, nil
}

// BranchNumber returns the branch number encoded in digits 9 to 12
func BranchNumber(raw string) (int, error) {
	if err := CheckCNPJ(raw); err != nil {
		return 0, err
	}
	digits := Clean(raw)
	return strconv.Atoi(digits[8:12])
}

// CNPJBase returns the 8-digit company root shared by all branches
func CNPJBase(raw string) (string, error) {
	if err := CheckCNPJ(raw); err != nil {
		return "", err
	}
	return Clean(raw)[:8], nil
}
