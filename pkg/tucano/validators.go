package tucano

import (
	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/pattern"
	"github.com/rezonia/tucano/internal/pix"
)

// Clean strips every non-digit character
func Clean(raw string) string { return checksum.Clean(raw) }

// ValidateCPF reports whether raw is a well-formed CPF with matching check digits
func ValidateCPF(raw string) bool { return checksum.ValidateCPF(raw) }

// CheckCPF explains why raw is not a valid CPF
func CheckCPF(raw string) error { return checksum.CheckCPF(raw) }

// FormatCPF renders 000.000.000-00
func FormatCPF(raw string) (string, error) { return checksum.FormatCPF(raw) }

// CPFCheckDigits returns the two check digits of a 9-digit base
func CPFCheckDigits(base string) (string, error) { return checksum.CPFCheckDigits(base) }

// GenerateCPF returns a random valid CPF, digits only
func GenerateCPF() string { return checksum.GenerateCPF() }

// GenerateCPFFormatted returns a random valid CPF, punctuated
func GenerateCPFFormatted() string { return checksum.GenerateCPFFormatted() }

// ValidateCNPJ reports whether raw is a well-formed CNPJ with matching check digits
func ValidateCNPJ(raw string) bool { return checksum.ValidateCNPJ(raw) }

// CheckCNPJ explains why raw is not a valid CNPJ
func CheckCNPJ(raw string) error { return checksum.CheckCNPJ(raw) }

// FormatCNPJ renders 00.000.000/0000-00
func FormatCNPJ(raw string) (string, error) { return checksum.FormatCNPJ(raw) }

// CNPJCheckDigits returns the two check digits of a 12-digit base
func CNPJCheckDigits(base string) (string, error) { return checksum.CNPJCheckDigits(base) }

// GenerateCNPJ returns a random valid headquarters CNPJ, digits only
func GenerateCNPJ() string { return checksum.GenerateCNPJ() }

// GenerateCNPJBranch returns a random valid CNPJ for branch 1..9999
func GenerateCNPJBranch(branch int) (string, error) { return checksum.GenerateCNPJBranch(branch) }

// IsHeadquarters reports whether a valid CNPJ belongs to branch 0001
func IsHeadquarters(raw string) (bool, error) { return checksum.IsHeadquarters(raw) }

// BranchNumber returns the branch of a valid CNPJ, 1 for headquarters
func BranchNumber(raw string) (int, error) { return checksum.BranchNumber(raw) }

// CNPJBase returns the 8-digit company root of a valid CNPJ
func CNPJBase(raw string) (string, error) { return checksum.CNPJBase(raw) }

// ValidateCEP reports whether raw is a valid postal code
func ValidateCEP(raw string) bool { return pattern.ValidateCEP(raw) }

// CheckCEP explains why raw is not a valid postal code
func CheckCEP(raw string) error { return pattern.CheckCEP(raw) }

// FormatCEP renders 00000-000
func FormatCEP(raw string) (string, error) { return pattern.FormatCEP(raw) }

// ParsePhone validates a landline or mobile number with its area code
func ParsePhone(raw string) (PhoneNumber, error) { return pattern.ParsePhone(raw) }

// ValidatePhone reports whether raw is a valid phone number
func ValidatePhone(raw string) bool { return pattern.ValidatePhone(raw) }

// FormatPhone renders (AA) NNNN-NNNN or (AA) NNNNN-NNNN
func FormatPhone(raw string) (string, error) { return pattern.FormatPhone(raw) }

// GeneratePhone returns a random valid number of phoneType in areaCode
func GeneratePhone(phoneType PhoneType, areaCode string) (string, error) {
	return pattern.GeneratePhone(phoneType, areaCode)
}

// StateForAreaCode returns the state served by a DDD
func StateForAreaCode(ddd string) (string, error) { return pattern.StateForAreaCode(ddd) }

// AreaCodes returns every DDD in service
func AreaCodes() []string { return pattern.AreaCodes() }

// ParsePlate validates a legacy or Mercosul vehicle plate
func ParsePlate(raw string) (Plate, error) { return pattern.ParsePlate(raw) }

// ValidatePlate reports whether raw is a valid plate
func ValidatePlate(raw string) bool { return pattern.ValidatePlate(raw) }

// FormatPlate renders ABC-1234 or ABC1D23
func FormatPlate(raw string) (string, error) { return pattern.FormatPlate(raw) }

// ToMercosul converts a legacy plate to its Mercosul form
func ToMercosul(raw string) (string, error) { return pattern.ToMercosul(raw) }

// GeneratePlate returns a random plate of the given format
func GeneratePlate(format PlateFormat) (string, error) { return pattern.GeneratePlate(format) }

// ClassifyPixKey determines the type of a PIX key
func ClassifyPixKey(raw string) (PixKey, error) { return pix.Classify(raw) }

// ValidatePixKey reports whether raw is any recognized PIX key
func ValidatePixKey(raw string) bool { return pix.Validate(raw) }

// FormatPixKey returns the display form of a key
func FormatPixKey(key PixKey) string { return pix.Format(key) }

// GeneratePixKey returns a random key
func GeneratePixKey() string { return pix.GenerateRandom() }

// MaskPixKey hides the sensitive part of a key for display
func MaskPixKey(key PixKey) string { return pix.Mask(key) }

// NormalizePixKey returns the canonical storage form of a key
func NormalizePixKey(key PixKey) string { return pix.Normalize(key) }

// DescribePixKey collects the display forms and details of a key
func DescribePixKey(raw string) PixInfo { return pix.Describe(raw) }

// ValidatePixKeys classifies every key, preserving order
func ValidatePixKeys(keys []string) []PixResult { return pix.ValidateBatch(keys) }

// PixKeysEqual reports whether two raw keys normalize to the same key
func PixKeysEqual(a, b string) bool { return pix.Equal(a, b) }
