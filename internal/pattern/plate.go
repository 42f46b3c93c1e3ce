package pattern

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/rezonia/tucano/internal/model"
)

var (
	legacyPlate   = regexp.MustCompile(`^[A-Z]{3}\d{4}$`)
	mercosulPlate = regexp.MustCompile(`^[A-Z]{3}\d[A-Z]\d{2}$`)
)

const (
	plateLength  = 7
	plateLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// CleanPlate upper-cases raw and drops hyphens and spaces
func CleanPlate(raw string) string {
	r := strings.NewReplacer("-", "", " ", "")
	return r.Replace(strings.ToUpper(strings.TrimSpace(raw)))
}

// ValidatePlate returns true if raw is a legacy or Mercosul plate
func ValidatePlate(raw string) bool {
	_, err := ParsePlate(raw)
	return err == nil
}

// ParsePlate normalizes raw and detects its format. Legacy is tried first.
func ParsePlate(raw string) (model.Plate, error) {
	cleaned := CleanPlate(raw)
	if cleaned == "" {
		return model.Plate{}, model.NewFormatError(model.KindPlate, raw, "empty value")
	}
	for _, r := range cleaned {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return model.Plate{}, model.NewFormatError(model.KindPlate, raw, fmt.Sprintf("unexpected character %q", r))
		}
	}
	if len(cleaned) != plateLength {
		return model.Plate{}, model.NewFormatError(model.KindPlate, raw,
			fmt.Sprintf("expected %d characters, got %d", plateLength, len(cleaned)))
	}

	switch {
	case legacyPlate.MatchString(cleaned):
		return model.Plate{Value: cleaned, Format: model.PlateLegacy}, nil
	case mercosulPlate.MatchString(cleaned):
		return model.Plate{Value: cleaned, Format: model.PlateMercosul}, nil
	default:
		return model.Plate{}, model.NewFormatError(model.KindPlate, raw, "matches neither legacy AAA9999 nor Mercosul AAA9A99")
	}
}

// FormatPlate renders legacy plates as ABC-1234 and Mercosul plates as ABC1D23
func FormatPlate(raw string) (string, error) {
	plate, err := ParsePlate(raw)
	if err != nil {
		return "", err
	}
	return FormatParsedPlate(plate), nil
}

// FormatParsedPlate renders an already parsed plate
func FormatParsedPlate(p model.Plate) string {
	if p.Format == model.PlateLegacy {
		return p.Value[:3] + "-" + p.Value[3:]
	}
	return p.Value
}

// ToMercosul converts a legacy plate by replacing its second digit with
// the letter of the same index (0 is A, 9 is J). Mercosul input is a *model.FormatError.
func ToMercosul(raw string) (string, error) {
	plate, err := ParsePlate(raw)
	if err != nil {
		return "", err
	}
	if plate.Format != model.PlateLegacy {
		return "", model.NewFormatError(model.KindPlate, raw, "not a legacy plate")
	}
	b := []byte(plate.Value)
	b[4] = 'A' + (b[4] - '0')
	return string(b), nil
}

// GeneratePlate returns a random plate of the given format, unpunctuated
func GeneratePlate(format model.PlateFormat) (string, error) {
	b := make([]byte, plateLength)
	for i := 0; i < 3; i++ {
		b[i] = plateLetters[rand.IntN(len(plateLetters))]
	}
	b[3] = byte('0' + rand.IntN(10))
	switch format {
	case model.PlateLegacy:
		b[4] = byte('0' + rand.IntN(10))
	case model.PlateMercosul:
		b[4] = plateLetters[rand.IntN(len(plateLetters))]
	default:
		return "", model.NewFormatError(model.KindPlate, string(format), "format must be legacy or mercosul")
	}
	b[5] = byte('0' + rand.IntN(10))
	b[6] = byte('0' + rand.IntN(10))
	return string(b), nil
}
