// Package pix classifies PIX payment keys and renders them for display.
package pix

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pattern"
)

const (
	minEmailLength = 5
	maxEmailLength = 77
	uuidLength     = 36
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^(\+55)?\d{10,11}$`)
	invisible    = strings.NewReplacer("\u200b", "", "\ufeff", "", "\n", "", "\r", "", "\t", "")
	phonePunct   = strings.NewReplacer("(", "", ")", "", "-", "", " ", "", ".", "")
)

// rule matches one key shape and returns the normalized value
type rule struct {
	keyType model.PixKeyType
	match   func(s string) (string, bool)
}

// Order matters: an 11-digit string passing the CPF checksum must never be
// read as a phone number, and UUID is the last resort.
var rules = []rule{
	{keyType: model.PixEmail, match: matchEmail},
	{keyType: model.PixCPF, match: matchCPF},
	{keyType: model.PixCNPJ, match: matchCNPJ},
	{keyType: model.PixPhone, match: matchPhone},
	{keyType: model.PixRandom, match: matchRandom},
}

// Sanitize trims raw, drops line breaks and zero-width characters and
// collapses inner whitespace
func Sanitize(raw string) string {
	s := invisible.Replace(raw)
	return strings.Join(strings.Fields(s), " ")
}

// Classify returns the first key shape raw matches, or a
// *model.UnrecognizedPixKeyError
func Classify(raw string) (model.PixKey, error) {
	s := Sanitize(raw)
	if s != "" {
		for _, r := range rules {
			if value, ok := r.match(s); ok {
				return model.PixKey{Type: r.keyType, Value: value}, nil
			}
		}
	}
	return model.PixKey{}, model.NewUnrecognizedPixKeyError(raw)
}

// Validate returns true if raw is any valid PIX key
func Validate(raw string) bool {
	_, err := Classify(raw)
	return err == nil
}

// ClassifyAs validates raw as one specific key type
func ClassifyAs(keyType model.PixKeyType, raw string) (model.PixKey, error) {
	s := Sanitize(raw)
	for _, r := range rules {
		if r.keyType != keyType {
			continue
		}
		if value, ok := r.match(s); ok {
			return model.PixKey{Type: keyType, Value: value}, nil
		}
		break
	}
	return model.PixKey{}, model.NewUnrecognizedPixKeyError(raw)
}

func matchEmail(s string) (string, bool) {
	if len(s) < minEmailLength || len(s) > maxEmailLength {
		return "", false
	}
	if !emailPattern.MatchString(s) || strings.Contains(s, "..") {
		return "", false
	}
	local := s[:strings.IndexByte(s, '@')]
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return "", false
	}
	return strings.ToLower(s), true
}

func matchCPF(s string) (string, bool) {
	if checksum.CheckCPF(s) != nil {
		return "", false
	}
	return checksum.Clean(s), true
}

func matchCNPJ(s string) (string, bool) {
	if checksum.CheckCNPJ(s) != nil {
		return "", false
	}
	return checksum.Clean(s), true
}

func matchPhone(s string) (string, bool) {
	compact := phonePunct.Replace(s)
	if !phonePattern.MatchString(compact) {
		return "", false
	}
	phone, err := pattern.ParsePhone(compact)
	if err != nil {
		return "", false
	}
	return phone.Digits(), true
}

func matchRandom(s string) (string, bool) {
	if len(s) != uuidLength {
		return "", false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
