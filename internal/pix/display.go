package pix

import (
	"strings"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
)

// Mask hides the sensitive part of a classified key
func Mask(key model.PixKey) string {
	v := key.Value
	switch key.Type {
	case model.PixEmail:
		at := strings.IndexByte(v, '@')
		if at < 1 {
			return v
		}
		return v[:1] + "***" + v[at:]
	case model.PixCPF:
		if len(v) != 11 {
			return v
		}
		return "***." + v[3:6] + "." + v[6:9] + "-**"
	case model.PixCNPJ:
		if len(v) != 14 {
			return v
		}
		return "**." + v[2:5] + "." + v[5:8] + "/" + v[8:12] + "-**"
	case model.PixPhone:
		if len(v) < 10 {
			return v
		}
		sub := v[2:]
		return "+55 (" + v[:2] + ") " + strings.Repeat("*", len(sub)-4) + "-" + sub[len(sub)-4:]
	case model.PixRandom:
		if len(v) < 8 {
			return v
		}
		return v[:4] + strings.Repeat("*", len(v)-8) + v[len(v)-4:]
	}
	return v
}

// Normalize returns the canonical comparison form of a classified key
func Normalize(key model.PixKey) string {
	switch key.Type {
	case model.PixCPF, model.PixCNPJ:
		return checksum.Clean(key.Value)
	case model.PixPhone:
		d := checksum.Clean(key.Value)
		if (len(d) == 12 || len(d) == 13) && strings.HasPrefix(d, "55") {
			return d[2:]
		}
		return d
	case model.PixEmail, model.PixRandom:
		return strings.ToLower(key.Value)
	}
	return key.Value
}

// Format renders a classified key the way it is usually displayed:
// punctuated tax IDs, +55 phone numbers and lower-case email and random keys
func Format(key model.PixKey) string {
	switch key.Type {
	case model.PixCPF:
		if s, err := checksum.FormatCPF(key.Value); err == nil {
			return s
		}
	case model.PixCNPJ:
		if s, err := checksum.FormatCNPJ(key.Value); err == nil {
			return s
		}
	case model.PixPhone:
		return "+55" + Normalize(key)
	}
	return Normalize(key)
}

// Equal reports whether a and b classify to the same key
func Equal(a, b string) bool {
	ka, err := Classify(a)
	if err != nil {
		return false
	}
	kb, err := Classify(b)
	if err != nil {
		return false
	}
	return ka.Type == kb.Type && Normalize(ka) == Normalize(kb)
}
