package pix

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pattern"
)

// Info describes a PIX key for display
type Info struct {
	Valid      bool              `json:"valid"`
	Type       model.PixKeyType  `json:"type,omitempty"`
	Formatted  string            `json:"formatted,omitempty"`
	Normalized string            `json:"normalized,omitempty"`
	Masked     string            `json:"masked,omitempty"`
	Extras     map[string]string `json:"extras,omitempty"`
}

// Describe classifies raw and collects its display forms and
// type-specific details
func Describe(raw string) Info {
	key, err := Classify(raw)
	if err != nil {
		return Info{}
	}

	info := Info{
		Valid:      true,
		Type:       key.Type,
		Formatted:  Format(key),
		Normalized: Normalize(key),
		Masked:     Mask(key),
		Extras:     map[string]string{},
	}

	switch key.Type {
	case model.PixCPF:
		info.Extras["document"] = "CPF"
	case model.PixCNPJ:
		info.Extras["document"] = "CNPJ"
		if branch, err := checksum.BranchNumber(key.Value); err == nil {
			info.Extras["headquarters"] = strconv.FormatBool(branch == checksum.HeadquartersBranch)
			info.Extras["branch"] = strconv.Itoa(branch)
		}
	case model.PixPhone:
		if phone, err := pattern.ParsePhone(key.Value); err == nil {
			info.Extras["ddd"] = phone.AreaCode
			info.Extras["state"] = phone.State
			info.Extras["phone_type"] = string(phone.Type)
		}
	case model.PixEmail:
		info.Extras["domain"] = key.Value[strings.IndexByte(key.Value, '@')+1:]
	case model.PixRandom:
		if id, err := uuid.Parse(key.Value); err == nil {
			info.Extras["uuid_version"] = strconv.Itoa(int(id.Version()))
		}
	}
	return info
}

// BatchResult is the outcome of classifying one key of a batch
type BatchResult struct {
	Key   string           `json:"key"`
	Valid bool             `json:"valid"`
	Type  model.PixKeyType `json:"type,omitempty"`
	Error string           `json:"error,omitempty"`
}

// ValidateBatch classifies every key, preserving input order
func ValidateBatch(keys []string) []BatchResult {
	results := make([]BatchResult, 0, len(keys))
	for _, k := range keys {
		result := BatchResult{Key: k}
		key, err := Classify(k)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Valid = true
			result.Type = key.Type
		}
		results = append(results, result)
	}
	return results
}

// GenerateRandom returns a new random key as a version 4 UUID
func GenerateRandom() string {
	return uuid.NewString()
}

// TestKeys returns n valid keys of every type, keyed by type
func TestKeys(n int) map[model.PixKeyType][]string {
	keys := map[model.PixKeyType][]string{
		model.PixCPF:    make([]string, 0, n),
		model.PixCNPJ:   make([]string, 0, n),
		model.PixEmail:  make([]string, 0, n),
		model.PixPhone:  make([]string, 0, n),
		model.PixRandom: make([]string, 0, n),
	}
	for i := 0; i < n; i++ {
		keys[model.PixCPF] = append(keys[model.PixCPF], checksum.GenerateCPFFormatted())
		keys[model.PixCNPJ] = append(keys[model.PixCNPJ], checksum.GenerateCNPJFormatted())
		keys[model.PixEmail] = append(keys[model.PixEmail], fmt.Sprintf("teste%d@example.com", i))
		keys[model.PixPhone] = append(keys[model.PixPhone], fmt.Sprintf("+55119%08d", rand.IntN(100000000)))
		keys[model.PixRandom] = append(keys[model.PixRandom], GenerateRandom())
	}
	return keys
}
