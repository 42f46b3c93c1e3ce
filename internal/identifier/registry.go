// Package identifier dispatches validation, formatting and generation to the
// validator of each identifier kind.
package identifier

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pattern"
	"github.com/rezonia/tucano/internal/pix"
)

var (
	// ErrUnknownKind is returned for kinds without a registered validator
	ErrUnknownKind = errors.New("unknown identifier kind")

	// ErrGenerateUnsupported is returned when a kind cannot be generated
	ErrGenerateUnsupported = errors.New("generation not supported")

	// ErrUndetected is returned when no validator accepts a value
	ErrUndetected = errors.New("value matches no identifier kind")
)

// GenerateOptions tunes generated values. Zero values pick random or default choices.
type GenerateOptions struct {
	Formatted   bool
	AreaCode    string
	PhoneType   model.PhoneType
	PlateFormat model.PlateFormat
	Branch      int
}

// Validator bundles the operations of one kind. Generate may be nil.
type Validator struct {
	Kind     model.Kind
	Check    func(raw string) error
	Format   func(raw string) (string, error)
	Generate func(opts GenerateOptions) (string, error)
}

// Registry holds validators in detection order
type Registry struct {
	validators []Validator
}

// NewRegistry creates a registry with every built-in kind.
// Order matters for Detect: CPF wins over an 11-digit phone, PIX is last
// since it accepts CPF, CNPJ and phone shapes too.
func NewRegistry() *Registry {
	return &Registry{
		validators: []Validator{
			{Kind: model.KindCPF, Check: checksum.CheckCPF, Format: checksum.FormatCPF, Generate: generateCPF},
			{Kind: model.KindCNPJ, Check: checksum.CheckCNPJ, Format: checksum.FormatCNPJ, Generate: generateCNPJ},
			{Kind: model.KindCEP, Check: pattern.CheckCEP, Format: pattern.FormatCEP},
			{Kind: model.KindPhone, Check: checkPhone, Format: pattern.FormatPhone, Generate: generatePhone},
			{Kind: model.KindPlate, Check: checkPlate, Format: pattern.FormatPlate, Generate: generatePlate},
			{Kind: model.KindPix, Check: checkPix, Format: formatPix, Generate: generatePix},
		},
	}
}

// Register adds a custom validator with the highest priority
func (r *Registry) Register(v Validator) {
	r.validators = append([]Validator{v}, r.validators...)
}

// Get returns the validator of kind
func (r *Registry) Get(kind model.Kind) (Validator, bool) {
	for _, v := range r.validators {
		if v.Kind == kind {
			return v, true
		}
	}
	return Validator{}, false
}

// Kinds lists registered kinds in detection order
func (r *Registry) Kinds() []model.Kind {
	kinds := make([]model.Kind, 0, len(r.validators))
	for _, v := range r.validators {
		kinds = append(kinds, v.Kind)
	}
	return kinds
}

// Detect returns the first validator accepting raw
func (r *Registry) Detect(raw string) (Validator, error) {
	for _, v := range r.validators {
		if v.Check(raw) == nil {
			return v, nil
		}
	}
	return Validator{}, fmt.Errorf("%w: %q", ErrUndetected, raw)
}

// Check validates raw as kind
func (r *Registry) Check(kind model.Kind, raw string) error {
	v, err := r.lookup(kind)
	if err != nil {
		return err
	}
	return v.Check(raw)
}

// Format renders raw in the display form of kind
func (r *Registry) Format(kind model.Kind, raw string) (string, error) {
	v, err := r.lookup(kind)
	if err != nil {
		return "", err
	}
	return v.Format(raw)
}

// Generate returns a random valid value of kind
func (r *Registry) Generate(kind model.Kind, opts GenerateOptions) (string, error) {
	v, err := r.lookup(kind)
	if err != nil {
		return "", err
	}
	if v.Generate == nil {
		return "", fmt.Errorf("%w: %s", ErrGenerateUnsupported, kind)
	}
	return v.Generate(opts)
}

func (r *Registry) lookup(kind model.Kind) (Validator, error) {
	v, ok := r.Get(kind)
	if !ok {
		return Validator{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return v, nil
}

func checkPhone(raw string) error {
	_, err := pattern.ParsePhone(raw)
	return err
}

func checkPlate(raw string) error {
	_, err := pattern.ParsePlate(raw)
	return err
}

func checkPix(raw string) error {
	_, err := pix.Classify(raw)
	return err
}

func formatPix(raw string) (string, error) {
	key, err := pix.Classify(raw)
	if err != nil {
		return "", err
	}
	return pix.Format(key), nil
}

func generateCPF(opts GenerateOptions) (string, error) {
	if opts.Formatted {
		return checksum.GenerateCPFFormatted(), nil
	}
	return checksum.GenerateCPF(), nil
}

func generateCNPJ(opts GenerateOptions) (string, error) {
	branch := opts.Branch
	if branch == 0 {
		branch = checksum.HeadquartersBranch
	}
	cnpj, err := checksum.GenerateCNPJBranch(branch)
	if err != nil || !opts.Formatted {
		return cnpj, err
	}
	return checksum.FormatCNPJ(cnpj)
}

func generatePhone(opts GenerateOptions) (string, error) {
	areaCode := opts.AreaCode
	if areaCode == "" {
		codes := pattern.AreaCodes()
		areaCode = codes[rand.IntN(len(codes))]
	}
	phoneType := opts.PhoneType
	if phoneType == "" {
		phoneType = model.PhoneMobile
	}
	phone, err := pattern.GeneratePhone(phoneType, areaCode)
	if err != nil || !opts.Formatted {
		return phone, err
	}
	return pattern.FormatPhone(phone)
}

func generatePlate(opts GenerateOptions) (string, error) {
	format := opts.PlateFormat
	if format == "" {
		format = model.PlateMercosul
	}
	plate, err := pattern.GeneratePlate(format)
	if err != nil || !opts.Formatted {
		return plate, err
	}
	return pattern.FormatPlate(plate)
}

func generatePix(GenerateOptions) (string, error) {
	return pix.GenerateRandom(), nil
}
