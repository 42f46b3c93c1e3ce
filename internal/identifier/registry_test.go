package identifier_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/identifier"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pattern"
)

func TestRegistry_Kinds(t *testing.T) {
	r := identifier.NewRegistry()

	assert.Equal(t, []model.Kind{
		model.KindCPF, model.KindCNPJ, model.KindCEP,
		model.KindPhone, model.KindPlate, model.KindPix,
	}, r.Kinds())
}

func TestRegistry_Check(t *testing.T) {
	r := identifier.NewRegistry()

	tests := []struct {
		kind    model.Kind
		raw     string
		wantErr bool
	}{
		{model.KindCPF, "529.982.247-25", false},
		{model.KindCPF, "529.982.247-26", true},
		{model.KindCNPJ, "11.222.333/0001-81", false},
		{model.KindCEP, "01001-000", false},
		{model.KindCEP, "00000-000", true},
		{model.KindPhone, "(11) 98765-4321", false},
		{model.KindPhone, "(00) 98765-4321", true},
		{model.KindPlate, "ABC1D23", false},
		{model.KindPlate, "ABC123", true},
		{model.KindPix, "user@example.com", false},
		{model.KindPix, "not a key", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.raw, func(t *testing.T) {
			err := r.Check(tt.kind, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, model.IsInputError(err), "got %T", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	r := identifier.NewRegistry()

	err := r.Check(model.KindBank, "001")
	assert.True(t, errors.Is(err, identifier.ErrUnknownKind))

	_, err = r.Format(model.Kind("rg"), "123")
	assert.True(t, errors.Is(err, identifier.ErrUnknownKind))
}

func TestRegistry_Format(t *testing.T) {
	r := identifier.NewRegistry()

	tests := []struct {
		kind model.Kind
		raw  string
		want string
	}{
		{model.KindCPF, "52998224725", "529.982.247-25"},
		{model.KindCNPJ, "11222333000181", "11.222.333/0001-81"},
		{model.KindCEP, "01001000", "01001-000"},
		{model.KindPhone, "11987654321", "(11) 98765-4321"},
		{model.KindPlate, "abc1234", "ABC-1234"},
		{model.KindPix, "529.982.247-25", "529.982.247-25"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := r.Format(tt.kind, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Detect(t *testing.T) {
	r := identifier.NewRegistry()

	tests := []struct {
		raw  string
		want model.Kind
	}{
		{"529.982.247-25", model.KindCPF},
		{"11.222.333/0001-81", model.KindCNPJ},
		{"01001-000", model.KindCEP},
		{"(11) 3333-4444", model.KindPhone},
		{"ABC-1234", model.KindPlate},
		{"User@Example.com", model.KindPix},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := r.Detect(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Kind)
		})
	}

	_, err := r.Detect("???")
	assert.True(t, errors.Is(err, identifier.ErrUndetected))
}

func TestRegistry_Register(t *testing.T) {
	r := identifier.NewRegistry()
	r.Register(identifier.Validator{
		Kind:   model.Kind("upper"),
		Check:  func(raw string) error { return nil },
		Format: func(raw string) (string, error) { return raw, nil },
	})

	v, err := r.Detect("anything")
	require.NoError(t, err)
	assert.Equal(t, model.Kind("upper"), v.Kind)

	_, err = r.Generate(model.Kind("upper"), identifier.GenerateOptions{})
	assert.True(t, errors.Is(err, identifier.ErrGenerateUnsupported))
}

func TestRegistry_Generate(t *testing.T) {
	r := identifier.NewRegistry()

	for i := 0; i < 50; i++ {
		cpf, err := r.Generate(model.KindCPF, identifier.GenerateOptions{})
		require.NoError(t, err)
		assert.True(t, checksum.ValidateCPF(cpf), cpf)

		cnpj, err := r.Generate(model.KindCNPJ, identifier.GenerateOptions{Formatted: true, Branch: 7})
		require.NoError(t, err)
		assert.True(t, checksum.ValidateCNPJ(cnpj), cnpj)
		branch, err := checksum.BranchNumber(cnpj)
		require.NoError(t, err)
		assert.Equal(t, 7, branch)

		phone, err := r.Generate(model.KindPhone, identifier.GenerateOptions{})
		require.NoError(t, err)
		parsed, err := pattern.ParsePhone(phone)
		require.NoError(t, err)
		assert.Equal(t, model.PhoneMobile, parsed.Type)

		plate, err := r.Generate(model.KindPlate, identifier.GenerateOptions{PlateFormat: model.PlateLegacy, Formatted: true})
		require.NoError(t, err)
		assert.Len(t, plate, 8)
		assert.True(t, pattern.ValidatePlate(plate), plate)
	}

	landline, err := r.Generate(model.KindPhone, identifier.GenerateOptions{AreaCode: "21", PhoneType: model.PhoneLandline, Formatted: true})
	require.NoError(t, err)
	assert.Regexp(t, `^\(21\) [2-5]\d{3}-\d{4}$`, landline)

	_, err = r.Generate(model.KindCEP, identifier.GenerateOptions{})
	assert.True(t, errors.Is(err, identifier.ErrGenerateUnsupported))

	_, err = r.Generate(model.KindPhone, identifier.GenerateOptions{AreaCode: "00"})
	var areaErr *model.UnknownAreaCodeError
	assert.True(t, errors.As(err, &areaErr))

	key, err := r.Generate(model.KindPix, identifier.GenerateOptions{})
	require.NoError(t, err)
	assert.Len(t, key, 36)
}
