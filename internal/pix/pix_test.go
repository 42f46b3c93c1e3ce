package pix_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
	"github.com/rezonia/tucano/internal/pix"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantType  model.PixKeyType
		wantValue string
	}{
		{name: "cpf digits over phone", input: "12345678909", wantType: model.PixCPF, wantValue: "12345678909"},
		{name: "cpf formatted", input: "123.456.789-09", wantType: model.PixCPF, wantValue: "12345678909"},
		{name: "cnpj", input: "11.222.333/0001-81", wantType: model.PixCNPJ, wantValue: "11222333000181"},
		{name: "email lower-cased", input: "Joao.Silva@Example.com", wantType: model.PixEmail, wantValue: "joao.silva@example.com"},
		{name: "mobile with country code", input: "+5511987654321", wantType: model.PixPhone, wantValue: "11987654321"},
		{name: "mobile without country code", input: "11987654321", wantType: model.PixPhone, wantValue: "11987654321"},
		{name: "landline formatted", input: "(11) 3333-4444", wantType: model.PixPhone, wantValue: "1133334444"},
		{name: "random", input: "123E4567-E89B-42D3-A456-426614174000", wantType: model.PixRandom, wantValue: "123e4567-e89b-42d3-a456-426614174000"},
		{name: "sanitized", input: "\u200b  joao@example.com\n", wantType: model.PixEmail, wantValue: "joao@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := pix.Classify(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, key.Type)
			assert.Equal(t, tt.wantValue, key.Value)
		})
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	inputs := []string{
		"",
		"invalid",
		"12345678900",
		"00987654321",
		"a@b",
		"joao..silva@example.com",
		".joao@example.com",
		"123e4567e89b42d3a456426614174000",
		"+1 555 123 4567",
	}
	for _, input := range inputs {
		_, err := pix.Classify(input)
		var pixErr *model.UnrecognizedPixKeyError
		assert.True(t, errors.As(err, &pixErr), "input %q: got %v", input, err)
		assert.False(t, pix.Validate(input))
	}
}

func TestClassifyAs(t *testing.T) {
	key, err := pix.ClassifyAs(model.PixPhone, "+5511987654321")
	require.NoError(t, err)
	assert.Equal(t, "11987654321", key.Value)

	_, err = pix.ClassifyAs(model.PixEmail, "12345678909")
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	tests := []struct {
		key  model.PixKey
		want string
	}{
		{key: model.PixKey{Type: model.PixEmail, Value: "joao@dominio.com"}, want: "j***@dominio.com"},
		{key: model.PixKey{Type: model.PixCPF, Value: "12345678909"}, want: "***.456.789-**"},
		{key: model.PixKey{Type: model.PixCNPJ, Value: "12345678000195"}, want: "**.345.678/0001-**"},
		{key: model.PixKey{Type: model.PixPhone, Value: "11987654321"}, want: "+55 (11) *****-4321"},
		{key: model.PixKey{Type: model.PixPhone, Value: "1133334444"}, want: "+55 (11) ****-4444"},
		{key: model.PixKey{Type: model.PixRandom, Value: "123e4567-e89b-42d3-a456-426614174000"}, want: "123e****************************4000"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key.Type), func(t *testing.T) {
			assert.Equal(t, tt.want, pix.Mask(tt.key))
		})
	}
}

func TestNormalizeAndFormat(t *testing.T) {
	phone := model.PixKey{Type: model.PixPhone, Value: "+55 (11) 98765-4321"}
	assert.Equal(t, "11987654321", pix.Normalize(phone))
	assert.Equal(t, "+5511987654321", pix.Format(phone))

	cpf := model.PixKey{Type: model.PixCPF, Value: "12345678909"}
	assert.Equal(t, "123.456.789-09", pix.Format(cpf))

	email := model.PixKey{Type: model.PixEmail, Value: "User@Example.com"}
	assert.Equal(t, "user@example.com", pix.Normalize(email))
}

func TestEqual(t *testing.T) {
	assert.True(t, pix.Equal("123.456.789-09", "12345678909"))
	assert.True(t, pix.Equal("+5511987654321", "(11) 98765-4321"))
	assert.True(t, pix.Equal("USER@example.com", "user@EXAMPLE.com"))
	assert.False(t, pix.Equal("12345678909", "11987654321"))
	assert.False(t, pix.Equal("invalid", "invalid"))
}

func TestDescribe(t *testing.T) {
	info := pix.Describe("+5511987654321")
	require.True(t, info.Valid)
	assert.Equal(t, model.PixPhone, info.Type)
	assert.Equal(t, "11", info.Extras["ddd"])
	assert.Equal(t, "SP", info.Extras["state"])
	assert.Equal(t, "mobile", info.Extras["phone_type"])

	info = pix.Describe("11.222.333/0002-62")
	require.True(t, info.Valid)
	assert.Equal(t, "false", info.Extras["headquarters"])
	assert.Equal(t, "2", info.Extras["branch"])
	assert.Equal(t, "**.222.333/0002-**", info.Masked)

	info = pix.Describe("nope")
	assert.False(t, info.Valid)
}

func TestValidateBatch(t *testing.T) {
	results := pix.ValidateBatch([]string{"123.456.789-09", "invalid", "user@example.com"})
	require.Len(t, results, 3)

	assert.True(t, results[0].Valid)
	assert.Equal(t, model.PixCPF, results[0].Type)
	assert.False(t, results[1].Valid)
	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, model.PixEmail, results[2].Type)
}

func TestGenerate(t *testing.T) {
	id, err := uuid.Parse(pix.GenerateRandom())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())

	keys := pix.TestKeys(3)
	for keyType, values := range keys {
		require.Len(t, values, 3, keyType)
		for _, v := range values {
			key, err := pix.Classify(v)
			require.NoError(t, err, v)
			assert.Equal(t, keyType, key.Type, v)
		}
	}
	for _, v := range keys[model.PixCPF] {
		assert.True(t, checksum.ValidateCPF(v))
	}
}
