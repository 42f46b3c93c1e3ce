package checksum_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tucano/internal/checksum"
	"github.com/rezonia/tucano/internal/model"
)

func TestCheckCPF(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		checksum bool
	}{
		{name: "formatted", input: "529.982.247-25"},
		{name: "digits only", input: "12345678909"},
		{name: "spaces", input: " 111 444 777 35 "},
		{name: "wrong check digit", input: "123.456.789-00", wantErr: true, checksum: true},
		{name: "second digit wrong", input: "52998224726", wantErr: true, checksum: true},
		{name: "too short", input: "1234567890", wantErr: true},
		{name: "too long", input: "123456789099", wantErr: true},
		{name: "letters", input: "123.456.789-0A", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checksum.CheckCPF(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.True(t, checksum.ValidateCPF(tt.input))
				return
			}
			require.Error(t, err)
			assert.False(t, checksum.ValidateCPF(tt.input))

			var checksumErr *model.ChecksumError
			var formatErr *model.FormatError
			if tt.checksum {
				assert.True(t, errors.As(err, &checksumErr), "expected ChecksumError, got %T", err)
			} else {
				assert.True(t, errors.As(err, &formatErr), "expected FormatError, got %T", err)
			}
		})
	}
}

func TestCheckCPF_RepeatedDigits(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		value := ""
		for i := 0; i < 11; i++ {
			value += string(d)
		}
		err := checksum.CheckCPF(value)

		var formatErr *model.FormatError
		require.True(t, errors.As(err, &formatErr), "value %s", value)
		assert.Equal(t, model.KindCPF, formatErr.Kind)
	}
}

func TestCheckCNPJ(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		checksum bool
	}{
		{name: "formatted", input: "11.222.333/0001-81"},
		{name: "digits only", input: "11444777000161"},
		{name: "branch", input: "11.222.333/0002-62"},
		{name: "wrong check digit", input: "11.222.333/0001-80", wantErr: true, checksum: true},
		{name: "too short", input: "1122233300018", wantErr: true},
		{name: "letters", input: "11.222.333/0001-8X", wantErr: true},
		{name: "repeated", input: "00.000.000/0000-00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checksum.CheckCNPJ(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.True(t, checksum.ValidateCNPJ(tt.input))
				return
			}
			require.Error(t, err)
			assert.False(t, checksum.ValidateCNPJ(tt.input))

			var checksumErr *model.ChecksumError
			assert.Equal(t, tt.checksum, errors.As(err, &checksumErr))
		})
	}
}

func TestFormat(t *testing.T) {
	cpf, err := checksum.FormatCPF("52998224725")
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", cpf)

	cpf, err = checksum.FormatCPF("529.982.247-25")
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", cpf)

	cnpj, err := checksum.FormatCNPJ("11222333000181")
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", cnpj)

	_, err = checksum.FormatCPF("123")
	var formatErr *model.FormatError
	assert.True(t, errors.As(err, &formatErr))

	_, err = checksum.FormatCNPJ("abc")
	assert.True(t, errors.As(err, &formatErr))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "12345678909", checksum.Clean("123.456.789-09"))
	assert.Equal(t, "11222333000181", checksum.Clean("11.222.333/0001-81"))
	assert.Equal(t, "", checksum.Clean("abc"))
}

func TestCheckDigits(t *testing.T) {
	digits, err := checksum.CPFCheckDigits("123.456.789")
	require.NoError(t, err)
	assert.Equal(t, "09", digits)

	digits, err = checksum.CNPJCheckDigits("112223330001")
	require.NoError(t, err)
	assert.Equal(t, "81", digits)

	_, err = checksum.CPFCheckDigits("12345678")
	assert.Error(t, err)

	_, err = checksum.CNPJCheckDigits("11222333000")
	assert.Error(t, err)
}

func TestGenerate_RoundTrip(t *testing.T) {
	for i := 0; i < 200; i++ {
		cpf := checksum.GenerateCPF()
		require.Len(t, cpf, 11)
		require.NoError(t, checksum.CheckCPF(cpf), cpf)

		cnpj := checksum.GenerateCNPJ()
		require.Len(t, cnpj, 14)
		require.NoError(t, checksum.CheckCNPJ(cnpj), cnpj)
	}

	assert.Regexp(t, `^\d{3}\.\d{3}\.\d{3}-\d{2}$`, checksum.GenerateCPFFormatted())
	assert.Regexp(t, `^\d{2}\.\d{3}\.\d{3}/0001-\d{2}$`, checksum.GenerateCNPJFormatted())
}

func TestGenerateCNPJBranch(t *testing.T) {
	cnpj, err := checksum.GenerateCNPJBranch(42)
	require.NoError(t, err)
	require.NoError(t, checksum.CheckCNPJ(cnpj))

	branch, err := checksum.BranchNumber(cnpj)
	require.NoError(t, err)
	assert.Equal(t, 42, branch)

	hq, err := checksum.IsHeadquarters(cnpj)
	require.NoError(t, err)
	assert.False(t, hq)

	for _, bad := range []int{0, -1, 10000} {
		_, err := checksum.GenerateCNPJBranch(bad)
		var formatErr *model.FormatError
		assert.True(t, errors.As(err, &formatErr), "branch %d", bad)
	}
}

func TestCNPJHelpers(t *testing.T) {
	hq, err := checksum.IsHeadquarters("11.222.333/0001-81")
	require.NoError(t, err)
	assert.True(t, hq)

	base, err := checksum.CNPJBase("11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, "11222333", base)

	_, err = checksum.IsHeadquarters("11.222.333/0001-80")
	assert.Error(t, err)
}
