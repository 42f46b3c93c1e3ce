package decimal_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/tucano/internal/decimal"
)

func TestFromString(t *testing.T) {
	d, err := decimal.FromString("1500000.00")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.NewFromInt(1500000)))

	d, err = decimal.FromString("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = decimal.FromString("not-a-number")
	require.Error(t, err)
}

func TestParseBRL(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "R$ 10.316,00", want: "10316"},
		{input: "R$ 1.234.567,89", want: "1234567.89"},
		{input: "R$ 0,99", want: "0.99"},
		{input: "850,50", want: "850.5"},
		{input: "R$ ", wantErr: true},
		{input: "R$ abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := decimal.ParseBRL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 10.316,00", decimal.FormatBRL(dec.NewFromInt(10316)))
	assert.Equal(t, "R$ 1.234.567,89", decimal.FormatBRL(dec.RequireFromString("1234567.89")))
	assert.Equal(t, "R$ 0,50", decimal.FormatBRL(dec.RequireFromString("0.5")))
	assert.Equal(t, "R$ 100,00", decimal.FormatBRL(dec.NewFromInt(100)))
	assert.Equal(t, "-R$ 1.000,00", decimal.FormatBRL(dec.NewFromInt(-1000)))
}
