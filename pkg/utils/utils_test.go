package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCPF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{name: "CPF com pontuação", input: "123.456.789-09", want: "12345678909", valid: true},
		{name: "CPF só com dígitos", input: "12345678909", want: "12345678909", valid: true},
		{name: "CPF com espaços", input: " 123 456 789 09 ", want: "12345678909", valid: true},
		{name: "CPF curto", input: "1234", want: "1234", valid: false},
		{name: "Vazio", input: "", want: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCPF(tt.input))
			assert.Equal(t, tt.valid, IsValidCPF(tt.input))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(10, 0))
	assert.InDelta(t, 25.0, Percent(25, 100), 0.0001)
}

func TestGenerateID(t *testing.T) {
	first, err := GenerateID()
	require.NoError(t, err)
	second, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, first, idLength)
	assert.NotEqual(t, first, second)
}
