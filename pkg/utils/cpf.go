package utils

import "strings"

const cpfLength = 11

// NormalizeCPF remove pontuação e qualquer caractere que não seja dígito
func NormalizeCPF(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF verifica apenas o formato: 11 dígitos após a normalização
func IsValidCPF(raw string) bool {
	return len(NormalizeCPF(raw)) == cpfLength
}
