package ofdomain

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/open-finance-api/pkg/log"
)

// Amount aceita número, string numérica ou null vindos da instituição.
// Valores que não puderem ser lidos viram zero em vez de falhar o payload inteiro.
type Amount struct {
	decimal.Decimal
}

func NewAmount(value float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(value)}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if raw == "" || raw == "null" {
		a.Decimal = decimal.Zero
		return nil
	}

	value, err := decimal.NewFromString(normalizeDecimal(raw))
	if err != nil {
		log.L.WithField("amount", raw).Warn("Valor monetário ilegível, considerando zero")
		a.Decimal = decimal.Zero
		return nil
	}

	a.Decimal = value
	return nil
}

// normalizeDecimal aceita "1.234,56", "1,234.56", "10,75" e "1.234.567".
// Quando há os dois separadores, o último é o decimal.
func normalizeDecimal(raw string) string {
	comma := strings.LastIndex(raw, ",")
	dot := strings.LastIndex(raw, ".")

	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			raw = strings.ReplaceAll(raw, ".", "")
			return strings.Replace(raw, ",", ".", 1)
		}
		return strings.ReplaceAll(raw, ",", "")
	case comma >= 0:
		if strings.Count(raw, ",") > 1 {
			return strings.ReplaceAll(raw, ",", "")
		}
		return strings.Replace(raw, ",", ".", 1)
	case dot >= 0 && strings.Count(raw, ".") > 1:
		return strings.ReplaceAll(raw, ".", "")
	}
	return raw
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a Amount) Float64() float64 {
	return a.Decimal.InexactFloat64()
}
