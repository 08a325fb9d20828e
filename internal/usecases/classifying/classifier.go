// Package classifying normaliza produtos de investimento em categoria, retorno estimado,
// liquidez e risco. Classify é total: qualquer produto gera uma classificação.
package classifying

import (
	"strings"
	"unicode"

	"github.com/vfg2006/open-finance-api/internal/domain"
)

type ReturnBasis string

const (
	// BasisIndex: retorno expresso em % do CDI
	BasisIndex ReturnBasis = "indice"
	// BasisPercent: retorno expresso em % a.a.
	BasisPercent ReturnBasis = "percentual"
)

const (
	RiskLow    = "baixo"
	RiskMedium = "médio"
	RiskHigh   = "alto"
)

const LiquidityAtMaturity = "No Vencimento"

// DefaultBenchmarkPercent é usado quando as taxas de mercado ainda não estão disponíveis
const DefaultBenchmarkPercent = 11.25

type Classification struct {
	Category               domain.ProductType `json:"category"`
	EstimatedReturnPercent float64            `json:"estimated_return"`
	ReturnBasis            ReturnBasis        `json:"return_basis"`
	Liquidity              string             `json:"liquidity"`
	Risk                   string             `json:"risk"`
}

// AnnualReturn converte o retorno para % a.a. usando o benchmark informado para produtos indexados
func (c Classification) AnnualReturn(benchmarkPercent float64) float64 {
	if c.ReturnBasis == BasisIndex {
		return c.EstimatedReturnPercent / 100 * benchmarkPercent
	}
	return c.EstimatedReturnPercent
}

var typeDefaultReturn = map[domain.ProductType]float64{
	domain.ProductTypeStock:    12.5,
	domain.ProductTypeFII:      10.8,
	domain.ProductTypeCrypto:   45.0,
	domain.ProductTypeTreasury: 11.25,
	domain.ProductTypeFunds:    13.0,
}

var defaultLiquidity = map[domain.ProductType]string{
	domain.ProductTypeTreasury: "D+1",
	domain.ProductTypeStock:    "D+2",
	domain.ProductTypeFII:      "D+2",
	domain.ProductTypeCrypto:   "Imediata",
	domain.ProductTypeFunds:    "D+30",
}

var riskAliases = map[string]string{
	"LOW":        RiskLow,
	"BAIXO":      RiskLow,
	"MEDIUM":     RiskMedium,
	"MEDIO":      RiskMedium,
	"MÉDIO":      RiskMedium,
	"HIGH":       RiskHigh,
	"ALTO":       RiskHigh,
	"AGGRESSIVE": RiskHigh,
}

// Regras por nome, avaliadas em ordem; a primeira que casar vence
type nameRule struct {
	all      []string
	any      []string
	category domain.ProductType
	ret      float64
	basis    ReturnBasis
}

var nameRules = []nameRule{
	{all: []string{"tesouro", "selic"}, category: domain.ProductTypeTreasury, ret: 11.25},
	{all: []string{"tesouro", "ipca"}, category: domain.ProductTypeTreasury, ret: 6.15},
	{all: []string{"tesouro", "prefixado"}, category: domain.ProductTypeTreasury, ret: 12.5},
	{any: []string{"tesouro"}, category: domain.ProductTypeTreasury, ret: 10.5},
	{any: []string{"bitcoin", "btc"}, category: domain.ProductTypeCrypto, ret: 145.2},
	{any: []string{"ethereum", "eth"}, category: domain.ProductTypeCrypto, ret: 85.5},
	{any: []string{"petrobras", "petr4"}, category: domain.ProductTypeStock, ret: 35.4},
	{any: []string{"vale3", "vale"}, category: domain.ProductTypeStock, ret: -12.5},
	{any: []string{"wege3", "weg"}, category: domain.ProductTypeStock, ret: 22.1},
	{any: []string{"itub4", "itau", "itaú"}, category: domain.ProductTypeStock, ret: 18.7},
	{any: []string{"hglg"}, category: domain.ProductTypeFII, ret: 9.2},
	{any: []string{"mxrf", "maxi renda"}, category: domain.ProductTypeFII, ret: 12.5},
	{any: []string{"knri"}, category: domain.ProductTypeFII, ret: 8.8},
	{any: []string{"logistica", "logística"}, category: domain.ProductTypeFII, ret: 10.1},
	{any: []string{"alaska"}, category: domain.ProductTypeFunds, ret: 15.2},
	{any: []string{"verde"}, category: domain.ProductTypeFunds, ret: 13.5},
	{any: []string{"cdb"}, category: domain.ProductTypeCDB, ret: 100, basis: BasisIndex},
}

func (r nameRule) matches(words map[string]struct{}, name string) bool {
	for _, kw := range r.all {
		if !containsKeyword(words, name, kw) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, kw := range r.any {
		if containsKeyword(words, name, kw) {
			return true
		}
	}
	return false
}

// Siglas curtas só casam como palavra inteira ("eth" não casa com "method")
var wholeWordKeywords = map[string]struct{}{
	"btc":  {},
	"eth":  {},
	"weg":  {},
	"vale": {},
}

func containsKeyword(words map[string]struct{}, name, kw string) bool {
	if _, ok := wholeWordKeywords[kw]; ok {
		_, found := words[kw]
		return found
	}
	return strings.Contains(name, kw)
}

func tokenize(name string) map[string]struct{} {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}

func matchName(name string) (nameRule, bool) {
	lower := strings.ToLower(name)
	words := tokenize(lower)
	for _, rule := range nameRules {
		if rule.matches(words, lower) {
			return rule, true
		}
	}
	return nameRule{}, false
}

// Classify aplica, em ordem: taxa explícita, padrão do tipo e heurística pelo nome
func Classify(p domain.Product) Classification {
	category := p.Type
	if category == "" {
		category = domain.ProductTypeOthers
	}

	rule, matched := matchName(p.Name)
	if category == domain.ProductTypeOthers && matched {
		category = rule.category
	}

	c := Classification{
		Category:    category,
		ReturnBasis: BasisPercent,
	}

	switch {
	case p.RateValue > 0:
		c.EstimatedReturnPercent = p.RateValue
		if p.IsIndexedToCDI() {
			c.ReturnBasis = BasisIndex
		}
	case p.Type == domain.ProductTypeTreasury && p.CouponRate > 0:
		c.EstimatedReturnPercent = p.CouponRate
	case p.Type == domain.ProductTypeCDB:
		c.EstimatedReturnPercent = 100
		c.ReturnBasis = BasisIndex
	case typeDefaultReturn[p.Type] != 0:
		c.EstimatedReturnPercent = typeDefaultReturn[p.Type]
	case matched:
		c.EstimatedReturnPercent = rule.ret
		if rule.basis != "" {
			c.ReturnBasis = rule.basis
		}
	}

	c.Liquidity = liquidity(p.Liquidity, category)
	c.Risk = risk(p.RiskLevel, category)

	return c
}

func liquidity(raw string, category domain.ProductType) string {
	raw = strings.TrimSpace(raw)
	if raw != "" && raw != "No Maturity" && raw != "N/A" {
		return raw
	}
	if l, ok := defaultLiquidity[category]; ok {
		return l
	}
	return LiquidityAtMaturity
}

func risk(raw string, category domain.ProductType) string {
	if r, ok := riskAliases[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return r
	}

	switch category {
	case domain.ProductTypeCDB, domain.ProductTypeTreasury:
		return RiskLow
	case domain.ProductTypeStock, domain.ProductTypeCrypto:
		return RiskHigh
	default:
		return RiskMedium
	}
}
