package domain

import (
	"strings"
	"time"
)

// ProductType é a variante normalizada do tipo de produto informado pela instituição
type ProductType string

const (
	ProductTypeCDB      ProductType = "CDB"
	ProductTypeStock    ProductType = "STOCK"
	ProductTypeFII      ProductType = "FII"
	ProductTypeCrypto   ProductType = "CRYPTO"
	ProductTypeTreasury ProductType = "TREASURY"
	ProductTypeFunds    ProductType = "FUNDS"
	ProductTypeOthers   ProductType = "OTHERS"
)

var knownProductTypes = map[string]ProductType{
	"CDB":      ProductTypeCDB,
	"STOCK":    ProductTypeStock,
	"FII":      ProductTypeFII,
	"CRYPTO":   ProductTypeCrypto,
	"TREASURY": ProductTypeTreasury,
	"FUNDS":    ProductTypeFunds,
}

// ParseProductType nunca falha: tipos desconhecidos ou vazios viram OTHERS
func ParseProductType(raw string) ProductType {
	if t, ok := knownProductTypes[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return t
	}
	return ProductTypeOthers
}

const RateTypeCDI = "CDI"

type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          ProductType `json:"product_type"`
	Ticker        string      `json:"ticker,omitempty"`
	RateType      string      `json:"rate_type,omitempty"`
	RateValue     float64     `json:"rate_value"`
	CouponRate    float64     `json:"coupon_rate"`
	AdminFee      float64     `json:"admin_fee"`
	RiskLevel     string      `json:"risk_level,omitempty"`
	Liquidity     string      `json:"liquidity,omitempty"`
	MinInvestment float64     `json:"min_investment"`
	Institution   string      `json:"institution,omitempty"`
}

// IsIndexedToCDI indica renda fixa atrelada ao CDI
func (p *Product) IsIndexedToCDI() bool {
	return strings.EqualFold(p.RateType, RateTypeCDI)
}

// Position é um ativo dentro de uma conta de investimento; Product nulo quando não resolvido
type Position struct {
	ID             string     `json:"id"`
	InvestedAmount float64    `json:"invested_amount"`
	Quantity       float64    `json:"quantity"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	Product        *Product   `json:"product"`
}
