package ofdomain

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Product struct {
	ID            string `json:"_id"`
	AltID         string `json:"id"`
	Name          string `json:"name"`
	ProductType   string `json:"productType"`
	Type          string `json:"type"`
	Ticker        string `json:"ticker"`
	RateType      string `json:"rateType"`
	RateValue     Amount `json:"rateValue"`
	CouponRate    Amount `json:"couponRate"`
	AdminFee      Amount `json:"adminFee"`
	RiskLevel     string `json:"riskLevel"`
	Liquidity     string `json:"liquidity"`
	MinInvestment Amount `json:"minInvestmentAmount"`
	Institution   string `json:"institution"`
}

// Identifier devolve o _id ou, na falta dele, o id
func (p *Product) Identifier() string {
	if p.ID != "" {
		return p.ID
	}
	return p.AltID
}

// RawType devolve productType ou, na falta dele, type
func (p *Product) RawType() string {
	if p.ProductType != "" {
		return p.ProductType
	}
	return p.Type
}

// ProductRef é o campo productId das posições: pode vir populado (objeto) ou apenas como id
type ProductRef struct {
	ID      string
	Product *Product
}

func (r *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '{' {
		var product Product
		if err := json.Unmarshal(data, &product); err != nil {
			// Produto malformado fica sem resolução
			return nil
		}
		r.Product = &product
		r.ID = product.Identifier()
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
	}
	return nil
}

type Investment struct {
	ID             string     `json:"_id"`
	Product        ProductRef `json:"productId"`
	InvestedAmount Amount     `json:"investedAmount"`
	Quantity       Amount     `json:"quantity"`
	PurchaseDate   string     `json:"purchaseDate"`
}
