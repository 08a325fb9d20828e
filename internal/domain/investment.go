package domain

// InvestmentView é uma posição consolidada com o lucro anual estimado
type InvestmentView struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Type              ProductType `json:"type"`
	Ticker            string      `json:"ticker,omitempty"`
	RateType          string      `json:"rate_type,omitempty"`
	RateValue         float64     `json:"rate_value,omitempty"`
	InvestedAmount    float64     `json:"invested_amount"`
	Quantity          float64     `json:"quantity"`
	PurchaseDate      string      `json:"purchase_date,omitempty"`
	SourceInstitution string      `json:"source_institution"`
	LocalAccountID    string      `json:"local_account_id"`
	EstimatedProfit   float64     `json:"estimated_profit"`
}

type InvestmentSummary struct {
	TotalInvested      float64 `json:"total_invested"`
	TotalProfit        float64 `json:"total_profit"`
	TotalProfitPercent float64 `json:"total_profit_percent"`
}

type InvestmentsReport struct {
	TotalItems  int               `json:"total_items"`
	Investments []*InvestmentView `json:"investments"`
	Summary     InvestmentSummary `json:"summary"`
}

// CatalogProduct é um produto da vitrine já classificado
type CatalogProduct struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Institution     string      `json:"institution"`
	Category        ProductType `json:"category"`
	Risk            string      `json:"risk"`
	EstimatedReturn float64     `json:"return"`
	ReturnBasis     string      `json:"return_type"`
	Liquidity       string      `json:"liquidity"`
	MinInvestment   float64     `json:"min_investment"`
	Ticker          string      `json:"ticker,omitempty"`
}
