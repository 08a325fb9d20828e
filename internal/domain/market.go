package domain

import "time"

// MarketRates guarda os benchmarks anuais em percentual
type MarketRates struct {
	Selic     float64   `json:"selic"`
	CDI       float64   `json:"cdi"`
	FetchedAt time.Time `json:"fetched_at"`
}
