package domain

type SuggestionType string

const (
	SuggestionWarning     SuggestionType = "WARNING"
	SuggestionOpportunity SuggestionType = "OPPORTUNITY"
	SuggestionAlert       SuggestionType = "ALERT"
)

// Suggestion é ordenada por Rank crescente: menor rank, maior prioridade
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Rank    int            `json:"score"`
}

// AllocationSavings é o bucket das contas poupança; os demais seguem ProductType
const AllocationSavings = "POUPANCA"

// AllocationBuckets lista todos os buckets, sempre presentes no dashboard
var AllocationBuckets = []string{
	AllocationSavings,
	string(ProductTypeCDB),
	string(ProductTypeStock),
	string(ProductTypeFII),
	string(ProductTypeCrypto),
	string(ProductTypeTreasury),
	string(ProductTypeFunds),
	string(ProductTypeOthers),
}

type Summary struct {
	TotalBalance          float64 `json:"total_balance"`
	TotalInvested         float64 `json:"total_invested"`
	GrandTotal            float64 `json:"grand_total"`
	EstimatedAnnualReturn float64 `json:"estimated_annual_return"`
}

type Opportunities struct {
	FixedIncome []*Product `json:"fixed_income"`
	Treasury    []*Product `json:"treasury"`
	Funds       []*Product `json:"funds"`
	Stocks      []*Product `json:"stocks"`
	FIIs        []*Product `json:"fiis"`
	Crypto      []*Product `json:"crypto"`
}

// IsEmpty indica que nenhuma categoria tem oportunidades
func (o Opportunities) IsEmpty() bool {
	return len(o.FixedIncome)+len(o.Treasury)+len(o.Funds)+len(o.Stocks)+len(o.FIIs)+len(o.Crypto) == 0
}

type Dashboard struct {
	Summary       Summary            `json:"summary"`
	Allocation    map[string]float64 `json:"allocation"`
	Suggestions   []Suggestion       `json:"suggestions"`
	Opportunities Opportunities      `json:"opportunities"`
	MarketRates   *MarketRates       `json:"market_rates"`
}

// NewDashboard cria um dashboard com todos os buckets zerados
func NewDashboard() *Dashboard {
	allocation := make(map[string]float64, len(AllocationBuckets))
	for _, bucket := range AllocationBuckets {
		allocation[bucket] = 0
	}

	return &Dashboard{
		Allocation:  allocation,
		Suggestions: []Suggestion{},
		Opportunities: Opportunities{
			FixedIncome: []*Product{},
			Treasury:    []*Product{},
			Funds:       []*Product{},
			Stocks:      []*Product{},
			FIIs:        []*Product{},
			Crypto:      []*Product{},
		},
	}
}
