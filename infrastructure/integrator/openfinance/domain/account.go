package ofdomain

type Account struct {
	ID       string `json:"_id"`
	Type     string `json:"type"`
	Balance  Amount `json:"balance"`
	Currency string `json:"currency"`
}

type Balance struct {
	AccountID string `json:"accountId"`
	Balance   Amount `json:"balance"`
	Currency  string `json:"currency"`
}

type Transaction struct {
	ID          string `json:"_id"`
	AccountID   string `json:"accountId"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
}
