package domain

import "time"

type AccountType string

const (
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeChecking   AccountType = "checking"
)

const DefaultCurrency = "BRL"

// LocalAccount é o espelho local de uma conta externa.
// A chave de reconciliação é (InstitutionName, ExternalAccountID).
type LocalAccount struct {
	ID                 string      `json:"id"`
	UserID             int         `json:"user_id"`
	InstitutionName    string      `json:"institution_name"`
	AccountType        AccountType `json:"account_type"`
	Balance            float64     `json:"balance"`
	Currency           string      `json:"currency"`
	ExternalCustomerID string      `json:"if_customer_id"`
	ExternalAccountID  string      `json:"if_account_id"`
	DeletedAt          *time.Time  `json:"-"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// ExternalCustomer é resolvido pelo CPF em cada instituição; apenas o ID é guardado
type ExternalCustomer struct {
	ID   string
	Name string
	CPF  string
}

type ExternalAccount struct {
	ID       string
	Type     AccountType
	Balance  float64
	Currency string
}

type Consent struct {
	ID          string
	CustomerID  string
	Permissions []string
	Status      string
}

type Balance struct {
	AccountID string  `json:"account_id"`
	Amount    float64 `json:"balance"`
	Currency  string  `json:"currency"`
}

type Transaction struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"account_id"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Type        string     `json:"type"`
	Category    string     `json:"category,omitempty"`
}

type ConnectStatus string

const (
	ConnectStatusConnected   ConnectStatus = "CONNECTED"
	ConnectStatusLinkRemoved ConnectStatus = "LINK_REMOVED"
)

// ConnectResult é o resultado de uma sincronização com uma instituição
type ConnectResult struct {
	Institution string          `json:"institution"`
	Status      ConnectStatus   `json:"status"`
	Message     string          `json:"message"`
	Accounts    []*LocalAccount `json:"accounts"`
	Removed     int64           `json:"removed"`
}

// ConsolidatedAccount traz o saldo ao vivo; Balance nulo indica falha na instituição
type ConsolidatedAccount struct {
	LocalID           string      `json:"local_id"`
	Institution       string      `json:"institution"`
	Type              AccountType `json:"type"`
	ExternalAccountID string      `json:"if_account_id"`
	Balance           *float64    `json:"balance"`
	Error             string      `json:"error,omitempty"`
}
