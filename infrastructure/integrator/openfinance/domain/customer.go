package ofdomain

type Customer struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

type ConsentRequest struct {
	CustomerID  string   `json:"customerId"`
	Permissions []string `json:"permissions"`
}

type Consent struct {
	ID          string   `json:"_id"`
	CustomerID  string   `json:"customerId"`
	Permissions []string `json:"permissions"`
	Status      string   `json:"status"`
}
