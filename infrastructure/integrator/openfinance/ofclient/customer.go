package ofclient

import (
	"context"
	"net/http"
	"net/url"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
)

const opFindCustomer = "find_customer_by_cpf"

// FindCustomerByCPF resolve o cliente da instituição pelo CPF.
// 404 ou mensagem contendo "not found" resultam em erro do tipo NotFound.
func (c *OpenFinanceClient) FindCustomerByCPF(ctx context.Context, baseURL, cpf string) (*ofdomain.Customer, error) {
	var customer ofdomain.Customer

	path := "/customers/lookup/by-cpf/" + url.PathEscape(cpf)
	if err := c.do(ctx, opFindCustomer, http.MethodGet, baseURL, path, nil, &customer); err != nil {
		return nil, err
	}

	if customer.ID == "" {
		return nil, ofdomain.NewHTTPError(opFindCustomer, baseURL, http.StatusNotFound, "customer not found")
	}

	return &customer, nil
}
