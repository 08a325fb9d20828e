package ofclient

import (
	"context"
	"net/http"
	"net/url"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
)

const (
	opGetInvestments = "get_investments"
	opGetProducts    = "get_products"
)

func (c *OpenFinanceClient) GetInvestments(ctx context.Context, baseURL, accountID string) ([]ofdomain.Investment, error) {
	var investments []ofdomain.Investment

	path := "/investments/accounts/" + url.PathEscape(accountID)
	if err := c.do(ctx, opGetInvestments, http.MethodGet, baseURL, path, nil, &investments); err != nil {
		return nil, err
	}

	return investments, nil
}

func (c *OpenFinanceClient) GetProducts(ctx context.Context, baseURL string) ([]ofdomain.Product, error) {
	var products []ofdomain.Product

	if err := c.do(ctx, opGetProducts, http.MethodGet, baseURL, "/products", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}
