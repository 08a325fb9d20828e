package ofclient

import (
	"context"
	"net/http"
	"net/url"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
)

const opGetTransactions = "get_transactions"

func (c *OpenFinanceClient) GetTransactions(ctx context.Context, baseURL, accountID string) ([]ofdomain.Transaction, error) {
	var transactions []ofdomain.Transaction

	path := "/transactions/" + url.PathEscape(accountID)
	if err := c.do(ctx, opGetTransactions, http.MethodGet, baseURL, path, nil, &transactions); err != nil {
		return nil, err
	}

	return transactions, nil
}
