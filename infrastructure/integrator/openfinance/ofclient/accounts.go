package ofclient

import (
	"context"
	"net/http"
	"net/url"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
)

const (
	opDiscoverAccounts = "discover_accounts"
	opGetBalance       = "get_balance"
)

// DiscoverAccounts preserva o status da instituição no erro para que o chamador
// diferencie Forbidden/NotFound (renovar consentimento) das demais falhas
func (c *OpenFinanceClient) DiscoverAccounts(ctx context.Context, baseURL, customerID string) ([]ofdomain.Account, error) {
	var accounts []ofdomain.Account

	path := "/customers/" + url.PathEscape(customerID) + "/accounts"
	if err := c.do(ctx, opDiscoverAccounts, http.MethodGet, baseURL, path, nil, &accounts); err != nil {
		return nil, err
	}

	return accounts, nil
}

func (c *OpenFinanceClient) GetBalance(ctx context.Context, baseURL, accountID string) (*ofdomain.Balance, error) {
	var balance ofdomain.Balance

	path := "/accounts/" + url.PathEscape(accountID) + "/balance"
	if err := c.do(ctx, opGetBalance, http.MethodGet, baseURL, path, nil, &balance); err != nil {
		return nil, err
	}

	if balance.AccountID == "" {
		balance.AccountID = accountID
	}

	return &balance, nil
}
