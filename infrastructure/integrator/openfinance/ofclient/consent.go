package ofclient

import (
	"context"
	"net/http"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
)

const opCreateConsent = "create_consent"

func (c *OpenFinanceClient) CreateConsent(ctx context.Context, baseURL, customerID string, permissions []string) (*ofdomain.Consent, error) {
	request := ofdomain.ConsentRequest{
		CustomerID:  customerID,
		Permissions: permissions,
	}

	var consent ofdomain.Consent
	if err := c.do(ctx, opCreateConsent, http.MethodPost, baseURL, "/consents", request, &consent); err != nil {
		return nil, err
	}

	return &consent, nil
}
