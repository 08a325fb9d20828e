package openfinance

import (
	"context"
	"strings"
	"time"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
	"github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/ofclient"
	"github.com/vfg2006/open-finance-api/internal/config"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/pkg/log"
)

// OpenFinanceIntegrator converte os payloads das instituições para o domínio.
// Investimentos e vitrine são consumidos em agregações best-effort: qualquer falha vira lista vazia.
type OpenFinanceIntegrator interface {
	FindCustomer(ctx context.Context, baseURL, cpf string) (*domain.ExternalCustomer, error)
	CreateConsent(ctx context.Context, baseURL, customerID string) (*domain.Consent, error)
	DiscoverAccounts(ctx context.Context, baseURL, customerID string) ([]domain.ExternalAccount, error)
	GetBalance(ctx context.Context, baseURL, accountID string) (*domain.Balance, error)
	GetTransactions(ctx context.Context, baseURL, accountID string) ([]*domain.Transaction, error)
	GetInvestments(ctx context.Context, baseURL, accountID string) []*domain.Position
	GetProducts(ctx context.Context, baseURL string) []*domain.Product
}

type OpenFinanceService struct {
	cfg    *config.Config
	Client ofclient.Client
}

func New(cfg *config.Config, client ofclient.Client) OpenFinanceIntegrator {
	return &OpenFinanceService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *OpenFinanceService) FindCustomer(ctx context.Context, baseURL, cpf string) (*domain.ExternalCustomer, error) {
	customer, err := s.Client.FindCustomerByCPF(ctx, baseURL, cpf)
	if err != nil {
		return nil, err
	}

	return &domain.ExternalCustomer{
		ID:   customer.ID,
		Name: customer.Name,
		CPF:  customer.CPF,
	}, nil
}

func (s *OpenFinanceService) CreateConsent(ctx context.Context, baseURL, customerID string) (*domain.Consent, error) {
	consent, err := s.Client.CreateConsent(ctx, baseURL, customerID, s.cfg.Gateway.ConsentPermissions)
	if err != nil {
		return nil, err
	}

	return &domain.Consent{
		ID:          consent.ID,
		CustomerID:  customerID,
		Permissions: consent.Permissions,
		Status:      consent.Status,
	}, nil
}

func (s *OpenFinanceService) DiscoverAccounts(ctx context.Context, baseURL, customerID string) ([]domain.ExternalAccount, error) {
	accounts, err := s.Client.DiscoverAccounts(ctx, baseURL, customerID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ExternalAccount, 0, len(accounts))
	for _, account := range accounts {
		if account.ID == "" {
			log.ForContext(ctx).WithField("institution", baseURL).Warn("Conta sem identificador ignorada")
			continue
		}

		result = append(result, domain.ExternalAccount{
			ID:       account.ID,
			Type:     FactoryAccountType(account.Type),
			Balance:  account.Balance.Float64(),
			Currency: currencyOrDefault(account.Currency),
		})
	}

	return result, nil
}

func (s *OpenFinanceService) GetBalance(ctx context.Context, baseURL, accountID string) (*domain.Balance, error) {
	balance, err := s.Client.GetBalance(ctx, baseURL, accountID)
	if err != nil {
		return nil, err
	}

	return &domain.Balance{
		AccountID: balance.AccountID,
		Amount:    balance.Balance.Float64(),
		Currency:  currencyOrDefault(balance.Currency),
	}, nil
}

func (s *OpenFinanceService) GetTransactions(ctx context.Context, baseURL, accountID string) ([]*domain.Transaction, error) {
	transactions, err := s.Client.GetTransactions(ctx, baseURL, accountID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		accID := tx.AccountID
		if accID == "" {
			accID = accountID
		}

		result = append(result, &domain.Transaction{
			ID:          tx.ID,
			AccountID:   accID,
			Date:        parseDate(tx.Date),
			Description: tx.Description,
			Amount:      tx.Amount.Float64(),
			Type:        tx.Type,
			Category:    tx.Category,
		})
	}

	return result, nil
}

func (s *OpenFinanceService) GetInvestments(ctx context.Context, baseURL, accountID string) []*domain.Position {
	investments, err := s.Client.GetInvestments(ctx, baseURL, accountID)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"institution": baseURL,
			"account_id":  accountID,
			"error":       err.Error(),
		}).Warn("Investimentos indisponíveis, seguindo com lista vazia")
		return []*domain.Position{}
	}

	positions := make([]*domain.Position, 0, len(investments))
	for _, inv := range investments {
		position := &domain.Position{
			ID:             inv.ID,
			InvestedAmount: inv.InvestedAmount.Float64(),
			Quantity:       inv.Quantity.Float64(),
			PurchaseDate:   parseDate(inv.PurchaseDate),
		}
		if inv.Product.Product != nil {
			position.Product = FactoryProduct(inv.Product.Product)
		}
		positions = append(positions, position)
	}

	return positions
}

func (s *OpenFinanceService) GetProducts(ctx context.Context, baseURL string) []*domain.Product {
	products, err := s.Client.GetProducts(ctx, baseURL)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"institution": baseURL,
			"error":       err.Error(),
		}).Warn("Vitrine indisponível, seguindo com lista vazia")
		return []*domain.Product{}
	}

	result := make([]*domain.Product, 0, len(products))
	for i := range products {
		result = append(result, FactoryProduct(&products[i]))
	}

	return result
}

// FactoryProduct normaliza o produto da instituição; tipos desconhecidos viram OTHERS
func FactoryProduct(p *ofdomain.Product) *domain.Product {
	return &domain.Product{
		ID:            p.Identifier(),
		Name:          strings.TrimSpace(p.Name),
		Type:          domain.ParseProductType(p.RawType()),
		Ticker:        p.Ticker,
		RateType:      strings.ToUpper(strings.TrimSpace(p.RateType)),
		RateValue:     p.RateValue.Float64(),
		CouponRate:    p.CouponRate.Float64(),
		AdminFee:      p.AdminFee.Float64(),
		RiskLevel:     p.RiskLevel,
		Liquidity:     p.Liquidity,
		MinInvestment: p.MinInvestment.Float64(),
		Institution:   p.Institution,
	}
}

func FactoryAccountType(raw string) domain.AccountType {
	return domain.AccountType(strings.ToLower(strings.TrimSpace(raw)))
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return domain.DefaultCurrency
	}
	return currency
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
