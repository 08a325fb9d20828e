package account

import (
	"context"
	"errors"
	"sync"

	"github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance"
	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
	"github.com/vfg2006/open-finance-api/infrastructure/repository"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/internal/usecases/classifying"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
	"github.com/vfg2006/open-finance-api/pkg/log"
	"github.com/vfg2006/open-finance-api/pkg/utils"
)

const (
	balanceUnavailableMessage = "Não foi possível buscar o saldo. (Consentimento pode ter expirado)"
	unknownInvestmentName     = "Investimento não identificado"
	consentDeniedFallback     = "Consentimento inválido ou expirado."
)

// RatesProvider devolve nil enquanto nenhuma taxa foi obtida
type RatesProvider interface {
	GetRates(ctx context.Context) *domain.MarketRates
}

type AccountService interface {
	ListAccounts(ctx context.Context, userID int) ([]*domain.LocalAccount, error)
	GetConsolidatedBalances(ctx context.Context, userID int) ([]*domain.ConsolidatedAccount, error)
	GetTransactions(ctx context.Context, userID int, accountID string) ([]*domain.Transaction, error)
	GetInvestments(ctx context.Context, userID int) (*domain.InvestmentsReport, error)
}

type Service struct {
	accountRepository     repository.AccountRepository
	institutionRepository repository.InstitutionRepository
	integrator            openfinance.OpenFinanceIntegrator
	rates                 RatesProvider
}

func NewService(
	accountRepository repository.AccountRepository,
	institutionRepository repository.InstitutionRepository,
	integrator openfinance.OpenFinanceIntegrator,
	rates RatesProvider,
) AccountService {
	return &Service{
		accountRepository:     accountRepository,
		institutionRepository: institutionRepository,
		integrator:            integrator,
		rates:                 rates,
	}
}

func (s *Service) ListAccounts(ctx context.Context, userID int) ([]*domain.LocalAccount, error) {
	accounts, err := s.accountRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}
	if accounts == nil {
		accounts = []*domain.LocalAccount{}
	}
	return accounts, nil
}

// accountsWithInstitutions carrega as contas do usuário e o índice de instituições pelo nome
func (s *Service) accountsWithInstitutions(ctx context.Context, userID int) ([]*domain.LocalAccount, domain.InstitutionIndex, error) {
	accounts, err := s.ListAccounts(ctx, userID)
	if err != nil || len(accounts) == 0 {
		return accounts, nil, err
	}

	institutions, err := s.institutionRepository.List(ctx)
	if err != nil {
		return nil, nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar instituições")
	}

	return accounts, domain.NewInstitutionIndex(institutions), nil
}

// GetConsolidatedBalances consulta o saldo de cada conta; a falha de uma conta vira uma entrada com erro
func (s *Service) GetConsolidatedBalances(ctx context.Context, userID int) ([]*domain.ConsolidatedAccount, error) {
	accounts, index, err := s.accountsWithInstitutions(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.ConsolidatedAccount, len(accounts))

	var wg sync.WaitGroup
	for i, account := range accounts {
		institution, ok := index[account.InstitutionName]
		if !ok {
			continue
		}

		wg.Add(1)
		go func(i int, account *domain.LocalAccount, baseURL string) {
			defer wg.Done()
			defer log.RecoverBranch(ctx, account.InstitutionName)

			entry := &domain.ConsolidatedAccount{
				LocalID:           account.ID,
				Institution:       account.InstitutionName,
				Type:              account.AccountType,
				ExternalAccountID: account.ExternalAccountID,
			}

			balance, err := s.integrator.GetBalance(ctx, baseURL, account.ExternalAccountID)
			if err != nil {
				log.ForContext(ctx).WithError(err).WithFields(log.Fields{
					"account_id":  account.ID,
					"institution": account.InstitutionName,
				}).Warn("Falha ao buscar saldo da conta")
				entry.Error = balanceUnavailableMessage
			} else {
				amount := balance.Amount
				entry.Balance = &amount
			}

			entries[i] = entry
		}(i, account, institution.BaseURL)
	}
	wg.Wait()

	out := make([]*domain.ConsolidatedAccount, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID int, accountID string) ([]*domain.Transaction, error) {
	if accountID == "" {
		return nil, NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório")
	}

	account, err := s.accountRepository.GetByID(ctx, accountID)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao buscar conta")
	}
	// Conta de outro usuário e conta inexistente têm a mesma resposta
	if account == nil || account.UserID != userID {
		return nil, NewAccountErrorWithID(ErrAccessDenied, apiErrors.ErrAccountAccessDenied, accountID, "Acesso negado a esta conta.")
	}

	institution, err := s.institutionRepository.GetByName(ctx, account.InstitutionName)
	if err != nil {
		return nil, NewAccountErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, accountID, "Falha ao buscar instituição")
	}
	if institution == nil || institution.BaseURL == "" {
		return nil, NewAccountErrorWithID(ErrInstitutionNotFound, apiErrors.ErrInstitutionNotFound, accountID, "Instituição não encontrada.")
	}

	transactions, err := s.integrator.GetTransactions(ctx, institution.BaseURL, account.ExternalAccountID)
	if err != nil {
		return nil, transactionsFailure(accountID, err)
	}
	if transactions == nil {
		transactions = []*domain.Transaction{}
	}
	return transactions, nil
}

func transactionsFailure(accountID string, err error) *AccountError {
	if ofdomain.IsForbidden(err) {
		details := consentDeniedFallback
		var gwErr *ofdomain.GatewayError
		if errors.As(err, &gwErr) && gwErr.Message != "" {
			details = gwErr.Message
		}
		return &AccountError{
			Err:       errors.Join(ErrConsentDenied, err),
			Code:      apiErrors.ErrConsentDenied,
			AccountID: accountID,
			Details:   details,
		}
	}

	code := apiErrors.ErrExternalService
	if ofdomain.IsTransient(err) {
		code = apiErrors.ErrCommunication
	}
	return &AccountError{
		Err:       errors.Join(ErrFetchTransactions, err),
		Code:      code,
		AccountID: accountID,
		Details:   "Falha ao buscar transações.",
	}
}

// GetInvestments consolida as posições de todas as contas com o lucro anual estimado
func (s *Service) GetInvestments(ctx context.Context, userID int) (*domain.InvestmentsReport, error) {
	report := &domain.InvestmentsReport{Investments: []*domain.InvestmentView{}}

	accounts, index, err := s.accountsWithInstitutions(ctx, userID)
	if err != nil {
		return nil, err
	}

	benchmark := classifying.DefaultBenchmarkPercent
	if rates := s.rates.GetRates(ctx); rates != nil {
		benchmark = rates.Selic
	}

	views := make([][]*domain.InvestmentView, len(accounts))

	var wg sync.WaitGroup
	for i, account := range accounts {
		institution, ok := index[account.InstitutionName]
		if !ok || account.ExternalAccountID == "" {
			continue
		}

		wg.Add(1)
		go func(i int, account *domain.LocalAccount, baseURL string) {
			defer wg.Done()
			defer log.RecoverBranch(ctx, account.InstitutionName)

			positions := s.integrator.GetInvestments(ctx, baseURL, account.ExternalAccountID)
			for _, pos := range positions {
				if pos != nil {
					views[i] = append(views[i], investmentView(pos, account, benchmark))
				}
			}
		}(i, account, institution.BaseURL)
	}
	wg.Wait()

	for _, accountViews := range views {
		for _, view := range accountViews {
			report.Investments = append(report.Investments, view)
			report.Summary.TotalInvested += view.InvestedAmount
			report.Summary.TotalProfit += view.EstimatedProfit
		}
	}

	report.TotalItems = len(report.Investments)
	report.Summary.TotalProfitPercent = utils.RoundWithTwoDecimalPlace(utils.Percent(report.Summary.TotalProfit, report.Summary.TotalInvested))
	report.Summary.TotalInvested = utils.RoundWithTwoDecimalPlace(report.Summary.TotalInvested)
	report.Summary.TotalProfit = utils.RoundWithTwoDecimalPlace(report.Summary.TotalProfit)

	return report, nil
}

func investmentView(pos *domain.Position, account *domain.LocalAccount, benchmark float64) *domain.InvestmentView {
	product := domain.Product{Name: unknownInvestmentName, Type: domain.ProductTypeOthers}
	if pos.Product != nil {
		product = *pos.Product
		if product.Name == "" {
			product.Name = unknownInvestmentName
		}
		if product.Type == "" {
			product.Type = domain.ProductTypeOthers
		}
	}

	annual := classifying.Classify(product).AnnualReturn(benchmark)

	view := &domain.InvestmentView{
		ID:                pos.ID,
		Name:              product.Name,
		Type:              product.Type,
		Ticker:            product.Ticker,
		RateType:          product.RateType,
		RateValue:         product.RateValue,
		InvestedAmount:    pos.InvestedAmount,
		Quantity:          pos.Quantity,
		SourceInstitution: account.InstitutionName,
		LocalAccountID:    account.ID,
		EstimatedProfit:   utils.RoundWithTwoDecimalPlace(pos.InvestedAmount * annual / 100),
	}
	if pos.PurchaseDate != nil {
		view.PurchaseDate = pos.PurchaseDate.Format("2006-01-02")
	}
	return view
}
