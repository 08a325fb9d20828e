package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
	ofmocks "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/mocks"
	repomocks "github.com/vfg2006/open-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
)

const userID = 10

type staticRates struct {
	rates *domain.MarketRates
}

func (s staticRates) GetRates(context.Context) *domain.MarketRates { return s.rates }

var bancoA = &domain.Institution{ID: 1, Name: "Banco A", BaseURL: "http://a.local"}

func TestService_GetConsolidatedBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := repomocks.NewMockAccountRepository(ctrl)
	institutions := repomocks.NewMockInstitutionRepository(ctrl)
	integrator := ofmocks.NewMockOpenFinanceIntegrator(ctrl)

	accounts.EXPECT().ListByUser(gomock.Any(), userID).Return([]*domain.LocalAccount{
		{ID: "l1", InstitutionName: "Banco A", AccountType: domain.AccountTypeChecking, ExternalAccountID: "x1"},
		{ID: "l2", InstitutionName: "Banco A", AccountType: domain.AccountTypeSavings, ExternalAccountID: "x2"},
		{ID: "l3", InstitutionName: "Banco Sem URL", AccountType: domain.AccountTypeSavings, ExternalAccountID: "x3"},
	}, nil)
	institutions.EXPECT().List(gomock.Any()).Return([]*domain.Institution{bancoA}, nil)
	integrator.EXPECT().GetBalance(gomock.Any(), bancoA.BaseURL, "x1").Return(&domain.Balance{Amount: 150.5}, nil)
	integrator.EXPECT().GetBalance(gomock.Any(), bancoA.BaseURL, "x2").
		Return(nil, ofdomain.NewHTTPError("get_balance", bancoA.BaseURL, 403, "consent expired"))

	service := NewService(accounts, institutions, integrator, staticRates{})
	entries, err := service.GetConsolidatedBalances(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "l1", entries[0].LocalID)
	require.NotNil(t, entries[0].Balance)
	assert.InDelta(t, 150.5, *entries[0].Balance, 0.001)
	assert.Empty(t, entries[0].Error)

	assert.Equal(t, "l2", entries[1].LocalID)
	assert.Nil(t, entries[1].Balance)
	assert.Equal(t, balanceUnavailableMessage, entries[1].Error)
}

func TestService_GetConsolidatedBalancesSemContas(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := repomocks.NewMockAccountRepository(ctrl)
	institutions := repomocks.NewMockInstitutionRepository(ctrl)
	integrator := ofmocks.NewMockOpenFinanceIntegrator(ctrl)

	accounts.EXPECT().ListByUser(gomock.Any(), userID).Return(nil, nil)

	service := NewService(accounts, institutions, integrator, staticRates{})
	entries, err := service.GetConsolidatedBalances(context.Background(), userID)

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestService_GetTransactions(t *testing.T) {
	tests := []struct {
		name      string
		accountID string
		setup     func(accounts *repomocks.MockAccountRepository, institutions *repomocks.MockInstitutionRepository, integrator *ofmocks.MockOpenFinanceIntegrator)
		wantErr   error
		wantCode  string
		validate  func(t *testing.T, txs []*domain.Transaction, err error)
	}{
		{
			name:      "ID não informado",
			accountID: "",
			setup: func(accounts *repomocks.MockAccountRepository, institutions *repomocks.MockInstitutionRepository, integrator *ofmocks.MockOpenFinanceIntegrator) {
			},
			wantErr:  ErrAccountIDRequired,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:      "Conta de outro usuário",
			accountID: "l1",
			setup: func(accounts *repomocks.MockAccountRepository, institutions *repomocks.MockInstitutionRepository, integrator *ofmocks.MockOpenFinanceIntegrator) {
				accounts.EXPECT().GetByID(gomock.Any(), "l1").Return(&domain.LocalAccount{ID: "l1", UserID: 99, InstitutionName: "Banco A"}, nil)
			},
			wantErr:  ErrAccessDenied,
			wantCode: apiErrors.ErrAccountAccessDenied,
		},
		{
			name:      "Conta inexistente ou removida",
			accountID: "l1",
			setup: func(accounts *repomocks.MockAccountRepository, institutions *repomocks.MockInstitutionRepository, integrator *ofmocks.MockOpenFinanceIntegrator) {
				accounts.EXPECT().GetByID(gomock.Any(), "l1").Return(nil, nil)
			},
			wantErr:  ErrAccessDenied,
			wantCode: apiErrors.ErrAccountAccessDenied,
		},
		{
			name:      "Instituição não cadastrada",
			accountID: "l1",
			setup: func(accounts *repomocks.MockAccountRepository, institutions *repomocks.MockInstitutionRepository, integrator *ofmocks.MockOpenFinanceIntegrator) {
				accounts.EXPECT().GetByID(gomock.Any(), "l1").Return(&domain.LocalAccount{ID: "l1", UserID: userID, InstitutionName: "Banco Z"}, nil)
				institutions.EXPECT().GetByName(gomock.Any(), "Banco Z").Return(nil, nil)
			},
			wantErr:  ErrInstitutionNotFound,
			wantCode: apiErrors.ErrInstitutionNotFound,
		},
		{
			name:      "Instituição nega acesso",
			accountID: "l1",
			setup: func(accounts *repomocks.MockAccountRepository, institutions *repomocks.MockInstitutionRepository, integrator *ofmocks.MockOpenFinanceIntegrator) {
				accounts.EXPECT().GetByID(gomock.Any(), "l1").Return(&domain.LocalAccount{ID: "l1", UserID: userID, InstitutionName: "Banco A", ExternalAccountID: "x1"}, nil)
				institutions.EXPECT().GetByName(gomock.Any(), "Banco A").Return(bancoA, nil)
				integrator.EXPECT().GetTransactions(gomock.Any(), bancoA.BaseURL, "x1").
					Return(nil, ofdomain.NewHTTPError("get_transactions", bancoA.BaseURL, 403, "Consent revoked"))
			},
			wantErr:  ErrConsentDenied,
			wantCode: apiErrors.ErrConsentDenied,
			validate: func(t *testing.T, _ []*domain.Transaction, err error) {
				var accErr *AccountError
				require.True(t, errors.As(err, &accErr))
				assert.Equal(t, "Consent revoked", accErr.Details)
				assert.True(t, ofdomain.IsForbidden(err))
			},
		},
		{
			name:      "Transações da conta",
			accountID: "l1",
			setup: func(accounts *repomocks.MockAccountRepository, institutions *repomocks.MockInstitutionRepository, integrator *ofmocks.MockOpenFinanceIntegrator) {
				accounts.EXPECT().GetByID(gomock.Any(), "l1").Return(&domain.LocalAccount{ID: "l1", UserID: userID, InstitutionName: "Banco A", ExternalAccountID: "x1"}, nil)
				institutions.EXPECT().GetByName(gomock.Any(), "Banco A").Return(bancoA, nil)
				integrator.EXPECT().GetTransactions(gomock.Any(), bancoA.BaseURL, "x1").Return([]*domain.Transaction{
					{ID: "t1", Amount: -20},
				}, nil)
			},
			validate: func(t *testing.T, txs []*domain.Transaction, err error) {
				require.NoError(t, err)
				require.Len(t, txs, 1)
				assert.Equal(t, "t1", txs[0].ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			accounts := repomocks.NewMockAccountRepository(ctrl)
			institutions := repomocks.NewMockInstitutionRepository(ctrl)
			integrator := ofmocks.NewMockOpenFinanceIntegrator(ctrl)

			tt.setup(accounts, institutions, integrator)

			service := NewService(accounts, institutions, integrator, staticRates{})
			txs, err := service.GetTransactions(context.Background(), userID, tt.accountID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var accErr *AccountError
				require.True(t, errors.As(err, &accErr))
				assert.Equal(t, tt.wantCode, accErr.Code)
			}
			if tt.validate != nil {
				tt.validate(t, txs, err)
			}
		})
	}
}

func TestService_GetConsolidatedBalancesPanicNaInstituicao(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := repomocks.NewMockAccountRepository(ctrl)
	institutions := repomocks.NewMockInstitutionRepository(ctrl)
	integrator := ofmocks.NewMockOpenFinanceIntegrator(ctrl)

	accounts.EXPECT().ListByUser(gomock.Any(), userID).Return([]*domain.LocalAccount{
		{ID: "l1", InstitutionName: "Banco A", AccountType: domain.AccountTypeChecking, ExternalAccountID: "x1"},
		{ID: "l2", InstitutionName: "Banco A", AccountType: domain.AccountTypeSavings, ExternalAccountID: "x2"},
	}, nil)
	institutions.EXPECT().List(gomock.Any()).Return([]*domain.Institution{bancoA}, nil)
	integrator.EXPECT().GetBalance(gomock.Any(), bancoA.BaseURL, "x1").Return(&domain.Balance{Amount: 80}, nil)
	integrator.EXPECT().GetBalance(gomock.Any(), bancoA.BaseURL, "x2").
		DoAndReturn(func(context.Context, string, string) (*domain.Balance, error) {
			panic("resposta corrompida")
		})

	service := NewService(accounts, institutions, integrator, staticRates{})

	var entries []*domain.ConsolidatedAccount
	var err error
	require.NotPanics(t, func() {
		entries, err = service.GetConsolidatedBalances(context.Background(), userID)
	})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "l1", entries[0].LocalID)
}

func TestService_GetInvestmentsPanicNaInstituicao(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := repomocks.NewMockAccountRepository(ctrl)
	institutions := repomocks.NewMockInstitutionRepository(ctrl)
	integrator := ofmocks.NewMockOpenFinanceIntegrator(ctrl)

	accounts.EXPECT().ListByUser(gomock.Any(), userID).Return([]*domain.LocalAccount{
		{ID: "l1", InstitutionName: "Banco A", AccountType: domain.AccountTypeInvestment, ExternalAccountID: "i1"},
		{ID: "l2", InstitutionName: "Banco A", AccountType: domain.AccountTypeInvestment, ExternalAccountID: "i2"},
	}, nil)
	institutions.EXPECT().List(gomock.Any()).Return([]*domain.Institution{bancoA}, nil)
	integrator.EXPECT().GetInvestments(gomock.Any(), bancoA.BaseURL, "i1").
		DoAndReturn(func(context.Context, string, string) []*domain.Position {
			panic("resposta corrompida")
		})
	integrator.EXPECT().GetInvestments(gomock.Any(), bancoA.BaseURL, "i2").Return([]*domain.Position{
		{ID: "p1", InvestedAmount: 300, Product: &domain.Product{Name: "CDB", Type: domain.ProductTypeCDB}},
	})

	service := NewService(accounts, institutions, integrator, staticRates{})
	report, err := service.GetInvestments(context.Background(), userID)

	require.NoError(t, err)
	require.Equal(t, 1, report.TotalItems)
	assert.Equal(t, "l2", report.Investments[0].LocalAccountID)
	assert.InDelta(t, 300.0, report.Summary.TotalInvested, 0.001)
}

func TestService_GetInvestments(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := repomocks.NewMockAccountRepository(ctrl)
	institutions := repomocks.NewMockInstitutionRepository(ctrl)
	integrator := ofmocks.NewMockOpenFinanceIntegrator(ctrl)

	purchase := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	accounts.EXPECT().ListByUser(gomock.Any(), userID).Return([]*domain.LocalAccount{
		{ID: "l1", InstitutionName: "Banco A", AccountType: domain.AccountTypeInvestment, ExternalAccountID: "i1"},
	}, nil)
	institutions.EXPECT().List(gomock.Any()).Return([]*domain.Institution{bancoA}, nil)
	integrator.EXPECT().GetInvestments(gomock.Any(), bancoA.BaseURL, "i1").Return([]*domain.Position{
		{ID: "p1", InvestedAmount: 1000, PurchaseDate: &purchase, Product: &domain.Product{Name: "Tesouro Selic", Type: domain.ProductTypeTreasury}},
		{ID: "p2", InvestedAmount: 1000, Product: &domain.Product{Name: "CDB 100", Type: domain.ProductTypeCDB, RateType: "CDI", RateValue: 100}},
		{ID: "p3", InvestedAmount: 500},
	})

	service := NewService(accounts, institutions, integrator, staticRates{rates: &domain.MarketRates{Selic: 10}})
	report, err := service.GetInvestments(context.Background(), userID)

	require.NoError(t, err)
	require.Equal(t, 3, report.TotalItems)

	assert.Equal(t, "2024-03-10", report.Investments[0].PurchaseDate)
	assert.InDelta(t, 112.5, report.Investments[0].EstimatedProfit, 0.001)
	// CDB a 100% do CDI usa a SELIC como benchmark anual
	assert.InDelta(t, 100.0, report.Investments[1].EstimatedProfit, 0.001)

	assert.Equal(t, unknownInvestmentName, report.Investments[2].Name)
	assert.Equal(t, domain.ProductTypeOthers, report.Investments[2].Type)
	assert.Equal(t, "l1", report.Investments[2].LocalAccountID)
	assert.Equal(t, "Banco A", report.Investments[2].SourceInstitution)

	assert.InDelta(t, 2500.0, report.Summary.TotalInvested, 0.001)
	assert.InDelta(t, report.Summary.TotalProfit/report.Summary.TotalInvested*100, report.Summary.TotalProfitPercent, 0.01)
}

func TestService_GetInvestmentsSemContas(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := repomocks.NewMockAccountRepository(ctrl)

	accounts.EXPECT().ListByUser(gomock.Any(), userID).Return([]*domain.LocalAccount{}, nil)

	service := NewService(accounts, repomocks.NewMockInstitutionRepository(ctrl), ofmocks.NewMockOpenFinanceIntegrator(ctrl), staticRates{})
	report, err := service.GetInvestments(context.Background(), userID)

	require.NoError(t, err)
	assert.Zero(t, report.TotalItems)
	assert.NotNil(t, report.Investments)
	assert.Zero(t, report.Summary.TotalProfitPercent)
}
