package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	ofmocks "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/mocks"
	repomocks "github.com/vfg2006/open-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/internal/usecases/classifying"
)

var institutions = []*domain.Institution{
	{ID: 1, Name: "IF Mauro", BaseURL: "http://mauro.local"},
	{ID: 2, Name: "IF Thalles", BaseURL: "http://thalles.local"},
	{ID: 3, Name: "Banco Varejo", BaseURL: "http://varejo.local"},
	{ID: 4, Name: "IF Sem Endereço"},
}

func TestService_ListProducts(t *testing.T) {
	tests := []struct {
		name     string
		targets  []string
		setup    func(integrator *ofmocks.MockOpenFinanceIntegrator)
		validate func(t *testing.T, products []*domain.CatalogProduct)
	}{
		{
			name:    "Somente instituições configuradas",
			targets: []string{"if mauro", "IF Thalles"},
			setup: func(integrator *ofmocks.MockOpenFinanceIntegrator) {
				integrator.EXPECT().GetProducts(gomock.Any(), "http://mauro.local").Return([]*domain.Product{
					{ID: "p1", Name: "CDB Mauro", Type: domain.ProductTypeCDB, RateType: "CDI", RateValue: 110, RiskLevel: "LOW", MinInvestment: 100},
				})
				integrator.EXPECT().GetProducts(gomock.Any(), "http://thalles.local").Return([]*domain.Product{
					{ID: "p2", Name: "PETR4", Type: domain.ProductTypeStock, Ticker: "PETR4", Institution: "Corretora Thalles"},
				})
			},
			validate: func(t *testing.T, products []*domain.CatalogProduct) {
				require.Len(t, products, 2)

				assert.Equal(t, "IF Mauro", products[0].Institution)
				assert.Equal(t, domain.ProductTypeCDB, products[0].Category)
				assert.Equal(t, string(classifying.BasisIndex), products[0].ReturnBasis)
				assert.InDelta(t, 110.0, products[0].EstimatedReturn, 0.001)
				assert.Equal(t, classifying.RiskLow, products[0].Risk)
				assert.Equal(t, classifying.LiquidityAtMaturity, products[0].Liquidity)
				assert.InDelta(t, 100.0, products[0].MinInvestment, 0.001)

				assert.Equal(t, "Corretora Thalles", products[1].Institution)
				assert.InDelta(t, 12.5, products[1].EstimatedReturn, 0.001)
				assert.Equal(t, "D+2", products[1].Liquidity)
				assert.Equal(t, classifying.RiskHigh, products[1].Risk)
			},
		},
		{
			name: "Sem configuração usa todas as instituições com endereço",
			setup: func(integrator *ofmocks.MockOpenFinanceIntegrator) {
				integrator.EXPECT().GetProducts(gomock.Any(), "http://mauro.local").Return(nil)
				integrator.EXPECT().GetProducts(gomock.Any(), "http://thalles.local").Return(nil)
				integrator.EXPECT().GetProducts(gomock.Any(), "http://varejo.local").Return([]*domain.Product{
					{ID: "p3", Name: "Produto sem tipo", Type: domain.ProductTypeOthers},
				})
			},
			validate: func(t *testing.T, products []*domain.CatalogProduct) {
				require.Len(t, products, 1)
				assert.Equal(t, "Banco Varejo", products[0].Institution)
				assert.NotEmpty(t, products[0].Category)
				assert.NotEmpty(t, products[0].Liquidity)
			},
		},
		{
			name:    "Panic em uma instituição não derruba a vitrine",
			targets: []string{"IF Mauro", "IF Thalles"},
			setup: func(integrator *ofmocks.MockOpenFinanceIntegrator) {
				integrator.EXPECT().GetProducts(gomock.Any(), "http://mauro.local").
					DoAndReturn(func(context.Context, string) []*domain.Product {
						panic("payload inesperado")
					})
				integrator.EXPECT().GetProducts(gomock.Any(), "http://thalles.local").Return([]*domain.Product{
					{ID: "p2", Name: "CDB Thalles", Type: domain.ProductTypeCDB, RateType: "CDI", RateValue: 105},
				})
			},
			validate: func(t *testing.T, products []*domain.CatalogProduct) {
				require.Len(t, products, 1)
				assert.Equal(t, "IF Thalles", products[0].Institution)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomocks.NewMockInstitutionRepository(ctrl)
			integrator := ofmocks.NewMockOpenFinanceIntegrator(ctrl)

			repo.EXPECT().List(gomock.Any()).Return(institutions, nil)
			tt.setup(integrator)

			service := NewService(repo, integrator, tt.targets)
			products, err := service.ListProducts(context.Background())

			require.NoError(t, err)
			tt.validate(t, products)
		})
	}
}

func TestService_ListProductsErroNoBanco(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockInstitutionRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("falha"))

	service := NewService(repo, ofmocks.NewMockOpenFinanceIntegrator(ctrl), nil)
	_, err := service.ListProducts(context.Background())

	assert.Error(t, err)
}
