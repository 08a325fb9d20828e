// Package analyzing monta o dashboard da carteira do usuário a partir das contas locais,
// dos saldos e posições ao vivo e da vitrine de produtos das instituições.
package analyzing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance"
	"github.com/vfg2006/open-finance-api/infrastructure/repository"
	"github.com/vfg2006/open-finance-api/internal/config"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/internal/usecases/classifying"
	"github.com/vfg2006/open-finance-api/pkg/log"
	"github.com/vfg2006/open-finance-api/pkg/metrics"
	"github.com/vfg2006/open-finance-api/pkg/utils"
)

// RatesProvider devolve nil enquanto nenhuma taxa foi obtida
type RatesProvider interface {
	GetRates(ctx context.Context) *domain.MarketRates
}

type AnalyzeService interface {
	Analyze(ctx context.Context, userID int) (*domain.Dashboard, error)
}

type Service struct {
	accountRepository     repository.AccountRepository
	institutionRepository repository.InstitutionRepository
	integrator            openfinance.OpenFinanceIntegrator
	rates                 RatesProvider
	cfg                   config.Analysis
	metrics               metrics.Recorder
}

func NewService(
	accountRepository repository.AccountRepository,
	institutionRepository repository.InstitutionRepository,
	integrator openfinance.OpenFinanceIntegrator,
	rates RatesProvider,
	cfg config.Analysis,
	recorder metrics.Recorder,
) *Service {
	if cfg.TopN <= 0 {
		cfg.TopN = 3
	}
	if recorder == nil {
		recorder = metrics.NoOp{}
	}

	return &Service{
		accountRepository:     accountRepository,
		institutionRepository: institutionRepository,
		integrator:            integrator,
		rates:                 rates,
		cfg:                   cfg,
		metrics:               recorder,
	}
}

// accountResult é a contribuição de uma conta; contas que falharam não contribuem
type accountResult struct {
	balance     float64
	positions   []*domain.Position
	suggestions []domain.Suggestion
}

// Analyze só devolve erro quando os dados locais não podem ser lidos.
// Falhas nas instituições reduzem o dashboard, nunca o abortam.
func (s *Service) Analyze(ctx context.Context, userID int) (*domain.Dashboard, error) {
	started := time.Now()
	defer func() { s.metrics.ObserveDashboard(time.Since(started)) }()

	logger := log.ForContext(ctx).WithField("user_id", userID)

	rates := s.rates.GetRates(ctx)
	selic := classifying.DefaultBenchmarkPercent
	if rates != nil {
		selic = rates.Selic
	} else {
		logger.Warn("Taxas de mercado indisponíveis, sugestões dependentes da SELIC serão omitidas")
	}

	accounts, err := s.accountRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listar contas do usuário: %w", err)
	}

	institutions, err := s.institutionRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar instituições: %w", err)
	}
	index := domain.NewInstitutionIndex(institutions)

	results := make([]*accountResult, len(accounts))
	catalogTargets := s.catalogTargets(institutions, accounts, index)
	catalogs := make([][]*domain.Product, len(catalogTargets))

	var wg sync.WaitGroup

	for i, account := range accounts {
		institution, ok := index[account.InstitutionName]
		if !ok {
			logger.WithFields(log.Fields{
				"account_id":  account.ID,
				"institution": account.InstitutionName,
			}).Warn("Conta aponta para instituição sem endereço, ignorando")
			continue
		}

		wg.Add(1)
		go func(i int, account *domain.LocalAccount, baseURL string) {
			defer wg.Done()
			defer log.RecoverBranch(ctx, account.InstitutionName)
			results[i] = s.analyzeAccount(ctx, account, baseURL, rates)
		}(i, account, institution.BaseURL)
	}

	for i, institution := range catalogTargets {
		wg.Add(1)
		go func(i int, institution *domain.Institution) {
			defer wg.Done()
			defer log.RecoverBranch(ctx, institution.Name)
			catalogs[i] = s.integrator.GetProducts(ctx, institution.BaseURL)
		}(i, institution)
	}

	wg.Wait()

	var products []*domain.Product
	for _, catalog := range catalogs {
		products = append(products, catalog...)
	}

	dashboard := s.assemble(results, products, selic)
	dashboard.MarketRates = rates

	logger.WithFields(log.Fields{
		"accounts":    len(accounts),
		"suggestions": len(dashboard.Suggestions),
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("Dashboard montado")

	return dashboard, nil
}

func (s *Service) analyzeAccount(ctx context.Context, account *domain.LocalAccount, baseURL string, rates *domain.MarketRates) *accountResult {
	switch account.AccountType {
	case domain.AccountTypeSavings:
		balance, err := s.integrator.GetBalance(ctx, baseURL, account.ExternalAccountID)
		if err != nil {
			log.ForContext(ctx).WithError(err).WithFields(log.Fields{
				"account_id":  account.ID,
				"institution": account.InstitutionName,
			}).Warn("Falha ao buscar saldo da poupança, conta ignorada")
			return nil
		}
		return savingsResult(balance.Amount, rates, s.cfg.MinSavingsBalance)

	case domain.AccountTypeInvestment:
		positions := s.integrator.GetInvestments(ctx, baseURL, account.ExternalAccountID)
		return &accountResult{positions: positions}
	}

	return nil
}

// SavingsYield estima o rendimento anual da poupança a partir da SELIC
func SavingsYield(selic float64) float64 {
	if selic > 8.5 {
		return 6.17
	}
	return selic * 0.70
}

// savingsResult só emite o alerta quando a SELIC foi de fato obtida
func savingsResult(balance float64, rates *domain.MarketRates, minBalance float64) *accountResult {
	if balance <= 0 {
		return nil
	}

	result := &accountResult{balance: balance}
	if rates == nil {
		return result
	}

	selic := rates.Selic
	if balance > minBalance && SavingsYield(selic) < selic {
		result.suggestions = append(result.suggestions, domain.Suggestion{
			Type:    domain.SuggestionWarning,
			Title:   "Poupança rendendo pouco",
			Message: fmt.Sprintf("Você tem R$ %.2f na Poupança. O Tesouro Selic rende %v%% a.a.", balance, selic),
			Rank:    1,
		})
	}
	return result
}

// catalogTargets cobre todas as instituições do usuário; no escopo "user" inclui também as
// primeiras instituições por nome. Endereços repetidos são consultados uma única vez.
func (s *Service) catalogTargets(institutions []*domain.Institution, accounts []*domain.LocalAccount, index domain.InstitutionIndex) []*domain.Institution {
	seen := make(map[string]struct{})
	targets := make([]*domain.Institution, 0, len(institutions))

	add := func(inst *domain.Institution) {
		if inst == nil || inst.BaseURL == "" {
			return
		}
		if _, ok := seen[inst.BaseURL]; ok {
			return
		}
		seen[inst.BaseURL] = struct{}{}
		targets = append(targets, inst)
	}

	extra := s.cfg.CatalogExtraInstitutions
	if s.cfg.CatalogScope == config.CatalogScopeAll {
		extra = len(institutions)
	}
	for i, inst := range institutions {
		if i >= extra {
			break
		}
		add(inst)
	}

	for _, account := range accounts {
		add(index[account.InstitutionName])
	}

	return targets
}

func (s *Service) assemble(results []*accountResult, products []*domain.Product, selic float64) *domain.Dashboard {
	dashboard := domain.NewDashboard()
	dashboard.Opportunities = BestOpportunities(products, s.cfg.TopN)

	var estimatedReturn float64

	for _, result := range results {
		if result == nil {
			continue
		}

		if result.balance > 0 {
			dashboard.Summary.TotalBalance += result.balance
			dashboard.Allocation[domain.AllocationSavings] += result.balance
		}
		dashboard.Suggestions = append(dashboard.Suggestions, result.suggestions...)

		for _, pos := range result.positions {
			if pos == nil || pos.Product == nil {
				continue
			}

			dashboard.Summary.TotalInvested += pos.InvestedAmount
			bucket := string(pos.Product.Type)
			if _, ok := dashboard.Allocation[bucket]; !ok {
				bucket = string(domain.ProductTypeOthers)
			}
			dashboard.Allocation[bucket] += pos.InvestedAmount

			annual := classifying.Classify(*pos.Product).AnnualReturn(selic)
			estimatedReturn += pos.InvestedAmount * annual / 100

			dashboard.Suggestions = append(dashboard.Suggestions, positionSuggestions(pos.Product, dashboard.Opportunities, s.cfg.FundFeeThreshold)...)
		}
	}

	if dashboard.Summary.TotalInvested == 0 && len(dashboard.Opportunities.FixedIncome) > 0 {
		best := dashboard.Opportunities.FixedIncome[0]
		dashboard.Suggestions = append(dashboard.Suggestions, domain.Suggestion{
			Type:    domain.SuggestionOpportunity,
			Title:   "Comece a investir",
			Message: fmt.Sprintf("Aproveite o %s rendendo %v%% do CDI.", best.Name, best.RateValue),
			Rank:    0,
		})
	}

	dashboard.Summary.GrandTotal = dashboard.Summary.TotalBalance + dashboard.Summary.TotalInvested
	dashboard.Summary.EstimatedAnnualReturn = utils.RoundWithTwoDecimalPlace(estimatedReturn)

	sort.SliceStable(dashboard.Suggestions, func(i, j int) bool {
		return dashboard.Suggestions[i].Rank < dashboard.Suggestions[j].Rank
	})

	return dashboard
}

func positionSuggestions(product *domain.Product, opportunities domain.Opportunities, feeThreshold float64) []domain.Suggestion {
	var suggestions []domain.Suggestion

	switch product.Type {
	case domain.ProductTypeCDB:
		if product.IsIndexedToCDI() && product.RateValue > 0 && product.RateValue < 100 {
			alternative := "Existem opções pagando mais de 100% do CDI."
			if len(opportunities.FixedIncome) > 0 && opportunities.FixedIncome[0].RateValue > product.RateValue {
				alternative = fmt.Sprintf("Existem opções pagando %v%% do CDI.", opportunities.FixedIncome[0].RateValue)
			}
			suggestions = append(suggestions, domain.Suggestion{
				Type:    domain.SuggestionOpportunity,
				Title:   fmt.Sprintf("Troque seu %s", product.Name),
				Message: fmt.Sprintf("Este CDB rende apenas %v%% do CDI. %s", product.RateValue, alternative),
				Rank:    2,
			})
		}

	case domain.ProductTypeFunds:
		if product.AdminFee > feeThreshold {
			suggestions = append(suggestions, domain.Suggestion{
				Type:    domain.SuggestionAlert,
				Title:   fmt.Sprintf("Taxa alta em %s", product.Name),
				Message: fmt.Sprintf("Taxa de administração de %v%%. Verifique a performance.", product.AdminFee),
				Rank:    3,
			})
		}
	}

	return suggestions
}
