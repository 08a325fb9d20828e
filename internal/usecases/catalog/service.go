// Package catalog monta a vitrine de produtos das instituições configuradas.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance"
	"github.com/vfg2006/open-finance-api/infrastructure/repository"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/internal/usecases/classifying"
	"github.com/vfg2006/open-finance-api/pkg/log"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.CatalogProduct, error)
}

type Service struct {
	institutionRepository repository.InstitutionRepository
	integrator            openfinance.OpenFinanceIntegrator
	targets               []string
}

// NewService recebe os nomes (ou trechos de nome) das instituições da vitrine; vazio usa todas
func NewService(institutionRepository repository.InstitutionRepository, integrator openfinance.OpenFinanceIntegrator, targets []string) CatalogService {
	return &Service{
		institutionRepository: institutionRepository,
		integrator:            integrator,
		targets:               targets,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.CatalogProduct, error) {
	institutions, err := s.institutionRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	selected := s.selectInstitutions(institutions)
	results := make([][]*domain.CatalogProduct, len(selected))

	var wg sync.WaitGroup
	for i, inst := range selected {
		wg.Add(1)
		go func(i int, inst *domain.Institution) {
			defer wg.Done()
			defer log.RecoverBranch(ctx, inst.Name)

			products := s.integrator.GetProducts(ctx, inst.BaseURL)
			log.ForContext(ctx).WithFields(log.Fields{
				"institution": inst.Name,
				"products":    len(products),
			}).Debug("Vitrine carregada")

			for _, p := range products {
				if p != nil {
					results[i] = append(results[i], catalogProduct(p, inst.Name))
				}
			}
		}(i, inst)
	}
	wg.Wait()

	out := []*domain.CatalogProduct{}
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func (s *Service) selectInstitutions(institutions []*domain.Institution) []*domain.Institution {
	selected := make([]*domain.Institution, 0, len(institutions))
	for _, inst := range institutions {
		if inst == nil || inst.BaseURL == "" {
			continue
		}
		if len(s.targets) == 0 || matchesAny(inst.Name, s.targets) {
			selected = append(selected, inst)
		}
	}
	return selected
}

func matchesAny(name string, targets []string) bool {
	lower := strings.ToLower(name)
	for _, target := range targets {
		if strings.Contains(lower, strings.ToLower(strings.TrimSpace(target))) {
			return true
		}
	}
	return false
}

func catalogProduct(p *domain.Product, institutionName string) *domain.CatalogProduct {
	c := classifying.Classify(*p)

	institution := p.Institution
	if institution == "" {
		institution = institutionName
	}

	return &domain.CatalogProduct{
		ID:              p.ID,
		Name:            p.Name,
		Institution:     institution,
		Category:        c.Category,
		Risk:            c.Risk,
		EstimatedReturn: c.EstimatedReturnPercent,
		ReturnBasis:     string(c.ReturnBasis),
		Liquidity:       c.Liquidity,
		MinInvestment:   p.MinInvestment,
		Ticker:          p.Ticker,
	}
}
