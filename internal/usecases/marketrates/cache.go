// Package marketrates mantém em cache os benchmarks SELIC e CDI.
package marketrates

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/pkg/log"
	"github.com/vfg2006/open-finance-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "rates"

// Source busca o último valor de cada benchmark
type Source interface {
	FetchSelic(ctx context.Context) (float64, error)
	FetchCDI(ctx context.Context) (float64, error)
}

// Cache guarda o último valor obtido com sucesso.
// Uma falha de atualização nunca apaga o valor anterior nem renova o timestamp.
type Cache struct {
	source  Source
	ttl     time.Duration
	now     func() time.Time
	metrics metrics.Recorder

	mu        sync.RWMutex
	value     *domain.MarketRates
	fetchedAt time.Time

	sf singleflight.Group
}

func NewCache(source Source, ttl time.Duration, recorder metrics.Recorder) *Cache {
	if recorder == nil {
		recorder = metrics.NoOp{}
	}

	return &Cache{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		metrics: recorder,
	}
}

// GetRates devolve nil apenas quando nenhuma busca teve sucesso até agora
func (c *Cache) GetRates(ctx context.Context) *domain.MarketRates {
	return c.RatesAt(ctx, c.now())
}

func (c *Cache) RatesAt(ctx context.Context, now time.Time) *domain.MarketRates {
	if rates := c.fresh(now); rates != nil {
		return rates
	}

	rates, err := c.refresh(ctx, now, false)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao atualizar taxas de mercado, usando último valor conhecido")
		return c.snapshot()
	}
	return rates
}

// Refresh força a busca, ignorando o TTL. Usado pelo aquecimento agendado.
func (c *Cache) Refresh(ctx context.Context) (*domain.MarketRates, error) {
	return c.refresh(ctx, c.now(), true)
}

// LastFetch devolve o instante da última atualização bem-sucedida
func (c *Cache) LastFetch() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

func (c *Cache) fresh(now time.Time) *domain.MarketRates {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil || now.Sub(c.fetchedAt) >= c.ttl {
		return nil
	}
	copied := *c.value
	return &copied
}

func (c *Cache) snapshot() *domain.MarketRates {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil {
		return nil
	}
	copied := *c.value
	return &copied
}

// refresh compartilha uma única busca entre chamadas concorrentes
func (c *Cache) refresh(ctx context.Context, now time.Time, force bool) (*domain.MarketRates, error) {
	result, err, _ := c.sf.Do(refreshKey, func() (interface{}, error) {
		// Outra chamada pode ter concluído a busca entre a checagem e o Do
		if !force {
			if rates := c.fresh(now); rates != nil {
				return rates, nil
			}
		}
		// O contexto de quem disparou a busca não pode cancelar a espera dos demais
		return c.fetch(context.WithoutCancel(ctx), now)
	})
	if err != nil {
		return nil, err
	}

	rates := *result.(*domain.MarketRates)
	return &rates, nil
}

func (c *Cache) fetch(ctx context.Context, now time.Time) (*domain.MarketRates, error) {
	var selic, cdi float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.source.FetchSelic(gctx)
		if err != nil {
			return fmt.Errorf("selic: %w", err)
		}
		if v <= 0 {
			return fmt.Errorf("selic: valor inválido %v", v)
		}
		selic = v
		return nil
	})
	g.Go(func() error {
		v, err := c.source.FetchCDI(gctx)
		if err != nil {
			return fmt.Errorf("cdi: %w", err)
		}
		if v <= 0 {
			return fmt.Errorf("cdi: valor inválido %v", v)
		}
		cdi = v
		return nil
	})

	if err := g.Wait(); err != nil {
		outcome := "failed"
		if c.snapshot() != nil {
			outcome = "stale"
		}
		c.metrics.RecordRatesRefresh(outcome)
		return nil, err
	}

	rates := &domain.MarketRates{
		Selic:     selic,
		CDI:       cdi,
		FetchedAt: now,
	}

	c.mu.Lock()
	c.value = rates
	c.fetchedAt = now
	c.mu.Unlock()

	c.metrics.RecordRatesRefresh("ok")

	log.L.WithFields(log.Fields{
		"selic": selic,
		"cdi":   cdi,
	}).Info("Taxas de mercado atualizadas")

	return rates, nil
}
