// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/open-finance-api/internal/config"
	"github.com/vfg2006/open-finance-api/internal/domain"
)

// RatesRefresher é implementado pelo cache de taxas de mercado
type RatesRefresher interface {
	Refresh(ctx context.Context) (*domain.MarketRates, error)
	LastFetch() time.Time
}

type MarketRatesWarmupConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// MarketRatesWarmupService mantém o cache de taxas aquecido para que o dashboard não espere pelo Banco Central
type MarketRatesWarmupService struct {
	scheduler           *gocron.Scheduler
	rates               RatesRefresher
	config              MarketRatesWarmupConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewMarketRatesWarmupService(rates RatesRefresher, cfg *config.Config) *MarketRatesWarmupService {
	warmupConfig := MarketRatesWarmupConfig{
		CronSchedule: cfg.MarketRates.WarmupCron,    // Default: a cada 30 minutos
		SyncEnabled:  cfg.MarketRates.WarmupEnabled, // Default: desabilitado
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": warmupConfig.CronSchedule,
	}).Info("Configuração do aquecimento das taxas de mercado carregada")

	return &MarketRatesWarmupService{
		scheduler: gocron.NewScheduler(time.Local),
		rates:     rates,
		config:    warmupConfig,
	}
}

func (s *MarketRatesWarmupService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de aquecimento das taxas de mercado desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de aquecimento das taxas de mercado")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshRates(ctx); err != nil {
			logrus.WithError(err).Error("Erro no aquecimento das taxas de mercado")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar aquecimento das taxas de mercado: %w", err)
	}

	s.scheduler.StartAsync()

	// Primeira carga imediata para não iniciar com o cache frio
	go func() {
		if err := s.RefreshRates(ctx); err != nil {
			logrus.WithError(err).Warn("Falha na carga inicial das taxas de mercado")
		}
	}()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de aquecimento das taxas de mercado")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *MarketRatesWarmupService) RefreshRates(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Aquecimento das taxas de mercado já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	rates, err := s.rates.Refresh(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"selic": rates.Selic,
		"cdi":   rates.CDI,
	}).Info("Taxas de mercado atualizadas")

	return nil
}

// TriggerManualSync dispara uma atualização fora do agendamento
func (s *MarketRatesWarmupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Aquecimento das taxas de mercado já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando aquecimento manual das taxas de mercado")
	go func() {
		if err := s.RefreshRates(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no aquecimento manual das taxas de mercado")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *MarketRatesWarmupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
		"last_rates_fetch":       s.rates.LastFetch(),
	}
}
