package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/open-finance-api/infrastructure/database/postgres"
	"github.com/vfg2006/open-finance-api/infrastructure/integrator/bcb"
	"github.com/vfg2006/open-finance-api/infrastructure/integrator/bcb/bcbclient"
	"github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance"
	"github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/ofclient"
	"github.com/vfg2006/open-finance-api/infrastructure/repository"
	"github.com/vfg2006/open-finance-api/internal/api"
	"github.com/vfg2006/open-finance-api/internal/api/handler"
	"github.com/vfg2006/open-finance-api/internal/config"
	"github.com/vfg2006/open-finance-api/internal/scheduler"
	"github.com/vfg2006/open-finance-api/internal/usecases/account"
	"github.com/vfg2006/open-finance-api/internal/usecases/analyzing"
	"github.com/vfg2006/open-finance-api/internal/usecases/authenticating"
	"github.com/vfg2006/open-finance-api/internal/usecases/catalog"
	"github.com/vfg2006/open-finance-api/internal/usecases/connecting"
	"github.com/vfg2006/open-finance-api/internal/usecases/marketrates"
	"github.com/vfg2006/open-finance-api/pkg/metrics"
)

const metricsNamespace = "openfinance"

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheusRecorder(metricsNamespace)
	if err := recorder.Register(registry); err != nil {
		logrus.WithError(err).Fatal("Erro ao registrar métricas")
	}

	userRepo := repository.NewUserRepository(pgConn)
	institutionRepo := repository.NewInstitutionRepository(pgConn)
	accountRepo := repository.NewAccountRepository(pgConn)

	ofClient := ofclient.NewClient(cfg.Gateway, recorder)
	integrator := openfinance.New(cfg, ofClient)

	bcbClient := bcbclient.NewClient(cfg.Gateway.Timeout)
	ratesCache := marketrates.NewCache(bcb.New(cfg.MarketRates, bcbClient), cfg.MarketRates.TTL, recorder)

	authenticator := authenticating.NewService(userRepo, cfg)
	connectService := connecting.NewService(userRepo, institutionRepo, accountRepo, integrator, newLocker(cfg.Lock, pgConn), recorder)
	accountService := account.NewService(accountRepo, institutionRepo, integrator, ratesCache)
	catalogService := catalog.NewService(institutionRepo, integrator, cfg.Catalog.Institutions)
	analyzeService := analyzing.NewService(accountRepo, institutionRepo, integrator, ratesCache, cfg.Analysis, recorder)

	ratesWarmup := scheduler.NewMarketRatesWarmupService(ratesCache, cfg)
	if err := ratesWarmup.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de taxas de mercado")
	} else {
		logrus.Info("Agendador de taxas de mercado iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator:  authenticator,
		Connect:        connectService,
		Accounts:       accountService,
		Catalog:        catalogService,
		Analyze:        analyzeService,
		CronJobs:       handler.CronJobServices{handler.CronJobTypeMarketRates: ratesWarmup},
		Database:       pgConn,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newLocker escolhe o lock da sincronização conforme LOCK_MODE
func newLocker(cfg config.Lock, conn *postgres.Connection) connecting.Locker {
	if cfg.Mode == config.LockModePostgres {
		logrus.Info("Sincronização serializada com advisory locks do PostgreSQL")
		return postgres.NewAdvisoryLocker(conn)
	}
	return connecting.NewKeyedMutex()
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	_ = os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
