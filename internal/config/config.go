package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	LockModeMemory   = "memory"
	LockModePostgres = "postgres"

	CatalogScopeUser = "user"
	CatalogScopeAll  = "all"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Cors        Cors        `mapstructure:",squash"`
	Gateway     Gateway     `mapstructure:",squash"`
	MarketRates MarketRates `mapstructure:",squash"`
	Analysis    Analysis    `mapstructure:",squash"`
	Catalog     Catalog     `mapstructure:",squash"`
	Lock        Lock        `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Gateway agrupa as configurações das chamadas às instituições financeiras
type Gateway struct {
	Timeout            time.Duration `mapstructure:"gateway_timeout"`
	BreakerMaxFailures uint32        `mapstructure:"gateway_breaker_max_failures"`
	BreakerOpenTimeout time.Duration `mapstructure:"gateway_breaker_open_timeout"`
	ConsentPermissions []string      `mapstructure:"consent_permissions"`
}

type MarketRates struct {
	SelicURL      string        `mapstructure:"market_selic_url"`
	CDIURL        string        `mapstructure:"market_cdi_url"`
	TTL           time.Duration `mapstructure:"market_rates_ttl"`
	WarmupCron    string        `mapstructure:"market_rates_warmup_cron"`
	WarmupEnabled bool          `mapstructure:"market_rates_warmup_enabled"`
}

// Analysis controla os limites usados na geração de sugestões do dashboard
type Analysis struct {
	MinSavingsBalance        float64 `mapstructure:"analysis_min_savings_balance"`
	FundFeeThreshold         float64 `mapstructure:"analysis_fund_fee_threshold"`
	CDIBenchmarkPercent      float64 `mapstructure:"analysis_cdi_benchmark_percent"`
	TopN                     int     `mapstructure:"analysis_top_n"`
	CatalogScope             string  `mapstructure:"analysis_catalog_scope"`
	CatalogExtraInstitutions int     `mapstructure:"analysis_catalog_extra_institutions"`
}

type Catalog struct {
	Institutions []string `mapstructure:"catalog_institutions"`
}

type Lock struct {
	Mode string `mapstructure:"lock_mode"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/openfinance?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("TOKEN_TTL", "24h")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	// Chamadas às instituições
	viper.SetDefault("GATEWAY_TIMEOUT", "5s")
	viper.SetDefault("GATEWAY_BREAKER_MAX_FAILURES", 5)
	viper.SetDefault("GATEWAY_BREAKER_OPEN_TIMEOUT", "30s")
	viper.SetDefault("CONSENT_PERMISSIONS", "CUSTOMER_DATA_READ,ACCOUNTS_READ,BALANCES_READ,TRANSACTIONS_READ,INVESTMENTS_READ")

	// Séries do Banco Central: 11 = SELIC, 12 = CDI
	viper.SetDefault("MARKET_SELIC_URL", "https://api.bcb.gov.br/dados/serie/bcdata.sgs.11/dados/ultimos/1?formato=json")
	viper.SetDefault("MARKET_CDI_URL", "https://api.bcb.gov.br/dados/serie/bcdata.sgs.12/dados/ultimos/1?formato=json")
	viper.SetDefault("MARKET_RATES_TTL", "4h")
	viper.SetDefault("MARKET_RATES_WARMUP_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("MARKET_RATES_WARMUP_ENABLED", false)

	viper.SetDefault("ANALYSIS_MIN_SAVINGS_BALANCE", 100)
	viper.SetDefault("ANALYSIS_FUND_FEE_THRESHOLD", 2.0)
	viper.SetDefault("ANALYSIS_CDI_BENCHMARK_PERCENT", 100)
	viper.SetDefault("ANALYSIS_TOP_N", 3)
	viper.SetDefault("ANALYSIS_CATALOG_SCOPE", CatalogScopeUser)
	viper.SetDefault("ANALYSIS_CATALOG_EXTRA_INSTITUTIONS", 3)

	viper.SetDefault("CATALOG_INSTITUTIONS", "")

	viper.SetDefault("LOCK_MODE", LockModeMemory)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Lock.Mode {
	case LockModeMemory, LockModePostgres:
	default:
		return fmt.Errorf("LOCK_MODE inválido: %q", c.Lock.Mode)
	}

	switch c.Analysis.CatalogScope {
	case CatalogScopeUser, CatalogScopeAll:
	default:
		return fmt.Errorf("ANALYSIS_CATALOG_SCOPE inválido: %q", c.Analysis.CatalogScope)
	}

	if c.MarketRates.TTL <= 0 {
		return fmt.Errorf("MARKET_RATES_TTL deve ser positivo")
	}

	if c.Analysis.TopN <= 0 {
		c.Analysis.TopN = 3
	}

	// Variáveis vazias chegam como [""] pelo hook de slice
	c.Catalog.Institutions = compact(c.Catalog.Institutions)
	c.Cors.AllowedOrigins = compact(c.Cors.AllowedOrigins)
	c.Gateway.ConsentPermissions = compact(c.Gateway.ConsentPermissions)

	return nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
