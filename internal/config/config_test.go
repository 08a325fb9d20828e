package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantErr  bool
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "Valores padrão",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
				assert.Equal(t, uint32(5), cfg.Gateway.BreakerMaxFailures)
				assert.Equal(t, 4*time.Hour, cfg.MarketRates.TTL)
				assert.Equal(t, LockModeMemory, cfg.Lock.Mode)
				assert.Equal(t, CatalogScopeUser, cfg.Analysis.CatalogScope)
				assert.Equal(t, 3, cfg.Analysis.TopN)
				assert.Equal(t, 3, cfg.Analysis.CatalogExtraInstitutions)
				assert.InDelta(t, 100.0, cfg.Analysis.MinSavingsBalance, 0.0001)
				assert.InDelta(t, 2.0, cfg.Analysis.FundFeeThreshold, 0.0001)
				assert.Equal(t, []string{
					"CUSTOMER_DATA_READ", "ACCOUNTS_READ", "BALANCES_READ", "TRANSACTIONS_READ", "INVESTMENTS_READ",
				}, cfg.Gateway.ConsentPermissions)
				assert.Empty(t, cfg.Catalog.Institutions)
				assert.Contains(t, cfg.MarketRates.SelicURL, "bcdata.sgs.11")
				assert.Contains(t, cfg.MarketRates.CDIURL, "bcdata.sgs.12")
			},
		},
		{
			name: "Sobrescrita por variáveis de ambiente",
			env: map[string]string{
				"LOCK_MODE":              LockModePostgres,
				"ANALYSIS_TOP_N":         "5",
				"ANALYSIS_CATALOG_SCOPE": CatalogScopeAll,
				"CATALOG_INSTITUTIONS":   "Banco A,Banco B",
				"GATEWAY_TIMEOUT":        "2s",
				"DATABASE_USER":          "app",
				"DATABASE_PASSWORD":      "secret",
				"DATABASE_URL":           "db:5432/openfinance",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, LockModePostgres, cfg.Lock.Mode)
				assert.Equal(t, 5, cfg.Analysis.TopN)
				assert.Equal(t, CatalogScopeAll, cfg.Analysis.CatalogScope)
				assert.Equal(t, []string{"Banco A", "Banco B"}, cfg.Catalog.Institutions)
				assert.Equal(t, 2*time.Second, cfg.Gateway.Timeout)
				assert.Equal(t, "postgres://app:secret@db:5432/openfinance", cfg.Database.DSN)
			},
		},
		{
			name:    "Modo de lock inválido",
			env:     map[string]string{"LOCK_MODE": "redis"},
			wantErr: true,
		},
		{
			name:    "Escopo de catálogo inválido",
			env:     map[string]string{"ANALYSIS_CATALOG_SCOPE": "some"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := NewConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}
