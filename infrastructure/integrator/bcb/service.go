package bcb

import (
	"context"

	"github.com/vfg2006/open-finance-api/infrastructure/integrator/bcb/bcbclient"
	"github.com/vfg2006/open-finance-api/internal/config"
)

// BCBService lê SELIC (série 11) e CDI (série 12) do SGS
type BCBService struct {
	cfg    config.MarketRates
	Client bcbclient.Client
}

func New(cfg config.MarketRates, client bcbclient.Client) *BCBService {
	return &BCBService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *BCBService) FetchSelic(ctx context.Context) (float64, error) {
	return s.Client.GetLatestValue(ctx, s.cfg.SelicURL)
}

func (s *BCBService) FetchCDI(ctx context.Context) (float64, error) {
	return s.Client.GetLatestValue(ctx, s.cfg.CDIURL)
}
