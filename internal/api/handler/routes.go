package handler

import (
	"net/http"

	"github.com/vfg2006/open-finance-api/internal/api/handler/router"
	"github.com/vfg2006/open-finance-api/internal/usecases/account"
	"github.com/vfg2006/open-finance-api/internal/usecases/analyzing"
	"github.com/vfg2006/open-finance-api/internal/usecases/authenticating"
	"github.com/vfg2006/open-finance-api/internal/usecases/catalog"
	"github.com/vfg2006/open-finance-api/internal/usecases/connecting"
	"github.com/vfg2006/open-finance-api/pkg/middleware"
)

func Healthcheck(db Pinger, metrics http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics,
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Integrations(service connecting.ConnectService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/institutions",
			Method:      http.MethodGet,
			Handler:     ListInstitutions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/integrations/connect",
			Method:      http.MethodPost,
			Handler:     ConnectInstitution(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Accounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts",
			Method:      http.MethodGet,
			Handler:     ListAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/accounts/:id/transactions",
			Method:      http.MethodGet,
			Handler:     ListTransactions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/balances",
			Method:      http.MethodGet,
			Handler:     ConsolidatedBalances(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/investments",
			Method:      http.MethodGet,
			Handler:     ListInvestments(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Market(catalogService catalog.CatalogService, analyzeService analyzing.AnalyzeService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/market/products",
			Method:      http.MethodGet,
			Handler:     ListProducts(catalogService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(analyzeService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
