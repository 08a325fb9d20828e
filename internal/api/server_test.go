package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/open-finance-api/internal/api/handler"
	"github.com/vfg2006/open-finance-api/internal/config"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/internal/usecases/account"
	"github.com/vfg2006/open-finance-api/internal/usecases/authenticating"
	"github.com/vfg2006/open-finance-api/internal/usecases/connecting"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
)

type fakeAuthenticator struct{}

func (fakeAuthenticator) Register(context.Context, *domain.RegisterUserRequest) (*domain.User, error) {
	return nil, authenticating.NewAuthError(authenticating.ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "CPF ou email já cadastrado")
}

func (fakeAuthenticator) Login(_ context.Context, cpf, _ string) (string, error) {
	if cpf == "12345678901" {
		return "token-user", nil
	}
	return "", authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "CPF ou senha inválidos")
}

func (fakeAuthenticator) GetUserProfile(_ context.Context, userID int) (*domain.User, error) {
	return &domain.User{ID: userID, Name: "Maria"}, nil
}

func (fakeAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	switch token {
	case "token-user":
		return &domain.Claims{UserID: 7, UserRoleID: authenticating.RoleDefault}, nil
	case "token-admin":
		return &domain.Claims{UserID: 1, UserRoleID: authenticating.RoleAdmin}, nil
	case "token-expired":
		return nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
	}
	return nil, authenticating.NewAuthError(authenticating.ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
}

type fakeConnect struct {
	result *domain.ConnectResult
	err    error
	userID int
}

func (f *fakeConnect) Connect(_ context.Context, userID int, _ int) (*domain.ConnectResult, error) {
	f.userID = userID
	return f.result, f.err
}

func (f *fakeConnect) ListInstitutions(context.Context) ([]*domain.Institution, error) {
	return []*domain.Institution{{ID: 1, Name: "Banco A"}}, nil
}

type fakeAccounts struct {
	account.AccountService
	err error
}

func (f *fakeAccounts) GetTransactions(context.Context, int, string) ([]*domain.Transaction, error) {
	return nil, f.err
}

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync()        { f.triggered++ }
func (f *fakeCronJob) GetStatus() map[string]any { return map[string]any{"sync_running": false} }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type testServer struct {
	handler http.Handler
	connect *fakeConnect
	cron    *fakeCronJob
}

func newTestServer(accountsErr error) *testServer {
	connect := &fakeConnect{}
	cron := &fakeCronJob{}

	cfg := &config.Config{Cors: config.Cors{AllowedOrigins: []string{"http://localhost:3000"}}}
	services := Services{
		Authenticator:  fakeAuthenticator{},
		Connect:        connect,
		Accounts:       &fakeAccounts{err: accountsErr},
		CronJobs:       handler.CronJobServices{handler.CronJobTypeMarketRates: cron},
		Database:       fakePinger{},
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	}

	return &testServer{handler: NewHandler(cfg, services), connect: connect, cron: cron}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Healthcheck é público",
			method:     http.MethodGet,
			path:       "/healthcheck",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Métricas são públicas",
			method:     http.MethodGet,
			path:       "/metrics",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Login é público",
			method:     http.MethodPost,
			path:       "/v1/login",
			body:       `{"cpf":"12345678901","password":"secret"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Rota protegida sem token",
			method:     http.MethodGet,
			path:       "/v1/me",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "Token expirado",
			method:     http.MethodGet,
			path:       "/v1/me",
			token:      "token-expired",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:       "Token válido",
			method:     http.MethodGet,
			path:       "/v1/me",
			token:      "token-user",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Cron restrita a administradores",
			method:     http.MethodGet,
			path:       "/v1/cron/status",
			token:      "token-user",
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrInsufficientPrivilege,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(nil)

			rec := srv.do(tt.method, tt.path, tt.token, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
			assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
		})
	}
}

func TestConnectStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		result     *domain.ConnectResult
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "Conectada retorna 201",
			result: &domain.ConnectResult{
				Institution: "Banco A",
				Status:      domain.ConnectStatusConnected,
				Accounts:    []*domain.LocalAccount{{ID: "acc-1"}},
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"status":"CONNECTED"`,
		},
		{
			name: "Vínculo removido retorna 200",
			result: &domain.ConnectResult{
				Institution: "Banco A",
				Status:      domain.ConnectStatusLinkRemoved,
				Accounts:    []*domain.LocalAccount{},
			},
			wantStatus: http.StatusOK,
			wantBody:   `"accounts":[]`,
		},
		{
			name:       "Instituição inexistente retorna 404",
			err:        connecting.NewConnectError(connecting.ErrInstitutionNotFound, apiErrors.ErrInstitutionNotFound, "", "Instituição 9 não encontrada"),
			wantStatus: http.StatusNotFound,
			wantBody:   apiErrors.ErrInstitutionNotFound,
		},
		{
			name:       "Consentimento negado retorna 403 com a instituição",
			err:        connecting.NewConnectError(connecting.ErrAccountDiscovery, apiErrors.ErrConsentDenied, "Banco A", "Consent revoked"),
			wantStatus: http.StatusForbidden,
			wantBody:   `"institution":"Banco A"`,
		},
		{
			name:       "Erro desconhecido retorna 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(nil)
			srv.connect.result = tt.result
			srv.connect.err = tt.err

			rec := srv.do(http.MethodPost, "/v1/integrations/connect", "token-user", `{"institution_id":1}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, 7, srv.connect.userID)
		})
	}
}

func TestConnectBodyInvalido(t *testing.T) {
	srv := newTestServer(nil)

	rec := srv.do(http.MethodPost, "/v1/integrations/connect", "token-user", `{institution_id`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidRequest)
}

func TestTransactionsAcessoNegado(t *testing.T) {
	srv := newTestServer(account.NewAccountErrorWithID(account.ErrAccessDenied, apiErrors.ErrAccountAccessDenied, "acc-9", "Acesso negado a esta conta."))

	rec := srv.do(http.MethodGet, "/v1/accounts/acc-9/transactions", "token-user", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"account_id":"acc-9"`)
}

func TestCronJobs(t *testing.T) {
	srv := newTestServer(nil)

	rec := srv.do(http.MethodPost, "/v1/cron/market-rates/run", "token-admin", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, srv.cron.triggered)

	rec = srv.do(http.MethodPost, "/v1/cron/unknown/run", "token-admin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "market-rates")

	rec = srv.do(http.MethodGet, "/v1/cron/status", "token-admin", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"market-rates"`)
}

func TestCorsPreflight(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest(http.MethodOptions, "/v1/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthcheckBancoIndisponivel(t *testing.T) {
	h := handler.HealthcheckHandler(fakePinger{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}
