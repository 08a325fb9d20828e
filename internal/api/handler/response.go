package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/internal/usecases/account"
	"github.com/vfg2006/open-finance-api/internal/usecases/authenticating"
	"github.com/vfg2006/open-finance-api/internal/usecases/connecting"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
	"github.com/vfg2006/open-finance-api/pkg/log"
	"github.com/vfg2006/open-finance-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// currentUser devolve as claims do usuário autenticado ou escreve 401
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}
	return claims, true
}

// writeServiceError traduz os erros tipados dos casos de uso para o formato da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.ForContext(r.Context()).WithError(err)

	var (
		connectErr *connecting.ConnectError
		accountErr *account.AccountError
		authErr    *authenticating.AuthError
	)

	switch {
	case errors.As(err, &connectErr):
		logger.WithField("institution", connectErr.Institution).Warn(fallback)
		var details any
		if connectErr.Institution != "" {
			details = map[string]string{"institution": connectErr.Institution}
		}
		apiErrors.WriteError(w, connectErr.Code, messageOr(connectErr.Details, fallback), details)

	case errors.As(err, &accountErr):
		logger.WithField("account_id", accountErr.AccountID).Warn(fallback)
		var details any
		if accountErr.AccountID != "" {
			details = map[string]string{"account_id": accountErr.AccountID}
		}
		apiErrors.WriteError(w, accountErr.Code, messageOr(accountErr.Details, fallback), details)

	case errors.As(err, &authErr):
		logger.Warn(fallback)
		apiErrors.WriteError(w, authErr.Code, messageOr(authErr.Details, fallback), nil)

	default:
		logger.Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
