package connecting

import (
	"errors"
	"fmt"

	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
)

var (
	// Erros de validação, verificados antes de qualquer chamada externa
	ErrInstitutionIDRequired = errors.New("institution ID is required")
	ErrInvalidCPF            = errors.New("user CPF is invalid")
	ErrUserNotFound          = errors.New("user not found")
	ErrInstitutionNotFound   = errors.New("institution not found")

	// Erros da instituição
	ErrCustomerLookup   = errors.New("error looking up customer at institution")
	ErrAccountDiscovery = errors.New("error discovering accounts at institution")
	ErrConsentCreation  = errors.New("error creating consent at institution")

	// Erros de banco e lock
	ErrDatabaseOperation = errors.New("database operation error")
	ErrLockUnavailable   = errors.New("could not acquire connection lock")
	ErrGenerateID        = errors.New("error generating account ID")
)

// ConnectError carrega o código de API e a instituição envolvida
type ConnectError struct {
	Err         error
	Code        string
	Institution string
	Details     string
}

func (e *ConnectError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

func NewConnectError(err error, code string, institution string, details string) *ConnectError {
	return &ConnectError{
		Err:         err,
		Code:        code,
		Institution: institution,
		Details:     details,
	}
}

// gatewayFailure traduz a falha da instituição mantendo a mensagem original como detalhe
func gatewayFailure(base error, institution string, cause error) *ConnectError {
	code := apiErrors.ErrExternalService
	switch {
	case ofdomain.IsForbidden(cause):
		code = apiErrors.ErrConsentDenied
	case ofdomain.IsTransient(cause):
		code = apiErrors.ErrCommunication
	}

	return &ConnectError{
		Err:         fmt.Errorf("%w: %w", base, cause),
		Code:        code,
		Institution: institution,
		Details:     gatewayMessage(cause),
	}
}

func gatewayMessage(err error) string {
	var gwErr *ofdomain.GatewayError
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	return "instituição indisponível"
}
