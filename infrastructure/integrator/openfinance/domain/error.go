package ofdomain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindForbidden  ErrorKind = "FORBIDDEN"
	KindTransient  ErrorKind = "TRANSIENT"
	KindUnexpected ErrorKind = "UNEXPECTED"
)

// ErrorResponse é o corpo de erro devolvido pelas instituições
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// GatewayError preserva o status HTTP da instituição quando ele existe.
// StatusCode zero indica falha de transporte (rede, timeout, circuito aberto).
type GatewayError struct {
	Op         string
	BaseURL    string
	StatusCode int
	Kind       ErrorKind
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s em %s: status %d: %s", e.Op, e.BaseURL, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s em %s: %s", e.Op, e.BaseURL, msg)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// KindFor classifica uma resposta não-2xx
func KindFor(statusCode int, message string) ErrorKind {
	switch {
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusForbidden:
		return KindForbidden
	case statusCode == 0 || statusCode >= http.StatusInternalServerError:
		return KindTransient
	case strings.Contains(strings.ToLower(message), "not found"):
		return KindNotFound
	default:
		return KindUnexpected
	}
}

func NewHTTPError(op, baseURL string, statusCode int, message string) *GatewayError {
	return &GatewayError{
		Op:         op,
		BaseURL:    baseURL,
		StatusCode: statusCode,
		Kind:       KindFor(statusCode, message),
		Message:    message,
	}
}

func NewTransportError(op, baseURL string, err error) *GatewayError {
	return &GatewayError{
		Op:      op,
		BaseURL: baseURL,
		Kind:    KindTransient,
		Err:     err,
	}
}

// NewDecodeError indica corpo 2xx ilegível
func NewDecodeError(op, baseURL string, statusCode int, err error) *GatewayError {
	return &GatewayError{
		Op:         op,
		BaseURL:    baseURL,
		StatusCode: statusCode,
		Kind:       KindUnexpected,
		Message:    "resposta inválida da instituição",
		Err:        err,
	}
}

func kindOf(err error) (ErrorKind, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindNotFound
}

func IsForbidden(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindForbidden
}

func IsTransient(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindTransient
}

// StatusCode devolve o status da instituição ou zero quando não houve resposta
func StatusCode(err error) int {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.StatusCode
	}
	return 0
}
