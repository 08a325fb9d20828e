package ofclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sony/gobreaker"
	ofdomain "github.com/vfg2006/open-finance-api/infrastructure/integrator/openfinance/domain"
	"github.com/vfg2006/open-finance-api/internal/config"
	"github.com/vfg2006/open-finance-api/pkg/log"
	"github.com/vfg2006/open-finance-api/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limite de leitura do corpo das respostas
const maxBodySize = 4 << 20

const defaultBreakerMaxFailures = 5

// Client fala com a API de uma instituição. Todas as instituições expõem a mesma
// superfície, então o endereço base é informado em cada chamada.
type Client interface {
	FindCustomerByCPF(ctx context.Context, baseURL, cpf string) (*ofdomain.Customer, error)
	CreateConsent(ctx context.Context, baseURL, customerID string, permissions []string) (*ofdomain.Consent, error)
	DiscoverAccounts(ctx context.Context, baseURL, customerID string) ([]ofdomain.Account, error)
	GetBalance(ctx context.Context, baseURL, accountID string) (*ofdomain.Balance, error)
	GetTransactions(ctx context.Context, baseURL, accountID string) ([]ofdomain.Transaction, error)
	GetInvestments(ctx context.Context, baseURL, accountID string) ([]ofdomain.Investment, error)
	GetProducts(ctx context.Context, baseURL string) ([]ofdomain.Product, error)
}

type OpenFinanceClient struct {
	httpClient *http.Client
	cfg        config.Gateway
	metrics    metrics.Recorder

	breakersMu sync.Mutex
	breakers   map[string]*gobreaker.CircuitBreaker
}

func NewClient(cfg config.Gateway, recorder metrics.Recorder) *OpenFinanceClient {
	if recorder == nil {
		recorder = metrics.NoOp{}
	}

	return &OpenFinanceClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg:      cfg,
		metrics:  recorder,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// breaker devolve o circuit breaker da instituição, criado na primeira chamada.
// Apenas falhas transitórias (rede, timeout, 5xx) contam para abrir o circuito.
func (c *OpenFinanceClient) breaker(baseURL string) *gobreaker.CircuitBreaker {
	c.breakersMu.Lock()
	defer c.breakersMu.Unlock()

	if cb, ok := c.breakers[baseURL]; ok {
		return cb
	}

	maxFailures := c.cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = defaultBreakerMaxFailures
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        baseURL,
		MaxRequests: 1,
		Timeout:     c.cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.L.WithFields(log.Fields{
				"institution": name,
				"from":        from.String(),
				"to":          to.String(),
			}).Warn("Circuit breaker da instituição mudou de estado")
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !ofdomain.IsTransient(err)
		},
	})

	c.breakers[baseURL] = cb
	return cb
}

// do executa a chamada protegida pelo circuit breaker e registra a métrica da operação
func (c *OpenFinanceClient) do(ctx context.Context, op, method, baseURL, path string, body, out any) error {
	start := time.Now()

	_, err := c.breaker(baseURL).Execute(func() (interface{}, error) {
		return nil, c.send(ctx, op, method, baseURL, path, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = ofdomain.NewTransportError(op, baseURL, err)
	}

	c.metrics.ObserveGatewayCall(op, outcome(err), time.Since(start))

	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"operation":   op,
			"institution": baseURL,
			"status_code": ofdomain.StatusCode(err),
			"error":       err.Error(),
		}).Debug("Chamada à instituição falhou")
	}

	return err
}

func (c *OpenFinanceClient) send(ctx context.Context, op, method, baseURL, path string, body, out any) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: erro ao serializar requisição: %w", op, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	url := strings.TrimRight(baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("%s: erro ao criar requisição: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if correlationID := log.GetCorrelationID(ctx); correlationID != "" {
		req.Header.Set("X-Correlation-ID", correlationID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ofdomain.NewTransportError(op, baseURL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return ofdomain.NewTransportError(op, baseURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ofdomain.NewHTTPError(op, baseURL, resp.StatusCode, errorMessage(resp.StatusCode, respBody))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return ofdomain.NewDecodeError(op, baseURL, resp.StatusCode, err)
	}

	return nil
}

func errorMessage(statusCode int, body []byte) string {
	var errResp ofdomain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Text() != "" {
		return errResp.Text()
	}
	return http.StatusText(statusCode)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var gwErr *ofdomain.GatewayError
	if errors.As(err, &gwErr) {
		return strings.ToLower(string(gwErr.Kind))
	}
	return "error"
}
