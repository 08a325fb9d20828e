package bcbclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrEmptySeries = errors.New("série sem valores")

// SeriesValue é um ponto de uma série do SGS do Banco Central
type SeriesValue struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

type Client interface {
	GetLatestValue(ctx context.Context, seriesURL string) (float64, error)
}

type BCBClient struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &BCBClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetLatestValue lê o último valor da série (endpoint ultimos/1)
func (c *BCBClient) GetLatestValue(ctx context.Context, seriesURL string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, seriesURL, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("erro ao consultar série: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("série respondeu com status %d", resp.StatusCode)
	}

	var values []SeriesValue
	if err := json.Unmarshal(body, &values); err != nil {
		return 0, fmt.Errorf("erro ao decodificar série: %w", err)
	}

	if len(values) == 0 {
		return 0, ErrEmptySeries
	}

	raw := strings.ReplaceAll(strings.TrimSpace(values[len(values)-1].Value), ",", ".")
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("valor inválido na série: %q", values[len(values)-1].Value)
	}

	return value.InexactFloat64(), nil
}
