// Package metrics expõe os coletores Prometheus da aplicação.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder é o contrato usado pelos serviços para registrar métricas
type Recorder interface {
	ObserveGatewayCall(operation, outcome string, duration time.Duration)
	RecordRatesRefresh(outcome string)
	RecordReconcile(outcome string)
	ObserveDashboard(duration time.Duration)
}

// NoOp descarta todas as métricas; usado em testes e quando o registro é opcional
type NoOp struct{}

func (NoOp) ObserveGatewayCall(string, string, time.Duration) {}
func (NoOp) RecordRatesRefresh(string)                        {}
func (NoOp) RecordReconcile(string)                           {}
func (NoOp) ObserveDashboard(time.Duration)                   {}

type PrometheusRecorder struct {
	gatewayCalls     *prometheus.CounterVec
	gatewayLatency   *prometheus.HistogramVec
	ratesRefreshes   *prometheus.CounterVec
	reconciles       *prometheus.CounterVec
	dashboardLatency prometheus.Histogram
}

func NewPrometheusRecorder(namespace string) *PrometheusRecorder {
	return &PrometheusRecorder{
		gatewayCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_requests_total",
				Help:      "Total de chamadas às instituições por operação e resultado",
			},
			[]string{"operation", "outcome"},
		),
		gatewayLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gateway_request_duration_seconds",
				Help:      "Latência das chamadas às instituições",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ratesRefreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "market_rates_refresh_total",
				Help:      "Atualizações das taxas de mercado por resultado",
			},
			[]string{"outcome"},
		),
		reconciles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconcile_total",
				Help:      "Sincronizações de contas por resultado",
			},
			[]string{"outcome"},
		),
		dashboardLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dashboard_build_duration_seconds",
				Help:      "Tempo de montagem do dashboard",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Register registra todos os coletores no registry informado
func (p *PrometheusRecorder) Register(registry prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		p.gatewayCalls,
		p.gatewayLatency,
		p.ratesRefreshes,
		p.reconciles,
		p.dashboardLatency,
	}

	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *PrometheusRecorder) ObserveGatewayCall(operation, outcome string, duration time.Duration) {
	p.gatewayCalls.WithLabelValues(operation, outcome).Inc()
	p.gatewayLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusRecorder) RecordRatesRefresh(outcome string) {
	p.ratesRefreshes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) RecordReconcile(outcome string) {
	p.reconciles.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveDashboard(duration time.Duration) {
	p.dashboardLatency.Observe(duration.Seconds())
}
