// Package observability provides logging and prometheus metrics.
package observability

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Metrics are the counters of an extraction pass. A nil *Metrics counts
// nothing.
type Metrics struct {
	TrimsExtracted      *prometheus.CounterVec
	TrimsDuplicate      prometheus.Counter
	ComparisonUnmatched prometheus.Counter
	ManualFallback      prometheus.Counter
	ModelsFailed        prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		TrimsExtracted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trims_extracted_total",
				Help: "Total de versões extraídas por layout",
			},
			[]string{"layout"},
		),
		TrimsDuplicate: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "trims_duplicate_total",
				Help: "Total de versões descartadas por já existirem no banco",
			},
		),
		ComparisonUnmatched: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "comparison_unmatched_total",
				Help: "Total de versões do comparativo sem par",
			},
		),
		ManualFallback: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "manual_fallback_total",
				Help: "Total de manuais preenchidos pela tabela de fallback",
			},
		),
		ModelsFailed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "models_failed_total",
				Help: "Total de modelos que falharam",
			},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.TrimsExtracted, m.TrimsDuplicate, m.ComparisonUnmatched, m.ManualFallback, m.ModelsFailed} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Extracted(layout string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.TrimsExtracted.WithLabelValues(layout).Add(float64(n))
}

func (m *Metrics) Duplicates(n int) {
	if m != nil && n > 0 {
		m.TrimsDuplicate.Add(float64(n))
	}
}

func (m *Metrics) Unmatched(n int) {
	if m != nil && n > 0 {
		m.ComparisonUnmatched.Add(float64(n))
	}
}

func (m *Metrics) Fallbacks(n int) {
	if m != nil && n > 0 {
		m.ManualFallback.Add(float64(n))
	}
}

func (m *Metrics) ModelFailed() {
	if m != nil {
		m.ModelsFailed.Inc()
	}
}

// Start registers m and serves /metrics on port in the background. An empty
// port disables the endpoint.
func Start(port string, m *Metrics, log zerolog.Logger) (*http.Server, error) {
	if port == "" {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: ":" + port, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("porta", port).Msg("servidor de métricas parou")
		}
	}()
	return srv, nil
}
