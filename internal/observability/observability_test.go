package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.Extracted("carousel", 3)
	m.Extracted("tabs", 0)
	m.Duplicates(2)
	m.Unmatched(1)
	m.Fallbacks(0)
	m.ModelFailed()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.TrimsExtracted.WithLabelValues("carousel")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TrimsDuplicate))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ComparisonUnmatched))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ManualFallback))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ModelsFailed))

	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg), "double registration")
}

func TestMetrics_Nil(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.Extracted("carousel", 1)
		m.Duplicates(1)
		m.Unmatched(1)
		m.Fallbacks(1)
		m.ModelFailed()
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogger(LogConfig{Level: "warn", Format: "json", Output: &buf, ServiceName: "crawler"})

	log.Info().Msg("ignorado")
	log.Warn().Str("modelo", "C3").Msg("versão duplicada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "crawler", line["service"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "C3", line["modelo"])
	assert.Contains(t, line, "time")
}
