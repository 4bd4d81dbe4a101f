package observability

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", http.MethodGet, 200, time.Millisecond)
	m.RecordError("/", http.MethodGet, "FORBIDDEN")
	m.RecordAuthDecision("strict", "ok")
}

func TestMetrics_RecordsOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordAuthDecision("strict", "missing")
	m.RecordAuthDecision("strict", "missing")
	m.RecordRequest("/users/:id", http.MethodDelete, 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues("strict", "missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/users/:id", http.MethodDelete, "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "auth_decisions_total")
	assert.Contains(t, names, "http_request_duration_seconds")
}
