package metrics

import (
	"testing"
	"time"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerMetricsCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewCustomerMetrics(registry, logger.NewNop()).(*customerMetrics)

	m.IncValidation(OutcomeSuccess)
	m.IncValidation(OutcomeNotFound)
	m.IncValidation(OutcomeNotFound)
	m.IncAdjustment(OutcomeSuccess)
	m.IncTokenRequest(OutcomeError)
	m.IncEventPublish(OutcomeSuccess)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.validations.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.validations.WithLabelValues(OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adjustments.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tokenRequests.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsPublish.WithLabelValues(OutcomeSuccess)))
}

func TestHTTPMetrics(t *testing.T) {
	registry := NewRegistry()
	m := NewHTTPMetrics(registry).(*httpMetrics)

	m.ObserveRequest("GET", "/customers", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "/customers", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/customers", "200")))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["http_request_duration_seconds"])
	assert.True(t, names["go_goroutines"])
}
