package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/clientes", 200, 10*time.Millisecond)
	m.Observe("GET", "/api/clientes", 200, 20*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/clientes", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unknown", "404")))
}

func TestNotificationMetrics(t *testing.T) {
	m := NewNotificationMetrics(prometheus.NewRegistry())

	m.IncCreated("contato_novo")
	m.IncFailed("contato_novo")
	m.IncFailed("contato_novo")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.created.WithLabelValues("contato_novo")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.failed.WithLabelValues("contato_novo")))
}

func TestNilSafe(t *testing.T) {
	var h *HTTPMetrics
	var n *NotificationMetrics
	assert.NotPanics(t, func() {
		h.Observe("GET", "/", 200, time.Second)
		n.IncCreated("x")
		NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Second)
		NewNotificationMetrics(nil).IncFailed("x")
	})
}
