package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordTierOp(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTierOp("secure", "set", "ok")
	c.RecordTierOp("secure", "set", "ok")
	c.RecordTierOp("general", "get", "absent")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.tierOps.WithLabelValues("secure", "set", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.tierOps.WithLabelValues("general", "get", "absent")))
}

func TestCollector_FallbacksAndCleanup(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFallback("set")
	c.RecordCleanupFailure()
	c.RecordCleanupFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.fallbacks.WithLabelValues("set")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cleanupFailures))
}

func TestNewCollector_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordFallback("get")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `vigil_storage_fallbacks_total{op="get"} 1`))
}

func TestNop_DoesNotPanic(t *testing.T) {
	r := Nop()
	r.RecordTierOp("a", "b", "c")
	r.RecordFallback("x")
	r.RecordCleanupFailure()
}
