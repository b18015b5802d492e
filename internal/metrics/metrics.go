// Package metrics exposes Prometheus counters for the storage tiers.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives storage events. The tiered store depends on this
// interface only.
type Recorder interface {
	RecordTierOp(tier, op, outcome string)
	RecordFallback(op string)
	RecordCleanupFailure()
}

type nopRecorder struct{}

// Nop returns a Recorder that drops every event.
func Nop() Recorder { return nopRecorder{} }

func (nopRecorder) RecordTierOp(string, string, string) {}
func (nopRecorder) RecordFallback(string)               {}
func (nopRecorder) RecordCleanupFailure()               {}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	tierOps         *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	cleanupFailures prometheus.Counter
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tierOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_storage_ops_total",
			Help: "Storage tier operations by tier, operation and outcome.",
		}, []string{"tier", "op", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_storage_fallbacks_total",
			Help: "Operations served by the general tier because the secure tier could not.",
		}, []string{"op"}),
		cleanupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vigil_storage_cleanup_failures_total",
			Help: "Failed removals of plaintext copies after a secure write.",
		}),
	}

	reg.MustRegister(c.tierOps, c.fallbacks, c.cleanupFailures)

	return c
}

func (c *Collector) RecordTierOp(tier, op, outcome string) {
	c.tierOps.WithLabelValues(tier, op, outcome).Inc()
}

func (c *Collector) RecordFallback(op string) {
	c.fallbacks.WithLabelValues(op).Inc()
}

func (c *Collector) RecordCleanupFailure() {
	c.cleanupFailures.Inc()
}

// Handler serves /metrics for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
