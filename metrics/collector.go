/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cfstress"

// Fetch result labels.
const (
	ResultOK    = "ok"
	ResultEmpty = "empty"
	ResultError = "error"
)

// Collector holds the Prometheus instruments of a run. All methods are
// safe on a nil Collector, which records nothing.
type Collector struct {
	registry *prometheus.Registry

	fetchDuration   prometheus.Histogram
	scanDuration    prometheus.Histogram
	sessionDuration prometheus.Histogram
	fetches         *prometheus.CounterVec
	sessions        *prometheus.CounterVec
	rowsWritten     *prometheus.CounterVec
}

// NewCollector creates a Collector registered on its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Latency of a single data row range read.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Latency of an index row range read.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		sessionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Wall-clock duration of a load session, scan and fan-out included.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 15),
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Data row fetches by result.",
		}, []string{"result"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Finished load sessions by final state.",
		}, []string{"state"}),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Rows written during populate by collection.",
		}, []string{"collection"}),
	}

	c.registry.MustRegister(
		c.fetchDuration,
		c.scanDuration,
		c.sessionDuration,
		c.fetches,
		c.sessions,
		c.rowsWritten,
	)
	return c
}

// ObserveFetch records one fetch.
func (c *Collector) ObserveFetch(elapsed time.Duration, result string) {
	if c == nil {
		return
	}
	c.fetchDuration.Observe(elapsed.Seconds())
	c.fetches.WithLabelValues(result).Inc()
}

// ObserveScan records one index scan.
func (c *Collector) ObserveScan(elapsed time.Duration) {
	if c == nil {
		return
	}
	c.scanDuration.Observe(elapsed.Seconds())
}

// ObserveSession records a finished session.
func (c *Collector) ObserveSession(elapsed time.Duration, state string) {
	if c == nil {
		return
	}
	c.sessionDuration.Observe(elapsed.Seconds())
	c.sessions.WithLabelValues(state).Inc()
}

// AddRowsWritten counts rows written to a collection.
func (c *Collector) AddRowsWritten(collection string, n int) {
	if c == nil {
		return
	}
	c.rowsWritten.WithLabelValues(collection).Add(float64(n))
}

// Registry returns the registry the instruments live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
