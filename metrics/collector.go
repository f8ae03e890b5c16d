// Package metrics exposes benchmark write timings as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"s3vsefs/logging"
)

const namespace = "s3vsefs"

// Collector records per-write durations and sizes labelled by strategy and batch
type Collector struct {
	registry *prometheus.Registry

	writeDuration *prometheus.HistogramVec
	writeBytes    *prometheus.CounterVec
	writes        *prometheus.CounterVec
	batchFailures *prometheus.CounterVec

	server *http.Server
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		writeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "write_duration_seconds",
			Help:      "Duration of a single file write",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"strategy", "batch"}),
		writeBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "written_bytes_total",
			Help:      "Bytes written",
		}, []string{"strategy", "batch"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_total",
			Help:      "Files written",
		}, []string{"strategy", "batch"}),
		batchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_failures_total",
			Help:      "Batches aborted by an error",
		}, []string{"batch"}),
	}

	c.registry.MustRegister(c.writeDuration, c.writeBytes, c.writes, c.batchFailures)
	return c
}

// Registry returns the registry holding the benchmark metrics
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveWrite records one successful file write
func (c *Collector) ObserveWrite(strategy, batch string, elapsed time.Duration, size int64) {
	c.writeDuration.WithLabelValues(strategy, batch).Observe(elapsed.Seconds())
	c.writeBytes.WithLabelValues(strategy, batch).Add(float64(size))
	c.writes.WithLabelValues(strategy, batch).Inc()
}

// BatchFailed records a batch aborted by an error
func (c *Collector) BatchFailed(batch string) {
	c.batchFailures.WithLabelValues(batch).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Start serves /metrics on addr in the background until Stop is called
func (c *Collector) Start(addr string, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	c.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 30 * time.Second,
	}

	go func() {
		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error: %v", err)
		}
	}()
	logger.Info("Serving metrics on %s/metrics", addr)
}

// Stop shuts the metrics server down
func (c *Collector) Stop(ctx context.Context) error {
	if c.server == nil {
		return nil
	}
	return c.server.Shutdown(ctx)
}
