// Package metric provides Prometheus metrics for isis.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "isis"

// Operation results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Operations counts embed/extract calls by result.
	Operations *prometheus.CounterVec

	// OperationDuration observes wall time per operation.
	OperationDuration *prometheus.HistogramVec

	// PayloadBytes observes payload sizes as written to or read from a carrier.
	PayloadBytes *prometheus.HistogramVec

	// PlanesUsed observes how many bit-planes an embed touched.
	PlanesUsed prometheus.Histogram

	// CarrierBits is the capacity of the last carrier processed.
	CarrierBits prometheus.Gauge
}

// NewRegistry creates a registry with all isis metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Embed and extract operations by result.",
		}, []string{"op", "result"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent in embed and extract, including key derivation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"op"}),
		PayloadBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "payload_bytes",
			Help:      "Size of payloads written to or read from carriers.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}, []string{"op"}),
		PlanesUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "planes_used",
			Help:      "Number of bit-planes touched by an embed.",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		}),
		CarrierBits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "carrier_capacity_bits",
			Help:      "Addressable bits of the last carrier processed.",
		}),
	}

	r.registry.MustRegister(
		r.Operations,
		r.OperationDuration,
		r.PayloadBytes,
		r.PlanesUsed,
		r.CarrierBits,
		NewCollector(),
	)
	return r
}

// ObserveOperation records the outcome of one embed or extract.
func (r *Registry) ObserveOperation(op string, err error, payloadBytes int, elapsed time.Duration) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.Operations.WithLabelValues(op, result).Inc()
	r.OperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err == nil {
		r.PayloadBytes.WithLabelValues(op).Observe(float64(payloadBytes))
	}
}

// WriteTextfile writes all metrics in the text exposition format to path,
// atomically, for the node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
