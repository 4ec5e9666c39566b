// Package metric provides Prometheus metrics for isis.
//
//   - prometheus.go: per-process registry with operation counters and
//     histograms, plus a textfile dump for node_exporter
//   - collector.go: build information exported as a constant gauge
//
// isis is a short-lived CLI, so metrics are not served over HTTP. When a
// textfile path is configured the registry is written there on exit.
package metric
