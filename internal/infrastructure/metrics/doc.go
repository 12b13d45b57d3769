// Package metrics exports export job lifecycle events as Prometheus metrics.
package metrics
