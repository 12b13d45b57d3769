package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
)

const namespace = "shelf_export"

// PrometheusJobObserver counts started and finished export jobs and records their duration
type PrometheusJobObserver struct {
	started  prometheus.Counter
	finished *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusJobObserver creates the collectors and registers them on reg
func NewPrometheusJobObserver(reg prometheus.Registerer) (*PrometheusJobObserver, error) {
	o := &PrometheusJobObserver{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_started_total",
			Help:      "Number of export jobs picked up by a worker.",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_finished_total",
			Help:      "Number of export jobs that reached a terminal status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Time from a worker picking up an export job until it finished.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"status"}),
	}

	for _, c := range []prometheus.Collector{o.started, o.finished, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register export job metrics: %w", err)
		}
	}
	return o, nil
}

// JobStarted counts a job picked up by a worker
func (o *PrometheusJobObserver) JobStarted() {
	o.started.Inc()
}

// JobFinished counts a terminal job and observes its duration
func (o *PrometheusJobObserver) JobFinished(status exports.Status, duration time.Duration) {
	o.finished.WithLabelValues(status.String()).Inc()
	o.duration.WithLabelValues(status.String()).Observe(duration.Seconds())
}

// NoopJobObserver discards all events
type NoopJobObserver struct{}

// JobStarted does nothing
func (NoopJobObserver) JobStarted() {}

// JobFinished does nothing
func (NoopJobObserver) JobFinished(exports.Status, time.Duration) {}

var (
	_ exports.JobObserver = (*PrometheusJobObserver)(nil)
	_ exports.JobObserver = NoopJobObserver{}
)
