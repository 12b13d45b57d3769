//go:build unit
// +build unit

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/domain/exports"
)

func TestPrometheusJobObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewPrometheusJobObserver(reg)
	require.NoError(t, err)

	o.JobStarted()
	o.JobStarted()
	o.JobFinished(exports.StatusComplete, 2*time.Second)
	o.JobFinished(exports.StatusFailed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.started))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.finished.WithLabelValues("complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.finished.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.finished.WithLabelValues("stopped")))
	assert.Equal(t, 2, testutil.CollectAndCount(o.duration))
}

func TestPrometheusJobObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusJobObserver(reg)
	require.NoError(t, err)

	_, err = NewPrometheusJobObserver(reg)
	assert.Error(t, err)
}

func TestNoopJobObserver(t *testing.T) {
	var o exports.JobObserver = NoopJobObserver{}
	o.JobStarted()
	o.JobFinished(exports.StatusStopped, time.Second)
}
