package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStaleCompletion(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordStaleCompletion("compare", "campaigns")
	m.RecordStaleCompletion("compare", "campaigns")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StaleCompletions.WithLabelValues("compare", "campaigns")))
}

func TestAnalysesInProgress(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncAnalysesInProgress("benchmark")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesInProgress.WithLabelValues("benchmark")))

	m.DecAnalysesInProgress("benchmark", "success")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AnalysesInProgress.WithLabelValues("benchmark")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("benchmark", "success")))
}

func TestRecordExternalAPICall(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordExternalAPICall("clients", "success", 20*time.Millisecond)
	m.RecordExternalAPIFailure("clients", "network_error")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExternalAPICalls.WithLabelValues("clients", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExternalAPIFailures.WithLabelValues("clients", "network_error")))
}
