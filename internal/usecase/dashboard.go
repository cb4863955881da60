package usecase

import (
	"context"

	"campaigndash/internal/domain"
	"campaigndash/pkg/logger"
	"campaigndash/pkg/metrics"
)

// Dashboard is the shared client selection and the two workflows observing it.
type Dashboard struct {
	Selection *Selection
	Compare   *CompareWorkflow
	Benchmark *BenchmarkWorkflow

	api    domain.AnalyticsAPI
	logger *logger.Logger
}

func NewDashboard(api domain.AnalyticsAPI, settings CompareSettings, logger *logger.Logger, metrics *metrics.Metrics) *Dashboard {
	selection := NewSelection(api, logger, metrics)
	compare := NewCompareWorkflow(api, settings, logger, metrics)
	benchmark := NewBenchmarkWorkflow(api, logger, metrics)

	selection.Subscribe(compare.SetClient)
	selection.Subscribe(benchmark.SetClient)

	return &Dashboard{
		Selection: selection,
		Compare:   compare,
		Benchmark: benchmark,
		api:       api,
		logger:    logger,
	}
}

// Start triggers the initial client load.
func (d *Dashboard) Start(ctx context.Context) <-chan struct{} {
	d.logger.Info("Loading clients")
	return d.Selection.LoadClients(ctx)
}

// UpstreamHealth reports the analytics backend's health.
func (d *Dashboard) UpstreamHealth(ctx context.Context) (*domain.HealthStatus, error) {
	return d.api.HealthCheck(ctx)
}
