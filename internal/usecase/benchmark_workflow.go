package usecase

import (
	"context"
	"fmt"
	"sync"

	"campaigndash/internal/domain"
	"campaigndash/pkg/logger"
	"campaigndash/pkg/metrics"
)

const benchmarkWorkflow = "benchmark"

type BenchmarkState struct {
	Client *domain.Client

	Campaigns        []domain.CampaignSummary
	LoadingCampaigns bool
	CampaignError    string

	Campaign *domain.CampaignSummary

	Result        *domain.BenchmarkResponse
	Analyzing     bool
	AnalysisError string
}

func (s BenchmarkState) CanAnalyze() bool {
	return s.Campaign != nil && !s.Analyzing
}

// BenchmarkOptions narrows the industry cohort. Unset fields are left to the
// backend.
type BenchmarkOptions struct {
	Industry               *string
	JobType                *string
	GeographicRegion       *string
	Timeframe              *string
	MinimumSampleSize      *int
	IncludeTrends          *bool
	IncludeCompetitiveGaps *bool
}

// BenchmarkWorkflow drives client → campaigns → campaign → benchmark.
type BenchmarkWorkflow struct {
	api     domain.AnalyticsAPI
	logger  *logger.Logger
	metrics *metrics.Metrics

	mu        sync.Mutex
	state     BenchmarkState
	campaigns stage
	analysis  stage
}

func NewBenchmarkWorkflow(api domain.AnalyticsAPI, logger *logger.Logger, metrics *metrics.Metrics) *BenchmarkWorkflow {
	return &BenchmarkWorkflow{
		api:     api,
		logger:  logger,
		metrics: metrics,
	}
}

func (w *BenchmarkWorkflow) State() BenchmarkState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SetClient replaces the client, clearing the campaign pick and any result,
// then fetches the new client's campaigns.
func (w *BenchmarkWorkflow) SetClient(ctx context.Context, client *domain.Client) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.campaigns.invalidate()
	w.analysis.invalidate()

	w.state = BenchmarkState{
		Client:    client,
		Campaigns: []domain.CampaignSummary{},
	}

	if client == nil {
		w.metrics.RecordTransition(benchmarkWorkflow, "client_cleared")
		return closedChan()
	}
	w.metrics.RecordTransition(benchmarkWorkflow, "client_selected")

	w.state.LoadingCampaigns = true
	fetchCtx, seq, done := w.campaigns.begin(ctx)
	go w.fetchCampaigns(fetchCtx, seq, client.ClientID, done)
	return done
}

func (w *BenchmarkWorkflow) fetchCampaigns(ctx context.Context, seq uint64, clientID int64, done chan struct{}) {
	defer close(done)

	campaigns, err := w.api.GetCampaignsByClient(ctx, clientID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.campaigns.current(seq) || w.state.Client == nil || w.state.Client.ClientID != clientID {
		w.discard(ctx, "campaigns", clientID)
		return
	}
	w.campaigns.finish(seq)
	w.state.LoadingCampaigns = false

	if err != nil {
		w.state.CampaignError = err.Error()
		w.logger.WithContext(ctx).WithError(err).WithField("client_id", clientID).Error("Failed to load campaigns")
		return
	}
	w.state.Campaigns = campaigns
}

// SelectCampaign picks the campaign to benchmark. Any displayed result
// belongs to the previous pick and is cleared at once.
func (w *BenchmarkWorkflow) SelectCampaign(ctx context.Context, campaignID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	campaign := domain.FindCampaign(w.state.Campaigns, campaignID)
	if campaign == nil {
		return fmt.Errorf("%w: %d", ErrUnknownCampaign, campaignID)
	}

	w.analysis.invalidate()
	w.state.Campaign = campaign
	w.state.Result = nil
	w.state.AnalysisError = ""
	w.state.Analyzing = false

	w.metrics.RecordTransition(benchmarkWorkflow, "campaign_selected")
	w.logger.WithContext(ctx).WithField("campaign_id", campaignID).Debug("Benchmark campaign selected")
	return nil
}

// Analyze benchmarks the selected campaign against its industry cohort.
func (w *BenchmarkWorkflow) Analyze(ctx context.Context, opts BenchmarkOptions) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Campaign == nil {
		w.state.AnalysisError = MsgSelectCampaign
		w.metrics.RecordTransition(benchmarkWorkflow, "analyze_rejected")
		return nil, ErrIncompleteSelection
	}
	if pending, ok := w.analysis.inFlight(); ok {
		return pending, nil
	}

	req := domain.BenchmarkRequest{
		CampaignID:             w.state.Campaign.CampaignID,
		Industry:               opts.Industry,
		JobType:                opts.JobType,
		GeographicRegion:       opts.GeographicRegion,
		Timeframe:              opts.Timeframe,
		MinimumSampleSize:      opts.MinimumSampleSize,
		IncludeTrends:          opts.IncludeTrends,
		IncludeCompetitiveGaps: opts.IncludeCompetitiveGaps,
	}

	w.state.Analyzing = true
	w.metrics.RecordTransition(benchmarkWorkflow, "analyze")

	fetchCtx, seq, done := w.analysis.begin(ctx)
	go w.runAnalysis(fetchCtx, seq, req, done)
	return done, nil
}

func (w *BenchmarkWorkflow) runAnalysis(ctx context.Context, seq uint64, req domain.BenchmarkRequest, done chan struct{}) {
	defer close(done)

	w.metrics.IncAnalysesInProgress(benchmarkWorkflow)
	resp, err := w.api.BenchmarkCampaign(ctx, req)
	w.metrics.DecAnalysesInProgress(benchmarkWorkflow, outcome(err))

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.analysis.current(seq) || w.state.Campaign == nil || w.state.Campaign.CampaignID != req.CampaignID {
		w.discard(ctx, "analysis", req.CampaignID)
		return
	}
	w.analysis.finish(seq)
	w.state.Analyzing = false

	log := w.logger.WithContext(ctx).WithField("campaign_id", req.CampaignID)
	if err != nil {
		w.state.AnalysisError = err.Error()
		log.WithError(err).Error("Industry benchmark failed")
		return
	}
	w.state.Result = resp
	w.state.AnalysisError = ""
	log.WithField("grade", resp.OverallIndustryGrade).Info("Industry benchmark completed")
}

func (w *BenchmarkWorkflow) discard(ctx context.Context, stageName string, key int64) {
	w.metrics.RecordStaleCompletion(benchmarkWorkflow, stageName)
	w.logger.WithContext(ctx).WithFields(map[string]any{
		"stage": stageName,
		"key":   key,
	}).Warn("Discarded stale completion")
}
