package usecase

import (
	"context"
	"fmt"
	"sync"

	"campaigndash/internal/domain"
	"campaigndash/pkg/logger"
	"campaigndash/pkg/metrics"
)

const compareWorkflow = "compare"

// CompareState is a snapshot of the compare workflow. Loading flags and
// error fields are per stage and independent of each other; Result and
// AnalysisError may both be set after a failed re-run.
type CompareState struct {
	Client *domain.Client

	Campaigns        []domain.CampaignSummary
	LoadingCampaigns bool
	CampaignError    string

	Primary          *domain.CampaignSummary
	SimilarCampaigns []domain.CampaignSummary
	LoadingSimilar   bool
	SimilarError     string

	Comparison *domain.CampaignSummary

	Result        *domain.CompareResponse
	Analyzing     bool
	AnalysisError string
}

// CanAnalyze reports whether the Analyze action is enabled.
func (s CompareState) CanAnalyze() bool {
	return s.Primary != nil && s.Comparison != nil && !s.Analyzing
}

type CompareOptions struct {
	ComparisonType      domain.ComparisonType
	ConfidenceThreshold *float64
	FocusMetrics        []string
}

type CompareSettings struct {
	DurationTolerance float64
	ComparisonType    domain.ComparisonType
}

// CompareWorkflow drives client → campaigns → primary → similar campaigns →
// comparison → analysis.
type CompareWorkflow struct {
	api      domain.AnalyticsAPI
	settings CompareSettings
	logger   *logger.Logger
	metrics  *metrics.Metrics

	mu        sync.Mutex
	state     CompareState
	campaigns stage
	similar   stage
	analysis  stage
}

func NewCompareWorkflow(api domain.AnalyticsAPI, settings CompareSettings, logger *logger.Logger, metrics *metrics.Metrics) *CompareWorkflow {
	if settings.DurationTolerance <= 0 {
		settings.DurationTolerance = domain.DefaultDurationTolerance
	}
	if settings.ComparisonType == "" {
		settings.ComparisonType = domain.ComparisonPerformance
	}
	return &CompareWorkflow{
		api:      api,
		settings: settings,
		logger:   logger,
		metrics:  metrics,
	}
}

func (w *CompareWorkflow) State() CompareState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SetClient replaces the client, clearing every downstream selection and
// result before the campaign list for the new client is fetched. A nil client
// leaves the workflow empty.
func (w *CompareWorkflow) SetClient(ctx context.Context, client *domain.Client) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.campaigns.invalidate()
	w.similar.invalidate()
	w.analysis.invalidate()

	w.state = CompareState{
		Client:           client,
		Campaigns:        []domain.CampaignSummary{},
		SimilarCampaigns: []domain.CampaignSummary{},
	}

	if client == nil {
		w.metrics.RecordTransition(compareWorkflow, "client_cleared")
		return closedChan()
	}
	w.metrics.RecordTransition(compareWorkflow, "client_selected")

	w.state.LoadingCampaigns = true
	fetchCtx, seq, done := w.campaigns.begin(ctx)
	go w.fetchCampaigns(fetchCtx, seq, client.ClientID, done)
	return done
}

func (w *CompareWorkflow) fetchCampaigns(ctx context.Context, seq uint64, clientID int64, done chan struct{}) {
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

// SelectPrimary picks the primary campaign from the loaded list, resets the
// comparison pick and fetches campaigns of similar duration.
func (w *CompareWorkflow) SelectPrimary(ctx context.Context, campaignID int64) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	campaign := domain.FindCampaign(w.state.Campaigns, campaignID)
	if campaign == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCampaign, campaignID)
	}

	w.similar.invalidate()
	w.analysis.invalidate()

	w.state.Primary = campaign
	w.state.Comparison = nil
	w.state.SimilarCampaigns = []domain.CampaignSummary{}
	w.state.SimilarError = ""
	w.state.LoadingSimilar = true
	w.clearAnalysis()

	w.metrics.RecordTransition(compareWorkflow, "primary_selected")

	fetchCtx, seq, done := w.similar.begin(ctx)
	go w.fetchSimilar(fetchCtx, seq, campaignID, done)
	return done, nil
}

func (w *CompareWorkflow) fetchSimilar(ctx context.Context, seq uint64, campaignID int64, done chan struct{}) {
	defer close(done)

	campaigns, err := w.api.GetSimilarCampaigns(ctx, campaignID, w.settings.DurationTolerance)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.similar.current(seq) || w.state.Primary == nil || w.state.Primary.CampaignID != campaignID {
		w.discard(ctx, "similar", campaignID)
		return
	}
	w.similar.finish(seq)
	w.state.LoadingSimilar = false

	if err != nil {
		w.state.SimilarError = err.Error()
		w.logger.WithContext(ctx).WithError(err).WithField("campaign_id", campaignID).Error("Failed to load similar campaigns")
		return
	}

	// the primary cannot be compared with itself
	similar := make([]domain.CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		if c.CampaignID != campaignID {
			similar = append(similar, c)
		}
	}
	w.state.SimilarCampaigns = similar
}

// SelectComparison picks the comparison campaign from the similar list.
func (w *CompareWorkflow) SelectComparison(ctx context.Context, campaignID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Primary == nil {
		return ErrNoPrimaryCampaign
	}
	if campaignID == w.state.Primary.CampaignID {
		return ErrSameCampaign
	}
	campaign := domain.FindCampaign(w.state.SimilarCampaigns, campaignID)
	if campaign == nil {
		return fmt.Errorf("%w: %d", ErrUnknownCampaign, campaignID)
	}

	w.analysis.invalidate()
	w.state.Comparison = campaign
	w.clearAnalysis()

	w.metrics.RecordTransition(compareWorkflow, "comparison_selected")
	w.logger.WithContext(ctx).WithField("campaign_id", campaignID).Debug("Comparison campaign selected")
	return nil
}

// Analyze compares primary (campaign_ids[0]) with comparison
// (campaign_ids[1]). With either missing it records MsgSelectBothCampaigns
// and returns ErrIncompleteSelection without calling the backend. A call
// while an analysis is running joins it.
func (w *CompareWorkflow) Analyze(ctx context.Context, opts CompareOptions) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Primary == nil || w.state.Comparison == nil {
		w.state.AnalysisError = MsgSelectBothCampaigns
		w.metrics.RecordTransition(compareWorkflow, "analyze_rejected")
		return nil, ErrIncompleteSelection
	}
	if pending, ok := w.analysis.inFlight(); ok {
		return pending, nil
	}

	comparisonType := opts.ComparisonType
	if comparisonType == "" {
		comparisonType = w.settings.ComparisonType
	}

	primaryID := w.state.Primary.CampaignID
	comparisonID := w.state.Comparison.CampaignID
	req := domain.CompareRequest{
		CampaignIDs:         []int64{primaryID, comparisonID},
		ComparisonType:      comparisonType,
		ConfidenceThreshold: opts.ConfidenceThreshold,
		FocusMetrics:        opts.FocusMetrics,
	}

	w.state.Analyzing = true
	w.metrics.RecordTransition(compareWorkflow, "analyze")

	fetchCtx, seq, done := w.analysis.begin(ctx)
	go w.runAnalysis(fetchCtx, seq, req, done)
	return done, nil
}

func (w *CompareWorkflow) runAnalysis(ctx context.Context, seq uint64, req domain.CompareRequest, done chan struct{}) {
	defer close(done)

	w.metrics.IncAnalysesInProgress(compareWorkflow)
	resp, err := w.api.CompareCampaigns(ctx, req)
	w.metrics.DecAnalysesInProgress(compareWorkflow, outcome(err))

	w.mu.Lock()
	defer w.mu.Unlock()

	primaryID, comparisonID := req.CampaignIDs[0], req.CampaignIDs[1]
	if !w.analysis.current(seq) || !w.selectedPair(primaryID, comparisonID) {
		w.discard(ctx, "analysis", primaryID)
		return
	}
	w.analysis.finish(seq)
	w.state.Analyzing = false

	log := w.logger.WithContext(ctx).WithFields(map[string]any{
		"primary_campaign_id":    primaryID,
		"comparison_campaign_id": comparisonID,
	})

	if err != nil {
		// the last good result, if any, stays visible next to the error
		w.state.AnalysisError = err.Error()
		log.WithError(err).Error("Campaign comparison failed")
		return
	}
	w.state.Result = resp
	w.state.AnalysisError = ""
	log.WithField("comparison_id", resp.ComparisonID).Info("Campaign comparison completed")
}

func (w *CompareWorkflow) selectedPair(primaryID, comparisonID int64) bool {
	return w.state.Primary != nil && w.state.Primary.CampaignID == primaryID &&
		w.state.Comparison != nil && w.state.Comparison.CampaignID == comparisonID
}

func (w *CompareWorkflow) clearAnalysis() {
	w.state.Result = nil
	w.state.AnalysisError = ""
	w.state.Analyzing = false
}

func (w *CompareWorkflow) discard(ctx context.Context, stageName string, key int64) {
	w.metrics.RecordStaleCompletion(compareWorkflow, stageName)
	w.logger.WithContext(ctx).WithFields(map[string]any{
		"stage": stageName,
		"key":   key,
	}).Warn("Discarded stale completion")
}

func outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}
