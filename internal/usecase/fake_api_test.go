package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campaigndash/internal/domain"
	"campaigndash/pkg/logger"
	"campaigndash/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned data. A gate channel, when set, holds the matching
// call until it is closed.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	clients     []domain.Client
	clientsErr  error
	clientsGate chan struct{}

	campaigns     map[int64][]domain.CampaignSummary
	campaignsErr  error
	campaignGates map[int64]chan struct{}

	similar      map[int64][]domain.CampaignSummary
	similarErr   error
	similarGates map[int64]chan struct{}
	tolerances   []float64

	compareErr   error
	compareGate  chan struct{}
	compareCalls []domain.CompareRequest

	benchmarkErr   error
	benchmarkGate  chan struct{}
	benchmarkCalls []domain.BenchmarkRequest
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		calls: map[string]int{},
		clients: []domain.Client{
			{ClientID: 1004, ClientName: "Baker, Williams and Stevens Furniture", Industry: "Furniture", CampaignCount: 3},
			{ClientID: 1005, ClientName: "Blake and Sons Furniture", Industry: "Furniture", CampaignCount: 1},
		},
		campaigns: map[int64][]domain.CampaignSummary{
			1004: {
				campaign(12356, "Holiday Home Decor", 20),
				campaign(12357, "Summer Office Furniture", 17),
				campaign(12358, "Spring Patio Sale", 30),
			},
			1005: {
				campaign(22001, "Blake Grand Opening", 14),
			},
		},
		similar: map[int64][]domain.CampaignSummary{
			12356: {campaign(12356, "Holiday Home Decor", 20), campaign(12357, "Summer Office Furniture", 17)},
			12357: {campaign(12356, "Holiday Home Decor", 20)},
			12358: {},
		},
		campaignGates: map[int64]chan struct{}{},
		similarGates:  map[int64]chan struct{}{},
	}
}

func campaign(id int64, name string, days int64) domain.CampaignSummary {
	return domain.CampaignSummary{CampaignID: id, Name: &name, DurationDays: &days}
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) enter(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func pass(gate chan struct{}) {
	if gate != nil {
		<-gate
	}
}

func (f *fakeAPI) GetClients(ctx context.Context) ([]domain.Client, error) {
	f.enter("clients")
	f.mu.Lock()
	gate := f.clientsGate
	f.mu.Unlock()
	pass(gate)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clientsErr != nil {
		return nil, f.clientsErr
	}
	return append([]domain.Client(nil), f.clients...), nil
}

func (f *fakeAPI) GetCampaignsByClient(ctx context.Context, clientID int64) ([]domain.CampaignSummary, error) {
	f.enter("campaigns")
	f.mu.Lock()
	gate := f.campaignGates[clientID]
	f.mu.Unlock()
	pass(gate)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.campaignsErr != nil {
		return nil, f.campaignsErr
	}
	return append([]domain.CampaignSummary(nil), f.campaigns[clientID]...), nil
}

func (f *fakeAPI) GetSimilarCampaigns(ctx context.Context, campaignID int64, durationTolerance float64) ([]domain.CampaignSummary, error) {
	f.enter("similar")
	f.mu.Lock()
	f.tolerances = append(f.tolerances, durationTolerance)
	gate := f.similarGates[campaignID]
	f.mu.Unlock()
	pass(gate)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.similarErr != nil {
		return nil, f.similarErr
	}
	return append([]domain.CampaignSummary(nil), f.similar[campaignID]...), nil
}

func (f *fakeAPI) CompareCampaigns(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	f.enter("compare")
	f.mu.Lock()
	f.compareCalls = append(f.compareCalls, req)
	gate := f.compareGate
	f.mu.Unlock()
	pass(gate)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.compareErr != nil {
		return nil, f.compareErr
	}
	primary, comparison := 1000.0, 1135.0
	return &domain.CompareResponse{
		ComparisonID: "cmp-1",
		MetricsComparison: map[string]domain.MetricComparison{
			domain.MetricAdDisplays: {PrimaryValue: &primary, ComparisonValue: &comparison},
		},
		ExecutiveSummary: "summary",
	}, nil
}

func (f *fakeAPI) BenchmarkCampaign(ctx context.Context, req domain.BenchmarkRequest) (*domain.BenchmarkResponse, error) {
	f.enter("benchmark")
	f.mu.Lock()
	f.benchmarkCalls = append(f.benchmarkCalls, req)
	gate := f.benchmarkGate
	f.mu.Unlock()
	pass(gate)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.benchmarkErr != nil {
		return nil, f.benchmarkErr
	}
	return &domain.BenchmarkResponse{
		CampaignSummary:      domain.CampaignSummary{CampaignID: req.CampaignID},
		OverallIndustryGrade: "C+",
		OverallPercentile:    55.0,
	}, nil
}

func (f *fakeAPI) HealthCheck(ctx context.Context) (*domain.HealthStatus, error) {
	f.enter("health")
	return &domain.HealthStatus{Status: "healthy"}, nil
}

var errBackend = errors.New("HTTP 500: Internal Server Error")

const (
	defaultWait  = 2 * time.Second
	pollInterval = 5 * time.Millisecond
)

func newTestDashboard(t *testing.T, api *fakeAPI) (*Dashboard, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	return NewDashboard(api, CompareSettings{}, logger.Discard(), m), m
}

// startedDashboard has loaded clients and auto-selected client 1004.
func startedDashboard(t *testing.T, api *fakeAPI) (*Dashboard, *metrics.Metrics) {
	t.Helper()
	d, m := newTestDashboard(t, api)
	waitFor(t, d.Start(context.Background()))
	return d, m
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(defaultWait):
		t.Fatal("timed out waiting for transition")
	}
}

func mustDone(t *testing.T) func(<-chan struct{}, error) {
	return func(done <-chan struct{}, err error) {
		t.Helper()
		require.NoError(t, err)
		waitFor(t, done)
	}
}
