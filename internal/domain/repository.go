package domain

import "context"

// DefaultDurationTolerance is forwarded to the similar-duration endpoint when
// callers do not pick one. Its unit and comparison rule belong to the backend.
const DefaultDurationTolerance = 2.0

type HealthStatus struct {
	Status string `json:"status"`
}

// interface for the CLDB analytics backend
type AnalyticsAPI interface {
	GetClients(ctx context.Context) ([]Client, error)
	GetCampaignsByClient(ctx context.Context, clientID int64) ([]CampaignSummary, error)
	GetSimilarCampaigns(ctx context.Context, campaignID int64, durationTolerance float64) ([]CampaignSummary, error)
	CompareCampaigns(ctx context.Context, req CompareRequest) (*CompareResponse, error)
	BenchmarkCampaign(ctx context.Context, req BenchmarkRequest) (*BenchmarkResponse, error)
	HealthCheck(ctx context.Context) (*HealthStatus, error)
}
