package domain

import "fmt"

type ComparisonType string

const (
	ComparisonPerformance   ComparisonType = "performance"
	ComparisonAudience      ComparisonType = "audience"
	ComparisonCreative      ComparisonType = "creative"
	ComparisonFinancial     ComparisonType = "financial"
	ComparisonComprehensive ComparisonType = "comprehensive"
)

func (t ComparisonType) Valid() bool {
	switch t {
	case ComparisonPerformance, ComparisonAudience, ComparisonCreative, ComparisonFinancial, ComparisonComprehensive:
		return true
	}
	return false
}

// KPI names tracked on the compare dashboard
const (
	MetricAdDisplays   = "ad_displays"
	MetricEngagements  = "engagements"
	MetricVisitors     = "visitors"
	MetricLeads        = "leads"
	MetricAttributions = "attributions"
)

// TrackedMetrics is the display order of the KPI row.
var TrackedMetrics = []string{
	MetricAdDisplays,
	MetricEngagements,
	MetricVisitors,
	MetricLeads,
	MetricAttributions,
}

type CompareRequest struct {
	CampaignIDs         []int64        `json:"campaign_ids"`
	ComparisonType      ComparisonType `json:"comparison_type,omitempty"`
	ConfidenceThreshold *float64       `json:"confidence_threshold,omitempty"`
	FocusMetrics        []string       `json:"focus_metrics,omitempty"`
}

// Validate enforces exactly two distinct campaigns and a known comparison type.
func (r CompareRequest) Validate() error {
	if len(r.CampaignIDs) != 2 {
		return fmt.Errorf("exactly two campaign ids are required, got %d", len(r.CampaignIDs))
	}
	if r.CampaignIDs[0] == r.CampaignIDs[1] {
		return fmt.Errorf("campaign %d cannot be compared with itself", r.CampaignIDs[0])
	}
	if r.ComparisonType != "" && !r.ComparisonType.Valid() {
		return fmt.Errorf("unknown comparison type %q", r.ComparisonType)
	}
	return nil
}

// MetricComparison is one metric of a two-campaign comparison. The backend
// names the values previous/current, but they are positional: previous is
// always campaign_ids[0] (primary), current is campaign_ids[1] (comparison),
// whichever performed better.
type MetricComparison struct {
	PrimaryValue    *float64 `json:"previous,omitempty"`
	ComparisonValue *float64 `json:"current,omitempty"`
	Change          *float64 `json:"change,omitempty"`
	ChangePercent   *float64 `json:"change_percent,omitempty"`
	IsPositive      *bool    `json:"is_positive,omitempty"`
}

type KeyFinding struct {
	Headline       string `json:"headline"`
	Context        string `json:"context"`
	BusinessImpact string `json:"business_impact"`
}

type PrimaryFactor struct {
	RootCause       string `json:"root_cause"`
	TacticalDetail  string `json:"tactical_detail"`
	ConfidenceLevel string `json:"confidence_level"`
}

type CompareResponse struct {
	ComparisonID        string                      `json:"comparison_id"`
	CampaignSummaries   []CampaignSummary           `json:"campaign_summaries"`
	MetricsComparison   map[string]MetricComparison `json:"metrics_comparison"`
	IndustryBenchmarks  map[string]any              `json:"industry_benchmarks,omitempty"`
	Insights            []AnalysisInsight           `json:"insights"`
	StatisticalAnalysis any                         `json:"statistical_analysis,omitempty"`
	KeyFinding          *KeyFinding                 `json:"key_finding,omitempty"`
	PrimaryFactor       *PrimaryFactor              `json:"primary_factor,omitempty"`
	ExecutiveSummary    string                      `json:"executive_summary"`
	DetailedAnalysis    string                      `json:"detailed_analysis"`
	CreatedAt           string                      `json:"created_at"`
}

// Metric looks a metric up without assuming it is present.
func (r *CompareResponse) Metric(name string) (MetricComparison, bool) {
	if r == nil || r.MetricsComparison == nil {
		return MetricComparison{}, false
	}
	m, ok := r.MetricsComparison[name]
	return m, ok
}
