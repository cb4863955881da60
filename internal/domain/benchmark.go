package domain

import "fmt"

type BenchmarkRequest struct {
	CampaignID             int64   `json:"campaign_id"`
	Industry               *string `json:"industry,omitempty"`
	JobType                *string `json:"job_type,omitempty"`
	GeographicRegion       *string `json:"geographic_region,omitempty"`
	Timeframe              *string `json:"timeframe,omitempty"`
	MinimumSampleSize      *int    `json:"minimum_sample_size,omitempty"`
	IncludeTrends          *bool   `json:"include_trends,omitempty"`
	IncludeCompetitiveGaps *bool   `json:"include_competitive_gaps,omitempty"`
}

func (r BenchmarkRequest) Validate() error {
	if r.CampaignID <= 0 {
		return fmt.Errorf("a campaign id is required")
	}
	if r.MinimumSampleSize != nil && *r.MinimumSampleSize < 1 {
		return fmt.Errorf("minimum sample size must be positive, got %d", *r.MinimumSampleSize)
	}
	return nil
}

// PerformanceGrade is the overall letter grade, best first.
type PerformanceGrade string

var gradeOrder = []PerformanceGrade{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D", "F"}

// Rank is the position of g in the grade scale (0 is A+), or -1 if unknown.
func (g PerformanceGrade) Rank() int {
	for i, grade := range gradeOrder {
		if grade == g {
			return i
		}
	}
	return -1
}

func (g PerformanceGrade) Valid() bool {
	return g.Rank() >= 0
}

// Better reports whether g ranks above other.
func (g PerformanceGrade) Better(other PerformanceGrade) bool {
	return g.Valid() && (!other.Valid() || g.Rank() < other.Rank())
}

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// campaign's standing on one metric within its cohort
type IndustryPosition struct {
	MetricName          string  `json:"metric_name"`
	CampaignValue       float64 `json:"campaign_value"`
	IndustryPercentile  float64 `json:"industry_percentile"`
	IndustryMedian      float64 `json:"industry_median"`
	IndustryTopQuartile float64 `json:"industry_top_quartile"`
	PerformanceVsMedian float64 `json:"performance_vs_median"`
	RankDescription     string  `json:"rank_description"`
}

type PerformanceGap struct {
	MetricName           string   `json:"metric_name"`
	CampaignValue        float64  `json:"campaign_value"`
	IndustryTop10Avg     float64  `json:"industry_top_10_avg"`
	GapPercentage        float64  `json:"gap_percentage"`
	ImprovementPotential string   `json:"improvement_potential"`
	Priority             Priority `json:"priority"`
}

type IndustryTrend struct {
	MetricName      string         `json:"metric_name"`
	TrendDirection  TrendDirection `json:"trend_direction"`
	TrendPercentage float64        `json:"trend_percentage"`
	TrendConfidence float64        `json:"trend_confidence"`
	Context         string         `json:"context"`
}

type BenchmarkResponse struct {
	CampaignSummary         CampaignSummary    `json:"campaign_summary"`
	IndustryCohort          map[string]any     `json:"industry_cohort"`
	StatisticalSignificance bool               `json:"statistical_significance"`
	IndustryPositions       []IndustryPosition `json:"industry_positions"`
	OverallIndustryGrade    PerformanceGrade   `json:"overall_industry_grade"`
	OverallPercentile       float64            `json:"overall_percentile"`
	PerformanceGaps         []PerformanceGap   `json:"performance_gaps"`
	CompetitiveStrengths    []string           `json:"competitive_strengths"`
	IndustryTrends          []IndustryTrend    `json:"industry_trends"`
	CompetitivePositioning  string             `json:"competitive_positioning"`
	MarketOpportunityScore  float64            `json:"market_opportunity_score"`
	Insights                []AnalysisInsight  `json:"insights"`
	CreatedAt               string             `json:"created_at"`
}

// Validate checks the invariants a benchmark result must hold: a known
// grade and every percentile within [0,100].
func (r *BenchmarkResponse) Validate() error {
	if !r.OverallIndustryGrade.Valid() {
		return fmt.Errorf("unknown industry grade %q", r.OverallIndustryGrade)
	}
	if !validPercentile(r.OverallPercentile) {
		return fmt.Errorf("overall percentile %v out of range", r.OverallPercentile)
	}
	for _, p := range r.IndustryPositions {
		if !validPercentile(p.IndustryPercentile) {
			return fmt.Errorf("percentile %v for %s out of range", p.IndustryPercentile, p.MetricName)
		}
	}
	return nil
}

func validPercentile(p float64) bool {
	return p >= 0 && p <= 100
}
