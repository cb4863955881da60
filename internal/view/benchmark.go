package view

import (
	"fmt"
	"math"
	"strings"

	"campaigndash/internal/domain"
	"campaigndash/internal/usecase"
)

// GradeBadge is the overall letter grade. Tone is the badge colour.
type GradeBadge struct {
	Grade string `json:"grade"`
	Tone  string `json:"tone"`
}

func gradeTone(g domain.PerformanceGrade) string {
	switch {
	case strings.HasPrefix(string(g), "A"):
		return "green"
	case strings.HasPrefix(string(g), "B"):
		return "blue"
	case strings.HasPrefix(string(g), "C"):
		return "orange"
	case g == "D" || g == "F":
		return "red"
	}
	return "gray"
}

type CampaignDetails struct {
	Campaign string `json:"campaign"`
	Client   string `json:"client"`
	Duration string `json:"duration"`
	Industry string `json:"industry"`
}

type BenchmarkMetric struct {
	Metric     string `json:"metric"`
	Title      string `json:"title"`
	Median     string `json:"median"`
	Campaign   string `json:"campaign"`
	Versus     string `json:"versus"`
	Percentile string `json:"percentile"`
	Rank       string `json:"rank,omitempty"`
	Tone       Tone   `json:"tone"`
}

type GapItem struct {
	Metric    string          `json:"metric"`
	Title     string          `json:"title"`
	Campaign  string          `json:"campaign"`
	Top10     string          `json:"top_10"`
	Gap       string          `json:"gap"`
	Potential string          `json:"potential"`
	Priority  domain.Priority `json:"priority"`
}

type TrendItem struct {
	Metric    string                `json:"metric"`
	Title     string                `json:"title"`
	Direction domain.TrendDirection `json:"direction"`
	Change    string                `json:"change"`
	Context   string                `json:"context,omitempty"`
}

type NumberedInsight struct {
	Number  int    `json:"number"`
	Icon    string `json:"icon"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

type BenchmarkPanel struct {
	State   PanelState `json:"state"`
	Heading string     `json:"heading"`
	Message string     `json:"message,omitempty"`

	Details *CampaignDetails `json:"details,omitempty"`

	Grade                    *GradeBadge       `json:"grade,omitempty"`
	Percentile               string            `json:"percentile,omitempty"`
	StatisticallySignificant bool              `json:"statistically_significant"`
	Metrics                  []BenchmarkMetric `json:"metrics,omitempty"`
	Strengths                []string          `json:"strengths,omitempty"`
	Gaps                     []GapItem         `json:"gaps,omitempty"`
	Trends                   []TrendItem       `json:"trends,omitempty"`
	Insights                 []NumberedInsight `json:"insights,omitempty"`
	CompetitivePositioning   string            `json:"competitive_positioning,omitempty"`
	MarketOpportunity        string            `json:"market_opportunity,omitempty"`
}

// NewBenchmarkPanel builds the benchmark section for campaign. A result is
// only rendered when it belongs to campaign.
func NewBenchmarkPanel(campaign *domain.CampaignSummary, result *domain.BenchmarkResponse, analyzing bool) BenchmarkPanel {
	const heading = "Industry Benchmark Analysis"

	if campaign == nil {
		return BenchmarkPanel{
			State:   PanelNoSelection,
			Heading: heading,
			Message: "Select a campaign to compare it against its industry cohort",
		}
	}

	panel := BenchmarkPanel{
		State:   PanelNoData,
		Heading: heading,
		Details: campaignDetails(*campaign),
		Message: `Click "Analyze" to benchmark this campaign`,
	}
	if analyzing {
		panel.State = PanelAnalyzing
		panel.Message = "Comparing your campaign against industry benchmarks"
		return panel
	}
	if result == nil || (result.CampaignSummary.CampaignID != 0 && result.CampaignSummary.CampaignID != campaign.CampaignID) {
		return panel
	}

	panel.State = PanelReady
	panel.Message = ""
	panel.Grade = &GradeBadge{
		Grade: string(result.OverallIndustryGrade),
		Tone:  gradeTone(result.OverallIndustryGrade),
	}
	panel.Percentile = Percentile(result.OverallPercentile)
	panel.StatisticallySignificant = result.StatisticalSignificance
	panel.CompetitivePositioning = result.CompetitivePositioning
	panel.MarketOpportunity = fmt.Sprintf("%.1f", result.MarketOpportunityScore)
	panel.Strengths = result.CompetitiveStrengths

	for _, p := range result.IndustryPositions {
		panel.Metrics = append(panel.Metrics, benchmarkMetric(p))
	}
	for _, g := range result.PerformanceGaps {
		panel.Gaps = append(panel.Gaps, GapItem{
			Metric:    g.MetricName,
			Title:     MetricTitle(g.MetricName),
			Campaign:  metricValue(g.MetricName, g.CampaignValue),
			Top10:     metricValue(g.MetricName, g.IndustryTop10Avg),
			Gap:       fmt.Sprintf("%.1f%% below top 10%%", math.Abs(g.GapPercentage)),
			Potential: g.ImprovementPotential,
			Priority:  g.Priority,
		})
	}
	for _, tr := range result.IndustryTrends {
		panel.Trends = append(panel.Trends, TrendItem{
			Metric:    tr.MetricName,
			Title:     MetricTitle(tr.MetricName),
			Direction: tr.TrendDirection,
			Change:    fmt.Sprintf("%+.1f%%", tr.TrendPercentage),
			Context:   tr.Context,
		})
	}
	for i, insight := range result.Insights {
		panel.Insights = append(panel.Insights, NumberedInsight{
			Number:  i + 1,
			Icon:    InsightIcon(insight.Type),
			Title:   insight.Title,
			Message: insight.Message,
		})
	}
	return panel
}

func campaignDetails(c domain.CampaignSummary) *CampaignDetails {
	details := &CampaignDetails{
		Campaign: CampaignName(c),
		Duration: Duration(c.DurationDays),
	}
	if c.ClientName != nil {
		details.Client = *c.ClientName
	}
	if c.Industry != nil {
		details.Industry = *c.Industry
	}
	return details
}

func benchmarkMetric(p domain.IndustryPosition) BenchmarkMetric {
	m := BenchmarkMetric{
		Metric:     p.MetricName,
		Title:      MetricTitle(p.MetricName),
		Median:     metricValue(p.MetricName, p.IndustryMedian),
		Campaign:   metricValue(p.MetricName, p.CampaignValue),
		Percentile: fmt.Sprintf("(%.1fth percentile)", p.IndustryPercentile),
		Rank:       p.RankDescription,
	}
	if p.PerformanceVsMedian >= 0 {
		m.Versus = fmt.Sprintf("%.0f%% above average", p.PerformanceVsMedian)
		m.Tone = TonePositive
	} else {
		m.Versus = fmt.Sprintf("%.0f%% below average", -p.PerformanceVsMedian)
		m.Tone = ToneNegative
	}
	return m
}

// rates are shown as percentages, everything else with two decimals
func metricValue(metric string, v float64) string {
	if strings.Contains(metric, "ctr") || strings.HasSuffix(metric, "_rate") {
		return fmt.Sprintf("%.2f%%", v)
	}
	return printer().Sprintf("%.2f", v)
}

type BenchmarkView struct {
	Client *ClientOption `json:"client"`

	Campaigns        []Option `json:"campaigns"`
	LoadingCampaigns bool     `json:"loading_campaigns"`
	CampaignError    string   `json:"campaign_error,omitempty"`

	Campaign *Option `json:"campaign"`

	CanAnalyze    bool   `json:"can_analyze"`
	Analyzing     bool   `json:"analyzing"`
	AnalysisError string `json:"analysis_error,omitempty"`

	Panel  BenchmarkPanel            `json:"panel"`
	Result *domain.BenchmarkResponse `json:"result,omitempty"`
}

func Benchmark(state usecase.BenchmarkState) BenchmarkView {
	return BenchmarkView{
		Client:           clientOption(state.Client),
		Campaigns:        campaignOptions(state.Campaigns),
		LoadingCampaigns: state.LoadingCampaigns,
		CampaignError:    state.CampaignError,
		Campaign:         campaignOption(state.Campaign),
		CanAnalyze:       state.CanAnalyze(),
		Analyzing:        state.Analyzing,
		AnalysisError:    state.AnalysisError,
		Panel:            NewBenchmarkPanel(state.Campaign, state.Result, state.Analyzing),
		Result:           state.Result,
	}
}
