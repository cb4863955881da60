package view

import (
	"strings"

	"campaigndash/internal/domain"
	"campaigndash/internal/usecase"
)

type CardState string

const (
	CardNoData    CardState = "no_data"
	CardAnalyzing CardState = "analyzing"
	CardReady     CardState = "ready"
)

type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// KPICard is one tile of the KPI row. Value is the comparison campaign's
// figure and From the primary campaign's.
type KPICard struct {
	Metric string    `json:"metric"`
	Title  string    `json:"title"`
	State  CardState `json:"state"`
	Value  string    `json:"value"`
	Change string    `json:"change,omitempty"`
	From   string    `json:"from,omitempty"`
	Tone   Tone      `json:"tone"`
}

// KPICards builds the five tracked KPI tiles. A running analysis wins over
// any earlier result; a metric missing from the result is shown as no data.
func KPICards(result *domain.CompareResponse, analyzing bool) []KPICard {
	cards := make([]KPICard, 0, len(domain.TrackedMetrics))
	for _, name := range domain.TrackedMetrics {
		card := KPICard{
			Metric: name,
			Title:  MetricTitle(name),
			State:  CardNoData,
			Value:  Placeholder,
			Tone:   ToneNeutral,
		}

		if analyzing {
			card.State = CardAnalyzing
			cards = append(cards, card)
			continue
		}

		m, ok := result.Metric(name)
		if !ok {
			cards = append(cards, card)
			continue
		}

		card.State = CardReady
		card.Value = Number(m.ComparisonValue)
		card.From = "from " + Number(m.PrimaryValue)
		if m.IsPositive != nil {
			card.Tone = ToneNegative
			if *m.IsPositive {
				card.Tone = TonePositive
			}
		}
		if m.ChangePercent != nil {
			card.Change = ChangeText(*m.ChangePercent, m.IsPositive != nil && *m.IsPositive)
		}
		cards = append(cards, card)
	}
	return cards
}

// shown when the backend returned no recommendation insights
var fallbackRecommendations = []string{
	"Analyze the performance differences between campaigns to identify optimization opportunities",
	"Review targeting and creative strategies from the better-performing campaign",
	"Consider adjusting budget allocation based on performance insights",
	"Implement A/B testing for creative variations to improve engagement rates",
}

type Recommendation struct {
	Number   int              `json:"number"`
	Text     string           `json:"text"`
	Title    string           `json:"title,omitempty"`
	Priority *domain.Priority `json:"priority,omitempty"`
}

// Recommendations lists the recommendation insights numbered from 1, or the
// generic fallback set when there are none. No result renders nothing.
func Recommendations(result *domain.CompareResponse) []Recommendation {
	if result == nil {
		return nil
	}

	insights := domain.FilterInsights(result.Insights, domain.InsightRecommendation)
	if len(insights) == 0 {
		out := make([]Recommendation, len(fallbackRecommendations))
		for i, text := range fallbackRecommendations {
			out[i] = Recommendation{Number: i + 1, Text: text}
		}
		return out
	}

	out := make([]Recommendation, len(insights))
	for i, insight := range insights {
		out[i] = Recommendation{
			Number:   i + 1,
			Text:     insight.Message,
			Title:    insight.Title,
			Priority: insight.Priority,
		}
	}
	return out
}

type PanelState string

const (
	PanelNoSelection PanelState = "no_selection"
	PanelAnalyzing   PanelState = "analyzing"
	PanelNoData      PanelState = "no_data"
	PanelReady       PanelState = "ready"
)

// placeholders for a panel without analysis output
const (
	SummaryPlaceholder       = "Analysis summary will appear here after AI processing completes."
	KeyFindingPlaceholder    = "Campaign performance differences will be analyzed here"
	PrimaryFactorPlaceholder = "Root cause analysis will appear here"
)

type CampaignCard struct {
	Role        string `json:"role"`
	Label       string `json:"label"`
	Badge       string `json:"badge"`
	Name        string `json:"name"`
	Subtitle    string `json:"subtitle"`
	Displays    string `json:"displays"`
	Engagements string `json:"engagements"`
	Leads       string `json:"leads"`
}

type InsightItem struct {
	Icon     string             `json:"icon"`
	Type     domain.InsightType `json:"type"`
	Title    string             `json:"title"`
	Message  string             `json:"message"`
	Priority *domain.Priority   `json:"priority,omitempty"`
}

type ComparePanel struct {
	State            PanelState       `json:"state"`
	Heading          string           `json:"heading"`
	Message          string           `json:"message,omitempty"`
	Primary          *CampaignCard    `json:"primary,omitempty"`
	Comparison       *CampaignCard    `json:"comparison,omitempty"`
	ExecutiveSummary string           `json:"executive_summary,omitempty"`
	KeyFinding       string           `json:"key_finding,omitempty"`
	PrimaryFactor    string           `json:"primary_factor,omitempty"`
	Insights         []InsightItem    `json:"insights,omitempty"`
	Recommendations  []Recommendation `json:"recommendations,omitempty"`
}

// NewComparePanel builds the analysis section. The primary card reads the
// "previous" side of each metric and the comparison card the "current" side.
func NewComparePanel(primary, comparison *domain.CampaignSummary, result *domain.CompareResponse, analyzing bool) ComparePanel {
	if primary == nil || comparison == nil {
		return ComparePanel{
			State:   PanelNoSelection,
			Heading: "AI Analysis Results",
			Message: `Select two campaigns and click "Analyze" to see detailed insights and recommendations`,
		}
	}
	if analyzing {
		return ComparePanel{
			State:   PanelAnalyzing,
			Heading: "Analyzing Campaigns...",
			Message: "AI is comparing your campaigns and generating insights",
		}
	}

	panel := ComparePanel{
		State:            PanelReady,
		Heading:          "AI Campaign Analysis",
		Primary:          campaignCard(*primary, "primary", result),
		Comparison:       campaignCard(*comparison, "comparison", result),
		ExecutiveSummary: SummaryPlaceholder,
		KeyFinding:       KeyFindingPlaceholder,
		PrimaryFactor:    PrimaryFactorPlaceholder,
		Recommendations:  Recommendations(result),
	}
	if result == nil {
		return panel
	}

	if result.ExecutiveSummary != "" {
		panel.ExecutiveSummary = result.ExecutiveSummary
	}
	if result.KeyFinding != nil && result.KeyFinding.Headline != "" {
		panel.KeyFinding = result.KeyFinding.Headline
	}
	if result.PrimaryFactor != nil && result.PrimaryFactor.TacticalDetail != "" {
		panel.PrimaryFactor = result.PrimaryFactor.TacticalDetail
	}
	for _, insight := range result.Insights {
		if insight.Type == domain.InsightRecommendation {
			continue
		}
		panel.Insights = append(panel.Insights, InsightItem{
			Icon:     InsightIcon(insight.Type),
			Type:     insight.Type,
			Title:    insight.Title,
			Message:  insight.Message,
			Priority: insight.Priority,
		})
	}
	return panel
}

func campaignCard(c domain.CampaignSummary, role string, result *domain.CompareResponse) *CampaignCard {
	card := &CampaignCard{
		Role:     role,
		Name:     CampaignName(c),
		Subtitle: campaignSubtitle(c),
	}
	if role == "primary" {
		card.Label, card.Badge = "PRIMARY CAMPAIGN", "A"
	} else {
		card.Label, card.Badge = "COMPARISON CAMPAIGN", "B"
	}

	side := func(metric string) string {
		m, ok := result.Metric(metric)
		if !ok {
			return Placeholder
		}
		if role == "primary" {
			return Number(m.PrimaryValue)
		}
		return Number(m.ComparisonValue)
	}
	card.Displays = side(domain.MetricAdDisplays)
	card.Engagements = side(domain.MetricEngagements)
	card.Leads = side(domain.MetricLeads)
	return card
}

// e.g. "Baker, Williams and Stevens Furniture • 20 days"
func campaignSubtitle(c domain.CampaignSummary) string {
	var parts []string
	if c.ClientName != nil && *c.ClientName != "" {
		parts = append(parts, *c.ClientName)
	}
	if c.DurationDays != nil && *c.DurationDays > 0 {
		parts = append(parts, Duration(c.DurationDays))
	}
	return strings.Join(parts, " • ")
}

// Option is an entry of a selection dropdown.
type Option struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

func campaignOption(c *domain.CampaignSummary) *Option {
	if c == nil {
		return nil
	}
	return &Option{ID: c.CampaignID, Label: CampaignLabel(*c)}
}

func campaignOptions(campaigns []domain.CampaignSummary) []Option {
	out := make([]Option, len(campaigns))
	for i, c := range campaigns {
		out[i] = Option{ID: c.CampaignID, Label: CampaignLabel(c)}
	}
	return out
}

type CompareView struct {
	Client *ClientOption `json:"client"`

	Campaigns        []Option `json:"campaigns"`
	LoadingCampaigns bool     `json:"loading_campaigns"`
	CampaignError    string   `json:"campaign_error,omitempty"`

	Primary          *Option  `json:"primary"`
	SimilarCampaigns []Option `json:"similar_campaigns"`
	LoadingSimilar   bool     `json:"loading_similar"`
	SimilarError     string   `json:"similar_error,omitempty"`

	Comparison *Option `json:"comparison"`

	CanAnalyze    bool   `json:"can_analyze"`
	Analyzing     bool   `json:"analyzing"`
	AnalysisError string `json:"analysis_error,omitempty"`

	KPIs   []KPICard               `json:"kpis"`
	Panel  ComparePanel            `json:"panel"`
	Result *domain.CompareResponse `json:"result,omitempty"`
}

func Compare(state usecase.CompareState) CompareView {
	return CompareView{
		Client:           clientOption(state.Client),
		Campaigns:        campaignOptions(state.Campaigns),
		LoadingCampaigns: state.LoadingCampaigns,
		CampaignError:    state.CampaignError,
		Primary:          campaignOption(state.Primary),
		SimilarCampaigns: campaignOptions(state.SimilarCampaigns),
		LoadingSimilar:   state.LoadingSimilar,
		SimilarError:     state.SimilarError,
		Comparison:       campaignOption(state.Comparison),
		CanAnalyze:       state.CanAnalyze(),
		Analyzing:        state.Analyzing,
		AnalysisError:    state.AnalysisError,
		KPIs:             KPICards(state.Result, state.Analyzing),
		Panel:            NewComparePanel(state.Primary, state.Comparison, state.Result, state.Analyzing),
		Result:           state.Result,
	}
}
