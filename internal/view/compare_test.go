package view

import (
	"testing"

	"campaigndash/internal/domain"
	"campaigndash/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	holidayDecor = domain.CampaignSummary{
		CampaignID:   12356,
		Name:         ptr("Holiday Home Decor"),
		ClientName:   ptr("Baker, Williams and Stevens Furniture"),
		DurationDays: ptr[int64](20),
	}
	summerOffice = domain.CampaignSummary{
		CampaignID:   12357,
		Name:         ptr("Summer Office Furniture"),
		ClientName:   ptr("Baker, Williams and Stevens Furniture"),
		DurationDays: ptr[int64](17),
	}
)

func compareResult() *domain.CompareResponse {
	return &domain.CompareResponse{
		ComparisonID: "cmp-1",
		MetricsComparison: map[string]domain.MetricComparison{
			domain.MetricAdDisplays: {
				PrimaryValue:    ptr(2438018.0),
				ComparisonValue: ptr(2766618.0),
				ChangePercent:   ptr(13.5),
				IsPositive:      ptr(true),
			},
			domain.MetricEngagements: {
				PrimaryValue:    ptr(4876.0),
				ComparisonValue: ptr(5533.0),
				ChangePercent:   ptr(13.5),
				IsPositive:      ptr(true),
			},
			domain.MetricLeads: {
				PrimaryValue:    ptr(592.0),
				ComparisonValue: ptr(274.0),
				ChangePercent:   ptr(-53.7),
				IsPositive:      ptr(false),
			},
		},
		Insights: []domain.AnalysisInsight{
			{Type: domain.InsightStrength, Title: "Reach", Message: "More displays"},
			{Type: domain.InsightRecommendation, Title: "Leads", Message: "Tighten the lead form"},
			{Type: domain.InsightRecommendation, Title: "Creative", Message: "Reuse the winning creative"},
		},
		KeyFinding:       &domain.KeyFinding{Headline: "Displays up, leads down"},
		PrimaryFactor:    &domain.PrimaryFactor{TacticalDetail: "Weaker call to action"},
		ExecutiveSummary: "The comparison campaign reached more people but converted fewer.",
	}
}

func TestKPICardsReady(t *testing.T) {
	cards := KPICards(compareResult(), false)
	require.Len(t, cards, len(domain.TrackedMetrics))

	displays := cards[0]
	assert.Equal(t, domain.MetricAdDisplays, displays.Metric)
	assert.Equal(t, "Ad Displays", displays.Title)
	assert.Equal(t, CardReady, displays.State)
	assert.Equal(t, "2,766,618", displays.Value)
	assert.Equal(t, "+13.5%", displays.Change)
	assert.Equal(t, "from 2,438,018", displays.From)
	assert.Equal(t, TonePositive, displays.Tone)

	leads := cards[3]
	assert.Equal(t, domain.MetricLeads, leads.Metric)
	assert.Equal(t, "-53.7%", leads.Change)
	assert.Equal(t, ToneNegative, leads.Tone)
}

func TestKPICardsMissingMetricIsNoData(t *testing.T) {
	cards := KPICards(compareResult(), false)

	for _, card := range cards {
		switch card.Metric {
		case domain.MetricVisitors, domain.MetricAttributions:
			assert.Equal(t, CardNoData, card.State, card.Metric)
			assert.Equal(t, Placeholder, card.Value)
			assert.Empty(t, card.Change)
		}
	}
}

func TestKPICardsEmptyResponse(t *testing.T) {
	for _, result := range []*domain.CompareResponse{nil, {}} {
		cards := KPICards(result, false)
		require.Len(t, cards, 5)
		for _, card := range cards {
			assert.Equal(t, CardNoData, card.State)
		}
	}
}

func TestKPICardsAnalyzingHidesPreviousResult(t *testing.T) {
	cards := KPICards(compareResult(), true)
	for _, card := range cards {
		assert.Equal(t, CardAnalyzing, card.State)
		assert.Equal(t, Placeholder, card.Value)
		assert.Empty(t, card.From)
	}
}

func TestKPICardWithoutSignInfo(t *testing.T) {
	result := &domain.CompareResponse{MetricsComparison: map[string]domain.MetricComparison{
		domain.MetricVisitors: {ComparisonValue: ptr(3928.0)},
	}}

	card := KPICards(result, false)[2]
	assert.Equal(t, CardReady, card.State)
	assert.Equal(t, "3,928", card.Value)
	assert.Equal(t, "from --", card.From)
	assert.Empty(t, card.Change)
	assert.Equal(t, ToneNeutral, card.Tone)
}

func TestRecommendationsFromInsights(t *testing.T) {
	recs := Recommendations(compareResult())

	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Number)
	assert.Equal(t, "Tighten the lead form", recs[0].Text)
	assert.Equal(t, 2, recs[1].Number)
	assert.Equal(t, "Reuse the winning creative", recs[1].Text)
}

func TestRecommendationsFallback(t *testing.T) {
	result := compareResult()
	result.Insights = result.Insights[:1]

	recs := Recommendations(result)
	require.Len(t, recs, 4)
	assert.Equal(t, "Analyze the performance differences between campaigns to identify optimization opportunities", recs[0].Text)
	assert.Equal(t, "Review targeting and creative strategies from the better-performing campaign", recs[1].Text)
	assert.Equal(t, "Consider adjusting budget allocation based on performance insights", recs[2].Text)
	assert.Equal(t, "Implement A/B testing for creative variations to improve engagement rates", recs[3].Text)
	assert.Equal(t, 4, recs[3].Number)

	result.Insights = nil
	assert.Len(t, Recommendations(result), 4)
	assert.Nil(t, Recommendations(nil))
}

func TestComparePanelStates(t *testing.T) {
	panel := NewComparePanel(&holidayDecor, nil, nil, false)
	assert.Equal(t, PanelNoSelection, panel.State)
	assert.Nil(t, panel.Primary)

	panel = NewComparePanel(&holidayDecor, &summerOffice, compareResult(), true)
	assert.Equal(t, PanelAnalyzing, panel.State)
	assert.Equal(t, "Analyzing Campaigns...", panel.Heading)
}

func TestComparePanelPlaceholders(t *testing.T) {
	panel := NewComparePanel(&holidayDecor, &summerOffice, nil, false)

	assert.Equal(t, PanelReady, panel.State)
	assert.Equal(t, SummaryPlaceholder, panel.ExecutiveSummary)
	assert.Equal(t, KeyFindingPlaceholder, panel.KeyFinding)
	assert.Equal(t, PrimaryFactorPlaceholder, panel.PrimaryFactor)
	assert.Equal(t, Placeholder, panel.Primary.Displays)
	assert.Equal(t, Placeholder, panel.Comparison.Leads)
	assert.Empty(t, panel.Recommendations)
}

func TestComparePanelCampaignCards(t *testing.T) {
	panel := NewComparePanel(&holidayDecor, &summerOffice, compareResult(), false)

	primary := panel.Primary
	require.NotNil(t, primary)
	assert.Equal(t, "PRIMARY CAMPAIGN", primary.Label)
	assert.Equal(t, "A", primary.Badge)
	assert.Equal(t, "Holiday Home Decor", primary.Name)
	assert.Equal(t, "Baker, Williams and Stevens Furniture • 20 days", primary.Subtitle)
	assert.Equal(t, "2,438,018", primary.Displays)
	assert.Equal(t, "4,876", primary.Engagements)
	assert.Equal(t, "592", primary.Leads)

	comparison := panel.Comparison
	require.NotNil(t, comparison)
	assert.Equal(t, "COMPARISON CAMPAIGN", comparison.Label)
	assert.Equal(t, "B", comparison.Badge)
	assert.Equal(t, "Summer Office Furniture", comparison.Name)
	assert.Equal(t, "2,766,618", comparison.Displays)
	assert.Equal(t, "5,533", comparison.Engagements)
	assert.Equal(t, "274", comparison.Leads)

	assert.Equal(t, "Displays up, leads down", panel.KeyFinding)
	assert.Equal(t, "Weaker call to action", panel.PrimaryFactor)
	assert.Equal(t, "The comparison campaign reached more people but converted fewer.", panel.ExecutiveSummary)
	require.Len(t, panel.Insights, 1)
	assert.Equal(t, "💪", panel.Insights[0].Icon)
	assert.Len(t, panel.Recommendations, 2)
}

func TestCompareView(t *testing.T) {
	client := domain.Client{ClientID: 1004, ClientName: "Baker, Williams and Stevens Furniture", Industry: "Furniture"}
	state := usecase.CompareState{
		Client:           &client,
		Campaigns:        []domain.CampaignSummary{holidayDecor, summerOffice},
		Primary:          &holidayDecor,
		SimilarCampaigns: []domain.CampaignSummary{summerOffice},
		Comparison:       &summerOffice,
		Result:           compareResult(),
	}

	v := Compare(state)
	assert.Equal(t, "Baker, Williams and Stevens Furniture (ID: 1004, Furniture)", v.Client.Label)
	require.Len(t, v.Campaigns, 2)
	assert.Equal(t, "Holiday Home Decor (20 days)", v.Campaigns[0].Label)
	assert.Equal(t, int64(12356), v.Primary.ID)
	assert.Equal(t, "Summer Office Furniture (17 days)", v.Comparison.Label)
	assert.True(t, v.CanAnalyze)
	assert.Len(t, v.KPIs, 5)
	assert.Equal(t, PanelReady, v.Panel.State)
}

func TestCompareViewEmpty(t *testing.T) {
	v := Compare(usecase.CompareState{})

	assert.Nil(t, v.Client)
	assert.NotNil(t, v.Campaigns)
	assert.Empty(t, v.Campaigns)
	assert.Nil(t, v.Primary)
	assert.False(t, v.CanAnalyze)
	assert.Equal(t, PanelNoSelection, v.Panel.State)
}
