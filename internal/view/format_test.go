package view

import (
	"testing"

	"campaigndash/internal/domain"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCampaignName(t *testing.T) {
	assert.Equal(t, "Holiday Home Decor", CampaignName(domain.CampaignSummary{CampaignID: 12356, Name: ptr("Holiday Home Decor")}))
	assert.Equal(t, "Campaign 12356", CampaignName(domain.CampaignSummary{CampaignID: 12356}))
	assert.Equal(t, "Campaign 12356", CampaignName(domain.CampaignSummary{CampaignID: 12356, Name: ptr("")}))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		days *int64
		want string
	}{
		{"missing", nil, "Unknown duration"},
		{"zero", ptr[int64](0), "Unknown duration"},
		{"one", ptr[int64](1), "1 day"},
		{"many", ptr[int64](20), "20 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.days))
		})
	}
}

func TestLabels(t *testing.T) {
	c := domain.CampaignSummary{CampaignID: 12356, Name: ptr("Holiday Home Decor"), DurationDays: ptr[int64](20)}
	assert.Equal(t, "Holiday Home Decor (20 days)", CampaignLabel(c))

	client := domain.Client{ClientID: 1004, ClientName: "Baker, Williams and Stevens Furniture", Industry: "Furniture"}
	assert.Equal(t, "Baker, Williams and Stevens Furniture (ID: 1004, Furniture)", ClientLabel(client))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "2,766,618", Number(ptr(2766618.0)))
	assert.Equal(t, "274", Number(ptr(274.0)))
	assert.Equal(t, "0", Number(ptr(0.0)))
	assert.Equal(t, Placeholder, Number(nil))
	assert.Equal(t, "5,533", Count(5533))
}

func TestChangeText(t *testing.T) {
	assert.Equal(t, "+13.5%", ChangeText(13.5, true))
	assert.Equal(t, "-0.5%", ChangeText(-0.5, false))
	assert.Equal(t, "-53.7%", ChangeText(-53.66, false))
	// a positive decrease keeps its own sign
	assert.Equal(t, "-12.0%", ChangeText(-12, true))
	assert.Equal(t, "4.0%", ChangeText(4, false))
}

func TestPercentile(t *testing.T) {
	assert.Equal(t, "55.0th percentile", Percentile(55.0))
	assert.Equal(t, "95.0th percentile", Percentile(95))
}

func TestInsightIcon(t *testing.T) {
	assert.Equal(t, "💡", InsightIcon(domain.InsightRecommendation))
	assert.Equal(t, "💪", InsightIcon(domain.InsightStrength))
	assert.Equal(t, "📄", InsightIcon("unknown"))
}

func TestMetricTitle(t *testing.T) {
	assert.Equal(t, "Ad Displays", MetricTitle(domain.MetricAdDisplays))
	assert.Equal(t, "Engagements", MetricTitle(domain.MetricEngagements))
	assert.Equal(t, "Leads per 1000", MetricTitle("leads_per_1000"))
	assert.Equal(t, "Click-Through Rate (CTR)", MetricTitle("combined_social_ctr"))
	assert.Equal(t, "Total Leads", MetricTitle("total_leads"))
}
