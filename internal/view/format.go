package view

import (
	"fmt"
	"math"
	"strings"

	"campaigndash/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown wherever a number is missing.
const Placeholder = "--"

// built per call; callers run on concurrent handlers
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// CampaignName falls back to "Campaign <id>" for unnamed campaigns.
func CampaignName(c domain.CampaignSummary) string {
	if c.Name != nil && *c.Name != "" {
		return *c.Name
	}
	return fmt.Sprintf("Campaign %d", c.CampaignID)
}

func Duration(days *int64) string {
	switch {
	case days == nil || *days == 0:
		return "Unknown duration"
	case *days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", *days)
	}
}

// CampaignLabel is the dropdown text, e.g. "Holiday Home Decor (20 days)".
func CampaignLabel(c domain.CampaignSummary) string {
	return fmt.Sprintf("%s (%s)", CampaignName(c), Duration(c.DurationDays))
}

// ClientLabel is the dropdown text, e.g.
// "Baker, Williams and Stevens Furniture (ID: 1004, Furniture)".
func ClientLabel(c domain.Client) string {
	return fmt.Sprintf("%s (ID: %d, %s)", c.ClientName, c.ClientID, c.Industry)
}

// Number groups thousands the way the dashboard shows counts. Nil is
// rendered as Placeholder; zero is a real value.
func Number(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return Placeholder
	}
	if *v == math.Trunc(*v) && math.Abs(*v) < 1e15 {
		return printer().Sprintf("%d", int64(*v))
	}
	return printer().Sprint(number.Decimal(*v, number.MaxFractionDigits(3)))
}

func Count(n int64) string {
	return printer().Sprintf("%d", n)
}

// ChangeText renders a KPI delta such as "+13.5%" or "-0.5%". The sign
// follows isPositive as reported by the backend.
func ChangeText(changePercent float64, isPositive bool) string {
	sign := ""
	if isPositive && changePercent >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, changePercent)
}

func Percentile(p float64) string {
	return fmt.Sprintf("%.1fth percentile", p)
}

func InsightIcon(t domain.InsightType) string {
	switch t {
	case domain.InsightStrength:
		return "💪"
	case domain.InsightWeakness:
		return "⚠️"
	case domain.InsightOpportunity:
		return "🎯"
	case domain.InsightRecommendation:
		return "💡"
	case domain.InsightObservation:
		return "📊"
	default:
		return "📄"
	}
}

// MetricTitle turns a backend metric name into a heading.
func MetricTitle(name string) string {
	switch name {
	case domain.MetricAdDisplays:
		return "Ad Displays"
	case "combined_social_ctr", "ctr":
		return "Click-Through Rate (CTR)"
	case "leads_per_1000":
		return "Leads per 1000"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
