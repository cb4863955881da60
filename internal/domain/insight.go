package domain

type InsightType string

const (
	InsightStrength       InsightType = "strength"
	InsightWeakness       InsightType = "weakness"
	InsightOpportunity    InsightType = "opportunity"
	InsightRecommendation InsightType = "recommendation"
	InsightObservation    InsightType = "observation"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// single AI-generated observation
type AnalysisInsight struct {
	Type           InsightType    `json:"type"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	SupportingData map[string]any `json:"supporting_data,omitempty"`
	Priority       *Priority      `json:"priority,omitempty"`
}

// FilterInsights keeps the insights of type t, in order.
func FilterInsights(insights []AnalysisInsight, t InsightType) []AnalysisInsight {
	var out []AnalysisInsight
	for _, insight := range insights {
		if insight.Type == t {
			out = append(out, insight)
		}
	}
	return out
}
