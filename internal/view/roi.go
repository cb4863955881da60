package view

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveCost = errors.New("campaign cost must be greater than zero")
	ErrNegativeRevenue = errors.New("revenue cannot be negative")
)

var hundred = decimal.NewFromInt(100)

type ROIRequest struct {
	Cost    decimal.Decimal `json:"cost"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ROIResult struct {
	Cost             string `json:"cost"`
	Revenue          string `json:"revenue"`
	Profit           string `json:"profit"`
	ROIPercentage    string `json:"roi_percentage"`
	Rating           string `json:"rating"`
	ProfitMargin     string `json:"profit_margin"`
	RevenueMultiple  string `json:"revenue_multiple"`
	RevenuePerDollar string `json:"revenue_per_dollar"`
	Explanation      string `json:"explanation"`
}

// CalculateROI derives profit and return on investment from a campaign's
// cost and the revenue it generated.
func CalculateROI(req ROIRequest) (*ROIResult, error) {
	if !req.Cost.IsPositive() {
		return nil, ErrNonPositiveCost
	}
	if req.Revenue.IsNegative() {
		return nil, ErrNegativeRevenue
	}

	profit := req.Revenue.Sub(req.Cost)
	roi := profit.Div(req.Cost).Mul(hundred)
	multiple := req.Revenue.Div(req.Cost)

	margin := Placeholder
	if req.Revenue.IsPositive() {
		margin = profit.Div(req.Revenue).Mul(hundred).StringFixed(1) + "%"
	}

	result := &ROIResult{
		Cost:             Currency(req.Cost),
		Revenue:          Currency(req.Revenue),
		Profit:           Currency(profit),
		ROIPercentage:    roi.StringFixed(1) + "%",
		Rating:           roiRating(roi),
		ProfitMargin:     margin,
		RevenueMultiple:  multiple.StringFixed(1) + "x",
		RevenuePerDollar: "$" + multiple.StringFixed(2),
	}
	result.Explanation = fmt.Sprintf("ROI calculated: %s revenue - %s cost = %s profit (%s ROI)",
		result.Revenue, result.Cost, result.Profit, result.ROIPercentage)
	return result, nil
}

func roiRating(roi decimal.Decimal) string {
	switch {
	case roi.GreaterThanOrEqual(hundred):
		return "Excellent ROI"
	case roi.GreaterThanOrEqual(decimal.NewFromInt(25)):
		return "Good ROI"
	case !roi.IsNegative():
		return "Modest ROI"
	default:
		return "Negative ROI"
	}
}

// Currency renders an amount in dollars with grouped thousands and at most
// two decimals, e.g. "$25,000" or "-$1,234.5".
func Currency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	abs := amount.Abs().Round(2)
	whole := abs.Truncate(0)

	out := sign + "$" + Count(whole.IntPart())
	if frac := abs.Sub(whole); !frac.IsZero() {
		// "0.5" -> ".5"
		out += frac.String()[1:]
	}
	return out
}
