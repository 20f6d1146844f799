package compare

import (
	"fmt"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one offer variant with its computed payments
type ComparisonResult struct {
	Name        string                        `json:"name"`
	Description string                        `json:"description,omitempty"`
	Offer       domain.Offer                  `json:"offer"`
	Result      domain.OfferCalculationResult `json:"result"`

	// Comparison to base
	LumpSumDiff      decimal.Decimal `json:"lump_sum_diff"`
	MonthlyDiff      decimal.Decimal `json:"monthly_diff"`
	TotalBenefitDiff decimal.Decimal `json:"total_benefit_diff"`
	TotalBenefitPct  decimal.Decimal `json:"total_benefit_pct"`
}

// ComparisonSet is a base offer and the variants compared against it
type ComparisonSet struct {
	BaseName           string             `json:"base_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"config_path,omitempty"`
}

// MetricsCalculator derives the differences between variants
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateComparison fills the differences of variant against base
func (mc *MetricsCalculator) CalculateComparison(variant, base ComparisonResult) ComparisonResult {
	variant.LumpSumDiff = variant.Result.LumpSum.Sub(base.Result.LumpSum)
	variant.MonthlyDiff = variant.Result.Monthly.Sub(base.Result.Monthly)
	variant.TotalBenefitDiff = variant.Result.TotalBenefit.Sub(base.Result.TotalBenefit)

	if !base.Result.TotalBenefit.IsZero() {
		variant.TotalBenefitPct = variant.TotalBenefitDiff.
			Div(base.Result.TotalBenefit).
			Mul(decimal.NewFromInt(100))
	}
	return variant
}

// GenerateRecommendations names the variants that beat the base on each payment
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	best := func(value func(*ComparisonResult) decimal.Decimal) *ComparisonResult {
		winner := compSet.BaseResult
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if value(alt).GreaterThan(value(winner)) {
				winner = alt
			}
		}
		return winner
	}

	if w := best(func(r *ComparisonResult) decimal.Decimal { return r.Result.LumpSum }); w != compSet.BaseResult {
		recommendations = append(recommendations, fmt.Sprintf("Largest lump sum: %s pays %s more upfront",
			w.Name, output.FormatCurrency(w.LumpSumDiff)))
	}
	if w := best(func(r *ComparisonResult) decimal.Decimal { return r.Result.Monthly }); w != compSet.BaseResult {
		recommendations = append(recommendations, fmt.Sprintf("Largest monthly payment: %s pays %s more per month",
			w.Name, output.FormatCurrency(w.MonthlyDiff)))
	}
	if w := best(func(r *ComparisonResult) decimal.Decimal { return r.Result.TotalBenefit }); w != compSet.BaseResult {
		recommendations = append(recommendations, fmt.Sprintf("Highest total: %s pays %s more over the contract",
			w.Name, output.FormatCurrency(w.TotalBenefitDiff)))
	}

	return recommendations
}
