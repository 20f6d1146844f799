package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Offer",
		"Type",
		"Slider Percent",
		"Contract Duration",
		"Market Value",
		"Lump Sum",
		"Monthly",
		"Total Benefit",
		"Lump Sum Diff",
		"Monthly Diff",
		"Total Benefit Diff",
		"Total Benefit % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}
	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.Name,
		kind,
		strconv.Itoa(result.Offer.SliderPercent),
		strconv.Itoa(result.Offer.ContractDuration),
		result.Offer.MarketValue.StringFixed(2),
		result.Result.LumpSum.StringFixed(2),
		result.Result.Monthly.StringFixed(2),
		result.Result.TotalBenefit.StringFixed(2),
		result.LumpSumDiff.StringFixed(2),
		result.MonthlyDiff.StringFixed(2),
		result.TotalBenefitDiff.StringFixed(2),
		result.TotalBenefitPct.StringFixed(2),
	}
}
