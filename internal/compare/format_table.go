package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/viager/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing offers
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("VIAGER OFFER COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 86) + "\n")
	sb.WriteString(fmt.Sprintf("Base Offer: %s\n", compSet.BaseName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Offers File: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %6s %5s %*s %*s %*s\n",
		nameWidth, "Offer",
		"Slider", "Years",
		numWidth, "Lump Sum",
		numWidth, "Monthly",
		numWidth, "Total"))
	sb.WriteString(strings.Repeat("-", 86) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 86) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 86) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 86) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.Name))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Lump Sum:       %s\n", tf.formatDelta(alt.LumpSumDiff)))
			sb.WriteString(fmt.Sprintf("  Monthly:        %s\n", tf.formatDelta(alt.MonthlyDiff)))
			sb.WriteString(fmt.Sprintf("  Total:          %s (%s%%)\n",
				tf.formatDelta(alt.TotalBenefitDiff), alt.TotalBenefitPct.StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 86) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}
	return fmt.Sprintf("%-*s %5d%% %5d %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		result.Offer.SliderPercent,
		result.Offer.ContractDuration,
		numWidth, output.FormatCurrency(result.Result.LumpSum),
		numWidth, output.FormatCurrency(result.Result.Monthly),
		numWidth, output.FormatCurrency(result.Result.TotalBenefit))
}

// formatDelta prefixes increases with +
func (tf *TableFormatter) formatDelta(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+" + output.FormatCurrency(delta)
	}
	return output.FormatCurrency(delta)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of total differences
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseName))
	for _, alt := range compSet.AlternativeResults {
		change := "="
		if !alt.TotalBenefitDiff.IsZero() {
			change = tf.formatDelta(alt.TotalBenefitDiff)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.Name, change))
	}
	return sb.String()
}
