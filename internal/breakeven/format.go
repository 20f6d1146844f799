package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/viager/internal/output"
)

// TableFormatter formats solver results for the console
type TableFormatter struct{}

// Format generates the console report for a solve
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("TARGET SLIDER POSITION\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Target:          %s %s\n", tf.targetLabel(result.Target), output.FormatCurrency(result.Amount)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result)))
	sb.WriteString(fmt.Sprintf("Evaluations:     %d\n", result.Iterations))
	sb.WriteString("\n")

	sb.WriteString("SLIDER\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Position:        %d%%\n", result.SliderPercent))
	sb.WriteString(fmt.Sprintf("Achieved:        %s (%s)\n", output.FormatCurrency(result.Achieved), tf.formatDifference(result)))
	sb.WriteString("\n")

	sb.WriteString("OFFER AT THIS POSITION\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Lump Sum:        %s (%s)\n", output.FormatCurrency(result.Offer.LumpSum), output.FormatFraction(result.Offer.LumpSumPercent)))
	sb.WriteString(fmt.Sprintf("Monthly:         %s\n", output.FormatCurrency(result.Offer.Monthly)))
	sb.WriteString(fmt.Sprintf("Total Benefit:   %s\n", output.FormatCurrency(result.Offer.TotalBenefit)))

	return sb.String()
}

func (tf *TableFormatter) targetLabel(t Target) string {
	if t == TargetLumpSum {
		return "lump sum"
	}
	return "monthly payment"
}

func (tf *TableFormatter) formatStatus(r *Result) string {
	switch {
	case r.Exact:
		return "matched exactly"
	case r.InRange:
		return "closest position (payments are rounded)"
	default:
		return "out of reach, nearest bound shown"
	}
}

func (tf *TableFormatter) formatDifference(r *Result) string {
	if r.Difference.IsZero() {
		return "no difference"
	}
	if r.Difference.IsPositive() {
		return "+" + output.FormatCurrency(r.Difference)
	}
	return output.FormatCurrency(r.Difference)
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}
