package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/viager/internal/domain"
)

// ConsoleFormatter prints a short offer summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.OfferReport) ([]byte, error) {
	var buf bytes.Buffer
	r := report.Result

	fmt.Fprintln(&buf, "VIAGER OFFER SUMMARY")
	fmt.Fprintln(&buf, "====================")
	if report.Offer.Reference != "" {
		fmt.Fprintf(&buf, "Reference: %s\n", report.Offer.Reference)
	}
	fmt.Fprintf(&buf, "Market Value: %s\n", FormatCurrency(report.Parameters.MarketValue))
	fmt.Fprintf(&buf, "Offer Price: %s\n", FormatCurrency(r.OfferPrice))
	fmt.Fprintf(&buf, "Lump Sum: %s (%s)\n", FormatCurrency(r.LumpSum), FormatFraction(r.LumpSumPercent))
	fmt.Fprintf(&buf, "Monthly: %s for %d years\n", FormatCurrency(r.Monthly), report.Parameters.ContractDuration)
	fmt.Fprintf(&buf, "Total Benefit: %s (%s of market value)\n", FormatCurrency(r.TotalBenefit), FormatPercentage(r.NetBenefitPercentage))
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter prints the full breakdown with assumptions and schedule
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.OfferReport) ([]byte, error) {
	var buf bytes.Buffer
	r := report.Result
	p := report.Parameters

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "PROVISIONAL VIAGER OFFER")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)

	if report.Offer.Reference != "" {
		fmt.Fprintf(&buf, "Reference:             %s\n", report.Offer.Reference)
	}
	if report.Offer.Address != "" {
		fmt.Fprintf(&buf, "Property:              %s\n", report.Offer.Address)
	}
	fmt.Fprintf(&buf, "Market Value:          %s\n", FormatCurrency(p.MarketValue))
	fmt.Fprintf(&buf, "Contract Duration:     %d years\n", p.ContractDuration)
	fmt.Fprintf(&buf, "Slider Position:       %d%%\n", p.SliderPercent)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PAYMENT BREAKDOWN")
	fmt.Fprintln(&buf, "-----------------")
	fmt.Fprintf(&buf, "  Offer Price:            %s\n", FormatCurrency(r.OfferPrice))
	fmt.Fprintf(&buf, "  Lump Sum Share:         %s\n", FormatFraction(r.LumpSumPercent))
	fmt.Fprintf(&buf, "  Lump Sum (unrounded):   %s\n", FormatCurrency(r.RawLumpSum))
	fmt.Fprintf(&buf, "  Lump Sum:               %s\n", FormatCurrency(r.LumpSum))
	fmt.Fprintf(&buf, "  Monthly Pool:           %s\n", FormatCurrency(r.MonthlyTotal))
	fmt.Fprintf(&buf, "  Monthly Payment:        %s\n", FormatCurrency(r.Monthly))
	fmt.Fprintf(&buf, "  Total Monthly Payments: %s\n", FormatCurrency(r.TotalMonthlyPayments))
	fmt.Fprintf(&buf, "  TOTAL BENEFIT:          %s\n", FormatCurrency(r.TotalBenefit))
	fmt.Fprintf(&buf, "  Net Benefit:            %s of market value\n", FormatPercentage(r.NetBenefitPercentage))
	fmt.Fprintf(&buf, "  Upfront Balance:        %s of offer price\n", FormatPercentage(r.BalancePercent))
	fmt.Fprintln(&buf)

	if len(report.Schedule) > 0 {
		writeScheduleTable(&buf, report.Schedule)
	}
	return buf.Bytes(), nil
}

func writeScheduleTable(buf *bytes.Buffer, rows []domain.ScheduleRow) {
	fmt.Fprintln(buf, "SLIDER SCHEDULE")
	fmt.Fprintln(buf, strings.Repeat("=", 78))
	fmt.Fprintf(buf, "%-7s %-9s %-16s %-12s %-18s %-10s\n", "Slider", "Share", "Lump Sum", "Monthly", "Total Benefit", "Net %")
	fmt.Fprintln(buf, strings.Repeat("-", 78))
	for _, row := range rows {
		r := row.Result
		fmt.Fprintf(buf, "%-7s %-9s %-16s %-12s %-18s %-10s\n",
			fmt.Sprintf("%d%%", row.SliderPercent),
			FormatFraction(r.LumpSumPercent),
			FormatCurrency(r.LumpSum),
			FormatCurrency(r.Monthly),
			FormatCurrency(r.TotalBenefit),
			FormatPercentage(r.NetBenefitPercentage))
	}
	fmt.Fprintln(buf)
}
