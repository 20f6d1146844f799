package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/viager/internal/domain"
)

// CSVSummarizer writes a header and a single row for the computed offer
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.OfferReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Reference", "MarketValue", "ContractDuration", "SliderPercent", "OfferPrice", "LumpSumPercent", "LumpSum", "Monthly", "TotalMonthlyPayments", "TotalBenefit", "NetBenefitPercentage", "BalancePercent"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	p := report.Parameters
	r := report.Result
	row := []string{
		report.Offer.Reference,
		p.MarketValue.StringFixed(2),
		strconv.Itoa(p.ContractDuration),
		strconv.Itoa(p.SliderPercent),
		r.OfferPrice.StringFixed(2),
		r.LumpSumPercent.StringFixed(4),
		r.LumpSum.StringFixed(2),
		r.Monthly.StringFixed(2),
		r.TotalMonthlyPayments.StringFixed(2),
		r.TotalBenefit.StringFixed(2),
		r.NetBenefitPercentage.StringFixed(2),
		r.BalancePercent.StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ScheduleCSVFormatter writes one row per schedule position
type ScheduleCSVFormatter struct{}

func (s ScheduleCSVFormatter) Name() string { return "detailed-csv" }

func (s ScheduleCSVFormatter) Format(report *domain.OfferReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"SliderPercent", "LumpSumPercent", "LumpSum", "Monthly", "TotalMonthlyPayments", "TotalBenefit", "NetBenefitPercentage", "BalancePercent"}); err != nil {
		return nil, err
	}
	rows := report.Schedule
	if len(rows) == 0 {
		rows = []domain.ScheduleRow{{SliderPercent: report.Parameters.SliderPercent, Result: report.Result}}
	}
	for _, row := range rows {
		r := row.Result
		if err := w.Write([]string{
			strconv.Itoa(row.SliderPercent),
			r.LumpSumPercent.StringFixed(4),
			r.LumpSum.StringFixed(2),
			r.Monthly.StringFixed(2),
			r.TotalMonthlyPayments.StringFixed(2),
			r.TotalBenefit.StringFixed(2),
			r.NetBenefitPercentage.StringFixed(2),
			r.BalancePercent.StringFixed(2),
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
