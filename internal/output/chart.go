package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/domain"
)

// defaultChartStep is the slider step charted when the report has no schedule
const defaultChartStep = 5

// ChartFormatter renders the payment split across slider positions as an
// interactive HTML page
type ChartFormatter struct{}

func (c ChartFormatter) Name() string { return "chart" }

func (c ChartFormatter) Format(report *domain.OfferReport) ([]byte, error) {
	rows := report.Schedule
	if len(rows) == 0 {
		rows = calculation.NewOfferCalculator().Schedule(
			report.Parameters.MarketValue, report.Parameters.ContractDuration, defaultChartStep)
	}

	xAxis := make([]string, len(rows))
	lumpSums := make([]opts.LineData, len(rows))
	monthly := make([]opts.LineData, len(rows))
	for i, row := range rows {
		xAxis[i] = strconv.Itoa(row.SliderPercent) + "%"
		lumpSums[i] = opts.LineData{Value: row.Result.LumpSum.InexactFloat64()}
		monthly[i] = opts.LineData{Value: row.Result.Monthly.InexactFloat64()}
	}

	title := "Viager offer"
	if report.Offer.Reference != "" {
		title += " " + report.Offer.Reference
	}
	subtitle := fmt.Sprintf("Market value %s over %d years, selected position %d%%",
		FormatCurrency(report.Parameters.MarketValue), report.Parameters.ContractDuration, report.Parameters.SliderPercent)

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		c.line(title, subtitle, "Lump sum", xAxis, lumpSums),
		c.line("", "", "Monthly payment", xAxis, monthly),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (c ChartFormatter) line(title, subtitle, series string, xAxis []string, data []opts.LineData) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Slider"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "EUR"}),
	)
	line.SetXAxis(xAxis).AddSeries(series, data)
	return line
}
