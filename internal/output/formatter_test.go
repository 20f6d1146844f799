package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestReport(scheduleStep int) *domain.OfferReport {
	offer := domain.Offer{
		Reference:        "VG-2031",
		Address:          "12 rue des Lilas, 69003 Lyon",
		MarketValue:      decimal.NewFromInt(500000),
		ContractDuration: 20,
		SliderPercent:    50,
	}
	return calculation.NewOfferCalculator().Report(offer, offer.SliderPercent, scheduleStep)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "€0.00"},
		{"999", "€999.00"},
		{"1000", "€1,000.00"},
		{"400000", "€400,000.00"},
		{"1234567.891", "€1,234,567.89"},
		{"-1234.5", "-€1,234.50"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "80.00%", FormatPercentage(decimal.NewFromInt(80)))
	assert.Equal(t, "25.00%", FormatFraction(decimal.NewFromFloat(0.25)))
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.OfferReport
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *domain.OfferReport) ([]byte, error) {
			received = report
			return []byte("test output"), nil
		},
	}

	report := buildTestReport(0)
	out, err := formatter.Format(report)

	require.NoError(t, err)
	assert.Equal(t, "test-formatter", formatter.Name())
	assert.Same(t, report, received, "Should pass the report through")
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *domain.OfferReport) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(0), "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "viager_offer_VG-2031_"), "Should carry the offer reference")
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(report *domain.OfferReport) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, buildTestReport(0), "txt")
	assert.ErrorContains(t, err, "formatter error")
	assert.Empty(t, filename)
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(0))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "VIAGER OFFER SUMMARY")
	assert.Contains(t, content, "Reference: VG-2031")
	assert.Contains(t, content, "Offer Price: €400,000.00")
	assert.Contains(t, content, "Lump Sum: €100,000.00 (25.00%)")
	assert.Contains(t, content, "Monthly: €1,250.00 for 20 years")
	assert.Contains(t, content, "Total Benefit: €400,000.00 (80.00% of market value)")
}

func TestConsoleVerboseFormatter_Format(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport(50))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "PROVISIONAL VIAGER OFFER")
	assert.Contains(t, content, "12 rue des Lilas")
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, DefaultAssumptions[0])
	assert.Contains(t, content, "Upfront Balance:        25.00% of offer price")
	assert.Contains(t, content, "SLIDER SCHEDULE")
	assert.Contains(t, content, "€160,000.00", "Should list the slider 100 lump sum")
}

func TestConsoleVerboseFormatter_NoSchedule(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport(0))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "SLIDER SCHEDULE")
}

func TestCSVSummarizer_Format(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(0))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Reference", records[0][0])
	assert.Equal(t, []string{"VG-2031", "500000.00", "20", "50", "400000.00", "0.2500", "100000.00", "1250.00", "300000.00", "400000.00", "80.00", "25.00"}, records[1])
}

func TestScheduleCSVFormatter_Format(t *testing.T) {
	out, err := ScheduleCSVFormatter{}.Format(buildTestReport(25))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6, "header plus slider 0, 25, 50, 75, 100")
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "40000.00", records[1][2])
	assert.Equal(t, "100", records[5][0])
	assert.Equal(t, "160000.00", records[5][2])
}

func TestScheduleCSVFormatter_FallsBackToCurrentResult(t *testing.T) {
	out, err := ScheduleCSVFormatter{}.Format(buildTestReport(0))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "50", records[1][0])
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(0))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "offer")
	assert.Contains(t, decoded, "result")
	assert.NotContains(t, decoded, "schedule", "Empty schedule should be omitted")

	result := decoded["result"].(map[string]any)
	assert.Equal(t, "100000", result["lump_sum"])
}

func TestHTMLFormatter_Format(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(10))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Provisional Viager Offer VG-2031</title>")
	assert.Contains(t, content, "€100,000.00")
	assert.Contains(t, content, "Slider Schedule")
	assert.Contains(t, content, `class="current"`)
}

func TestChartFormatter_Format(t *testing.T) {
	out, err := ChartFormatter{}.Format(buildTestReport(25))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "echarts")
	assert.Contains(t, content, "Viager offer VG-2031")
	assert.Contains(t, content, "Lump sum")
	assert.Contains(t, content, "Monthly payment")
	assert.Contains(t, content, "160000")
}

func TestChartFormatter_ChartsFullRangeWithoutSchedule(t *testing.T) {
	out, err := ChartFormatter{}.Format(buildTestReport(0))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, `"95%"`)
	assert.Contains(t, content, `"100%"`)
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "console", GetFormatterByName("verbose").Name())
	assert.Equal(t, "console", GetFormatterByName(" Console-Verbose ").Name())
	assert.Equal(t, "console-lite", GetFormatterByName("text").Name())
	assert.Nil(t, GetFormatterByName("non-existent"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"chart", "console", "console-lite", "csv", "detailed-csv", "html", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}
