package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/viager/internal/domain"
)

// Formatter renders an offer report into bytes
type Formatter interface {
	Name() string
	Format(report *domain.OfferReport) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *domain.OfferReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.OfferReport) ([]byte, error) {
	return f.F(report)
}

var formatters = map[string]Formatter{
	"console-lite": ConsoleFormatter{},
	"console":      ConsoleVerboseFormatter{},
	"csv":          CSVSummarizer{},
	"detailed-csv": ScheduleCSVFormatter{},
	"json":         JSONFormatter{},
	"html":         HTMLFormatter{},
	"chart":        ChartFormatter{},
}

var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"text":            "console-lite",
	"schedule-csv":    "detailed-csv",
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil when there is none.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[name]; ok {
		name = alias
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases in sorted order
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted formats the report and writes it to
// viager_offer_<reference>_<timestamp>.<ext> in the working directory.
func WriteFormatted(f Formatter, report *domain.OfferReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	ref := report.Offer.Reference
	if ref == "" {
		ref = "adhoc"
	}
	filename := fmt.Sprintf("viager_offer_%s_%s.%s", ref, time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
