package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/viager/internal/domain"
)

// HTMLFormatter produces a standalone HTML offer sheet
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/offer.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("offer").Funcs(template.FuncMap{
	"curr":     FormatCurrency,
	"pct":      FormatPercentage,
	"fraction": FormatFraction,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.OfferReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.OfferReport
		Assumptions []string
		Generated   string
	}{report, DefaultAssumptions, time.Now().Format("2006-01-02 15:04:05")}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
