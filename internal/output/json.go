package output

import (
	"encoding/json"

	"github.com/rgehrsitz/viager/internal/domain"
)

// JSONFormatter emits the report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.OfferReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
