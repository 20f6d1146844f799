package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in offer templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []OfferTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if offers
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_lump_sum",
		Description: "Largest upfront lump sum (slider at 100%)",
		Transforms:  []OfferTransform{&SetSlider{Percent: 100}},
	})
	registry.Register(Template{
		Name:        "max_monthly",
		Description: "Largest monthly payment (slider at 0%)",
		Transforms:  []OfferTransform{&SetSlider{Percent: 0}},
	})
	registry.Register(Template{
		Name:        "balanced",
		Description: "Even split (slider at 50%)",
		Transforms:  []OfferTransform{&SetSlider{Percent: 50}},
	})

	registry.Register(Template{
		Name:        "shorter_5yr",
		Description: "Contract shortened by 5 years",
		Transforms:  []OfferTransform{&ExtendDuration{Years: -5}},
	})
	registry.Register(Template{
		Name:        "longer_5yr",
		Description: "Contract extended by 5 years",
		Transforms:  []OfferTransform{&ExtendDuration{Years: 5}},
	})

	registry.Register(Template{
		Name:        "value_down_5pct",
		Description: "Property revalued 5% lower",
		Transforms:  []OfferTransform{&ScaleMarketValue{Percent: decimal.NewFromInt(-5)}},
	})
	registry.Register(Template{
		Name:        "value_up_5pct",
		Description: "Property revalued 5% higher",
		Transforms:  []OfferTransform{&ScaleMarketValue{Percent: decimal.NewFromInt(5)}},
	})

	registry.Register(Template{
		Name:        "front_loaded_short",
		Description: "Largest lump sum over a contract 5 years shorter",
		Transforms: []OfferTransform{
			&SetSlider{Percent: 100},
			&ExtendDuration{Years: -5},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base offer
func ApplyTemplate(base domain.Offer, template Template) (domain.Offer, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}
	sb.WriteString("\nUsage:\n")
	sb.WriteString("  viager compare offers.yaml --ref VG-2031 --with max_lump_sum,shorter_5yr\n")
	sb.WriteString("  viager compare offers.yaml --ref VG-2031 --transform set_slider:percent=80\n")
	return sb.String()
}
