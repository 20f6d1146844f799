package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/transform"
)

// CompareEngine orchestrates offer comparison
type CompareEngine struct {
	Calc              *calculation.OfferCalculator
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calc *calculation.OfferCalculator) *CompareEngine {
	if calc == nil {
		calc = calculation.NewOfferCalculator()
	}
	return &CompareEngine{
		Calc:              calc,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // built-in template names
	Transforms []string // ad-hoc "name:key=value" transform specs
}

// Compare evaluates base at its own slider position against each template
// and transform variant
func (ce *CompareEngine) Compare(ctx context.Context, base domain.Offer, options CompareOptions) (*ComparisonSet, error) {
	if base.ContractDuration < 1 {
		return nil, fmt.Errorf("base offer %s: contract duration must be at least 1 year", base.Reference)
	}
	baseResult := ce.evaluate(base, base.Reference, "")

	var alternatives []ComparisonResult
	add := func(name, description string, transforms []transform.OfferTransform) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		variant, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
		alt := ce.MetricsCalculator.CalculateComparison(ce.evaluate(variant, name, description), baseResult)
		alternatives = append(alternatives, alt)
		return nil
	}

	for _, name := range options.Templates {
		tmpl, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		if err := add(tmpl.Name, tmpl.Description, tmpl.Transforms); err != nil {
			return nil, err
		}
	}
	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		if err := add(spec, tr.Description(), []transform.OfferTransform{tr}); err != nil {
			return nil, err
		}
	}

	return ce.finish(base.Reference, baseResult, alternatives), nil
}

// CompareOffers compares distinct offers of a configuration, each at its
// own slider position, against the first reference
func (ce *CompareEngine) CompareOffers(ctx context.Context, config *domain.Configuration, baseRef string, otherRefs []string) (*ComparisonSet, error) {
	base, ok := config.FindOffer(baseRef)
	if !ok {
		return nil, fmt.Errorf("base offer %s not found in configuration", baseRef)
	}
	baseResult := ce.evaluate(*base, base.Reference, base.Address)

	alternatives := make([]ComparisonResult, 0, len(otherRefs))
	for _, ref := range otherRefs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		offer, ok := config.FindOffer(ref)
		if !ok {
			return nil, fmt.Errorf("offer %s not found in configuration", ref)
		}
		alt := ce.MetricsCalculator.CalculateComparison(ce.evaluate(*offer, offer.Reference, offer.Address), baseResult)
		alternatives = append(alternatives, alt)
	}

	return ce.finish(baseRef, baseResult, alternatives), nil
}

func (ce *CompareEngine) evaluate(offer domain.Offer, name, description string) ComparisonResult {
	return ComparisonResult{
		Name:        name,
		Description: description,
		Offer:       offer,
		Result:      ce.Calc.Compute(offer.Parameters(offer.SliderPercent)),
	}
}

func (ce *CompareEngine) finish(baseName string, base ComparisonResult, alternatives []ComparisonResult) *ComparisonSet {
	compSet := &ComparisonSet{
		BaseName:           baseName,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
