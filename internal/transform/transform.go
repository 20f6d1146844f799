package transform

import (
	"fmt"

	"github.com/rgehrsitz/viager/internal/domain"
)

// OfferTransform defines the interface for all offer transformations.
// Transforms are composable what-if edits of an offer used by offer
// comparison.
type OfferTransform interface {
	// Apply returns a modified copy of base.
	Apply(base domain.Offer) (domain.Offer, error)

	// Name returns a short identifier for this transform (e.g., "set_slider").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base domain.Offer) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one. The base offer is never modified.
func ApplyTransforms(base domain.Offer, transforms []OfferTransform) (domain.Offer, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return domain.Offer{}, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return domain.Offer{}, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return domain.Offer{}, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
