package breakeven

import (
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
)

// Target defines which payment the solver matches
type Target string

const (
	TargetMonthly Target = "monthly"  // match a required monthly income
	TargetLumpSum Target = "lump_sum" // match a required upfront amount
)

// Constraints bound the slider positions the solver may return
type Constraints struct {
	MinSlider int `json:"min_slider"`
	MaxSlider int `json:"max_slider"`
}

// DefaultConstraints allows the full slider range
func DefaultConstraints() Constraints {
	return Constraints{MinSlider: 0, MaxSlider: 100}
}

// Validate checks the slider bounds
func (c Constraints) Validate() error {
	if c.MinSlider < 0 || c.MaxSlider > 100 {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "slider bounds must be between 0 and 100",
		}
	}
	if c.MinSlider > c.MaxSlider {
		return &SolverError{
			Operation: "validate_constraints",
			Message:   "min_slider cannot be greater than max_slider",
		}
	}
	return nil
}

// Request describes one solve
type Request struct {
	Offer       domain.Offer
	Target      Target
	Amount      decimal.Decimal
	Constraints Constraints
}

// Result is the slider position whose payments come closest to the target
type Result struct {
	Target        Target                        `json:"target"`
	Amount        decimal.Decimal               `json:"amount"`
	SliderPercent int                           `json:"slider_percent"`
	Offer         domain.OfferCalculationResult `json:"offer"`
	Achieved      decimal.Decimal               `json:"achieved"`
	Difference    decimal.Decimal               `json:"difference"` // achieved - amount
	Exact         bool                          `json:"exact"`
	InRange       bool                          `json:"in_range"` // false when the target lies beyond the bounds
	Iterations    int                           `json:"iterations"`
}

// SolverError represents errors from the slider solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
