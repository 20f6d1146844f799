package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the balance slider position at which an offer pays a
// required amount
type Solver struct {
	Calc *calculation.OfferCalculator
}

// NewSolver creates a new slider solver
func NewSolver(calc *calculation.OfferCalculator) *Solver {
	if calc == nil {
		calc = calculation.NewOfferCalculator()
	}
	return &Solver{Calc: calc}
}

// Solve returns the slider position within the constraints whose payment
// comes closest to req.Amount. Ties go to the lower slider position. When
// the amount lies outside what the bounds can pay, the nearest bound is
// returned with InRange false. Zero constraints mean the full range.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Constraints == (Constraints{}) {
		req.Constraints = DefaultConstraints()
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Offer.ContractDuration < 1 || !req.Offer.MarketValue.IsPositive() {
		return nil, &SolverError{Operation: "solve", Message: "offer needs a positive market value and duration"}
	}
	if req.Amount.IsNegative() {
		return nil, &SolverError{Operation: "solve", Message: "target amount cannot be negative"}
	}

	var pick func(domain.OfferCalculationResult) decimal.Decimal
	// increasing reports whether the picked amount grows with the slider
	var increasing bool
	switch req.Target {
	case TargetLumpSum:
		pick = func(r domain.OfferCalculationResult) decimal.Decimal { return r.LumpSum }
		increasing = true
	case TargetMonthly:
		pick = func(r domain.OfferCalculationResult) decimal.Decimal { return r.Monthly }
	default:
		return nil, &SolverError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}

	iterations := 0
	eval := func(slider int) domain.OfferCalculationResult {
		iterations++
		return s.Calc.Compute(req.Offer.Parameters(slider))
	}
	// reached reports whether slider pays at least (lump sum) or at most
	// (monthly) the target, which is monotone in the slider
	reached := func(r domain.OfferCalculationResult) bool {
		if increasing {
			return pick(r).GreaterThanOrEqual(req.Amount)
		}
		return pick(r).LessThanOrEqual(req.Amount)
	}

	lo, hi := req.Constraints.MinSlider, req.Constraints.MaxSlider
	loResult := eval(lo)
	if reached(loResult) {
		return s.result(req, lo, loResult, pick, iterations, pick(loResult).Equal(req.Amount)), nil
	}
	hiResult := eval(hi)
	if !reached(hiResult) {
		return s.result(req, hi, hiResult, pick, iterations, false), nil
	}

	// invariant: lo not reached, hi reached
	for hi-lo > 1 {
		select {
		case <-ctx.Done():
			return nil, &SolverError{Operation: "solve", Message: "cancelled", Cause: ctx.Err()}
		default:
		}
		mid := (lo + hi) / 2
		r := eval(mid)
		if reached(r) {
			hi, hiResult = mid, r
		} else {
			lo, loResult = mid, r
		}
	}

	below := pick(loResult).Sub(req.Amount).Abs()
	above := pick(hiResult).Sub(req.Amount).Abs()
	if above.LessThan(below) {
		return s.result(req, hi, hiResult, pick, iterations, true), nil
	}

	// hi is already the lowest reaching position, but lo is the highest
	// position of its rounding plateau: find where that plateau starts
	plateau := pick(loResult)
	left := req.Constraints.MinSlider
	if leftResult := eval(left); pick(leftResult).Equal(plateau) {
		return s.result(req, left, leftResult, pick, iterations, true), nil
	}
	// invariant: left is off the plateau, lo is on it
	for lo-left > 1 {
		select {
		case <-ctx.Done():
			return nil, &SolverError{Operation: "solve", Message: "cancelled", Cause: ctx.Err()}
		default:
		}
		mid := (left + lo) / 2
		r := eval(mid)
		if pick(r).Equal(plateau) {
			lo, loResult = mid, r
		} else {
			left = mid
		}
	}
	return s.result(req, lo, loResult, pick, iterations, true), nil
}

func (s *Solver) result(req Request, slider int, r domain.OfferCalculationResult,
	pick func(domain.OfferCalculationResult) decimal.Decimal, iterations int, inRange bool) *Result {
	achieved := pick(r)
	diff := achieved.Sub(req.Amount)
	return &Result{
		Target:        req.Target,
		Amount:        req.Amount,
		SliderPercent: slider,
		Offer:         r,
		Achieved:      achieved,
		Difference:    diff,
		Exact:         diff.IsZero(),
		InRange:       inRange,
		Iterations:    iterations,
	}
}

// ParseTarget converts a CLI name into a Target
func ParseTarget(name string) (Target, error) {
	switch Target(name) {
	case TargetMonthly, TargetLumpSum:
		return Target(name), nil
	case "lump-sum", "lump":
		return TargetLumpSum, nil
	}
	return "", &SolverError{Operation: "parse_target", Message: fmt.Sprintf("unknown target %q (use monthly or lump_sum)", name)}
}
