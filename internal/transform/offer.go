package transform

import (
	"fmt"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
)

// SetSlider moves the balance slider to a fixed position
type SetSlider struct {
	Percent int
}

func (t *SetSlider) Name() string { return "set_slider" }

func (t *SetSlider) Description() string {
	return fmt.Sprintf("Move the balance slider to %d%%", t.Percent)
}

func (t *SetSlider) Validate(base domain.Offer) error {
	if t.Percent < 0 || t.Percent > 100 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("slider position %d outside 0-100", t.Percent), nil)
	}
	return nil
}

func (t *SetSlider) Apply(base domain.Offer) (domain.Offer, error) {
	base.SliderPercent = t.Percent
	return base, nil
}

// ShiftSlider moves the balance slider by a number of points
type ShiftSlider struct {
	Points int
}

func (t *ShiftSlider) Name() string { return "shift_slider" }

func (t *ShiftSlider) Description() string {
	return fmt.Sprintf("Shift the balance slider by %+d points", t.Points)
}

func (t *ShiftSlider) Validate(base domain.Offer) error {
	next := base.SliderPercent + t.Points
	if next < 0 || next > 100 {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("slider %d shifted by %+d leaves 0-100", base.SliderPercent, t.Points), nil)
	}
	return nil
}

func (t *ShiftSlider) Apply(base domain.Offer) (domain.Offer, error) {
	base.SliderPercent += t.Points
	return base, nil
}

// SetDuration replaces the contract duration
type SetDuration struct {
	Years int
}

func (t *SetDuration) Name() string { return "set_duration" }

func (t *SetDuration) Description() string {
	return fmt.Sprintf("Pay the monthly amount over %d years", t.Years)
}

func (t *SetDuration) Validate(base domain.Offer) error {
	if t.Years < 1 {
		return NewTransformError(t.Name(), "validate", "contract duration must be at least 1 year", nil)
	}
	return nil
}

func (t *SetDuration) Apply(base domain.Offer) (domain.Offer, error) {
	base.ContractDuration = t.Years
	return base, nil
}

// ExtendDuration lengthens (or with negative Years shortens) the contract
type ExtendDuration struct {
	Years int
}

func (t *ExtendDuration) Name() string { return "extend_duration" }

func (t *ExtendDuration) Description() string {
	if t.Years < 0 {
		return fmt.Sprintf("Shorten the contract by %d years", -t.Years)
	}
	return fmt.Sprintf("Extend the contract by %d years", t.Years)
}

func (t *ExtendDuration) Validate(base domain.Offer) error {
	if base.ContractDuration+t.Years < 1 {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("%d years changed by %+d leaves less than 1 year", base.ContractDuration, t.Years), nil)
	}
	return nil
}

func (t *ExtendDuration) Apply(base domain.Offer) (domain.Offer, error) {
	base.ContractDuration += t.Years
	return base, nil
}

// ScaleMarketValue revalues the property by a percentage (-5 for a 5% drop)
type ScaleMarketValue struct {
	Percent decimal.Decimal
}

func (t *ScaleMarketValue) Name() string { return "scale_market_value" }

func (t *ScaleMarketValue) Description() string {
	return fmt.Sprintf("Revalue the property by %s%%", t.Percent.StringFixed(1))
}

func (t *ScaleMarketValue) factor() decimal.Decimal {
	return decimal.NewFromInt(1).Add(t.Percent.Div(decimal.NewFromInt(100)))
}

func (t *ScaleMarketValue) Validate(base domain.Offer) error {
	if !base.MarketValue.Mul(t.factor()).IsPositive() {
		return NewTransformError(t.Name(), "validate", "market value must stay positive", nil)
	}
	return nil
}

func (t *ScaleMarketValue) Apply(base domain.Offer) (domain.Offer, error) {
	base.MarketValue = base.MarketValue.Mul(t.factor())
	return base, nil
}
