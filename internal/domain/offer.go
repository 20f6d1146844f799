package domain

import (
	"github.com/shopspring/decimal"
)

// Offer is a provisional viager offer for a single property
type Offer struct {
	Reference        string          `yaml:"reference" json:"reference"`
	Address          string          `yaml:"address,omitempty" json:"address,omitempty"`
	MarketValue      decimal.Decimal `yaml:"market_value" json:"market_value"`
	ContractDuration int             `yaml:"contract_duration" json:"contract_duration"` // years
	SliderPercent    int             `yaml:"slider_percent" json:"slider_percent"`       // initial slider position
	AdvisorPhone     string          `yaml:"advisor_phone,omitempty" json:"advisor_phone,omitempty"`
}

// Parameters returns the calculator input for the offer at the given slider position
func (o *Offer) Parameters(sliderPercent int) OfferParameters {
	return OfferParameters{
		MarketValue:      o.MarketValue,
		ContractDuration: o.ContractDuration,
		SliderPercent:    sliderPercent,
	}
}

// OfferParameters is the input of a single offer computation.
// SliderPercent is expected in [0,100] and ContractDuration >= 1; neither is
// enforced by the calculator.
type OfferParameters struct {
	MarketValue      decimal.Decimal `yaml:"market_value" json:"market_value"`
	ContractDuration int             `yaml:"contract_duration" json:"contract_duration"`
	SliderPercent    int             `yaml:"slider_percent" json:"slider_percent"`
}

// OfferCalculationResult holds every monetary field derived from OfferParameters
type OfferCalculationResult struct {
	OfferPrice           decimal.Decimal `json:"offer_price"`
	LumpSumPercent       decimal.Decimal `json:"lump_sum_percent"` // fraction, 0.10 - 0.40
	RawLumpSum           decimal.Decimal `json:"raw_lump_sum"`
	LumpSum              decimal.Decimal `json:"lump_sum"`      // rounded to 1,000
	MonthlyTotal         decimal.Decimal `json:"monthly_total"` // computed from the unrounded lump sum
	Monthly              decimal.Decimal `json:"monthly"`       // rounded to 50
	TotalMonthlyPayments decimal.Decimal `json:"total_monthly_payments"`
	TotalBenefit         decimal.Decimal `json:"total_benefit"`
	NetBenefitPercentage decimal.Decimal `json:"net_benefit_percentage"`
	BalancePercent       decimal.Decimal `json:"balance_percent"`
}

// ScheduleRow is one slider position of an offer schedule
type ScheduleRow struct {
	SliderPercent int                    `json:"slider_percent"`
	Result        OfferCalculationResult `json:"result"`
}

// OfferReport bundles an offer with a computed result for output formatting
type OfferReport struct {
	Offer      Offer                  `json:"offer"`
	Parameters OfferParameters        `json:"parameters"`
	Result     OfferCalculationResult `json:"result"`
	Schedule   []ScheduleRow          `json:"schedule,omitempty"`
}

// Configuration represents a complete offer input file
type Configuration struct {
	Offers []Offer `yaml:"offers" json:"offers"`
}

// FindOffer returns the offer with the given reference
func (c *Configuration) FindOffer(reference string) (*Offer, bool) {
	for i := range c.Offers {
		if c.Offers[i].Reference == reference {
			return &c.Offers[i], true
		}
	}
	return nil, false
}
