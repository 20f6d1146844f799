package calculation

import (
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// DiscountRate is the share of market value offered to the seller
	DiscountRate = decimal.NewFromFloat(0.80)
	// MinLumpSumPercent is the lump sum share at slider position 0
	MinLumpSumPercent = decimal.NewFromFloat(0.10)
	// MaxLumpSumPercent is the lump sum share at slider position 100
	MaxLumpSumPercent = decimal.NewFromFloat(0.40)

	LumpSumRoundingUnit = decimal.NewFromInt(1000)
	MonthlyRoundingUnit = decimal.NewFromInt(50)

	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	half    = decimal.NewFromFloat(0.5)
)

// OfferCalculator maps offer parameters to a lump sum / monthly payment split
type OfferCalculator struct {
	Logger Logger
}

// NewOfferCalculator creates a new offer calculator
func NewOfferCalculator() *OfferCalculator {
	return &OfferCalculator{Logger: NopLogger{}}
}

// SetLogger sets the logger; nil installs a no-op logger
func (oc *OfferCalculator) SetLogger(l Logger) {
	if l == nil {
		oc.Logger = NopLogger{}
		return
	}
	oc.Logger = l
}

// Compute derives every monetary field of an offer. It performs no
// validation and no clamping: a slider outside [0,100] yields out-of-range
// results, and a ContractDuration of 0 panics on division by zero.
//
// MonthlyTotal is taken from the unrounded lump sum, so LumpSum plus
// TotalMonthlyPayments need not add up to OfferPrice.
func (oc *OfferCalculator) Compute(params domain.OfferParameters) domain.OfferCalculationResult {
	offerPrice := params.MarketValue.Mul(DiscountRate)

	slider := decimal.NewFromInt(int64(params.SliderPercent)).Div(hundred)
	lumpSumPercent := MinLumpSumPercent.Add(MaxLumpSumPercent.Sub(MinLumpSumPercent).Mul(slider))

	rawLumpSum := offerPrice.Mul(lumpSumPercent)
	lumpSum := RoundToUnit(rawLumpSum, LumpSumRoundingUnit)

	monthlyTotal := offerPrice.Sub(rawLumpSum)
	months := decimal.NewFromInt(int64(params.ContractDuration)).Mul(twelve)
	monthly := RoundToUnit(monthlyTotal.Div(months), MonthlyRoundingUnit)

	totalMonthly := monthly.Mul(months)
	totalBenefit := lumpSum.Add(totalMonthly)

	result := domain.OfferCalculationResult{
		OfferPrice:           offerPrice,
		LumpSumPercent:       lumpSumPercent,
		RawLumpSum:           rawLumpSum,
		LumpSum:              lumpSum,
		MonthlyTotal:         monthlyTotal,
		Monthly:              monthly,
		TotalMonthlyPayments: totalMonthly,
		TotalBenefit:         totalBenefit,
		NetBenefitPercentage: ratioPercent(totalBenefit, params.MarketValue),
		BalancePercent:       ratioPercent(lumpSum, offerPrice),
	}

	if oc.Logger != nil {
		oc.Logger.Debugf("offer computed: slider=%d lump_sum=%s monthly=%s", params.SliderPercent, lumpSum.StringFixed(0), monthly.StringFixed(0))
	}

	return result
}

// Schedule evaluates Compute at slider positions 0, step, 2*step ... 100.
// The last row is always position 100.
func (oc *OfferCalculator) Schedule(marketValue decimal.Decimal, contractDuration, step int) []domain.ScheduleRow {
	if step <= 0 || step > 100 {
		step = 10
	}
	var rows []domain.ScheduleRow
	for pct := 0; pct <= 100; pct += step {
		rows = append(rows, oc.scheduleRow(marketValue, contractDuration, pct))
	}
	if rows[len(rows)-1].SliderPercent != 100 {
		rows = append(rows, oc.scheduleRow(marketValue, contractDuration, 100))
	}
	return rows
}

func (oc *OfferCalculator) scheduleRow(marketValue decimal.Decimal, contractDuration, pct int) domain.ScheduleRow {
	return domain.ScheduleRow{
		SliderPercent: pct,
		Result: oc.Compute(domain.OfferParameters{
			MarketValue:      marketValue,
			ContractDuration: contractDuration,
			SliderPercent:    pct,
		}),
	}
}

// RoundToUnit rounds amount to the nearest multiple of unit, halves going up
// (floor(x/unit + 0.5) * unit).
func RoundToUnit(amount, unit decimal.Decimal) decimal.Decimal {
	return amount.Div(unit).Add(half).Floor().Mul(unit)
}

// ClampSlider restricts a slider position to [0,100]
func ClampSlider(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func ratioPercent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Report computes the offer at sliderPercent. A positive scheduleStep also
// attaches the schedule for the offer's market value and duration.
func (oc *OfferCalculator) Report(offer domain.Offer, sliderPercent, scheduleStep int) *domain.OfferReport {
	params := offer.Parameters(sliderPercent)
	report := &domain.OfferReport{
		Offer:      offer,
		Parameters: params,
		Result:     oc.Compute(params),
	}
	if scheduleStep > 0 {
		report.Schedule = oc.Schedule(offer.MarketValue, offer.ContractDuration, scheduleStep)
	}
	return report
}
