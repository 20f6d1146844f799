package components

import (
	"testing"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentSlider_Clamps(t *testing.T) {
	s := NewPercentSlider("Balance", 120, 5)
	assert.Equal(t, 100, s.Value)

	s.Increment()
	assert.Equal(t, 100, s.Value)

	s.SetValue(3)
	s.Decrement()
	assert.Equal(t, 0, s.Value)

	assert.Equal(t, 1, NewPercentSlider("x", 0, 0).Step, "Non-positive step falls back to 1")
}

func TestPercentSlider_Render(t *testing.T) {
	s := NewPercentSlider("Balance", 50, 5).
		WithWidth(11).
		WithCaptions("monthly", "upfront").
		SetFocused(true)

	out := s.Render()
	assert.Contains(t, out, "Balance")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "[━━━━━●─────]")
	assert.Contains(t, out, "monthly")
	assert.Contains(t, out, "upfront")
	assert.Contains(t, out, "← → 5 points")

	s.SetValue(0)
	assert.Contains(t, s.Render(), "[●──────────]")
	s.SetValue(100)
	assert.Contains(t, s.Render(), "[━━━━━━━━━━●]")
}

func TestChoiceList(t *testing.T) {
	c := NewChoiceList("Shared?", []Choice{{Value: "shared", Label: "Yes"}, {Value: "proceed", Label: "No"}})
	assert.Equal(t, "", c.SelectedValue())

	c.Up()
	assert.Equal(t, 0, c.Cursor)
	c.Down()
	c.Down()
	assert.Equal(t, 1, c.Cursor)

	assert.Equal(t, "proceed", c.Confirm())
	assert.Equal(t, "proceed", c.SelectedValue())

	c.Select("shared")
	assert.Equal(t, 0, c.Cursor)
	assert.Equal(t, "shared", c.SelectedValue())

	c.Select("unknown")
	assert.Equal(t, "", c.SelectedValue())

	c.IsFocused = true
	out := c.Render()
	assert.Contains(t, out, "Shared?")
	assert.Contains(t, out, "▸ ( ) Yes")
}

func TestMetricCard_WithChange(t *testing.T) {
	up := NewAmountCard("Lump sum", decimal.NewFromInt(106000)).
		WithChange(decimal.NewFromInt(100000), decimal.NewFromInt(106000))
	require.NotNil(t, up.Trend)
	assert.True(t, up.Trend.IsPositive)
	assert.Equal(t, "+€6,000.00", up.Trend.Change)

	down := NewAmountCard("Monthly", decimal.NewFromInt(1200)).
		WithChange(decimal.NewFromInt(1250), decimal.NewFromInt(1200))
	require.NotNil(t, down.Trend)
	assert.False(t, down.Trend.IsPositive)
	assert.Equal(t, "-€50.00", down.Trend.Change)

	same := NewAmountCard("Offer price", decimal.NewFromInt(400000)).
		WithChange(decimal.NewFromInt(400000), decimal.NewFromInt(400000))
	assert.Nil(t, same.Trend)
	assert.Contains(t, same.Render(), "€400,000.00")
}

func TestOfferListCompact(t *testing.T) {
	assert.Contains(t, OfferListCompact(nil, 0), "No offers available")

	cards := []*OfferCard{
		NewOfferCard(domain.Offer{Reference: "VG-1", MarketValue: decimal.NewFromInt(500000), ContractDuration: 20}),
		NewOfferCard(domain.Offer{Reference: "VG-2", MarketValue: decimal.NewFromInt(320000), ContractDuration: 15}),
	}
	out := OfferListCompact(cards, 1)
	assert.Contains(t, out, "  VG-1 €500,000.00 • 20 years")
	assert.Contains(t, out, "▸ VG-2 €320,000.00 • 15 years")
}
