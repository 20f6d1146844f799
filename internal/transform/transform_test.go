package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseOffer() domain.Offer {
	return domain.Offer{
		Reference:        "VG-2031",
		MarketValue:      decimal.NewFromInt(500000),
		ContractDuration: 20,
		SliderPercent:    50,
	}
}

func TestApplyTransforms_InOrder(t *testing.T) {
	base := baseOffer()

	got, err := ApplyTransforms(base, []OfferTransform{
		&SetSlider{Percent: 90},
		&ShiftSlider{Points: -20},
		&ExtendDuration{Years: -5},
		&ScaleMarketValue{Percent: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)

	assert.Equal(t, 70, got.SliderPercent)
	assert.Equal(t, 15, got.ContractDuration)
	assert.True(t, got.MarketValue.Equal(decimal.NewFromInt(550000)), "market value: %s", got.MarketValue)
	assert.Equal(t, "VG-2031", got.Reference)

	assert.Equal(t, 50, base.SliderPercent, "base offer must not change")
	assert.Equal(t, 20, base.ContractDuration)
}

func TestApplyTransforms_Empty(t *testing.T) {
	got, err := ApplyTransforms(baseOffer(), nil)
	require.NoError(t, err)
	assert.Equal(t, baseOffer(), got)
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(baseOffer(), []OfferTransform{nil})
	assert.ErrorContains(t, err, "index 0 is nil")
}

func TestTransforms_Validation(t *testing.T) {
	tests := []struct {
		name      string
		transform OfferTransform
	}{
		{"slider above range", &SetSlider{Percent: 101}},
		{"slider below range", &SetSlider{Percent: -1}},
		{"shift past the end", &ShiftSlider{Points: 60}},
		{"zero duration", &SetDuration{Years: 0}},
		{"shortened to nothing", &ExtendDuration{Years: -20}},
		{"market value wiped out", &ScaleMarketValue{Percent: decimal.NewFromInt(-100)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyTransforms(baseOffer(), []OfferTransform{tt.transform})
			require.Error(t, err)

			var terr *TransformError
			assert.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.transform.Name(), terr.TransformName)
		})
	}
}

func TestTransforms_Descriptions(t *testing.T) {
	assert.Equal(t, "Move the balance slider to 80%", (&SetSlider{Percent: 80}).Description())
	assert.Equal(t, "Shift the balance slider by -10 points", (&ShiftSlider{Points: -10}).Description())
	assert.Equal(t, "Shorten the contract by 5 years", (&ExtendDuration{Years: -5}).Description())
	assert.Equal(t, "Extend the contract by 3 years", (&ExtendDuration{Years: 3}).Description())
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("set_slider:percent=80")
	require.NoError(t, err)
	assert.Equal(t, &SetSlider{Percent: 80}, tr)

	tr, err = registry.ParseTransformSpec(" scale_market_value : percent = -2.5 ")
	require.NoError(t, err)
	scale, ok := tr.(*ScaleMarketValue)
	require.True(t, ok)
	assert.True(t, scale.Percent.Equal(decimal.NewFromFloat(-2.5)))

	for _, bad := range []string{
		"set_slider",
		"set_slider:80",
		"set_slider:points=5",
		"set_slider:percent=abc",
		"teleport:to=moon",
	} {
		_, err := registry.ParseTransformSpec(bad)
		assert.Error(t, err, bad)
	}
}

func TestTransformRegistry_List(t *testing.T) {
	assert.Equal(t, []string{
		"extend_duration",
		"scale_market_value",
		"set_duration",
		"set_slider",
		"shift_slider",
	}, NewTransformRegistry().List())
}

func TestTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	tmpl, ok := registry.Get("FRONT_LOADED_SHORT")
	require.True(t, ok, "lookup is case-insensitive")

	got, err := ApplyTemplate(baseOffer(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, 100, got.SliderPercent)
	assert.Equal(t, 15, got.ContractDuration)

	_, ok = registry.Get("postpone_1yr")
	assert.False(t, ok)

	assert.Contains(t, registry.List(), "max_lump_sum")
	assert.Contains(t, GetTemplateHelp(registry), "value_down_5pct")
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"max_lump_sum", "shorter_5yr"}, ParseTemplateList(" max_lump_sum, ,shorter_5yr "))
}
