package components

import (
	"math/rand"
	"testing"

	tuitesting "github.com/Veraticus/finsight/internal/tui/testing"
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceSeries(t *testing.T) {
	prices := PriceSeries(rand.New(rand.NewSource(42)))
	require.Len(t, prices, PriceDays)

	for i, p := range prices {
		assert.GreaterOrEqual(t, p, 85.0, "day %d", i+1)
		assert.Less(t, p, 135.0, "day %d", i+1)
	}
}

func TestPriceSeries_Deterministic(t *testing.T) {
	a := PriceSeries(rand.New(rand.NewSource(7)))
	b := PriceSeries(rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestPriceBar(t *testing.T) {
	assert.Equal(t, '█', priceBar(PriceScale))
	assert.Equal(t, '█', priceBar(PriceScale*2))
	assert.Equal(t, '▁', priceBar(0))
	assert.Equal(t, '▁', priceBar(-5))
}

func TestChartsModel_View(t *testing.T) {
	m := NewChartsModel(themes.Default, rand.New(rand.NewSource(1)))
	m.Resize(100)
	view := tuitesting.StripANSI(m.View())

	for _, f := range DefaultFeatureImportance {
		assert.Contains(t, view, f.Name)
	}
	for _, s := range DefaultVolatilityStats {
		assert.Contains(t, view, s.Label)
		assert.Contains(t, view, s.Value)
	}
	assert.Contains(t, view, "Feature Importance")
	assert.Contains(t, view, "Price Trend")
	assert.Contains(t, view, "Day 1")
	assert.Contains(t, view, "Day 15")
	assert.Contains(t, view, "Day 30")
	assert.Contains(t, view, "85%")
}

func TestChartsModel_PricesIsCopy(t *testing.T) {
	m := NewChartsModel(themes.Default, rand.New(rand.NewSource(1)))
	p := m.Prices()
	p[0] = -1
	assert.NotEqual(t, -1.0, m.Prices()[0])
}
