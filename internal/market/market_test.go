package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataSnapshotShape(t *testing.T) {
	snap := Data()

	assert.Len(t, snap.Locations, 3)
	assert.Len(t, snap.PropertyTypes, 3)
	assert.Len(t, snap.Insights, 2)

	riyadh, ok := snap.Locations["الرياض"]
	require.True(t, ok)
	assert.Equal(t, 1200000, riyadh.AveragePrice)
	assert.Equal(t, "high", riyadh.Demand)
}

func TestPredictPricePerCity(t *testing.T) {
	tests := []struct {
		location string
		estimate int
	}{
		{"الرياض", 1250000},
		{"جدة", 980000},
		{"الدمام", 870000}, // any other city gets the default estimate
	}

	for _, tc := range tests {
		t.Run(tc.location, func(t *testing.T) {
			p := PredictPrice(tc.location, "شقة")
			assert.Equal(t, tc.estimate, p.EstimatedValue)
			assert.Less(t, p.ConfidenceInterval.Min, p.EstimatedValue)
			assert.Greater(t, p.ConfidenceInterval.Max, p.EstimatedValue)
			require.Len(t, p.SimilarProperties, 2)
			assert.Contains(t, p.SimilarProperties[0].Description, "شقة")
			assert.Len(t, p.PriceFactors, 3)
		})
	}
}

func TestTrendsForTwelveMonths(t *testing.T) {
	trends := TrendsFor("الرياض", "شقة")

	require.Len(t, trends.TrendPoints, 12)
	for _, pt := range trends.TrendPoints {
		assert.Regexp(t, `^\d{4}-\d{2}$`, pt.Date)
		assert.Positive(t, pt.Price)
	}

	first, last := trends.TrendPoints[0].Price, trends.TrendPoints[11].Price
	assert.Equal(t, last-first, trends.OverallChange.Absolute)
	assert.Equal(t, "منخفضة", trends.Volatility)
	assert.Equal(t, 10000, trends.PricePerSquareMeter)
}

func TestTrendsForUnknownCityUsesDefaultBase(t *testing.T) {
	trends := TrendsFor("تبوك", "فيلا")

	require.Len(t, trends.TrendPoints, 12)
	// Base 850000 with a ±2% wobble and a small drift keeps every point
	// well inside this band.
	for _, pt := range trends.TrendPoints {
		assert.InDelta(t, 850000, pt.Price, 850000*0.08)
	}
	pricePerSqm := 850000.0 / 120
	assert.Equal(t, int(pricePerSqm+0.5), trends.PricePerSquareMeter)
}
