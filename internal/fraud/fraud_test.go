package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPriceAnomaly(t *testing.T) {
	t.Run("far below market is a high severity anomaly", func(t *testing.T) {
		got := DetectPriceAnomaly("شقة", "الرياض", 100000)
		assert.True(t, got.IsAnomaly)
		assert.Equal(t, severityHigh, got.Severity)
		assert.Equal(t, 67, got.PercentageBelowMarket)
		assert.Equal(t, float64(300000), got.MarketMin)
	})

	t.Run("far above market is a medium severity anomaly", func(t *testing.T) {
		got := DetectPriceAnomaly("شقة", "الرياض", 4000000)
		assert.True(t, got.IsAnomaly)
		assert.Equal(t, severityMedium, got.Severity)
		assert.Equal(t, 100, got.PercentageAboveMarket)
	})

	t.Run("price inside the window is clean", func(t *testing.T) {
		got := DetectPriceAnomaly("شقة", "الرياض", 500000)
		assert.False(t, got.IsAnomaly)
	})

	t.Run("unknown city falls back to the type default window", func(t *testing.T) {
		got := DetectPriceAnomaly("فيلا", "حائل", 100000)
		assert.True(t, got.IsAnomaly)
		assert.Equal(t, float64(1000000), got.MarketMin)
	})

	t.Run("unknown property type uses the global default window", func(t *testing.T) {
		got := DetectPriceAnomaly("مزرعة", "الرياض", 500000)
		assert.False(t, got.IsAnomaly)
		assert.Equal(t, defaultPriceRange.Min, got.MarketMin)
	})
}

func TestDetectCleanListing(t *testing.T) {
	analysis := Detect(Listing{
		Description:  "شقة واسعة بإطلالة جميلة، صك إلكتروني جاهز، المعاينة متاحة يومياً",
		Price:        800000,
		PropertyType: "شقة",
		Location:     "الرياض",
	})

	assert.False(t, analysis.IsFraudulent)
	assert.Zero(t, analysis.RiskScore)
	assert.Equal(t, "منخفض", analysis.RiskLevel)
	assert.Empty(t, analysis.Indicators)
	assert.Empty(t, analysis.FraudCategory)
}

func TestDetectLoadedListing(t *testing.T) {
	analysis := Detect(Listing{
		Description:  "فرصة لا تعوض! بيع سريع، بدون أوراق حالياً، لا يمكن المعاينة، دفع كاش فقط مع تأمين مقدم",
		Price:        100000,
		PropertyType: "شقة",
		Location:     "الرياض",
	})

	require.Len(t, analysis.Indicators, 5)
	assert.True(t, analysis.IsFraudulent)
	assert.Equal(t, 100, analysis.RiskScore, "score is capped")
	assert.Equal(t, "عالي جداً", analysis.RiskLevel)
	assert.NotEmpty(t, analysis.FraudCategory)

	types := make(map[string]bool)
	for _, ind := range analysis.Indicators {
		types[ind.Type] = true
	}
	for _, want := range []string{"price_anomaly", "urgency_pressure", "documentation_issues", "inspection_limitations", "payment_issues"} {
		assert.True(t, types[want], "missing indicator %s", want)
	}
}

func TestDetectSingleIndicatorStaysLowRisk(t *testing.T) {
	analysis := Detect(Listing{
		Description:  "شقة جميلة، عرض لفترة محدودة",
		Price:        800000,
		PropertyType: "شقة",
		Location:     "الرياض",
	})

	require.Len(t, analysis.Indicators, 1)
	assert.Equal(t, 15, analysis.RiskScore)
	assert.Equal(t, "منخفض", analysis.RiskLevel)
	assert.False(t, analysis.IsFraudulent)
}

func TestRiskLevelThresholds(t *testing.T) {
	assert.Equal(t, "منخفض", riskLevel(25))
	assert.Equal(t, severityMedium, riskLevel(30))
	assert.Equal(t, severityHigh, riskLevel(60))
	assert.Equal(t, "عالي جداً", riskLevel(80))
}

func TestClassifyKNN(t *testing.T) {
	tests := []struct {
		name     string
		features []float64
		want     string
	}{
		{"exact documentation pattern", []float64{0, 0, 1, 0, 0, 0}, "documentation_fraud"},
		{"exact payment pattern", []float64{0, 1, 0, 0, 1, 1}, "payment_fraud"},
		{"everything flagged leans multi red flag", []float64{1, 1, 1, 1, 0, 0}, "multiple_red_flags"},
		{"cheap and urgent", []float64{1, 1, 0, 0, 0, 0}, "price_anomaly"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyKNN(tc.features, 3))
		})
	}
}
