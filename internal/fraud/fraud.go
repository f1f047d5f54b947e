package fraud

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"negochat/internal/ai"
)

type Listing struct {
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	PropertyType string  `json:"propertyType"`
	Location     string  `json:"location"`
	SellerInfo   string  `json:"sellerInfo,omitempty"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type PriceAnalysis struct {
	IsAnomaly             bool    `json:"isAnomaly"`
	Reason                string  `json:"reason"`
	Severity              string  `json:"severity,omitempty"`
	MarketMin             float64 `json:"marketMin"`
	MarketMax             float64 `json:"marketMax"`
	PercentageBelowMarket int     `json:"percentageBelowMarket,omitempty"`
	PercentageAboveMarket int     `json:"percentageAboveMarket,omitempty"`
}

type Indicator struct {
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Severity    string         `json:"severity"`
	Details     *PriceAnalysis `json:"details,omitempty"`
}

type Analysis struct {
	IsFraudulent  bool        `json:"isFraudulent"`
	FraudCategory string      `json:"fraudCategory,omitempty"`
	RiskScore     int         `json:"riskScore"`
	RiskLevel     string      `json:"riskLevel"`
	Indicators    []Indicator `json:"indicators"`
}

const (
	severityHigh   = "عالي"
	severityMedium = "متوسط"
)

// Typical asking-price windows per property type and city. Listings far
// below the window are the strongest single fraud signal.
var marketPriceRanges = map[string]map[string]PriceRange{
	"شقة": {
		"الرياض":  {300000, 2000000},
		"جدة":     {350000, 2500000},
		"الدمام":  {250000, 1500000},
		"مكة":     {400000, 3000000},
		"المدينة": {300000, 1800000},
		"الخُبر":  {280000, 1700000},
		"الطائف":  {200000, 1200000},
		"default": {250000, 1500000},
	},
	"فيلا": {
		"الرياض":  {1000000, 5000000},
		"جدة":     {1200000, 7000000},
		"الدمام":  {900000, 4000000},
		"مكة":     {1500000, 8000000},
		"المدينة": {1000000, 5000000},
		"الخُبر":  {1200000, 6000000},
		"الطائف":  {800000, 3500000},
		"default": {1000000, 5000000},
	},
	"أرض": {
		"الرياض":  {400000, 10000000},
		"جدة":     {500000, 15000000},
		"الدمام":  {350000, 8000000},
		"مكة":     {800000, 20000000},
		"المدينة": {500000, 10000000},
		"الخُبر":  {400000, 9000000},
		"الطائف":  {300000, 5000000},
		"default": {400000, 8000000},
	},
}

var defaultPriceRange = PriceRange{300000, 3000000}

var fraudKeywords = map[string][]string{
	"urgency":       {"فرصة لا تعوض", "عرض لفترة محدودة", "بيع سريع", "يجب البيع الآن", "فرصة نادرة"},
	"documentation": {"بدون أوراق", "توثيق لاحقًا", "صك غير جاهز", "أوراق تحت الإجراء"},
	"inspection":    {"لا يمكن المعاينة", "معاينة محدودة", "معاينة بعد الدفع", "بدون معاينة"},
	"payment":       {"دفع كاش فقط", "تحويل مباشر", "تأمين مقدم", "دفعة تأمين قبل المعاينة"},
	"price":         {"أقل سعر", "سعر منخفض جدًا", "أرخص من السوق"},
}

func priceRangeFor(propertyType, location string) PriceRange {
	byLocation, ok := marketPriceRanges[propertyType]
	if !ok {
		return defaultPriceRange
	}
	if r, ok := byLocation[location]; ok {
		return r
	}
	if r, ok := byLocation["default"]; ok {
		return r
	}
	return defaultPriceRange
}

// DetectPriceAnomaly flags prices suspiciously below (or far above) the
// market window for the type and city.
func DetectPriceAnomaly(propertyType, location string, price float64) PriceAnalysis {
	r := priceRangeFor(propertyType, location)

	if price < r.Min*0.7 {
		return PriceAnalysis{
			IsAnomaly:             true,
			Reason:                "السعر منخفض بشكل مثير للريبة عن متوسط أسعار السوق",
			Severity:              severityHigh,
			MarketMin:             r.Min,
			MarketMax:             r.Max,
			PercentageBelowMarket: int(math.Round((r.Min - price) / r.Min * 100)),
		}
	}

	if price > r.Max*1.5 {
		return PriceAnalysis{
			IsAnomaly:             true,
			Reason:                "السعر أعلى بكثير من متوسط أسعار السوق",
			Severity:              severityMedium,
			MarketMin:             r.Min,
			MarketMax:             r.Max,
			PercentageAboveMarket: int(math.Round((price - r.Max) / r.Max * 100)),
		}
	}

	return PriceAnalysis{
		IsAnomaly: false,
		Reason:    "السعر ضمن النطاق الطبيعي لهذا النوع من العقارات في هذه المنطقة",
		MarketMin: r.Min,
		MarketMax: r.Max,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Detect scores a listing against keyword heuristics and the price
// window, then classifies the pattern with a 3-NN vote.
func Detect(listing Listing) Analysis {
	var indicators []Indicator

	priceAnalysis := DetectPriceAnomaly(listing.PropertyType, listing.Location, listing.Price)
	priceTooLow := priceAnalysis.IsAnomaly && strings.Contains(priceAnalysis.Reason, "منخفض")
	if priceTooLow {
		details := priceAnalysis
		indicators = append(indicators, Indicator{
			Type:        "price_anomaly",
			Description: priceAnalysis.Reason,
			Severity:    priceAnalysis.Severity,
			Details:     &details,
		})
	}

	urgency := containsAny(listing.Description, fraudKeywords["urgency"])
	if urgency {
		indicators = append(indicators, Indicator{
			Type:        "urgency_pressure",
			Description: "يستخدم البائع لغة تحث على الإسراع في اتخاذ القرار",
			Severity:    severityMedium,
		})
	}

	documentation := containsAny(listing.Description, fraudKeywords["documentation"])
	if documentation {
		indicators = append(indicators, Indicator{
			Type:        "documentation_issues",
			Description: "توجد مشكلات محتملة في توثيق العقار أو ملكيته",
			Severity:    severityHigh,
		})
	}

	inspection := containsAny(listing.Description, fraudKeywords["inspection"])
	if inspection {
		indicators = append(indicators, Indicator{
			Type:        "inspection_limitations",
			Description: "البائع يمنع أو يحد من معاينة العقار بشكل طبيعي",
			Severity:    severityHigh,
		})
	}

	payment := containsAny(listing.Description, fraudKeywords["payment"])
	if payment {
		indicators = append(indicators, Indicator{
			Type:        "payment_issues",
			Description: "البائع يطلب طرق دفع غير تقليدية أو دفعات مقدمة مثيرة للشك",
			Severity:    severityHigh,
		})
	}

	if len(indicators) == 0 {
		return Analysis{
			IsFraudulent: false,
			RiskScore:    0,
			RiskLevel:    "منخفض",
			Indicators:   []Indicator{},
		}
	}

	features := []float64{
		boolFeature(priceTooLow),
		boolFeature(urgency),
		boolFeature(documentation),
		boolFeature(inspection),
		0, // hidden fees have no keyword list yet
		boolFeature(payment),
	}
	category := classifyKNN(features, 3)

	riskScore := 0
	for _, ind := range indicators {
		switch ind.Severity {
		case severityHigh:
			riskScore += 30
		case severityMedium:
			riskScore += 15
		default:
			riskScore += 5
		}
	}
	if riskScore > 100 {
		riskScore = 100
	}

	return Analysis{
		IsFraudulent:  riskScore > 50,
		FraudCategory: category,
		RiskScore:     riskScore,
		RiskLevel:     riskLevel(riskScore),
		Indicators:    indicators,
	}
}

func riskLevel(score int) string {
	switch {
	case score > 75:
		return "عالي جداً"
	case score > 50:
		return severityHigh
	case score > 25:
		return severityMedium
	default:
		return "منخفض"
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Report asks the AI gateway for a narrative risk report over a listing
// and its heuristic analysis. Only generated for high-risk listings.
func Report(ctx context.Context, gw *ai.Gateway, listing Listing, analysis Analysis) (string, error) {
	listingJSON, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode listing: %w", err)
	}
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}

	prompt := fmt.Sprintf(`
أنت خبير في كشف الاحتيال العقاري. قم بتحليل العقار التالي وتقرير التحليل الآلي المرفق، ثم اكتب تقريراً مفصلاً عن المخاطر المحتملة:

معلومات العقار:
%s

نتائج تحليل الاحتيال الآلي:
%s

في تقريرك، قم بتغطية:
1. ملخص المخاطر المحتملة
2. تحليل مفصل لكل مؤشر احتيال
3. نصائح للمشتري للتعامل مع هذه المخاطر
4. الخطوات المقترحة للتحقق من مصداقية العرض
5. نصائح للتفاوض في حالة المضي قدمًا مع العرض

اجعل التقرير مهنياً ودقيقاً وموجهاً بشكل خاص لسوق العقارات العربي.
`, listingJSON, analysisJSON)

	return gw.Generate(ctx, ai.ProfileBalanced, prompt)
}
