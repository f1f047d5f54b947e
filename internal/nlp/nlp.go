package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"negochat/internal/ai"
)

// Analyzer bundles the language helpers that sit behind the HTTP
// collaborator surface. Entity extraction is pure heuristics; the rest
// delegates to the AI gateway.
type Analyzer struct {
	gw *ai.Gateway
}

func NewAnalyzer(gw *ai.Gateway) *Analyzer {
	return &Analyzer{gw: gw}
}

type Sentiment struct {
	Sentiment   string `json:"sentiment"`
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// AnalyzeSentiment classifies text as positive/negative/neutral with a
// 1-10 intensity. Parse failures of the model output degrade to a
// neutral verdict rather than an error.
func (a *Analyzer) AnalyzeSentiment(ctx context.Context, text string) Sentiment {
	prompt := fmt.Sprintf(`
قم بتحليل المشاعر في النص التالي وصنفه إلى إيجابي، سلبي، أو محايد. أعط درجة من 1 إلى 10 لمستوى الإيجابية أو السلبية.

النص: "%s"

الرجاء الإجابة بتنسيق JSON فقط بالشكل التالي:
{"sentiment": "positive/negative/neutral", "score": 7, "explanation": "شرح مختصر للتصنيف"}
`, text)

	raw, err := a.gw.Generate(ctx, ai.ProfileBalanced, prompt)
	if err != nil {
		log.Printf("[NLP] Sentiment analysis failed: %v", err)
		return Sentiment{Sentiment: "neutral", Score: 5, Explanation: "حدث خطأ في التحليل"}
	}

	var result Sentiment
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		log.Printf("[NLP] Failed to parse sentiment JSON: %v", err)
		return Sentiment{Sentiment: "neutral", Score: 5, Explanation: "تعذر تحليل المشاعر"}
	}
	return result
}

// GenerateMarketInsights asks the model for a structured market read of a
// property. The model's JSON is passed through as-is when it parses.
func (a *Analyzer) GenerateMarketInsights(ctx context.Context, propertyDetails map[string]any) (map[string]any, error) {
	detailsJSON, err := json.MarshalIndent(propertyDetails, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode property details: %w", err)
	}

	prompt := fmt.Sprintf(`
بناءً على التفاصيل التالية، قدم تحليلاً للسوق العقاري وتوقعات الأسعار:

%s

قدم المعلومات التالية:
1. تقييم السعر مقارنة بالسوق (أعلى/أقل/عادل)
2. توقعات تغير الأسعار في هذه المنطقة
3. نصائح للتفاوض بناء على ظروف السوق
4. المخاطر المحتملة لهذا النوع من العقارات

الرجاء تقديم الرد بتنسيق JSON فقط:
`, detailsJSON)

	raw, err := a.gw.Generate(ctx, ai.ProfileBalanced, prompt)
	if err != nil {
		return nil, err
	}

	var insights map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &insights); err != nil {
		log.Printf("[NLP] Failed to parse market insights JSON: %v", err)
		return map[string]any{"error": "تعذر تحليل بيانات السوق"}, nil
	}
	return insights, nil
}

// AnalyzeNegotiationTactics reviews a buyer/seller conversation and
// names the tactics each side used.
func (a *Analyzer) AnalyzeNegotiationTactics(ctx context.Context, conversation string) (string, error) {
	prompt := fmt.Sprintf(`
صفتك خبير في تحليل المفاوضات. قم بتحليل المحادثة التالية بين بائع ومشتري عقار:

%s

قم بتحديد:
1. التكتيكات التي استخدمها البائع
2. التكتيكات التي استخدمها المشتري
3. نقاط القوة والضعف لكل طرف
4. اقتراحات لتحسين موقف المشتري
5. الفرص الضائعة في المحادثة

اجعل التحليل موجزًا ومفيدًا.
`, conversation)

	return a.gw.Generate(ctx, ai.ProfileBalanced, prompt)
}

// stripCodeFence peels a markdown ```json fence off model output before
// parsing.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
