package ai

import "fmt"

// PersonalityPrompt frames a chat message for the room's ambient persona.
func PersonalityPrompt(personality, message string) string {
	return fmt.Sprintf("You are a %s. Keep responses concise and relevant. User message: %s", personality, message)
}

// NegotiationPrompt wraps a free-text situation in the fixed expert-persona
// template with numbered output structure.
func NegotiationPrompt(situation string) string {
	return fmt.Sprintf(`
أنت مساعد متخصص في التفاوض على العقارات، مع خبرة 20 عامًا في السوق العقاري السعودي.

معلومات عن الموقف:
%s

يرجى تقديم:
1. تحليل موجز للموقف
2. استراتيجية تفاوض مناسبة
3. نقاط قوة يمكن استخدامها
4. نقاط ضعف يجب الانتباه لها
5. عبارات واقتراحات محددة يمكن استخدامها في المحادثة

قدم إجابة مختصرة ومفيدة، مع التركيز على الجوانب العملية للتفاوض واستخدم لغة سهلة الفهم.
`, situation)
}

// PropertyAnalysisPrompt asks for a defect-focused review of a listing.
func PropertyAnalysisPrompt(propertyType, location, price, area, description string) string {
	if propertyType == "" {
		propertyType = "غير محدد"
	}
	if location == "" {
		location = "غير محدد"
	}
	if price == "" {
		price = "غير محدد"
	}
	if area == "" {
		area = "غير محدد"
	}
	if description == "" {
		description = "لا يوجد"
	}
	return fmt.Sprintf(`
أنت خبير عقاري متخصص في تحليل العقارات وكشف العيوب المحتملة في صفقات العقارات.

معلومات العقار:
- النوع: %s
- الموقع: %s
- السعر: %s
- المساحة: %s
- وصف إضافي: %s

يرجى تقديم:
1. تقييم موجز للسعر مقارنة بسوق العقارات في المنطقة
2. العيوب المحتملة التي يجب الانتباه لها
3. النقاط التي تحتاج إلى تحقق وفحص إضافي
4. نصائح للتفاوض على السعر

قدم تحليلًا موضوعيًا ومفيدًا مع التركيز على كشف أي مشكلات محتملة في الصفقة.
`, propertyType, location, price, area, description)
}
