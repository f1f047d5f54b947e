package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// Kind classifies a gateway failure. Callers map kinds to user-facing
// text with Fallback; raw provider faults never reach clients.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnavailable
	KindRateLimit
	KindTokenLimit
	KindSafety
)

type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnavailable:
		return "ai gateway unavailable: no credential configured"
	case KindRateLimit:
		return fmt.Sprintf("ai gateway rate limited: %v", e.cause)
	case KindTokenLimit:
		return fmt.Sprintf("ai gateway input too long: %v", e.cause)
	case KindSafety:
		return fmt.Sprintf("ai gateway safety rejection: %v", e.cause)
	default:
		return fmt.Sprintf("ai gateway error: %v", e.cause)
	}
}

func (e *Error) Unwrap() error { return e.cause }

var fallbacks = map[Kind]string{
	KindUnavailable: "عذرًا، حدث خطأ في الاتصال بالذكاء الاصطناعي. الرجاء المحاولة مرة أخرى.",
	KindRateLimit:   "عذرًا، تجاوزنا الحد الأقصى لعدد الطلبات. الرجاء المحاولة مرة أخرى بعد قليل.",
	KindTokenLimit:  "عذرًا، المحتوى طويل جدًا للمعالجة. يرجى تقصير الرسالة وإعادة المحاولة.",
	KindSafety:      "عذرًا، لا يمكنني تقديم استجابة لهذا المحتوى بسبب إعدادات السلامة.",
	KindUnknown:     "عذرًا، حدث خطأ في معالجة طلبك. الرجاء المحاولة مرة أخرى.",
}

// Fallback maps any error coming out of the gateway to the localized
// user-facing string for its classification.
func Fallback(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		if text, ok := fallbacks[gwErr.Kind]; ok {
			return text
		}
	}
	return fallbacks[KindUnknown]
}

func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}
	return settings
}

// Gateway wraps the Gemini client. A missing credential leaves client nil
// and every Generate call short-circuits before any network attempt.
type Gateway struct {
	client *genai.Client
	model  string
}

func NewGateway(ctx context.Context, apiKey, model string) (*Gateway, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}

	if apiKey == "" {
		log.Println("[AI] ⚠️ No API key configured, gateway starting in unavailable mode")
		return &Gateway{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	log.Printf("[AI] Gateway initialized (model: %s)", model)
	return &Gateway{client: client, model: model}, nil
}

func (g *Gateway) Available() bool {
	return g.client != nil
}

// Generate runs one prompt under the given profile and returns the
// generated text or a classified *Error.
func (g *Gateway) Generate(ctx context.Context, profile Profile, prompt string) (string, error) {
	if g.client == nil {
		return "", &Error{Kind: KindUnavailable}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(profile.Temperature),
		TopP:            genai.Ptr(profile.TopP),
		TopK:            genai.Ptr(profile.TopK),
		MaxOutputTokens: profile.MaxOutputTokens,
		SafetySettings:  safetySettings(),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		classified := classify(err)
		log.Printf("[AI] Generation failed (profile: %s): %v", profile.Name, classified)
		return "", classified
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &Error{Kind: KindSafety, cause: fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)}
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", &Error{Kind: KindSafety, cause: errors.New("candidate stopped for safety")}
	}

	text := resp.Text()
	if text == "" {
		return "", &Error{Kind: KindUnknown, cause: errors.New("empty response")}
	}
	return text, nil
}

// NegotiationAdvice runs a situation through the negotiation preset with
// the fixed expert template.
func (g *Gateway) NegotiationAdvice(ctx context.Context, situation string) (string, error) {
	return g.Generate(ctx, ProfileNegotiation, NegotiationPrompt(situation))
}

// PersonalityReply produces the ambient room-persona answer to a message.
func (g *Gateway) PersonalityReply(ctx context.Context, personality, message string) (string, error) {
	return g.Generate(ctx, ProfileFor(personality), PersonalityPrompt(personality, message))
}

func classify(err error) *Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return &Error{Kind: KindRateLimit, cause: err}
		case apiErr.Code == 400 && strings.Contains(strings.ToLower(apiErr.Message), "token"):
			return &Error{Kind: KindTokenLimit, cause: err}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted"):
		return &Error{Kind: KindRateLimit, cause: err}
	case strings.Contains(msg, "token limit") || strings.Contains(msg, "too long"):
		return &Error{Kind: KindTokenLimit, cause: err}
	case strings.Contains(msg, "safety"):
		return &Error{Kind: KindSafety, cause: err}
	default:
		return &Error{Kind: KindUnknown, cause: err}
	}
}
