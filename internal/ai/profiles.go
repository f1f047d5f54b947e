package ai

import "strings"

// Profile is a static generation preset. All presets share the same
// safety thresholds; only sampling and output length differ.
type Profile struct {
	Name            string
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

var (
	ProfileCreative = Profile{Name: "creative", Temperature: 0.8, TopP: 0.9, TopK: 40, MaxOutputTokens: 1024}
	ProfileBalanced = Profile{Name: "balanced", Temperature: 0.4, TopP: 0.8, TopK: 30, MaxOutputTokens: 1024}
	ProfilePrecise  = Profile{Name: "precise", Temperature: 0.1, TopP: 0.7, TopK: 20, MaxOutputTokens: 1024}

	// Longer output budget for negotiation breakdowns.
	ProfileNegotiation = Profile{Name: "negotiation", Temperature: 0.35, TopP: 0.85, TopK: 30, MaxOutputTokens: 2048}
)

// ProfileFor picks a preset from keyword hints in a room's personality
// descriptor, falling back to balanced when nothing matches.
func ProfileFor(personality string) Profile {
	switch {
	case strings.Contains(personality, "creative") || strings.Contains(personality, "مبدع"):
		return ProfileCreative
	case strings.Contains(personality, "precise") || strings.Contains(personality, "دقيق"):
		return ProfilePrecise
	case strings.Contains(personality, "negotiation") || strings.Contains(personality, "تفاوض"):
		return ProfileNegotiation
	default:
		return ProfileBalanced
	}
}
