package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		found  bool
		prefix string
		query  string
	}{
		{
			name:  "plain message has no command",
			body:  "are we meeting at noon?",
			found: false,
		},
		{
			name:   "gemini prefix at start",
			body:   "@gemini ما هو أفضل سعر للشقة؟",
			found:  true,
			prefix: "@gemini",
			query:  "ما هو أفضل سعر للشقة؟",
		},
		{
			name:   "prefix embedded mid-message",
			body:   "سؤال @nego كيف أبدأ التفاوض",
			found:  true,
			prefix: "@nego",
			query:  "كيف أبدأ التفاوض",
		},
		{
			name:   "earliest prefix wins over later one",
			body:   "@gemini first then @nego second",
			found:  true,
			prefix: "@gemini",
			query:  "first then @nego second",
		},
		{
			name:   "negotiate beats its own nego prefix at same index",
			body:   "@negotiate the asking price",
			found:  true,
			prefix: "@negotiate",
			query:  "the asking price",
		},
		{
			name:   "bare prefix yields empty query",
			body:   "@nego",
			found:  true,
			prefix: "@nego",
			query:  "",
		},
		{
			name:   "prefix with only whitespace yields empty query",
			body:   "@gemini   ",
			found:  true,
			prefix: "@gemini",
			query:  "",
		},
		{
			name:  "case sensitive match",
			body:  "@GEMINI hello",
			found: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, found := ParseCommand(tc.body)
			assert.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, tc.prefix, cmd.Prefix)
				assert.Equal(t, tc.query, cmd.Query)
			}
		})
	}
}
