package nlp

import (
	"context"
	"testing"

	"negochat/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unavailableAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	gw, err := ai.NewGateway(context.Background(), "", "")
	require.NoError(t, err)
	return NewAnalyzer(gw)
}

func TestAnalyzeSentimentDegradesToNeutral(t *testing.T) {
	a := unavailableAnalyzer(t)

	got := a.AnalyzeSentiment(context.Background(), "البائع متعاون جداً")
	assert.Equal(t, "neutral", got.Sentiment)
	assert.Equal(t, 5, got.Score)
	assert.Equal(t, "حدث خطأ في التحليل", got.Explanation)
}

func TestGenerateMarketInsightsPropagatesGatewayError(t *testing.T) {
	a := unavailableAnalyzer(t)

	_, err := a.GenerateMarketInsights(context.Background(), map[string]any{"type": "شقة"})
	require.Error(t, err)

	var gwErr *ai.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, ai.KindUnavailable, gwErr.Kind)
}

func TestAnalyzeNegotiationTacticsPropagatesGatewayError(t *testing.T) {
	a := unavailableAnalyzer(t)

	_, err := a.AnalyzeNegotiationTactics(context.Background(), "المشتري: السعر مرتفع")
	assert.Error(t, err)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}
