package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"negochat/internal/ai"
	"negochat/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unavailableGateway(t *testing.T) *ai.Gateway {
	t.Helper()
	gw, err := ai.NewGateway(context.Background(), "", "")
	require.NoError(t, err)
	return gw
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestTokenHandler(t *testing.T) {
	t.Run("disabled service answers 503", func(t *testing.T) {
		rec := postJSON(TokenHandler(auth.NewService("")), `{"username":"alice"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("issues a token and defaults the username", func(t *testing.T) {
		rec := postJSON(TokenHandler(auth.NewService("test-secret")), `{"isAnonymous":true}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Token string `json:"token"`
			User  struct {
				UID      string `json:"uid"`
				Username string `json:"username"`
				IsGuest  bool   `json:"isGuest"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.User.UID)
		assert.Equal(t, "زائر", resp.User.Username)
		assert.True(t, resp.User.IsGuest)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		rec := postJSON(TokenHandler(auth.NewService("test-secret")), `not-json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNegotiationHandler(t *testing.T) {
	gw := unavailableGateway(t)

	t.Run("empty situation is rejected", func(t *testing.T) {
		rec := postJSON(NegotiationHandler(gw), `{"situation":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("gateway failure still answers with fallback text", func(t *testing.T) {
		rec := postJSON(NegotiationHandler(gw), `{"situation":"البائع يرفض التفاوض"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Advice  string `json:"advice"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, ai.Fallback(&ai.Error{Kind: ai.KindUnavailable}), resp.Advice)
	})
}

func TestExtractEntitiesHandler(t *testing.T) {
	t.Run("empty text is rejected", func(t *testing.T) {
		rec := postJSON(ExtractEntitiesHandler(), `{"text":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("extracts from real estate text", func(t *testing.T) {
		rec := postJSON(ExtractEntitiesHandler(), `{"text":"شقة في الرياض بسعر 500000 ريال"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success  bool `json:"success"`
			Entities struct {
				Locations     []string `json:"locations"`
				Prices        []string `json:"prices"`
				PropertyTypes []string `json:"propertyTypes"`
			} `json:"entities"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Entities.Locations, "الرياض")
		assert.Contains(t, resp.Entities.Prices, "500000 ريال")
		assert.Contains(t, resp.Entities.PropertyTypes, "شقة")
	})
}

func TestDetectFraudHandler(t *testing.T) {
	gw := unavailableGateway(t)

	t.Run("missing listing is rejected", func(t *testing.T) {
		rec := postJSON(DetectFraudHandler(gw), `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("high risk listing gets a report attempt", func(t *testing.T) {
		body := `{"listing":{"description":"فرصة لا تعوض، بدون أوراق، لا يمكن المعاينة","price":100000,"propertyType":"شقة","location":"الرياض"}}`
		rec := postJSON(DetectFraudHandler(gw), body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success       bool `json:"success"`
			FraudAnalysis struct {
				IsFraudulent bool `json:"isFraudulent"`
				RiskScore    int  `json:"riskScore"`
			} `json:"fraudAnalysis"`
			DetailedReport string `json:"detailedReport"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.True(t, resp.FraudAnalysis.IsFraudulent)
		// Report generation fails against the unavailable gateway and is
		// replaced with the localized error string.
		assert.Equal(t, "حدث خطأ في إنشاء تقرير الاحتيال", resp.DetailedReport)
	})
}

func TestArchiveMessageHandlerWithoutStore(t *testing.T) {
	rec := postJSON(ArchiveMessageHandler(nil), `{"message":"hi","roomId":"general"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestArchiveHistoryHandlerWithoutStore(t *testing.T) {
	rec := httptest.NewRecorder()
	ArchiveHistoryHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/api/messages?room=general", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMarketDataHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	MarketDataHandler()(rec, httptest.NewRequest(http.MethodGet, "/api/market-data", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Locations map[string]any `json:"locations"`
		Insights  []any          `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Locations, 3)
	assert.Len(t, resp.Insights, 2)
}

func TestPricePredictionHandler(t *testing.T) {
	rec := postJSON(PricePredictionHandler(), `{"location":"جدة","propertyType":"فيلا"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		EstimatedValue int `json:"estimatedValue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 980000, resp.EstimatedValue)
}

func TestMarketTrendsHandler(t *testing.T) {
	rec := postJSON(MarketTrendsHandler(), `{"location":"الرياض","propertyType":"شقة"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TrendPoints []any `json:"trendPoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.TrendPoints, 12)
}
