package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"negochat/internal/ai"
	"negochat/internal/fraud"
	"negochat/internal/market"
	"negochat/internal/middleware"
	"negochat/internal/models"
	"negochat/internal/nlp"
	"negochat/internal/repository"
	"negochat/internal/types"

	"github.com/google/uuid"
)

// ArchiveMessageHandler persists a message on behalf of an authenticated
// caller. Requires the auth middleware in front of it.
func ArchiveMessageHandler(archive repository.MessageArchive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if archive == nil {
			writeError(w, http.StatusServiceUnavailable, "Message archiving is not configured")
			return
		}

		user, ok := middleware.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "No token provided")
			return
		}

		var payload types.ArchiveMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		msg := &models.Message{
			ID:        uuid.NewString(),
			RoomID:    payload.RoomID,
			UserID:    user.UID,
			Sender:    user.Username,
			Body:      payload.Message,
			Timestamp: time.Now(),
		}

		if err := archive.Save(r.Context(), msg); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ArchiveHistoryHandler returns the most recent archived messages for a
// room, newest first.
func ArchiveHistoryHandler(archive repository.MessageArchive) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if archive == nil {
			writeError(w, http.StatusServiceUnavailable, "Message archiving is not configured")
			return
		}

		roomID := r.URL.Query().Get("room")
		if roomID == "" {
			writeError(w, http.StatusBadRequest, "room query parameter is required")
			return
		}

		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 200 {
				writeError(w, http.StatusBadRequest, "limit must be between 1 and 200")
				return
			}
			limit = n
		}

		messages, err := archive.FetchRecent(r.Context(), roomID, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if messages == nil {
			messages = []*models.Message{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"messages": messages,
		})
	}
}

// NegotiationHandler runs a free-text situation through the negotiation
// preset. Gateway failures still answer 200 with the localized fallback
// text; the endpoint never surfaces a raw provider fault.
func NegotiationHandler(gw *ai.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.NegotiationRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(payload.Situation) == "" {
			writeError(w, http.StatusBadRequest, "يرجى تقديم موقف للتحليل")
			return
		}

		advice, err := gw.NegotiationAdvice(r.Context(), payload.Situation)
		if err != nil {
			log.Printf("[API] Negotiation advice failed: %v", err)
			advice = ai.Fallback(err)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"advice":  advice,
		})
	}
}

func SentimentHandler(analyzer *nlp.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.TextRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(payload.Text) == "" {
			writeError(w, http.StatusBadRequest, "النص مطلوب للتحليل")
			return
		}

		sentiment := analyzer.AnalyzeSentiment(r.Context(), payload.Text)
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"sentiment": sentiment,
		})
	}
}

// DetectFraudHandler scores a listing with the local heuristics; a risk
// score above 50 additionally asks the gateway for a narrative report.
func DetectFraudHandler(gw *ai.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Listing *fraud.Listing `json:"listing"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Listing == nil {
			writeError(w, http.StatusBadRequest, "معلومات العقار مطلوبة للتحليل")
			return
		}

		analysis := fraud.Detect(*payload.Listing)

		var detailedReport any
		if analysis.RiskScore > 50 {
			report, err := fraud.Report(r.Context(), gw, *payload.Listing, analysis)
			if err != nil {
				log.Printf("[API] Fraud report generation failed: %v", err)
				report = "حدث خطأ في إنشاء تقرير الاحتيال"
			}
			detailedReport = report
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":        true,
			"fraudAnalysis":  analysis,
			"detailedReport": detailedReport,
		})
	}
}

func ExtractEntitiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.TextRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(payload.Text) == "" {
			writeError(w, http.StatusBadRequest, "النص مطلوب لاستخراج الكيانات")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"entities": nlp.ExtractEntities(payload.Text),
		})
	}
}

func MarketInsightsHandler(analyzer *nlp.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.MarketInsightsRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.PropertyDetails) == 0 {
			writeError(w, http.StatusBadRequest, "تفاصيل العقار مطلوبة للتحليل")
			return
		}

		insights, err := analyzer.GenerateMarketInsights(r.Context(), payload.PropertyDetails)
		if err != nil {
			log.Printf("[API] Market insights failed: %v", err)
			writeError(w, http.StatusInternalServerError, "حدث خطأ في إنشاء تحليل السوق")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"insights": insights,
		})
	}
}

func AnalyzeNegotiationHandler(analyzer *nlp.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.ConversationRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(payload.Conversation) == "" {
			writeError(w, http.StatusBadRequest, "نص المحادثة مطلوب للتحليل")
			return
		}

		analysis, err := analyzer.AnalyzeNegotiationTactics(r.Context(), payload.Conversation)
		if err != nil {
			log.Printf("[API] Negotiation analysis failed: %v", err)
			writeError(w, http.StatusInternalServerError, "حدث خطأ في تحليل المفاوضة")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"analysis": analysis,
		})
	}
}

func NegotiationTacticsHandler(analyzer *nlp.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.TextRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		tactics, err := analyzer.AnalyzeNegotiationTactics(r.Context(), payload.Text)
		if err != nil {
			log.Printf("[API] Tactics analysis failed: %v", err)
			tactics = "حدث خطأ في تحليل تكتيكات المفاوضة"
		}

		writeJSON(w, http.StatusOK, map[string]any{"tactics": tactics})
	}
}

func MarketDataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, market.Data())
	}
}

func PricePredictionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.MarketQueryRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		writeJSON(w, http.StatusOK, market.PredictPrice(payload.Location, payload.PropertyType))
	}
}

func MarketTrendsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload types.MarketQueryRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		writeJSON(w, http.StatusOK, market.TrendsFor(payload.Location, payload.PropertyType))
	}
}
