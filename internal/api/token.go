package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"negochat/internal/auth"
	"negochat/internal/models"
	"negochat/internal/types"

	"github.com/google/uuid"
)

// TokenHandler issues a guest session token. There is no account store;
// a display name is all it takes, and the anonymity flag is carried into
// the claims.
func TokenHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Enabled() {
			writeError(w, http.StatusServiceUnavailable, "Authentication is not configured")
			return
		}

		var payload types.TokenRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Printf("[TOKEN] Decode error: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		username := strings.TrimSpace(payload.Username)
		if username == "" {
			username = "زائر"
		}

		user := models.User{
			UID:      uuid.NewString(),
			Username: username,
			IsGuest:  payload.IsAnonymous,
		}

		token, err := svc.GenerateToken(user.UID, user.Username, user.IsGuest)
		if err != nil {
			log.Printf("[TOKEN] Token generation failed for %s: %v", user.UID, err)
			writeError(w, http.StatusInternalServerError, "Failed to create session")
			return
		}

		writeJSON(w, http.StatusOK, types.TokenResponse{Token: token, User: user})
	}
}
