package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"

	"negochat/internal/auth"
	"negochat/internal/models"
)

type contextKey string

const UserKey contextKey = "user"

func getIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		return strings.Split(forwarded, ",")[0]
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Authenticate gates a route on a valid bearer token. The check is
// presence and validity only; there is no account store behind it.
func Authenticate(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "No token provided", http.StatusUnauthorized)
				return
			}

			claims, err := svc.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Printf("[AUTH] Invalid token from %s: %v", getIP(r), err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			user := &models.User{
				UID:      claims.UID,
				Username: claims.Username,
				IsGuest:  claims.IsGuest,
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom pulls the authenticated user back out of a request context.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
