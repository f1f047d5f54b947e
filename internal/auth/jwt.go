package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoKey means no AUTH_KEY was configured; token issuance and
// validation are disabled but the chat itself keeps working.
var ErrNoKey = errors.New("auth key not configured")

type CustomClaims struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	IsGuest  bool   `json:"isGuest"`
	jwt.RegisteredClaims
}

// Service signs and validates guest session tokens with a single shared
// HMAC key.
type Service struct {
	key []byte
}

func NewService(key string) *Service {
	if key == "" {
		log.Println("[AUTH] WARNING: AuthKey is empty, auth endpoints disabled")
		return &Service{}
	}
	return &Service{key: []byte(key)}
}

func (s *Service) Enabled() bool {
	return len(s.key) > 0
}

func (s *Service) GenerateToken(uid, username string, isGuest bool) (string, error) {
	if !s.Enabled() {
		return "", ErrNoKey
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	log.Printf("[AUTH] Generating token for UID: %s (Expires: %s)", uid, expiresAt.Format(time.RFC3339))

	claims := &CustomClaims{
		UID:      uid,
		Username: username,
		IsGuest:  isGuest,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "NegoAI",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.key)
	if err != nil {
		log.Printf("[AUTH] ERROR: Failed to sign token for %s: %v", uid, err)
		return "", err
	}

	return tokenString, nil
}

func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	if !s.Enabled() {
		return nil, ErrNoKey
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	})

	if err != nil {
		log.Printf("[AUTH] JWT Parse Error: %v", err)
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
