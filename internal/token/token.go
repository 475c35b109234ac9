// Package token issues and validates the HS256 access tokens used as bearer
// credentials. The signing key and lifetime come from deployment
// configuration; the claims layout is the package's contract.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avasiliev/cadastral-service/internal/domain"
)

// Claims is the payload carried by every access token. Subject duplicates
// Email so the token stays readable with generic JWT tooling.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service creates and validates access tokens.
type Service struct {
	signingKey []byte
	ttl        time.Duration
}

// NewService constructs a Service with the given HMAC signing key and token
// lifetime.
func NewService(signingKey string, ttl time.Duration) *Service {
	return &Service{signingKey: []byte(signingKey), ttl: ttl}
}

// Issue signs a new access token for the given user.
func (s *Service) Issue(user domain.User) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	})

	signed, err := t.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("token.Service.Issue: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token string. Any malformed, expired, or
// wrongly signed token yields domain.ErrInvalidCredentials.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", domain.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%w: invalid token", domain.ErrInvalidCredentials)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrInvalidCredentials)
	}
	return claims, nil
}
