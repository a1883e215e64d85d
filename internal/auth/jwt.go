package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "github.com/john-holland/heycern-m87hey/pkg/domain"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
)

const (
	tokenIssuer   = "heycern-m87hey"
	tokenAudience = "science-community"
)

// Claims represents the JWT claims carried by issued API tokens. The subject
// is the holder's email address and the JWT ID ties the credential back to
// its stored record.
type Claims struct {
	Name    string `json:"name"`
	Service bool   `json:"service"`
	jwt.RegisteredClaims
}

// TokenID returns the stored record's ID from the JWT ID claim.
func (c *Claims) TokenID() (id.TokenID, error) {
	return id.ParseTokenID(c.ID)
}

// Manager handles API token creation and validation.
type Manager struct {
	signingKey []byte
	ttl        time.Duration
}

// NewManager builds a Manager signing with the given key. Tokens expire
// after ttl.
func NewManager(signingKey string, ttl time.Duration) *Manager {
	return &Manager{
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}
}

// TTL reports how long newly signed tokens stay valid.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Sign produces the bearer credential for a token record.
func (m *Manager) Sign(token Token) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name:    token.Name,
		Service: token.Service,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   token.Email,
			ExpiresAt: jwt.NewNumericDate(token.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(token.CreatedAt),
			Issuer:    tokenIssuer,
			Audience:  []string{tokenAudience},
			ID:        token.ID.String(),
		},
	})

	signed, err := newToken.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer credential.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return m.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}
