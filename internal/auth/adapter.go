package auth

import (
	"github.com/john-holland/heycern-m87hey/internal/platform/middleware"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
)

// ToMiddlewareClaims converts validated JWT claims into the shape the HTTP
// middleware stores on the request context.
func ToMiddlewareClaims(claims *Claims) (*middleware.TokenClaims, error) {
	tokenID, err := claims.TokenID()
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return &middleware.TokenClaims{
		TokenID: tokenID,
		Subject: claims.Subject,
		Name:    claims.Name,
	}, nil
}

// ManagerAdapter bridges the Manager to the middleware's TokenValidator.
type ManagerAdapter struct {
	manager *Manager
}

// NewManagerAdapter wraps a Manager for use by middleware.RequireAuth.
func NewManagerAdapter(manager *Manager) *ManagerAdapter {
	return &ManagerAdapter{manager: manager}
}

func (a *ManagerAdapter) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := a.manager.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims)
}
