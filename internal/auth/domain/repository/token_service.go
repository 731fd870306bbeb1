package repository

import (
	"context"

	"bistro-boss/internal/auth/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService defines the interface for token operations
type TokenService interface {
	GenerateToken(ctx context.Context, identity model.ProvenIdentity) (string, *Claims, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents JWT claims
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Identity projects the claims onto the request-scoped identity.
func (c *Claims) Identity() *model.DecodedIdentity {
	id := &model.DecodedIdentity{
		Email:   c.Email,
		Name:    c.Name,
		TokenID: c.ID,
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}
