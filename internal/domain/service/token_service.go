package service

import (
	"context"
	"time"

	"estate/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the session tokens.
// The principal ID travels in the registered "sub" claim and the token ID in "jti".
type Claims struct {
	Role entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// PrincipalID parses the subject claim into the principal's ID.
func (c *Claims) PrincipalID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// IssuedToken is a signed token together with the values needed to describe it to a client.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService defines the interface for generating and validating session tokens.
type TokenService interface {
	// Issue creates a signed token for the given principal.
	Issue(principalID uuid.UUID, role entity.Role) (*IssuedToken, error)

	// Validate checks the signature and expiry of a token string.
	Validate(tokenString string) (*Claims, error)
}

// RevocationList remembers tokens that were logged out before they expired.
type RevocationList interface {
	// Revoke marks the token ID as revoked until the given expiry.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether the token ID was revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
