package usecase

import (
	"context"
	"time"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// LoginInput defines the data required for a principal to log in.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the issued session token.
type LoginOutput struct {
	Principal *entity.Principal
	Token     string
	ExpiresAt time.Time
}

// ChangePasswordInput defines a password change. CurrentPassword is required when
// the actor changes their own password.
type ChangePasswordInput struct {
	PrincipalID     uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// MeOutput describes the caller's account.
type MeOutput struct {
	Principal *entity.Principal
	Seller    *entity.SellerProfile
	Customer  *entity.CustomerProfile
}

// AuthUsecase defines session issuance and credential maintenance.
type AuthUsecase interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, token string) error

	// ResolvePrincipal validates a session token and returns the principal it belongs to.
	ResolvePrincipal(ctx context.Context, token string) (*access.Principal, error)

	ChangePassword(ctx context.Context, actor *access.Principal, input ChangePasswordInput) error
	Me(ctx context.Context, actor *access.Principal) (*MeOutput, error)
}
