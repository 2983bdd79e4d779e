package repository

import (
	"context"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// PrincipalRepository defines the operations of the credential store.
type PrincipalRepository interface {
	// Create persists a new principal. The email must already be normalized.
	// Returns ErrDuplicateEmail if another principal uses the same email.
	Create(ctx context.Context, principal *entity.Principal) error

	// FindByID retrieves a principal by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error)

	// FindByEmail retrieves a principal by its normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Principal, error)

	// List returns all principals, optionally restricted to one role.
	List(ctx context.Context, role *entity.Role) ([]*entity.Principal, error)

	// Update replaces the stored principal with the given one.
	Update(ctx context.Context, principal *entity.Principal) error

	// Delete removes a principal by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
