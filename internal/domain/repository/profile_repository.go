package repository

import (
	"context"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// SellerRepository defines the operations of the seller identity registry.
type SellerRepository interface {
	// Create persists a new seller profile whose ID is already assigned.
	// Returns ErrDuplicateEmail or ErrDuplicateUsername when a unique index rejects the write.
	Create(ctx context.Context, seller *entity.SellerProfile) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.SellerProfile, error)
	FindByEmail(ctx context.Context, email string) (*entity.SellerProfile, error)
	FindByUsername(ctx context.Context, username string) (*entity.SellerProfile, error)

	// List returns all seller profiles, optionally restricted to one status.
	List(ctx context.Context, status *entity.SellerStatus) ([]*entity.SellerProfile, error)

	// Update replaces the stored profile with the given one.
	Update(ctx context.Context, seller *entity.SellerProfile) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerRepository defines the operations of the customer identity registry.
type CustomerRepository interface {
	// Create persists a new customer profile whose ID is already assigned.
	// Returns ErrDuplicateEmail when a unique index rejects the write.
	Create(ctx context.Context, customer *entity.CustomerProfile) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomerProfile, error)
	FindByEmail(ctx context.Context, email string) (*entity.CustomerProfile, error)
	List(ctx context.Context) ([]*entity.CustomerProfile, error)
	Update(ctx context.Context, customer *entity.CustomerProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
