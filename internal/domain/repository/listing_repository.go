package repository

import (
	"context"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// ListingRepository defines the operations of the listing store.
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)

	// List returns the listings matching every constraint of the filter, newest first,
	// together with the total number of matches before paging.
	List(ctx context.Context, filter entity.ListingFilter, page entity.Page) ([]*entity.Listing, int64, error)

	// Update replaces the stored listing with the given one.
	Update(ctx context.Context, listing *entity.Listing) error

	// SetForSale changes only the availability flag of a listing.
	SetForSale(ctx context.Context, id uuid.UUID, forSale bool) error

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByOwner removes every listing of a seller and returns how many were removed.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
