package usecase

import (
	"context"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateListingInput defines a new listing. OwnerID is only honored for admins.
type CreateListingInput struct {
	Title         string
	Type          entity.PropertyType
	Description   string
	Address       entity.ListingAddress
	ForSale       bool
	Price         float64
	DiscountPrice *float64
	Beds          *int
	Baths         *int
	ParkingSpot   bool
	Furnished     bool
	Images        []string
	OwnerID       *uuid.UUID
}

// UpdateListingInput holds the listing fields to change. Nil fields keep their value.
type UpdateListingInput struct {
	Title         *string
	Type          *entity.PropertyType
	Description   *string
	Address       *entity.ListingAddress
	ForSale       *bool
	Price         *float64
	DiscountPrice *float64
	Beds          *int
	Baths         *int
	ParkingSpot   *bool
	Furnished     *bool
	Images        *[]string
}

// ListListingsInput defines a filtered browse. Paging is opt-in: a zero Limit returns every match.
type ListListingsInput struct {
	Filter entity.ListingFilter
	Limit  int
	Offset int
}

// ListListingsOutput is the matching listings, or one page of them. Limit is zero when unpaged.
type ListListingsOutput struct {
	Items  []*entity.Listing
	Total  int64
	Limit  int
	Offset int
}

// AvailabilityOutput is the minimal result of an availability change.
type AvailabilityOutput struct {
	ID      uuid.UUID
	ForSale bool
}

// ListingUsecase defines operations on property listings. Browsing is public.
type ListingUsecase interface {
	Create(ctx context.Context, actor *access.Principal, input CreateListingInput) (*entity.Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	List(ctx context.Context, input ListListingsInput) (*ListListingsOutput, error)
	Update(ctx context.Context, actor *access.Principal, id uuid.UUID, input UpdateListingInput) (*entity.Listing, error)
	SetAvailability(ctx context.Context, actor *access.Principal, id uuid.UUID, forSale bool) (*AvailabilityOutput, error)
	Delete(ctx context.Context, actor *access.Principal, id uuid.UUID) error
}
