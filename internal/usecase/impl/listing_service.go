package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/infra/metrics"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// maxListingPageSize caps an explicit limit. Without a limit every match is returned.
const maxListingPageSize = 200

// listingService implements the ListingUsecase interface.
type listingService struct {
	txManager   repository.TransactionManager
	listingRepo repository.ListingRepository
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// ListingServiceParams holds dependencies for ListingService, injected by Fx.
type ListingServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ListingRepo repository.ListingRepository
	Metrics     *metrics.Metrics `optional:"true"`
	Logger      *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(params ListingServiceParams) usecase.ListingUsecase {
	return &listingService{
		txManager:   params.TxManager,
		listingRepo: params.ListingRepo,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

// Create stores a new listing. Sellers always own what they create; admins must name
// an existing seller as the owner. An omitted type means Residential.
func (srv *listingService) Create(ctx context.Context, actor *access.Principal, input usecase.CreateListingInput) (*entity.Listing, error) {
	if err := access.Authorize(actor, access.OpCreate, access.Resource{Kind: access.KindListing}); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	kind := input.Type
	if kind == "" {
		kind = entity.PropertyTypeResidential
	}

	var errs fieldErrors
	if actor.IsAdmin() {
		if input.OwnerID == nil || *input.OwnerID == uuid.Nil {
			errs.add("ownerId", "is required when an admin creates a property")
		} else {
			ownerID = *input.OwnerID
		}
	}

	now := utcNow()
	listing := &entity.Listing{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(input.Title),
		Type:          kind,
		Description:   input.Description,
		Address:       input.Address,
		ForSale:       input.ForSale,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Beds:          input.Beds,
		Baths:         input.Baths,
		ParkingSpot:   input.ParkingSpot,
		Furnished:     input.Furnished,
		Images:        slices.Clone(input.Images),
		OwnerID:       ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	validateListing(&errs, listing)
	if err := errs.err(); err != nil {
		return nil, err
	}

	// The owner check and the insert share a transaction so a concurrent account delete
	// cannot leave the listing without its seller.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		_, err := repoFactory.SellerRepo().FindByID(ctx, ownerID)
		exists, err := found(err, repository.ErrSellerNotFound, "failed to load owner")
		if err != nil {
			return err
		}
		if !exists {
			errs.add("ownerId", "must reference an existing seller")

			return errs.err()
		}

		return mapStoreError(repoFactory.ListingRepo().Create(ctx, listing), "failed to create listing")
	})
	if err != nil {
		return nil, err
	}

	srv.metrics.IncListingCreated()
	logger(ctx, srv.logger).Info("Listing created", slog.Any("listingID", listing.ID), slog.Any("ownerID", ownerID))

	return listing, nil
}

func (srv *listingService) Get(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	listing, err := srv.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load listing")
	}

	return listing, nil
}

// List returns the listings matching every supplied filter, newest first. An empty filter
// matches everything; a limit turns the result into one page.
func (srv *listingService) List(ctx context.Context, input usecase.ListListingsInput) (*usecase.ListListingsOutput, error) {
	var errs fieldErrors
	f := input.Filter
	if f.Type != nil && !f.Type.IsValid() {
		errs.add("type", "must be one of Residential, Commercial, Industrial")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		errs.add("minPrice", "must not exceed maxPrice")
	}
	if input.Limit < 0 {
		errs.add("limit", "must not be negative")
	}
	if input.Offset < 0 {
		errs.add("offset", "must not be negative")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	limit := min(input.Limit, maxListingPageSize)

	items, total, err := srv.listingRepo.List(ctx, f, entity.Page{Limit: limit, Offset: input.Offset})
	if err != nil {
		return nil, mapStoreError(err, "failed to list listings")
	}
	if items == nil {
		items = []*entity.Listing{}
	}

	return &usecase.ListListingsOutput{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: input.Offset,
	}, nil
}

// Update merges the supplied fields into the listing; omitted fields keep their value.
func (srv *listingService) Update(ctx context.Context, actor *access.Principal, id uuid.UUID, input usecase.UpdateListingInput) (*entity.Listing, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	var updated *entity.Listing
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listingRepo := repoFactory.ListingRepo()

		listing, err := listingRepo.FindByID(ctx, id)
		if err != nil {
			return mapStoreError(err, "failed to load listing")
		}
		if err := access.Authorize(actor, access.OpUpdate, access.Resource{Kind: access.KindListing, OwnerID: listing.OwnerID}); err != nil {
			return err
		}

		mergeListing(listing, input)

		var errs fieldErrors
		validateListing(&errs, listing)
		if err := errs.err(); err != nil {
			return err
		}

		listing.UpdatedAt = utcNow()
		if err := listingRepo.Update(ctx, listing); err != nil {
			return mapStoreError(err, "failed to update listing")
		}
		updated = listing

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update listing")
	}

	logger(ctx, srv.logger).Info("Listing updated", slog.Any("listingID", id), slog.Any("actorID", actor.ID))

	return updated, nil
}

// SetAvailability changes only the forSale flag.
func (srv *listingService) SetAvailability(ctx context.Context, actor *access.Principal, id uuid.UUID, forSale bool) (*usecase.AvailabilityOutput, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	listing, err := srv.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load listing")
	}
	if err := access.Authorize(actor, access.OpUpdateAvailability, access.Resource{Kind: access.KindListing, OwnerID: listing.OwnerID}); err != nil {
		return nil, err
	}

	if err := srv.listingRepo.SetForSale(ctx, id, forSale); err != nil {
		return nil, mapStoreError(err, "failed to update availability")
	}

	return &usecase.AvailabilityOutput{ID: id, ForSale: forSale}, nil
}

func (srv *listingService) Delete(ctx context.Context, actor *access.Principal, id uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	listing, err := srv.listingRepo.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(err, "failed to load listing")
	}
	if err := access.Authorize(actor, access.OpDelete, access.Resource{Kind: access.KindListing, OwnerID: listing.OwnerID}); err != nil {
		return err
	}

	if err := srv.listingRepo.Delete(ctx, id); err != nil {
		return mapStoreError(err, "failed to delete listing")
	}

	logger(ctx, srv.logger).Info("Listing deleted", slog.Any("listingID", id), slog.Any("actorID", actor.ID))

	return nil
}

func mergeListing(listing *entity.Listing, input usecase.UpdateListingInput) {
	if input.Title != nil {
		listing.Title = strings.TrimSpace(*input.Title)
	}
	if input.Type != nil {
		listing.Type = *input.Type
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Address != nil {
		listing.Address = *input.Address
	}
	if input.ForSale != nil {
		listing.ForSale = *input.ForSale
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.DiscountPrice != nil {
		listing.DiscountPrice = input.DiscountPrice
	}
	if input.Beds != nil {
		listing.Beds = input.Beds
	}
	if input.Baths != nil {
		listing.Baths = input.Baths
	}
	if input.ParkingSpot != nil {
		listing.ParkingSpot = *input.ParkingSpot
	}
	if input.Furnished != nil {
		listing.Furnished = *input.Furnished
	}
	if input.Images != nil {
		listing.Images = slices.Clone(*input.Images)
	}
}

// validateListing checks a complete listing, so the same rules hold after create and after a merge.
// Title and description may be empty.
func validateListing(errs *fieldErrors, l *entity.Listing) {
	if !l.Type.IsValid() {
		errs.add("type", "must be one of Residential, Commercial, Industrial")
	}
	if l.Price < 0 {
		errs.add("price", "must not be negative")
	}
	if l.DiscountPrice != nil {
		switch {
		case *l.DiscountPrice < 0:
			errs.add("discountPrice", "must not be negative")
		case *l.DiscountPrice >= l.Price:
			errs.add("discountPrice", "must be lower than price")
		}
	}
	if l.Beds != nil && *l.Beds < 0 {
		errs.add("beds", "must not be negative")
	}
	if l.Baths != nil && *l.Baths < 0 {
		errs.add("baths", "must not be negative")
	}
	if len(l.Images) == 0 {
		errs.add("images", "at least one image is required")
	}
	for _, image := range l.Images {
		if strings.TrimSpace(image) == "" {
			errs.add("images", "must not contain empty entries")

			break
		}
	}
}
