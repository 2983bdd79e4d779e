package memory

import (
	"context"
	"slices"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"

	"github.com/google/uuid"
)

type listingRepository struct {
	store *Store
	tx    *dataset
}

func (r *listingRepository) Create(_ context.Context, listing *entity.Listing) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, exists := d.listings[listing.ID]; exists {
			return errors.Errorf("listing %s already exists", listing.ID)
		}
		d.listings[listing.ID] = cloneListing(listing)

		return nil
	})
}

func (r *listingRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Listing, error) {
	var found *entity.Listing
	err := r.store.with(r.tx, func(d *dataset) error {
		l, ok := d.listings[id]
		if !ok {
			return errors.WithStack(repository.ErrListingNotFound)
		}
		found = cloneListing(l)

		return nil
	})

	return found, err
}

func (r *listingRepository) List(_ context.Context, filter entity.ListingFilter, page entity.Page) ([]*entity.Listing, int64, error) {
	var matched []*entity.Listing
	err := r.store.with(r.tx, func(d *dataset) error {
		for _, l := range d.listings {
			if filter.Matches(l) {
				matched = append(matched, cloneListing(l))
			}
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	slices.SortFunc(matched, func(a, b *entity.Listing) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return slices.Compare(a.ID[:], b.ID[:])
	})

	total := int64(len(matched))
	start := min(max(page.Offset, 0), len(matched))
	end := len(matched)
	if page.Limit > 0 {
		end = min(start+page.Limit, len(matched))
	}

	return matched[start:end], total, nil
}

func (r *listingRepository) Update(_ context.Context, listing *entity.Listing) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.listings[listing.ID]; !ok {
			return errors.WithStack(repository.ErrListingNotFound)
		}
		d.listings[listing.ID] = cloneListing(listing)

		return nil
	})
}

func (r *listingRepository) SetForSale(_ context.Context, id uuid.UUID, forSale bool) error {
	return r.store.with(r.tx, func(d *dataset) error {
		l, ok := d.listings[id]
		if !ok {
			return errors.WithStack(repository.ErrListingNotFound)
		}
		updated := cloneListing(l)
		updated.ForSale = forSale
		d.listings[id] = updated

		return nil
	})
}

func (r *listingRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.listings[id]; !ok {
			return errors.WithStack(repository.ErrListingNotFound)
		}
		delete(d.listings, id)

		return nil
	})
}

func (r *listingRepository) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var removed int64
	err := r.store.with(r.tx, func(d *dataset) error {
		for id, l := range d.listings {
			if l.OwnerID == ownerID {
				delete(d.listings, id)
				removed++
			}
		}

		return nil
	})

	return removed, err
}
