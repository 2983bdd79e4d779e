package memory

import (
	"context"
	"slices"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"

	"github.com/google/uuid"
)

func sellerEmail(s *entity.SellerProfile) string     { return s.Email }
func sellerUsername(s *entity.SellerProfile) string  { return s.Username }
func customerEmail(c *entity.CustomerProfile) string { return c.Email }

type sellerRepository struct {
	store *Store
	tx    *dataset
}

func (r *sellerRepository) checkUnique(d *dataset, seller *entity.SellerProfile) error {
	if taken(d.sellers, seller.ID, seller.Email, sellerEmail) {
		return errors.WithStack(repository.ErrDuplicateEmail)
	}
	if taken(d.sellers, seller.ID, seller.Username, sellerUsername) {
		return errors.WithStack(repository.ErrDuplicateUsername)
	}

	return nil
}

func (r *sellerRepository) Create(_ context.Context, seller *entity.SellerProfile) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, exists := d.sellers[seller.ID]; exists {
			return errors.Errorf("seller profile %s already exists", seller.ID)
		}
		if err := r.checkUnique(d, seller); err != nil {
			return err
		}
		d.sellers[seller.ID] = cloneSeller(seller)

		return nil
	})
}

func (r *sellerRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.SellerProfile, error) {
	return r.findOne(func(s *entity.SellerProfile) bool { return s.ID == id })
}

func (r *sellerRepository) FindByEmail(_ context.Context, email string) (*entity.SellerProfile, error) {
	return r.findOne(func(s *entity.SellerProfile) bool { return s.Email == email })
}

func (r *sellerRepository) FindByUsername(_ context.Context, username string) (*entity.SellerProfile, error) {
	return r.findOne(func(s *entity.SellerProfile) bool { return s.Username == username })
}

func (r *sellerRepository) findOne(match func(*entity.SellerProfile) bool) (*entity.SellerProfile, error) {
	var found *entity.SellerProfile
	err := r.store.with(r.tx, func(d *dataset) error {
		for _, s := range d.sellers {
			if match(s) {
				found = cloneSeller(s)

				return nil
			}
		}

		return errors.WithStack(repository.ErrSellerNotFound)
	})

	return found, err
}

func (r *sellerRepository) List(_ context.Context, status *entity.SellerStatus) ([]*entity.SellerProfile, error) {
	var out []*entity.SellerProfile
	err := r.store.with(r.tx, func(d *dataset) error {
		for _, s := range d.sellers {
			if status != nil && s.Status != *status {
				continue
			}
			out = append(out, cloneSeller(s))
		}

		return nil
	})
	slices.SortFunc(out, func(a, b *entity.SellerProfile) int {
		return b.RegisteredAt.Compare(a.RegisteredAt)
	})

	return out, err
}

func (r *sellerRepository) Update(_ context.Context, seller *entity.SellerProfile) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.sellers[seller.ID]; !ok {
			return errors.WithStack(repository.ErrSellerNotFound)
		}
		if err := r.checkUnique(d, seller); err != nil {
			return err
		}
		d.sellers[seller.ID] = cloneSeller(seller)

		return nil
	})
}

func (r *sellerRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.sellers[id]; !ok {
			return errors.WithStack(repository.ErrSellerNotFound)
		}
		delete(d.sellers, id)

		return nil
	})
}

type customerRepository struct {
	store *Store
	tx    *dataset
}

func (r *customerRepository) Create(_ context.Context, customer *entity.CustomerProfile) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, exists := d.customers[customer.ID]; exists {
			return errors.Errorf("customer profile %s already exists", customer.ID)
		}
		if taken(d.customers, customer.ID, customer.Email, customerEmail) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}
		d.customers[customer.ID] = cloneCustomer(customer)

		return nil
	})
}

func (r *customerRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.CustomerProfile, error) {
	return r.findOne(func(c *entity.CustomerProfile) bool { return c.ID == id })
}

func (r *customerRepository) FindByEmail(_ context.Context, email string) (*entity.CustomerProfile, error) {
	return r.findOne(func(c *entity.CustomerProfile) bool { return c.Email == email })
}

func (r *customerRepository) findOne(match func(*entity.CustomerProfile) bool) (*entity.CustomerProfile, error) {
	var found *entity.CustomerProfile
	err := r.store.with(r.tx, func(d *dataset) error {
		for _, c := range d.customers {
			if match(c) {
				found = cloneCustomer(c)

				return nil
			}
		}

		return errors.WithStack(repository.ErrCustomerNotFound)
	})

	return found, err
}

func (r *customerRepository) List(_ context.Context) ([]*entity.CustomerProfile, error) {
	var out []*entity.CustomerProfile
	err := r.store.with(r.tx, func(d *dataset) error {
		for _, c := range d.customers {
			out = append(out, cloneCustomer(c))
		}

		return nil
	})
	slices.SortFunc(out, func(a, b *entity.CustomerProfile) int {
		return b.RegisteredAt.Compare(a.RegisteredAt)
	})

	return out, err
}

func (r *customerRepository) Update(_ context.Context, customer *entity.CustomerProfile) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.customers[customer.ID]; !ok {
			return errors.WithStack(repository.ErrCustomerNotFound)
		}
		if taken(d.customers, customer.ID, customer.Email, customerEmail) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}
		d.customers[customer.ID] = cloneCustomer(customer)

		return nil
	})
}

func (r *customerRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.customers[id]; !ok {
			return errors.WithStack(repository.ErrCustomerNotFound)
		}
		delete(d.customers, id)

		return nil
	})
}
