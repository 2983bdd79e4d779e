package memory

import (
	"context"
	"slices"
	"strings"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"

	"github.com/google/uuid"
)

type principalRepository struct {
	store *Store
	tx    *dataset
}

func (r *principalRepository) Create(_ context.Context, principal *entity.Principal) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, exists := d.principals[principal.ID]; exists {
			return errors.Errorf("principal %s already exists", principal.ID)
		}
		if taken(d.principals, principal.ID, principal.Email, principalEmail) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}
		d.principals[principal.ID] = clonePrincipal(principal)

		return nil
	})
}

func (r *principalRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Principal, error) {
	var found *entity.Principal
	err := r.store.with(r.tx, func(d *dataset) error {
		p, ok := d.principals[id]
		if !ok {
			return errors.WithStack(repository.ErrPrincipalNotFound)
		}
		found = clonePrincipal(p)

		return nil
	})

	return found, err
}

func (r *principalRepository) FindByEmail(_ context.Context, email string) (*entity.Principal, error) {
	var found *entity.Principal
	err := r.store.with(r.tx, func(d *dataset) error {
		for _, p := range d.principals {
			if p.Email == email {
				found = clonePrincipal(p)

				return nil
			}
		}

		return errors.WithStack(repository.ErrPrincipalNotFound)
	})

	return found, err
}

func (r *principalRepository) List(_ context.Context, role *entity.Role) ([]*entity.Principal, error) {
	var out []*entity.Principal
	err := r.store.with(r.tx, func(d *dataset) error {
		for _, p := range d.principals {
			if role != nil && p.Role != *role {
				continue
			}
			out = append(out, clonePrincipal(p))
		}

		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Principal) int {
		return strings.Compare(a.Email, b.Email)
	})

	return out, err
}

func (r *principalRepository) Update(_ context.Context, principal *entity.Principal) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.principals[principal.ID]; !ok {
			return errors.WithStack(repository.ErrPrincipalNotFound)
		}
		if taken(d.principals, principal.ID, principal.Email, principalEmail) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}
		d.principals[principal.ID] = clonePrincipal(principal)

		return nil
	})
}

func (r *principalRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.principals[id]; !ok {
			return errors.WithStack(repository.ErrPrincipalNotFound)
		}
		delete(d.principals, id)

		return nil
	})
}

// taken reports whether a record other than self already has the given key.
func taken[T any](records map[uuid.UUID]T, self uuid.UUID, key string, keyOf func(T) string) bool {
	for id, record := range records {
		if id != self && keyOf(record) == key {
			return true
		}
	}

	return false
}

func principalEmail(p *entity.Principal) string { return p.Email }
