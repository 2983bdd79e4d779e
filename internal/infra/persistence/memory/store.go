// Package memory is an in-process implementation of the persistence layer.
// It backs the "memory" storage driver and the service tests.
package memory

import (
	"context"
	"sync"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"

	"github.com/google/uuid"
)

// dataset holds every collection. Stored records are never mutated in place:
// writes replace the pointer, so a dataset can be cloned by copying its maps.
type dataset struct {
	principals    map[uuid.UUID]*entity.Principal
	sellers       map[uuid.UUID]*entity.SellerProfile
	customers     map[uuid.UUID]*entity.CustomerProfile
	listings      map[uuid.UUID]*entity.Listing
	conversations map[uuid.UUID]*entity.Conversation
}

func newDataset() *dataset {
	return &dataset{
		principals:    make(map[uuid.UUID]*entity.Principal),
		sellers:       make(map[uuid.UUID]*entity.SellerProfile),
		customers:     make(map[uuid.UUID]*entity.CustomerProfile),
		listings:      make(map[uuid.UUID]*entity.Listing),
		conversations: make(map[uuid.UUID]*entity.Conversation),
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		principals:    cloneMap(d.principals),
		sellers:       cloneMap(d.sellers),
		customers:     cloneMap(d.customers),
		listings:      cloneMap(d.listings),
		conversations: cloneMap(d.conversations),
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

// Store is a copy-on-write document store guarded by a single mutex.
// Transactions run against a private clone that replaces the live data on commit.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// NewTransactionManager exposes the store as a repository.TransactionManager.
func NewTransactionManager(s *Store) repository.TransactionManager {
	return s
}

// Execute runs fn against a snapshot of the store. The snapshot becomes the live data
// only if fn returns nil. Transactions are serialized.
func (s *Store) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	if err := fn(&repositoryFactory{store: s, tx: tx}); err != nil {
		return err
	}
	s.data = tx

	return nil
}

// with runs fn on the transaction dataset when bound to one, otherwise on the live data under the lock.
func (s *Store) with(tx *dataset, fn func(d *dataset) error) error {
	if tx != nil {
		return fn(tx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.data)
}

// Factory returns repositories that operate directly on the live data.
func (s *Store) Factory() repository.RepositoryFactory {
	return &repositoryFactory{store: s}
}

type repositoryFactory struct {
	store *Store
	tx    *dataset
}

func (f *repositoryFactory) PrincipalRepo() repository.PrincipalRepository {
	return &principalRepository{store: f.store, tx: f.tx}
}

func (f *repositoryFactory) SellerRepo() repository.SellerRepository {
	return &sellerRepository{store: f.store, tx: f.tx}
}

func (f *repositoryFactory) CustomerRepo() repository.CustomerRepository {
	return &customerRepository{store: f.store, tx: f.tx}
}

func (f *repositoryFactory) ListingRepo() repository.ListingRepository {
	return &listingRepository{store: f.store, tx: f.tx}
}

func (f *repositoryFactory) ConversationRepo() repository.ConversationRepository {
	return &conversationRepository{store: f.store, tx: f.tx}
}

// Constructors for the application graph.

func NewPrincipalRepository(s *Store) repository.PrincipalRepository {
	return s.Factory().PrincipalRepo()
}

func NewSellerRepository(s *Store) repository.SellerRepository {
	return s.Factory().SellerRepo()
}

func NewCustomerRepository(s *Store) repository.CustomerRepository {
	return s.Factory().CustomerRepo()
}

func NewListingRepository(s *Store) repository.ListingRepository {
	return s.Factory().ListingRepo()
}

func NewConversationRepository(s *Store) repository.ConversationRepository {
	return s.Factory().ConversationRepo()
}
