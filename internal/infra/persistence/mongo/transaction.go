package mongo

import (
	"context"

	"estate/internal/domain/repository"
	"estate/internal/errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// sessionTransactionManager implements repository.TransactionManager with a MongoDB session.
type sessionTransactionManager struct {
	db *mongo.Database
}

// NewTransactionManager is the constructor for sessionTransactionManager.
func NewTransactionManager(db *mongo.Database) repository.TransactionManager {
	return &sessionTransactionManager{db: db}
}

// Execute runs fn inside a session transaction. The driver retries fn on transient
// transaction errors, so fn must not have side effects outside the store.
func (tm *sessionTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	session, err := tm.db.Client().StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(_ context.Context) (any, error) {
		return nil, fn(&sessionRepositoryFactory{db: tm.db, session: session})
	})

	return err
}

// sessionRepositoryFactory hands out repositories bound to one session.
type sessionRepositoryFactory struct {
	db      *mongo.Database
	session *mongo.Session
}

func (f *sessionRepositoryFactory) PrincipalRepo() repository.PrincipalRepository {
	return &principalRepository{collections: f.bind()}
}

func (f *sessionRepositoryFactory) SellerRepo() repository.SellerRepository {
	return &sellerRepository{collections: f.bind()}
}

func (f *sessionRepositoryFactory) CustomerRepo() repository.CustomerRepository {
	return &customerRepository{collections: f.bind()}
}

func (f *sessionRepositoryFactory) ListingRepo() repository.ListingRepository {
	return &listingRepository{collections: f.bind()}
}

func (f *sessionRepositoryFactory) ConversationRepo() repository.ConversationRepository {
	return &conversationRepository{collections: f.bind()}
}

func (f *sessionRepositoryFactory) bind() collections {
	return collections{db: f.db, session: f.session}
}

// collections is embedded by every repository. When a session is set, each operation
// joins the session's transaction regardless of the context the caller passes.
type collections struct {
	db      *mongo.Database
	session *mongo.Session
}

func (c collections) scope(ctx context.Context) context.Context {
	if c.session == nil {
		return ctx
	}

	return mongo.NewSessionContext(ctx, c.session)
}

func (c collections) coll(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Constructors for the application graph.

func NewPrincipalRepository(db *mongo.Database) repository.PrincipalRepository {
	return &principalRepository{collections: collections{db: db}}
}

func NewSellerRepository(db *mongo.Database) repository.SellerRepository {
	return &sellerRepository{collections: collections{db: db}}
}

func NewCustomerRepository(db *mongo.Database) repository.CustomerRepository {
	return &customerRepository{collections: collections{db: db}}
}

func NewListingRepository(db *mongo.Database) repository.ListingRepository {
	return &listingRepository{collections: collections{db: db}}
}

func NewConversationRepository(db *mongo.Database) repository.ConversationRepository {
	return &conversationRepository{collections: collections{db: db}}
}
