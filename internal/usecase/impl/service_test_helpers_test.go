package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"estate/config"
	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/domain/service"
	"estate/internal/errors"
	"estate/internal/infra/persistence/memory"
	"estate/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			TokenTTL:          time.Hour,
			PasswordMinLength: 6,
		},
		Chat: &config.ChatConfig{
			Provider:     config.ChatProviderNone,
			HistoryLimit: 4,
		},
	}
}

// plainHasher keeps tests fast; the bcrypt hasher has its own tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// stubTokens issues opaque tokens of the form "<principalID>|<role>|<jti>".
type stubTokens struct{}

func (stubTokens) Issue(principalID uuid.UUID, role entity.Role) (*service.IssuedToken, error) {
	jti := uuid.NewString()
	expiresAt := time.Now().Add(time.Hour)

	return &service.IssuedToken{
		Token:     principalID.String() + "|" + string(role) + "|" + jti,
		TokenID:   jti,
		ExpiresAt: expiresAt,
	}, nil
}

func (stubTokens) Validate(token string) (*service.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 {
		return nil, errors.New("malformed token")
	}

	return &service.Claims{
		Role: entity.Role(parts[1]),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   parts[0],
			ID:        parts[2],
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, nil
}

type memoryRevocations struct {
	revoked map[string]bool
}

func (m *memoryRevocations) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	m.revoked[tokenID] = true

	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return m.revoked[tokenID], nil
}

// mockCompleter is a testify mock of service.Completer.
type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, history []service.ChatTurn) (string, error) {
	args := m.Called(ctx, history)

	return args.String(0), args.Error(1)
}

// failingTxManager runs transactions against the wrapped manager, but makes the
// principal insert inside them fail after the profile insert has already succeeded.
type failingTxManager struct {
	inner repository.TransactionManager
	err   error
}

func (m *failingTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.inner.Execute(ctx, func(f repository.RepositoryFactory) error {
		return fn(&failingFactory{RepositoryFactory: f, err: m.err})
	})
}

type failingFactory struct {
	repository.RepositoryFactory
	err error
}

func (f *failingFactory) PrincipalRepo() repository.PrincipalRepository {
	return &failingPrincipalRepo{PrincipalRepository: f.RepositoryFactory.PrincipalRepo(), err: f.err}
}

type failingPrincipalRepo struct {
	repository.PrincipalRepository
	err error
}

func (r *failingPrincipalRepo) Create(context.Context, *entity.Principal) error {
	return r.err
}

// testApp wires every service against one in-memory store.
type testApp struct {
	store         *memory.Store
	registration  *registrationService
	auth          *authService
	principals    *principalService
	sellers       *sellerService
	customers     *customerService
	listings      *listingService
	conversations *conversationService
	completer     *mockCompleter
}

func newTestApp() *testApp {
	store := memory.NewStore()
	txManager := memory.NewTransactionManager(store)
	cfg := newTestConfig()
	logger := newDiscardLogger()
	completer := &mockCompleter{}

	authSvc, err := NewAuthService(AuthServiceParams{
		TxManager:     txManager,
		PrincipalRepo: memory.NewPrincipalRepository(store),
		SellerRepo:    memory.NewSellerRepository(store),
		CustomerRepo:  memory.NewCustomerRepository(store),
		Hasher:        plainHasher{},
		TokenService:  stubTokens{},
		Revocations:   &memoryRevocations{revoked: map[string]bool{}},
		Config:        cfg,
		Logger:        logger,
	})
	if err != nil {
		panic(err)
	}

	return &testApp{
		store: store,
		registration: NewRegistrationService(RegistrationServiceParams{
			TxManager: txManager,
			Hasher:    plainHasher{},
			Config:    cfg,
			Logger:    logger,
		}).(*registrationService),
		auth: authSvc.(*authService),
		principals: NewPrincipalService(PrincipalServiceParams{
			TxManager:     txManager,
			PrincipalRepo: memory.NewPrincipalRepository(store),
			Logger:        logger,
		}).(*principalService),
		sellers: NewSellerService(SellerServiceParams{
			TxManager:  txManager,
			SellerRepo: memory.NewSellerRepository(store),
			Logger:     logger,
		}).(*sellerService),
		customers: NewCustomerService(CustomerServiceParams{
			TxManager:    txManager,
			CustomerRepo: memory.NewCustomerRepository(store),
			Logger:       logger,
		}).(*customerService),
		listings: NewListingService(ListingServiceParams{
			TxManager:   txManager,
			ListingRepo: memory.NewListingRepository(store),
			Logger:      logger,
		}).(*listingService),
		conversations: NewConversationService(ConversationServiceParams{
			ConversationRepo: memory.NewConversationRepository(store),
			Completer:        completer,
			Config:           cfg,
			Logger:           logger,
		}).(*conversationService),
		completer: completer,
	}
}

func sellerInput(email, username string) usecase.RegisterSellerInput {
	return usecase.RegisterSellerInput{
		Email:    email,
		Password: "secret1",
		Profile: usecase.SellerProfileFields{
			FirstName:         "Ada",
			LastName:          "Lovelace",
			Phone:             "+44 20 0000",
			IdentificationDoc: "doc.pdf",
			Username:          username,
		},
	}
}

func (a *testApp) registerSeller(ctx context.Context, email, username string) *access.Principal {
	out, err := a.registration.RegisterSeller(ctx, sellerInput(email, username))
	if err != nil {
		panic(err)
	}

	return &access.Principal{ID: out.ProfileID, Role: entity.RoleSeller}
}

func (a *testApp) registerCustomer(ctx context.Context, email string) *access.Principal {
	out, err := a.registration.RegisterCustomer(ctx, usecase.RegisterCustomerInput{Email: email, Password: "secret1"})
	if err != nil {
		panic(err)
	}

	return &access.Principal{ID: out.ProfileID, Role: entity.RoleCustomer}
}

func (a *testApp) admin(ctx context.Context) *access.Principal {
	_, err := a.registration.EnsureAdmin(ctx, "admin@example.com", "adminpw", "Admin")
	if err != nil {
		panic(err)
	}
	p, err := a.store.Factory().PrincipalRepo().FindByEmail(ctx, "admin@example.com")
	if err != nil {
		panic(err)
	}

	return &access.Principal{ID: p.ID, Role: entity.RoleAdmin}
}

func ptr[T any](v T) *T {
	return &v
}
