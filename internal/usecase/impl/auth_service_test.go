package impl

import (
	"context"
	"testing"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/errors"
	"estate/internal/infra/persistence/memory"
	"estate/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockHasher is a testify mock of service.PasswordHasher.
type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func newAuthServiceWithHasher(hasher *mockHasher) (*authService, error) {
	store := memory.NewStore()
	srv, err := NewAuthService(AuthServiceParams{
		TxManager:     memory.NewTransactionManager(store),
		PrincipalRepo: memory.NewPrincipalRepository(store),
		SellerRepo:    memory.NewSellerRepository(store),
		CustomerRepo:  memory.NewCustomerRepository(store),
		Hasher:        hasher,
		TokenService:  stubTokens{},
		Revocations:   &memoryRevocations{revoked: map[string]bool{}},
		Config:        newTestConfig(),
		Logger:        newDiscardLogger(),
	})
	if err != nil {
		return nil, err
	}

	return srv.(*authService), nil
}

func TestAuthService_Login(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")

	out, err := app.auth.Login(ctx, usecase.LoginInput{Email: "S@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, seller.ID, out.Principal.ID)
	assert.NotEmpty(t, out.Token)

	resolved, err := app.auth.ResolvePrincipal(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, resolved.ID)
	assert.Equal(t, entity.RoleSeller, resolved.Role)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	app.registerCustomer(ctx, "c@x.io")

	_, wrongPassword := app.auth.Login(ctx, usecase.LoginInput{Email: "c@x.io", Password: "nope-nope"})
	_, unknownEmail := app.auth.Login(ctx, usecase.LoginInput{Email: "ghost@x.io", Password: "nope-nope"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, errors.Is(wrongPassword, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownEmail, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Login_UnknownEmailReusesTimingHash(t *testing.T) {
	hasher := &mockHasher{}
	hasher.On("Hash", timingPassword).Return("timing-hash", nil).Once()
	hasher.On("Check", "nope-nope", "timing-hash").Return(false).Twice()

	srv, err := newAuthServiceWithHasher(hasher)
	require.NoError(t, err)
	hasher.AssertNumberOfCalls(t, "Hash", 1)

	ctx := context.Background()
	for range 2 {
		_, err = srv.Login(ctx, usecase.LoginInput{Email: "ghost@x.io", Password: "nope-nope"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	}

	hasher.AssertNumberOfCalls(t, "Hash", 1)
	hasher.AssertExpectations(t)
}

func TestNewAuthService_FailsWhenTimingHashCannotBePrepared(t *testing.T) {
	hasher := &mockHasher{}
	hasher.On("Hash", timingPassword).Return("", errors.New("cost out of range")).Once()

	srv, err := newAuthServiceWithHasher(hasher)

	require.Error(t, err)
	assert.Nil(t, srv)
	assert.Contains(t, err.Error(), "failed to prepare login timing hash")
	hasher.AssertExpectations(t)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	app.registerCustomer(ctx, "c@x.io")

	out, err := app.auth.Login(ctx, usecase.LoginInput{Email: "c@x.io", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, app.auth.Logout(ctx, out.Token))

	_, err = app.auth.ResolvePrincipal(ctx, out.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestAuthService_ResolvePrincipal_DeletedAccount(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")

	out, err := app.auth.Login(ctx, usecase.LoginInput{Email: "c@x.io", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, app.store.Factory().PrincipalRepo().Delete(ctx, customer.ID))

	_, err = app.auth.ResolvePrincipal(ctx, out.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestAuthService_ChangePassword(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")
	other := app.registerCustomer(ctx, "o@x.io")

	t.Run("self change requires the current password", func(t *testing.T) {
		err := app.auth.ChangePassword(ctx, customer, usecase.ChangePasswordInput{
			PrincipalID: customer.ID,
			NewPassword: "newsecret",
		})
		assert.True(t, errors.Is(err, domainerrors.ErrCurrentPasswordRequired))
	})

	t.Run("self change rejects a wrong current password", func(t *testing.T) {
		err := app.auth.ChangePassword(ctx, customer, usecase.ChangePasswordInput{
			PrincipalID:     customer.ID,
			CurrentPassword: "wrong-one",
			NewPassword:     "newsecret",
		})
		assert.True(t, errors.Is(err, domainerrors.ErrCurrentPasswordMismatch))
	})

	t.Run("new password follows the length policy", func(t *testing.T) {
		err := app.auth.ChangePassword(ctx, customer, usecase.ChangePasswordInput{
			PrincipalID:     customer.ID,
			CurrentPassword: "secret1",
			NewPassword:     "abc",
		})
		var verr *domainerrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "newPassword", verr.Fields()[0].Field)
	})

	t.Run("self change succeeds", func(t *testing.T) {
		err := app.auth.ChangePassword(ctx, customer, usecase.ChangePasswordInput{
			PrincipalID:     customer.ID,
			CurrentPassword: "secret1",
			NewPassword:     "newsecret",
		})
		require.NoError(t, err)

		_, err = app.auth.Login(ctx, usecase.LoginInput{Email: "c@x.io", Password: "newsecret"})
		assert.NoError(t, err)
	})

	t.Run("other principals are denied", func(t *testing.T) {
		err := app.auth.ChangePassword(ctx, other, usecase.ChangePasswordInput{
			PrincipalID: customer.ID,
			NewPassword: "hijacked",
		})
		assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))
	})

	t.Run("admin resets without the current password", func(t *testing.T) {
		err := app.auth.ChangePassword(ctx, app.admin(ctx), usecase.ChangePasswordInput{
			PrincipalID: customer.ID,
			NewPassword: "resetpw",
		})
		require.NoError(t, err)

		_, err = app.auth.Login(ctx, usecase.LoginInput{Email: "c@x.io", Password: "resetpw"})
		assert.NoError(t, err)
	})
}

func TestAuthService_Me(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")

	out, err := app.auth.Me(ctx, seller)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, out.Principal.ID)
	require.NotNil(t, out.Seller)
	assert.Equal(t, "seller", out.Seller.Username)
	assert.Nil(t, out.Customer)

	_, err = app.auth.Me(ctx, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationRequired))
}
