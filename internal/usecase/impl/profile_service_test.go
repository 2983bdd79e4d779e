package impl

import (
	"context"
	"testing"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/errors"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellerService_SelfOrAdmin(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")
	other := app.registerSeller(ctx, "o@example.com", "other")
	admin := app.admin(ctx)

	_, err := app.sellers.Get(ctx, seller, seller.ID)
	assert.NoError(t, err)

	_, err = app.sellers.Get(ctx, other, seller.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	_, err = app.sellers.Get(ctx, admin, seller.ID)
	assert.NoError(t, err)

	_, err = app.sellers.List(ctx, seller, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	pending := entity.SellerStatusPending
	sellers, err := app.sellers.List(ctx, admin, &pending)
	require.NoError(t, err)
	assert.Len(t, sellers, 2)
}

func TestSellerService_Update_EmailPropagatesToPrincipal(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")

	updated, err := app.sellers.Update(ctx, seller, seller.ID, usecase.UpdateSellerInput{
		Email: ptr("New@Example.com"),
		Bio:   ptr("Coastal homes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "Coastal homes", updated.Bio)
	assert.Equal(t, "seller", updated.Username)

	principal, err := app.store.Factory().PrincipalRepo().FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", principal.Email)

	_, err = app.auth.Login(ctx, usecase.LoginInput{Email: "new@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestSellerService_Update_UniquenessOnlyWhenSupplied(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")
	app.registerSeller(ctx, "o@example.com", "other")

	_, err := app.sellers.Update(ctx, seller, seller.ID, usecase.UpdateSellerInput{Phone: ptr("555")})
	assert.NoError(t, err)

	_, err = app.sellers.Update(ctx, seller, seller.ID, usecase.UpdateSellerInput{Username: ptr("other")})
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))

	_, err = app.sellers.Update(ctx, seller, seller.ID, usecase.UpdateSellerInput{Email: ptr("o@example.com")})
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))
}

func TestSellerService_UpdateStatus(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")

	_, err := app.sellers.UpdateStatus(ctx, seller, seller.ID, entity.SellerStatusApproved)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	_, err = app.sellers.UpdateStatus(ctx, app.admin(ctx), seller.ID, "Suspended")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	updated, err := app.sellers.UpdateStatus(ctx, app.admin(ctx), seller.ID, entity.SellerStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.SellerStatusApproved, updated.Status)
}

func TestCustomerService_UpdateAndList(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")
	other := app.registerCustomer(ctx, "o@x.io")

	updated, err := app.customers.Update(ctx, customer, customer.ID, usecase.UpdateCustomerInput{
		FirstName: ptr("Grace"),
		Interests: ptr([]string{"lofts"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, []string{"lofts"}, updated.Interests)
	assert.Equal(t, "c@x.io", updated.Email)

	_, err = app.customers.Update(ctx, other, customer.ID, usecase.UpdateCustomerInput{FirstName: ptr("Mallory")})
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	_, err = app.customers.List(ctx, customer)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	customers, err := app.customers.List(ctx, app.admin(ctx))
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestCustomerService_Get_SelfOrAdmin(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")
	other := app.registerCustomer(ctx, "o@x.io")
	seller := app.registerSeller(ctx, "s@example.com", "seller")
	admin := app.admin(ctx)

	_, err := app.customers.Get(ctx, other, customer.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	_, err = app.customers.Get(ctx, seller, customer.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	_, err = app.customers.Get(ctx, nil, customer.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationRequired))

	own, err := app.customers.Get(ctx, customer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, own.ID)
	assert.Equal(t, "c@x.io", own.Email)

	for _, id := range []uuid.UUID{customer.ID, other.ID} {
		got, err := app.customers.Get(ctx, admin, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	}
}

func TestPrincipalService_Update(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")
	admin := app.admin(ctx)

	t.Run("self may rename", func(t *testing.T) {
		p, err := app.principals.Update(ctx, customer, customer.ID, usecase.UpdatePrincipalInput{DisplayName: ptr("Cee")})
		require.NoError(t, err)
		assert.Equal(t, "Cee", p.DisplayName)
	})

	t.Run("self may not change role", func(t *testing.T) {
		role := entity.RoleAdmin
		_, err := app.principals.Update(ctx, customer, customer.ID, usecase.UpdatePrincipalInput{Role: &role})
		assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))
	})

	t.Run("role change refused while a profile is paired", func(t *testing.T) {
		role := entity.RoleSeller
		_, err := app.principals.Update(ctx, admin, customer.ID, usecase.UpdatePrincipalInput{Role: &role})
		assert.True(t, errors.Is(err, domainerrors.ErrConflict))
	})

	t.Run("admin email change reaches the profile", func(t *testing.T) {
		_, err := app.principals.Update(ctx, admin, customer.ID, usecase.UpdatePrincipalInput{Email: ptr("moved@x.io")})
		require.NoError(t, err)

		profile, err := app.store.Factory().CustomerRepo().FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "moved@x.io", profile.Email)
	})

	t.Run("admin lists by role", func(t *testing.T) {
		role := entity.RoleCustomer
		principals, err := app.principals.List(ctx, admin, &role)
		require.NoError(t, err)
		assert.Len(t, principals, 1)
	})
}
