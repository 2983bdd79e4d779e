package impl

import (
	"context"
	"testing"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/infra/persistence/memory"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListingInput(price float64) usecase.CreateListingInput {
	return usecase.CreateListingInput{
		Title:   "Harbour flat",
		Type:    entity.PropertyTypeResidential,
		Address: entity.ListingAddress{House: "12", Street: "Quay St", City: "Springfield", PostalCode: "1000"},
		ForSale: true,
		Price:   price,
		Images:  []string{"i.jpg"},
	}
}

func TestListingService_Create(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")
	other := app.registerSeller(ctx, "o@example.com", "other")
	customer := app.registerCustomer(ctx, "c@x.io")
	admin := app.admin(ctx)

	t.Run("seller owns what they create", func(t *testing.T) {
		input := newListingInput(200000)
		input.OwnerID = &other.ID

		listing, err := app.listings.Create(ctx, seller, input)
		require.NoError(t, err)
		assert.Equal(t, seller.ID, listing.OwnerID)
		assert.NotEqual(t, uuid.Nil, listing.ID)
	})

	t.Run("customer is denied", func(t *testing.T) {
		_, err := app.listings.Create(ctx, customer, newListingInput(1))
		assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		_, err := app.listings.Create(ctx, nil, newListingInput(1))
		assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationRequired))
	})

	t.Run("admin must name an existing seller", func(t *testing.T) {
		_, err := app.listings.Create(ctx, admin, newListingInput(1))
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

		input := newListingInput(1)
		input.OwnerID = &customer.ID
		_, err = app.listings.Create(ctx, admin, input)
		var verr *domainerrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "ownerId", verr.Fields()[0].Field)

		input.OwnerID = &other.ID
		listing, err := app.listings.Create(ctx, admin, input)
		require.NoError(t, err)
		assert.Equal(t, other.ID, listing.OwnerID)
	})

	t.Run("discount must be below price", func(t *testing.T) {
		input := newListingInput(100)
		input.DiscountPrice = ptr(150.0)

		_, err := app.listings.Create(ctx, seller, input)
		var verr *domainerrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "discountPrice", verr.Fields()[0].Field)
	})

	t.Run("price and images are enough", func(t *testing.T) {
		listing, err := app.listings.Create(ctx, seller, usecase.CreateListingInput{
			Price:   200000,
			Images:  []string{"i.jpg"},
			OwnerID: &seller.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.PropertyTypeResidential, listing.Type)
		assert.Empty(t, listing.Title)
	})

	t.Run("unknown type", func(t *testing.T) {
		input := newListingInput(100)
		input.Type = "Castle"

		_, err := app.listings.Create(ctx, seller, input)
		var verr *domainerrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "type", verr.Fields()[0].Field)
	})

	t.Run("at least one image", func(t *testing.T) {
		input := newListingInput(100)
		input.Images = nil

		_, err := app.listings.Create(ctx, seller, input)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})
}

func TestListingService_Update_PartialMergeKeepsOtherFields(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")

	input := newListingInput(200000)
	input.Beds = ptr(3)
	created, err := app.listings.Create(ctx, seller, input)
	require.NoError(t, err)

	updated, err := app.listings.Update(ctx, seller, created.ID, usecase.UpdateListingInput{Price: ptr(5000.0)})
	require.NoError(t, err)

	assert.Equal(t, 5000.0, updated.Price)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Address, updated.Address)
	assert.Equal(t, created.Images, updated.Images)
	assert.Equal(t, 3, *updated.Beds)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	stored, err := app.listings.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, stored.Price)
}

func TestListingService_Update_DiscountCheckedAgainstMergedPrice(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")

	input := newListingInput(1000)
	input.DiscountPrice = ptr(900.0)
	created, err := app.listings.Create(ctx, seller, input)
	require.NoError(t, err)

	_, err = app.listings.Update(ctx, seller, created.ID, usecase.UpdateListingInput{Price: ptr(800.0)})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	stored, err := app.listings.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.Price)
}

func TestListingService_OwnershipIsEnforced(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	owner := app.registerSeller(ctx, "s@example.com", "seller")
	intruder := app.registerSeller(ctx, "i@example.com", "intruder")
	admin := app.admin(ctx)

	listing, err := app.listings.Create(ctx, owner, newListingInput(100))
	require.NoError(t, err)

	_, err = app.listings.Update(ctx, intruder, listing.ID, usecase.UpdateListingInput{Price: ptr(1.0)})
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	_, err = app.listings.SetAvailability(ctx, intruder, listing.ID, false)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	err = app.listings.Delete(ctx, intruder, listing.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	out, err := app.listings.SetAvailability(ctx, admin, listing.ID, false)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, out.ID)
	assert.False(t, out.ForSale)

	require.NoError(t, app.listings.Delete(ctx, owner, listing.ID))
	_, err = app.listings.Get(ctx, listing.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrListingNotFound))
}

func TestListingService_List_FiltersCombine(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")

	cheapForSale := newListingInput(100)
	pricyForSale := newListingInput(900)
	cheapForRent := newListingInput(150)
	cheapForRent.ForSale = false
	elsewhere := newListingInput(120)
	elsewhere.Address.City = "Shelbyville"
	commercial := newListingInput(110)
	commercial.Type = entity.PropertyTypeCommercial

	for _, input := range []usecase.CreateListingInput{cheapForSale, pricyForSale, cheapForRent, elsewhere, commercial} {
		_, err := app.listings.Create(ctx, seller, input)
		require.NoError(t, err)
	}

	residential := entity.PropertyTypeResidential
	out, err := app.listings.List(ctx, usecase.ListListingsInput{Filter: entity.ListingFilter{
		Type:     &residential,
		City:     ptr("spring"),
		MaxPrice: ptr(500.0),
		ForSale:  ptr(true),
	}})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, 100.0, out.Items[0].Price)
	assert.EqualValues(t, 1, out.Total)
	assert.Zero(t, out.Limit)

	all, err := app.listings.List(ctx, usecase.ListListingsInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.EqualValues(t, 5, all.Total)
}

func TestListingService_List_RejectsInvertedPriceRange(t *testing.T) {
	app := newTestApp()

	_, err := app.listings.List(context.Background(), usecase.ListListingsInput{Filter: entity.ListingFilter{
		MinPrice: ptr(10.0),
		MaxPrice: ptr(5.0),
	}})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestListingService_List_EmptyFilterReturnsEveryListing(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")

	const count = 250
	for i := range count {
		_, err := app.listings.Create(ctx, seller, newListingInput(float64(100+i)))
		require.NoError(t, err)
	}

	out, err := app.listings.List(ctx, usecase.ListListingsInput{})
	require.NoError(t, err)
	assert.Len(t, out.Items, count)
	assert.EqualValues(t, count, out.Total)
	assert.Zero(t, out.Limit)

	capped, err := app.listings.List(ctx, usecase.ListListingsInput{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, capped.Items, maxListingPageSize)
	assert.Equal(t, maxListingPageSize, capped.Limit)
	assert.EqualValues(t, count, capped.Total)
}

// listingTxManager hands out factories whose seller lookups are counted and whose
// listing inserts fail with err when it is set.
type listingTxManager struct {
	inner         repository.TransactionManager
	err           error
	sellerLookups int
}

func (m *listingTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.inner.Execute(ctx, func(f repository.RepositoryFactory) error {
		return fn(&listingFactory{RepositoryFactory: f, manager: m})
	})
}

type listingFactory struct {
	repository.RepositoryFactory
	manager *listingTxManager
}

func (f *listingFactory) SellerRepo() repository.SellerRepository {
	f.manager.sellerLookups++

	return f.RepositoryFactory.SellerRepo()
}

func (f *listingFactory) ListingRepo() repository.ListingRepository {
	return &failingListingRepo{ListingRepository: f.RepositoryFactory.ListingRepo(), err: f.manager.err}
}

type failingListingRepo struct {
	repository.ListingRepository
	err error
}

func (r *failingListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	if r.err != nil {
		return r.err
	}

	return r.ListingRepository.Create(ctx, listing)
}

func TestListingService_Create_OwnerCheckSharesTheTransaction(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	seller := app.registerSeller(ctx, "s@example.com", "seller")
	admin := app.admin(ctx)

	txManager := &listingTxManager{inner: memory.NewTransactionManager(app.store)}
	svc := NewListingService(ListingServiceParams{
		TxManager:   txManager,
		ListingRepo: memory.NewListingRepository(app.store),
		Logger:      newDiscardLogger(),
	})

	input := newListingInput(100)
	input.OwnerID = &seller.ID
	listing, err := svc.Create(ctx, admin, input)
	require.NoError(t, err)
	assert.Equal(t, 1, txManager.sellerLookups)
	assert.Equal(t, seller.ID, listing.OwnerID)

	t.Run("failed insert leaves nothing behind", func(t *testing.T) {
		txManager.err = errors.New("disk full")
		defer func() { txManager.err = nil }()

		_, err := svc.Create(ctx, seller, newListingInput(200))
		require.Error(t, err)

		out, err := svc.List(ctx, usecase.ListListingsInput{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, out.Total)
	})

	t.Run("deleted seller cannot receive a listing", func(t *testing.T) {
		require.NoError(t, app.store.Factory().SellerRepo().Delete(ctx, seller.ID))

		_, err := svc.Create(ctx, admin, input)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

		out, err := svc.List(ctx, usecase.ListListingsInput{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, out.Total)
	})
}
