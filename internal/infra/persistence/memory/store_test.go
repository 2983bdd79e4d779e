package memory

import (
	"context"
	"testing"
	"time"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrincipal(email string, role entity.Role) *entity.Principal {
	return &entity.Principal{ID: uuid.New(), Role: role, Email: email, SecretHash: "hash"}
}

func TestStore_ExecuteCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := newPrincipal("a@example.com", entity.RoleCustomer)

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.PrincipalRepo().Create(ctx, p)
	})
	require.NoError(t, err)

	got, err := store.Factory().PrincipalRepo().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Email, got.Email)
}

func TestStore_ExecuteDiscardsOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	p := newPrincipal("a@example.com", entity.RoleSeller)
	failure := errors.New("second write failed")

	err := store.Execute(ctx, func(f repository.RepositoryFactory) error {
		require.NoError(t, f.PrincipalRepo().Create(ctx, p))

		// Visible inside the transaction.
		_, err := f.PrincipalRepo().FindByID(ctx, p.ID)
		require.NoError(t, err)

		return failure
	})
	assert.ErrorIs(t, err, failure)

	_, err = store.Factory().PrincipalRepo().FindByID(ctx, p.ID)
	assert.True(t, errors.Is(err, repository.ErrPrincipalNotFound))
}

func TestPrincipalRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Factory().PrincipalRepo()

	require.NoError(t, repo.Create(ctx, newPrincipal("dup@example.com", entity.RoleCustomer)))
	err := repo.Create(ctx, newPrincipal("dup@example.com", entity.RoleSeller))
	assert.True(t, errors.Is(err, repository.ErrDuplicateEmail))

	other := newPrincipal("other@example.com", entity.RoleCustomer)
	require.NoError(t, repo.Create(ctx, other))
	other.Email = "dup@example.com"
	assert.True(t, errors.Is(repo.Update(ctx, other), repository.ErrDuplicateEmail))
}

func TestSellerRepository_UniqueUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Factory().SellerRepo()

	require.NoError(t, repo.Create(ctx, &entity.SellerProfile{ID: uuid.New(), Email: "a@example.com", Username: "ana"}))
	err := repo.Create(ctx, &entity.SellerProfile{ID: uuid.New(), Email: "b@example.com", Username: "ana"})
	assert.True(t, errors.Is(err, repository.ErrDuplicateUsername))
}

func TestStore_ReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Factory().ListingRepo()
	listing := &entity.Listing{ID: uuid.New(), Title: "Loft", Images: []string{"a.jpg"}}
	require.NoError(t, repo.Create(ctx, listing))

	got, err := repo.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	got.Title = "changed"
	got.Images[0] = "changed.jpg"

	again, err := repo.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft", again.Title)
	assert.Equal(t, []string{"a.jpg"}, again.Images)
}

func TestListingRepository_ListFilterAndPage(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Factory().ListingRepo()
	owner := uuid.New()
	beds := func(n int) *int { return &n }
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	listings := []*entity.Listing{
		{ID: uuid.New(), Type: entity.PropertyTypeResidential, Address: entity.ListingAddress{City: "Lahore"}, Price: 100, ForSale: true, Beds: beds(3), OwnerID: owner, CreatedAt: base},
		{ID: uuid.New(), Type: entity.PropertyTypeResidential, Address: entity.ListingAddress{City: "Karachi"}, Price: 300, ForSale: true, Beds: beds(2), OwnerID: owner, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Type: entity.PropertyTypeCommercial, Address: entity.ListingAddress{City: "lahore cantt"}, Price: 200, ForSale: false, OwnerID: uuid.New(), CreatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), Type: entity.PropertyTypeResidential, Address: entity.ListingAddress{City: "LAHORE"}, Price: 250, ForSale: true, Beds: beds(4), OwnerID: owner, CreatedAt: base.Add(3 * time.Hour)},
	}
	for _, l := range listings {
		require.NoError(t, repo.Create(ctx, l))
	}

	city := "lahore"
	residential := entity.PropertyTypeResidential
	minBeds := 3
	got, total, err := repo.List(ctx, entity.ListingFilter{City: &city, Type: &residential, MinBeds: &minBeds}, entity.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, listings[3].ID, got[0].ID, "newest first")
	assert.Equal(t, listings[0].ID, got[1].ID)

	got, total, err = repo.List(ctx, entity.ListingFilter{}, entity.Page{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, got, 2)
	assert.Equal(t, listings[2].ID, got[0].ID)

	got, _, err = repo.List(ctx, entity.ListingFilter{}, entity.Page{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConversationRepository_AppendKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Factory().ConversationRepo()
	conv := &entity.Conversation{ID: uuid.New(), OwnerID: uuid.New(), ParticipantRole: entity.RoleCustomer}
	require.NoError(t, repo.Create(ctx, conv))

	first := entity.Message{ID: uuid.New(), Text: "hi", SentAt: time.Now()}
	second := entity.Message{ID: uuid.New(), Text: "hello", FromBot: true, SentAt: first.SentAt.Add(time.Second)}
	require.NoError(t, repo.AppendMessage(ctx, conv.ID, first))
	require.NoError(t, repo.AppendMessage(ctx, conv.ID, second))

	got, err := repo.FindByID(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "hi", got.Messages[0].Text)
	assert.Equal(t, "hello", got.Messages[1].Text)
	assert.True(t, got.UpdatedAt.Equal(second.SentAt))

	err = repo.AppendMessage(ctx, uuid.New(), first)
	assert.True(t, errors.Is(err, repository.ErrConversationNotFound))
}
