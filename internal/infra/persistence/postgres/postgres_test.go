package postgres

import (
	"testing"
	"time"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"principal email", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: model.UniquePrincipalEmail}, repository.ErrDuplicateEmail},
		{"seller username", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: model.UniqueSellerUsername}, repository.ErrDuplicateUsername},
		{"customer email", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: model.UniqueCustomerEmail}, repository.ErrDuplicateEmail},
		{"translated by gorm", gorm.ErrDuplicatedKey, repository.ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateWriteError(errors.Wrap(tt.err, "insert"), "failed")
			assert.True(t, errors.Is(err, tt.want))
		})
	}

	assert.NoError(t, translateWriteError(nil, "failed"))

	other := translateWriteError(&pgconn.PgError{Code: "08006"}, "failed to write")
	assert.False(t, errors.Is(other, repository.ErrDuplicateEmail))
	assert.Contains(t, other.Error(), "failed to write")
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.True(t, isForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: pgUniqueViolation}))
}

func TestSellerMapping_RoundTrip(t *testing.T) {
	seller := &entity.SellerProfile{
		ID:           uuid.New(),
		FirstName:    "Ada",
		Email:        "ada@example.com",
		SocialLinks:  &entity.SocialLinks{LinkedIn: "ada"},
		Business:     &entity.BusinessInfo{Name: "Lovelace Homes"},
		Username:     "ada",
		Status:       entity.SellerStatusApproved,
		RegisteredAt: time.Now().UTC(),
	}

	got := toSellerDomain(toSellerModel(seller))

	assert.Equal(t, seller.SocialLinks, got.SocialLinks)
	assert.Equal(t, seller.Business, got.Business)
	assert.Equal(t, entity.SellerStatusApproved, got.Status)
	assert.Equal(t, []string{}, got.PreferredLanguages)
}

func TestListingMapping_RoundTrip(t *testing.T) {
	listing := &entity.Listing{
		ID:            uuid.New(),
		Title:         "Flat",
		Type:          entity.PropertyTypeResidential,
		Address:       entity.ListingAddress{City: "Springfield", PostalCode: "1000"},
		Price:         100,
		DiscountPrice: ptr(90.0),
		Beds:          ptr(2),
		Images:        []string{"a.jpg"},
		OwnerID:       uuid.New(),
	}

	assert.Equal(t, listing, toListingDomain(toListingModel(listing)))
}

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormpg.New(gormpg.Config{DSN: "host=localhost dbname=estate"}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db
}

func TestApplyListingFilter_SQL(t *testing.T) {
	db := newDryRunDB(t)

	kind := entity.PropertyTypeCommercial
	filter := entity.ListingFilter{
		Type:     &kind,
		City:     ptr("new_%"),
		MinPrice: ptr(10.0),
		ForSale:  ptr(true),
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []model.ListingModel

		return applyListingFilter(tx.Model(&model.ListingModel{}), filter).Find(&rows)
	})

	assert.Contains(t, sql, `type = 'Commercial'`)
	assert.Contains(t, sql, `address_city ILIKE '%new\_\%%'`)
	assert.Contains(t, sql, `price >= 10`)
	assert.Contains(t, sql, `for_sale = true`)
	assert.NotContains(t, sql, "owner_id")
}

func TestApplyPage_SQL(t *testing.T) {
	db := newDryRunDB(t)

	pageSQL := func(page entity.Page) string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var rows []model.ListingModel

			return applyPage(tx.Model(&model.ListingModel{}), page).Find(&rows)
		})
	}

	unbounded := pageSQL(entity.Page{})
	assert.NotContains(t, unbounded, "LIMIT")
	assert.NotContains(t, unbounded, "OFFSET")

	bounded := pageSQL(entity.Page{Limit: 20, Offset: 40})
	assert.Contains(t, bounded, "LIMIT 20")
	assert.Contains(t, bounded, "OFFSET 40")
}

func ptr[T any](v T) *T {
	return &v
}
