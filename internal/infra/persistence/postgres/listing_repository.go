package postgres

import (
	"context"
	"strings"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// listingRepository implements the domain.ListingRepository interface using GORM.
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository is the constructor for listingRepository.
func NewListingRepository(db *gorm.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

func (repo *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if err := repo.db.WithContext(ctx).Create(toListingModel(listing)).Error; err != nil {
		if isForeignKeyViolation(err) {
			return errors.Wrap(repository.ErrSellerNotFound, "listing owner does not exist")
		}

		return errors.Wrap(err, "failed to create listing")
	}

	return nil
}

func (repo *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var m model.ListingModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrListingNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find listing")
	}

	return toListingDomain(&m), nil
}

// List applies every non-nil filter field and returns one page, newest first, with the total match count.
func (repo *listingRepository) List(ctx context.Context, filter entity.ListingFilter, page entity.Page) ([]*entity.Listing, int64, error) {
	var total int64
	if err := applyListingFilter(repo.db.WithContext(ctx).Model(&model.ListingModel{}), filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count listings")
	}

	var rows []model.ListingModel
	query := applyListingFilter(repo.db.WithContext(ctx), filter).Order("created_at DESC").Order("id")
	err := applyPage(query, page).Find(&rows).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list listings")
	}

	listings := make([]*entity.Listing, 0, len(rows))
	for i := range rows {
		listings = append(listings, toListingDomain(&rows[i]))
	}

	return listings, total, nil
}

// applyPage bounds the query only when the page asks for it; gorm renders Limit(0) as LIMIT 0.
func applyPage(query *gorm.DB, page entity.Page) *gorm.DB {
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}

	return query
}

func applyListingFilter(query *gorm.DB, f entity.ListingFilter) *gorm.DB {
	if f.Type != nil {
		query = query.Where("type = ?", string(*f.Type))
	}
	if f.City != nil {
		query = query.Where("address_city ILIKE ?", "%"+escapeLike(*f.City)+"%")
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.ForSale != nil {
		query = query.Where("for_sale = ?", *f.ForSale)
	}
	if f.OwnerID != nil {
		query = query.Where("owner_id = ?", *f.OwnerID)
	}
	if f.MinBeds != nil {
		query = query.Where("beds >= ?", *f.MinBeds)
	}
	if f.MinBaths != nil {
		query = query.Where("baths >= ?", *f.MinBaths)
	}

	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (repo *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ListingModel{ID: listing.ID}).
		Select("*").Omit("id", "owner_id", "created_at").
		Updates(toListingModel(listing))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

func (repo *listingRepository) SetForSale(ctx context.Context, id uuid.UUID, forSale bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("id = ?", id).
		Update("for_sale", forSale)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update availability")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

func (repo *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ListingModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

func (repo *listingRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).Delete(&model.ListingModel{}, "owner_id = ?", ownerID)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete listings by owner")
	}

	return result.RowsAffected, nil
}
