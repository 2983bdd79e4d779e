package postgres

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sellerRepository implements the domain.SellerRepository interface using GORM.
type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository is the constructor for sellerRepository.
func NewSellerRepository(db *gorm.DB) repository.SellerRepository {
	return &sellerRepository{db: db}
}

func (repo *sellerRepository) Create(ctx context.Context, seller *entity.SellerProfile) error {
	err := repo.db.WithContext(ctx).Create(toSellerModel(seller)).Error

	return translateWriteError(err, "failed to create seller profile")
}

func (repo *sellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SellerProfile, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *sellerRepository) FindByEmail(ctx context.Context, email string) (*entity.SellerProfile, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *sellerRepository) FindByUsername(ctx context.Context, username string) (*entity.SellerProfile, error) {
	return repo.findOne(ctx, "username = ?", username)
}

func (repo *sellerRepository) findOne(ctx context.Context, query string, arg any) (*entity.SellerProfile, error) {
	var m model.SellerProfileModel
	err := repo.db.WithContext(ctx).Where(query, arg).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrSellerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find seller profile")
	}

	return toSellerDomain(&m), nil
}

func (repo *sellerRepository) List(ctx context.Context, status *entity.SellerStatus) ([]*entity.SellerProfile, error) {
	query := repo.db.WithContext(ctx).Order("registered_at DESC").Order("id")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var rows []model.SellerProfileModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list seller profiles")
	}

	sellers := make([]*entity.SellerProfile, 0, len(rows))
	for i := range rows {
		sellers = append(sellers, toSellerDomain(&rows[i]))
	}

	return sellers, nil
}

func (repo *sellerRepository) Update(ctx context.Context, seller *entity.SellerProfile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SellerProfileModel{ID: seller.ID}).
		Select("*").Omit("id", "registered_at").
		Updates(toSellerModel(seller))
	if err := translateWriteError(result.Error, "failed to update seller profile"); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return repository.ErrSellerNotFound
	}

	return nil
}

func (repo *sellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.SellerProfileModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete seller profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSellerNotFound
	}

	return nil
}

// customerRepository implements the domain.CustomerRepository interface using GORM.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (repo *customerRepository) Create(ctx context.Context, customer *entity.CustomerProfile) error {
	err := repo.db.WithContext(ctx).Create(toCustomerModel(customer)).Error

	return translateWriteError(err, "failed to create customer profile")
}

func (repo *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomerProfile, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.CustomerProfile, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *customerRepository) findOne(ctx context.Context, query string, arg any) (*entity.CustomerProfile, error) {
	var m model.CustomerProfileModel
	err := repo.db.WithContext(ctx).Where(query, arg).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCustomerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find customer profile")
	}

	return toCustomerDomain(&m), nil
}

func (repo *customerRepository) List(ctx context.Context) ([]*entity.CustomerProfile, error) {
	var rows []model.CustomerProfileModel
	if err := repo.db.WithContext(ctx).Order("registered_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list customer profiles")
	}

	customers := make([]*entity.CustomerProfile, 0, len(rows))
	for i := range rows {
		customers = append(customers, toCustomerDomain(&rows[i]))
	}

	return customers, nil
}

func (repo *customerRepository) Update(ctx context.Context, customer *entity.CustomerProfile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CustomerProfileModel{ID: customer.ID}).
		Select("*").Omit("id", "registered_at").
		Updates(toCustomerModel(customer))
	if err := translateWriteError(result.Error, "failed to update customer profile"); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

func (repo *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CustomerProfileModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete customer profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}
