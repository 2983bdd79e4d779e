package postgres

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// principalRepository implements the domain.PrincipalRepository interface using GORM.
type principalRepository struct {
	db *gorm.DB
}

// NewPrincipalRepository is the constructor for principalRepository.
func NewPrincipalRepository(db *gorm.DB) repository.PrincipalRepository {
	return &principalRepository{db: db}
}

func (repo *principalRepository) Create(ctx context.Context, principal *entity.Principal) error {
	err := repo.db.WithContext(ctx).Create(toPrincipalModel(principal)).Error

	return translateWriteError(err, "failed to create principal")
}

func (repo *principalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *principalRepository) FindByEmail(ctx context.Context, email string) (*entity.Principal, error) {
	return repo.findOne(ctx, "email = ?", email)
}

// findOne reads from the primary. A login right after registration must not miss the
// principal on a lagging replica.
func (repo *principalRepository) findOne(ctx context.Context, query string, arg any) (*entity.Principal, error) {
	var m model.PrincipalModel
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Where(query, arg).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find principal")
	}

	return toPrincipalDomain(&m), nil
}

func (repo *principalRepository) List(ctx context.Context, role *entity.Role) ([]*entity.Principal, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if role != nil {
		query = query.Where("role = ?", role.String())
	}

	var rows []model.PrincipalModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list principals")
	}

	principals := make([]*entity.Principal, 0, len(rows))
	for i := range rows {
		principals = append(principals, toPrincipalDomain(&rows[i]))
	}

	return principals, nil
}

func (repo *principalRepository) Update(ctx context.Context, principal *entity.Principal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PrincipalModel{ID: principal.ID}).
		Select("role", "display_name", "email", "secret_hash", "updated_at").
		Updates(toPrincipalModel(principal))
	if err := translateWriteError(result.Error, "failed to update principal"); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return repository.ErrPrincipalNotFound
	}

	return nil
}

func (repo *principalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.PrincipalModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete principal")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPrincipalNotFound
	}

	return nil
}
