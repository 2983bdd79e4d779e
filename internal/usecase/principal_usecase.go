package usecase

import (
	"context"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdatePrincipalInput holds the fields to change. Nil fields keep their value.
// Role and Email may only be changed by an admin.
type UpdatePrincipalInput struct {
	DisplayName *string
	Email       *string
	Role        *entity.Role
}

// PrincipalUsecase defines the administration of credential records.
type PrincipalUsecase interface {
	Get(ctx context.Context, actor *access.Principal, id uuid.UUID) (*entity.Principal, error)
	List(ctx context.Context, actor *access.Principal, role *entity.Role) ([]*entity.Principal, error)
	Update(ctx context.Context, actor *access.Principal, id uuid.UUID, input UpdatePrincipalInput) (*entity.Principal, error)
}
