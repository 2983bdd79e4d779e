package usecase

import (
	"context"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateSellerInput holds the seller fields to change. Nil fields keep their value.
type UpdateSellerInput struct {
	FirstName          *string
	LastName           *string
	Email              *string
	Phone              *string
	IdentificationDoc  *string
	ProfilePicture     *string
	Bio                *string
	SocialLinks        *entity.SocialLinks
	PreferredLanguages *[]string
	Business           *entity.BusinessInfo
	Username           *string
}

// UpdateCustomerInput holds the customer fields to change. Nil fields keep their value.
type UpdateCustomerInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Interests *[]string
}

// SellerUsecase defines operations on the seller registry.
type SellerUsecase interface {
	Get(ctx context.Context, actor *access.Principal, id uuid.UUID) (*entity.SellerProfile, error)
	List(ctx context.Context, actor *access.Principal, status *entity.SellerStatus) ([]*entity.SellerProfile, error)
	Update(ctx context.Context, actor *access.Principal, id uuid.UUID, input UpdateSellerInput) (*entity.SellerProfile, error)
	UpdateStatus(ctx context.Context, actor *access.Principal, id uuid.UUID, status entity.SellerStatus) (*entity.SellerProfile, error)
}

// CustomerUsecase defines operations on the customer registry.
type CustomerUsecase interface {
	Get(ctx context.Context, actor *access.Principal, id uuid.UUID) (*entity.CustomerProfile, error)
	List(ctx context.Context, actor *access.Principal) ([]*entity.CustomerProfile, error)
	Update(ctx context.Context, actor *access.Principal, id uuid.UUID, input UpdateCustomerInput) (*entity.CustomerProfile, error)
}
