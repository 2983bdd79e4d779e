package impl

import (
	"context"
	"log/slog"
	"strings"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// sellerService implements the SellerUsecase interface.
type sellerService struct {
	txManager  repository.TransactionManager
	sellerRepo repository.SellerRepository
	logger     *slog.Logger
}

// SellerServiceParams holds dependencies for SellerService, injected by Fx.
type SellerServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	SellerRepo repository.SellerRepository
	Logger     *slog.Logger
}

// NewSellerService is the constructor for sellerService.
func NewSellerService(params SellerServiceParams) usecase.SellerUsecase {
	return &sellerService{
		txManager:  params.TxManager,
		sellerRepo: params.SellerRepo,
		logger:     params.Logger,
	}
}

func (srv *sellerService) Get(ctx context.Context, actor *access.Principal, id uuid.UUID) (*entity.SellerProfile, error) {
	if err := access.Authorize(actor, access.OpRead, access.Resource{Kind: access.KindSeller, OwnerID: id}); err != nil {
		return nil, err
	}

	seller, err := srv.sellerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load seller profile")
	}

	return seller, nil
}

func (srv *sellerService) List(ctx context.Context, actor *access.Principal, status *entity.SellerStatus) ([]*entity.SellerProfile, error) {
	if err := access.Authorize(actor, access.OpList, access.Resource{Kind: access.KindSeller}); err != nil {
		return nil, err
	}

	var errs fieldErrors
	if status != nil && !status.IsValid() {
		errs.add("status", "must be one of Pending, Approved, Rejected")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	sellers, err := srv.sellerRepo.List(ctx, status)
	if err != nil {
		return nil, mapStoreError(err, "failed to list sellers")
	}

	return sellers, nil
}

// Update merges the supplied fields. Email and username uniqueness is only re-checked
// when those fields are supplied; a new email is mirrored onto the paired principal.
func (srv *sellerService) Update(ctx context.Context, actor *access.Principal, id uuid.UUID, input usecase.UpdateSellerInput) (*entity.SellerProfile, error) {
	if err := access.Authorize(actor, access.OpUpdate, access.Resource{Kind: access.KindSeller, OwnerID: id}); err != nil {
		return nil, err
	}

	var updated *entity.SellerProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sellerRepo := repoFactory.SellerRepo()

		seller, err := sellerRepo.FindByID(ctx, id)
		if err != nil {
			return mapStoreError(err, "failed to load seller profile")
		}

		previousEmail, previousName := seller.Email, seller.FullName()
		mergeSeller(seller, input)

		var errs fieldErrors
		validateSellerFields(&errs, usecase.SellerProfileFields{
			FirstName:         seller.FirstName,
			LastName:          seller.LastName,
			Phone:             seller.Phone,
			IdentificationDoc: seller.IdentificationDoc,
			Username:          seller.Username,
		})
		checkEmail(&errs, "email", seller.Email)
		if err := errs.err(); err != nil {
			return err
		}

		seller.UpdatedAt = utcNow()
		if err := sellerRepo.Update(ctx, seller); err != nil {
			return mapStoreError(err, "failed to update seller profile")
		}

		if err := syncPrincipal(ctx, repoFactory, id, seller.Email, previousEmail, seller.FullName(), previousName); err != nil {
			return err
		}
		updated = seller

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update seller")
	}

	logger(ctx, srv.logger).Info("Seller profile updated", slog.Any("sellerID", id))

	return updated, nil
}

// UpdateStatus moves a seller between approval states.
func (srv *sellerService) UpdateStatus(ctx context.Context, actor *access.Principal, id uuid.UUID, status entity.SellerStatus) (*entity.SellerProfile, error) {
	if err := access.Authorize(actor, access.OpUpdateStatus, access.Resource{Kind: access.KindSeller, OwnerID: id}); err != nil {
		return nil, err
	}

	var errs fieldErrors
	if !status.IsValid() {
		errs.add("status", "must be one of Pending, Approved, Rejected")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var updated *entity.SellerProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		seller, err := repoFactory.SellerRepo().FindByID(ctx, id)
		if err != nil {
			return mapStoreError(err, "failed to load seller profile")
		}

		seller.Status = status
		seller.UpdatedAt = utcNow()
		if err := repoFactory.SellerRepo().Update(ctx, seller); err != nil {
			return mapStoreError(err, "failed to update seller status")
		}
		updated = seller

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update seller status")
	}

	logger(ctx, srv.logger).Info("Seller status changed", slog.Any("sellerID", id), slog.String("status", string(status)))

	return updated, nil
}

func mergeSeller(seller *entity.SellerProfile, input usecase.UpdateSellerInput) {
	if input.FirstName != nil {
		seller.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		seller.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		seller.Email = entity.NormalizeEmail(*input.Email)
	}
	if input.Phone != nil {
		seller.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.IdentificationDoc != nil {
		seller.IdentificationDoc = *input.IdentificationDoc
	}
	if input.ProfilePicture != nil {
		seller.ProfilePicture = *input.ProfilePicture
	}
	if input.Bio != nil {
		seller.Bio = *input.Bio
	}
	if input.SocialLinks != nil {
		seller.SocialLinks = input.SocialLinks
	}
	if input.PreferredLanguages != nil {
		seller.PreferredLanguages = *input.PreferredLanguages
	}
	if input.Business != nil {
		seller.Business = input.Business
	}
	if input.Username != nil {
		seller.Username = strings.TrimSpace(*input.Username)
	}
}

// syncPrincipal mirrors profile email and name changes onto the paired principal.
func syncPrincipal(ctx context.Context, repoFactory repository.RepositoryFactory, id uuid.UUID, email, previousEmail, name, previousName string) error {
	if email == previousEmail && name == previousName {
		return nil
	}

	principalRepo := repoFactory.PrincipalRepo()
	principal, err := principalRepo.FindByID(ctx, id)
	if exists, err := found(err, repository.ErrPrincipalNotFound, "failed to load principal"); err != nil || !exists {
		return err
	}

	principal.Email = email
	if name != previousName && name != "" {
		principal.DisplayName = name
	}
	principal.UpdatedAt = utcNow()

	return mapStoreError(principalRepo.Update(ctx, principal), "failed to update principal")
}
