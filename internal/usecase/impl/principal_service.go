package impl

import (
	"context"
	"log/slog"
	"strings"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// principalService implements the PrincipalUsecase interface.
type principalService struct {
	txManager     repository.TransactionManager
	principalRepo repository.PrincipalRepository
	logger        *slog.Logger
}

// PrincipalServiceParams holds dependencies for PrincipalService, injected by Fx.
type PrincipalServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	PrincipalRepo repository.PrincipalRepository
	Logger        *slog.Logger
}

// NewPrincipalService is the constructor for principalService.
func NewPrincipalService(params PrincipalServiceParams) usecase.PrincipalUsecase {
	return &principalService{
		txManager:     params.TxManager,
		principalRepo: params.PrincipalRepo,
		logger:        params.Logger,
	}
}

func (srv *principalService) Get(ctx context.Context, actor *access.Principal, id uuid.UUID) (*entity.Principal, error) {
	if err := access.Authorize(actor, access.OpRead, access.Resource{Kind: access.KindPrincipal, OwnerID: id}); err != nil {
		return nil, err
	}

	principal, err := srv.principalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load principal")
	}

	return principal, nil
}

func (srv *principalService) List(ctx context.Context, actor *access.Principal, role *entity.Role) ([]*entity.Principal, error) {
	if err := access.Authorize(actor, access.OpList, access.Resource{Kind: access.KindPrincipal}); err != nil {
		return nil, err
	}
	if role != nil && !role.IsValid() {
		return nil, domainerrors.NewFieldError("role", "must be one of admin, seller, customer")
	}

	principals, err := srv.principalRepo.List(ctx, role)
	if err != nil {
		return nil, mapStoreError(err, "failed to list principals")
	}

	return principals, nil
}

// Update merges the supplied fields. An email change is mirrored onto the paired profile.
// Changing the role of an account that has a profile would break the pairing and is refused.
func (srv *principalService) Update(ctx context.Context, actor *access.Principal, id uuid.UUID, input usecase.UpdatePrincipalInput) (*entity.Principal, error) {
	if err := access.Authorize(actor, access.OpUpdate, access.Resource{Kind: access.KindPrincipal, OwnerID: id}); err != nil {
		return nil, err
	}
	if (input.Email != nil || input.Role != nil) && !actor.IsAdmin() {
		return nil, errors.Wrap(domainerrors.ErrAuthorizationDenied, "only admins may change role or email")
	}

	var errs fieldErrors
	if input.DisplayName != nil {
		errs.required("displayName", *input.DisplayName)
	}
	if input.Email != nil {
		checkEmail(&errs, "email", entity.NormalizeEmail(*input.Email))
	}
	if input.Role != nil && !input.Role.IsValid() {
		errs.add("role", "must be one of admin, seller, customer")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var updated *entity.Principal
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		principal, err := repoFactory.PrincipalRepo().FindByID(ctx, id)
		if err != nil {
			return mapStoreError(err, "failed to load principal")
		}

		if input.Role != nil && *input.Role != principal.Role {
			hasProfile, err := profileExists(ctx, repoFactory, principal)
			if err != nil {
				return err
			}
			if hasProfile {
				return errors.Wrap(domainerrors.ErrConflict, "role cannot change while a profile is paired with the account")
			}
			principal.Role = *input.Role
		}

		if input.DisplayName != nil {
			principal.DisplayName = strings.TrimSpace(*input.DisplayName)
		}

		if input.Email != nil {
			email := entity.NormalizeEmail(*input.Email)
			if email != principal.Email {
				principal.Email = email
				if err := syncProfileEmail(ctx, repoFactory, principal); err != nil {
					return err
				}
			}
		}

		principal.UpdatedAt = utcNow()
		if err := repoFactory.PrincipalRepo().Update(ctx, principal); err != nil {
			return mapStoreError(err, "failed to update principal")
		}
		updated = principal

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update principal")
	}

	logger(ctx, srv.logger).Info("Principal updated", slog.Any("principalID", id), slog.Any("actorID", actor.ID))

	return updated, nil
}

func profileExists(ctx context.Context, repoFactory repository.RepositoryFactory, principal *entity.Principal) (bool, error) {
	switch principal.Role {
	case entity.RoleSeller:
		_, err := repoFactory.SellerRepo().FindByID(ctx, principal.ID)

		return found(err, repository.ErrSellerNotFound, "failed to load seller profile")
	case entity.RoleCustomer:
		_, err := repoFactory.CustomerRepo().FindByID(ctx, principal.ID)

		return found(err, repository.ErrCustomerNotFound, "failed to load customer profile")
	default:
		return false, nil
	}
}

// syncProfileEmail copies the principal's email onto its profile, if it has one.
func syncProfileEmail(ctx context.Context, repoFactory repository.RepositoryFactory, principal *entity.Principal) error {
	now := utcNow()

	switch principal.Role {
	case entity.RoleSeller:
		seller, err := repoFactory.SellerRepo().FindByID(ctx, principal.ID)
		if exists, err := found(err, repository.ErrSellerNotFound, "failed to load seller profile"); err != nil || !exists {
			return err
		}
		seller.Email = principal.Email
		seller.UpdatedAt = now

		return mapStoreError(repoFactory.SellerRepo().Update(ctx, seller), "failed to update seller email")
	case entity.RoleCustomer:
		customer, err := repoFactory.CustomerRepo().FindByID(ctx, principal.ID)
		if exists, err := found(err, repository.ErrCustomerNotFound, "failed to load customer profile"); err != nil || !exists {
			return err
		}
		customer.Email = principal.Email
		customer.UpdatedAt = now

		return mapStoreError(repoFactory.CustomerRepo().Update(ctx, customer), "failed to update customer email")
	default:
		return nil
	}
}
