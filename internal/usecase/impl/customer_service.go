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

// customerService implements the CustomerUsecase interface.
type customerService struct {
	txManager    repository.TransactionManager
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CustomerRepo repository.CustomerRepository
	Logger       *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		txManager:    params.TxManager,
		customerRepo: params.CustomerRepo,
		logger:       params.Logger,
	}
}

func (srv *customerService) Get(ctx context.Context, actor *access.Principal, id uuid.UUID) (*entity.CustomerProfile, error) {
	if err := access.Authorize(actor, access.OpRead, access.Resource{Kind: access.KindCustomer, OwnerID: id}); err != nil {
		return nil, err
	}

	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load customer profile")
	}

	return customer, nil
}

func (srv *customerService) List(ctx context.Context, actor *access.Principal) ([]*entity.CustomerProfile, error) {
	if err := access.Authorize(actor, access.OpList, access.Resource{Kind: access.KindCustomer}); err != nil {
		return nil, err
	}

	customers, err := srv.customerRepo.List(ctx)
	if err != nil {
		return nil, mapStoreError(err, "failed to list customers")
	}

	return customers, nil
}

// Update merges the supplied fields; a new email is mirrored onto the paired principal.
func (srv *customerService) Update(ctx context.Context, actor *access.Principal, id uuid.UUID, input usecase.UpdateCustomerInput) (*entity.CustomerProfile, error) {
	if err := access.Authorize(actor, access.OpUpdate, access.Resource{Kind: access.KindCustomer, OwnerID: id}); err != nil {
		return nil, err
	}

	var updated *entity.CustomerProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		customerRepo := repoFactory.CustomerRepo()

		customer, err := customerRepo.FindByID(ctx, id)
		if err != nil {
			return mapStoreError(err, "failed to load customer profile")
		}

		previousEmail, previousName := customer.Email, customer.FullName()
		mergeCustomer(customer, input)

		var errs fieldErrors
		checkEmail(&errs, "email", customer.Email)
		if err := errs.err(); err != nil {
			return err
		}

		customer.UpdatedAt = utcNow()
		if err := customerRepo.Update(ctx, customer); err != nil {
			return mapStoreError(err, "failed to update customer profile")
		}

		if err := syncPrincipal(ctx, repoFactory, id, customer.Email, previousEmail, customer.FullName(), previousName); err != nil {
			return err
		}
		updated = customer

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update customer")
	}

	logger(ctx, srv.logger).Info("Customer profile updated", slog.Any("customerID", id))

	return updated, nil
}

func mergeCustomer(customer *entity.CustomerProfile, input usecase.UpdateCustomerInput) {
	if input.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		customer.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		customer.Email = entity.NormalizeEmail(*input.Email)
	}
	if input.Phone != nil {
		customer.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Interests != nil {
		customer.Interests = *input.Interests
	}
}
