package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"estate/config"
	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/domain/service"
	"estate/internal/errors"
	"estate/internal/infra/metrics"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// registrationService implements the RegistrationUsecase interface.
type registrationService struct {
	txManager         repository.TransactionManager
	hasher            service.PasswordHasher
	passwordMinLength int
	metrics           *metrics.Metrics
	logger            *slog.Logger
}

// RegistrationServiceParams holds dependencies for RegistrationService, injected by Fx.
type RegistrationServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Metrics   *metrics.Metrics `optional:"true"`
	Logger    *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(params RegistrationServiceParams) usecase.RegistrationUsecase {
	return &registrationService{
		txManager:         params.TxManager,
		hasher:            params.Hasher,
		passwordMinLength: passwordMinLength(params.Config),
		metrics:           params.Metrics,
		logger:            params.Logger,
	}
}

func passwordMinLength(cfg *config.Config) int {
	if cfg != nil && cfg.Auth != nil && cfg.Auth.PasswordMinLength > 0 {
		return cfg.Auth.PasswordMinLength
	}

	return 6
}

// newAccount is a principal and its optional profile, written together.
type newAccount struct {
	principal *entity.Principal
	seller    *entity.SellerProfile
	customer  *entity.CustomerProfile
}

// RegisterSeller creates a seller principal and its Pending profile in one transaction.
func (srv *registrationService) RegisterSeller(ctx context.Context, input usecase.RegisterSellerInput) (*usecase.RegisterSellerOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	var errs fieldErrors
	checkEmail(&errs, "email", email)
	checkPassword(&errs, "password", input.Password, srv.passwordMinLength)
	validateSellerFields(&errs, input.Profile)
	if err := errs.err(); err != nil {
		return nil, err
	}

	acct, err := srv.buildAccount(entity.RoleSeller, email, input.Password, "", &input.Profile, nil)
	if err != nil {
		return nil, err
	}

	if err := srv.createAccount(ctx, acct); err != nil {
		return nil, errors.Wrap(err, "failed to register seller")
	}

	return &usecase.RegisterSellerOutput{
		ProfileID: acct.seller.ID,
		Status:    acct.seller.Status,
		Principal: acct.principal,
		Profile:   acct.seller,
	}, nil
}

// RegisterCustomer creates a customer principal and its profile in one transaction.
func (srv *registrationService) RegisterCustomer(ctx context.Context, input usecase.RegisterCustomerInput) (*usecase.RegisterCustomerOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	var errs fieldErrors
	checkEmail(&errs, "email", email)
	checkPassword(&errs, "password", input.Password, srv.passwordMinLength)
	if err := errs.err(); err != nil {
		return nil, err
	}

	acct, err := srv.buildAccount(entity.RoleCustomer, email, input.Password, input.DisplayName, nil, &input.Profile)
	if err != nil {
		return nil, err
	}

	if err := srv.createAccount(ctx, acct); err != nil {
		return nil, errors.Wrap(err, "failed to register customer")
	}

	return &usecase.RegisterCustomerOutput{
		ProfileID: acct.customer.ID,
		Principal: acct.principal,
		Profile:   acct.customer,
	}, nil
}

// CreatePrincipal issues an account of any role on behalf of an admin.
func (srv *registrationService) CreatePrincipal(ctx context.Context, actor *access.Principal, input usecase.CreatePrincipalInput) (*entity.Principal, error) {
	if err := access.Authorize(actor, access.OpCreate, access.Resource{Kind: access.KindPrincipal}); err != nil {
		return nil, err
	}

	email := entity.NormalizeEmail(input.Email)

	var errs fieldErrors
	if !input.Role.IsValid() {
		errs.add("role", "must be one of admin, seller, customer")
	}
	checkEmail(&errs, "email", email)
	checkPassword(&errs, "password", input.Password, srv.passwordMinLength)
	if input.SellerProfile != nil {
		if input.Role != entity.RoleSeller {
			errs.add("sellerProfile", "only allowed for role seller")
		} else {
			validateSellerFields(&errs, *input.SellerProfile)
		}
	}
	if input.CustomerProfile != nil && input.Role != entity.RoleCustomer {
		errs.add("customerProfile", "only allowed for role customer")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	acct, err := srv.buildAccount(input.Role, email, input.Password, input.DisplayName, input.SellerProfile, input.CustomerProfile)
	if err != nil {
		return nil, err
	}

	if err := srv.createAccount(ctx, acct); err != nil {
		return nil, errors.Wrap(err, "failed to create principal")
	}

	return acct.principal, nil
}

// EnsureAdmin creates an administrator unless the email is already registered.
func (srv *registrationService) EnsureAdmin(ctx context.Context, email, password, displayName string) (bool, error) {
	email = entity.NormalizeEmail(email)

	var errs fieldErrors
	checkEmail(&errs, "email", email)
	checkPassword(&errs, "password", password, srv.passwordMinLength)
	if err := errs.err(); err != nil {
		return false, err
	}

	acct, err := srv.buildAccount(entity.RoleAdmin, email, password, displayName, nil, nil)
	if err != nil {
		return false, err
	}

	err = srv.createAccount(ctx, acct)
	if errors.Is(err, domainerrors.ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to create bootstrap admin")
	}

	return true, nil
}

func (srv *registrationService) buildAccount(
	role entity.Role,
	email, password, displayName string,
	sellerFields *usecase.SellerProfileFields,
	customerFields *usecase.CustomerProfileFields,
) (*newAccount, error) {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, domainerrors.NewDependencyError(err, "failed to hash password")
	}

	id := uuid.New()
	now := utcNow()
	acct := &newAccount{
		principal: &entity.Principal{
			ID:         id,
			Role:       role,
			Email:      email,
			SecretHash: hash,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	switch {
	case role == entity.RoleSeller && sellerFields != nil:
		acct.seller = buildSellerProfile(id, email, sellerFields, now)
		acct.principal.DisplayName = displayNameFor(email, displayName, acct.seller.FullName(), acct.seller.Username)
	case role == entity.RoleCustomer && customerFields != nil:
		acct.customer = buildCustomerProfile(id, email, customerFields, now)
		acct.principal.DisplayName = displayNameFor(email, displayName, acct.customer.FullName())
	default:
		acct.principal.DisplayName = displayNameFor(email, displayName)
	}

	return acct, nil
}

// createAccount writes the principal and its profile atomically. The lookups give a
// friendlier conflict; the stores' unique keys decide concurrent races.
func (srv *registrationService) createAccount(ctx context.Context, acct *newAccount) error {
	p := acct.principal
	logger(ctx, srv.logger).Info("Creating account", roleAttr(p.Role), slog.String("email", p.Email))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		principalRepo := repoFactory.PrincipalRepo()

		_, err := principalRepo.FindByEmail(ctx, p.Email)
		if exists, err := found(err, repository.ErrPrincipalNotFound, "failed to check email"); err != nil {
			return err
		} else if exists {
			return errors.WithStack(domainerrors.ErrEmailTaken)
		}

		if acct.seller != nil {
			if err := srv.insertSeller(ctx, repoFactory.SellerRepo(), acct.seller); err != nil {
				return err
			}
		}
		if acct.customer != nil {
			if err := srv.insertCustomer(ctx, repoFactory.CustomerRepo(), acct.customer); err != nil {
				return err
			}
		}

		return mapStoreError(principalRepo.Create(ctx, p), "failed to create principal")
	})
	if err != nil {
		logger(ctx, srv.logger).Warn("Account creation rolled back", roleAttr(p.Role), slog.String("email", p.Email), slog.Any("error", err))

		return err
	}

	srv.metrics.IncAccountRegistered(p.Role.String())
	logger(ctx, srv.logger).Debug("Account created", roleAttr(p.Role), slog.Any("principalID", p.ID))

	return nil
}

func (srv *registrationService) insertSeller(ctx context.Context, repo repository.SellerRepository, seller *entity.SellerProfile) error {
	_, err := repo.FindByEmail(ctx, seller.Email)
	if exists, err := found(err, repository.ErrSellerNotFound, "failed to check seller email"); err != nil {
		return err
	} else if exists {
		return errors.WithStack(domainerrors.ErrEmailTaken)
	}

	_, err = repo.FindByUsername(ctx, seller.Username)
	if exists, err := found(err, repository.ErrSellerNotFound, "failed to check username"); err != nil {
		return err
	} else if exists {
		return errors.WithStack(domainerrors.ErrUsernameTaken)
	}

	return mapStoreError(repo.Create(ctx, seller), "failed to create seller profile")
}

func (srv *registrationService) insertCustomer(ctx context.Context, repo repository.CustomerRepository, customer *entity.CustomerProfile) error {
	_, err := repo.FindByEmail(ctx, customer.Email)
	if exists, err := found(err, repository.ErrCustomerNotFound, "failed to check customer email"); err != nil {
		return err
	} else if exists {
		return errors.WithStack(domainerrors.ErrEmailTaken)
	}

	return mapStoreError(repo.Create(ctx, customer), "failed to create customer profile")
}

// DeleteAccount removes an account and everything it owns in one transaction.
func (srv *registrationService) DeleteAccount(ctx context.Context, actor *access.Principal, kind access.ResourceKind, id uuid.UUID) error {
	if err := access.Authorize(actor, access.OpDelete, access.Resource{Kind: kind, OwnerID: id}); err != nil {
		return err
	}

	notFound := notFoundFor(kind)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		principal, err := repoFactory.PrincipalRepo().FindByID(ctx, id)
		hasPrincipal, err := found(err, repository.ErrPrincipalNotFound, "failed to load principal")
		if err != nil {
			return err
		}

		role := kindRole(kind)
		if role == "" && !hasPrincipal {
			return errors.WithStack(notFound)
		}
		if role != "" && hasPrincipal && principal.Role != role {
			return errors.WithStack(notFound)
		}
		if role == "" {
			role = principal.Role
		}

		removed, err := deleteProfile(ctx, repoFactory, role, id)
		if err != nil {
			return err
		}
		if kind != access.KindPrincipal && !removed {
			return errors.WithStack(notFound)
		}

		if hasPrincipal {
			if err := repoFactory.PrincipalRepo().Delete(ctx, id); err != nil {
				return mapStoreError(err, "failed to delete principal")
			}
		}
		if _, err := repoFactory.ListingRepo().DeleteByOwner(ctx, id); err != nil {
			return mapStoreError(err, "failed to delete listings")
		}
		if _, err := repoFactory.ConversationRepo().DeleteByOwner(ctx, id); err != nil {
			return mapStoreError(err, "failed to delete conversations")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	logger(ctx, srv.logger).Info("Account deleted", slog.Any("principalID", id), slog.Any("actorID", actor.ID))

	return nil
}

// deleteProfile removes the profile paired with id for the role, reporting whether one existed.
func deleteProfile(ctx context.Context, repoFactory repository.RepositoryFactory, role entity.Role, id uuid.UUID) (bool, error) {
	switch role {
	case entity.RoleSeller:
		return found(repoFactory.SellerRepo().Delete(ctx, id), repository.ErrSellerNotFound, "failed to delete seller profile")
	case entity.RoleCustomer:
		return found(repoFactory.CustomerRepo().Delete(ctx, id), repository.ErrCustomerNotFound, "failed to delete customer profile")
	default:
		return false, nil
	}
}

func kindRole(kind access.ResourceKind) entity.Role {
	switch kind {
	case access.KindSeller:
		return entity.RoleSeller
	case access.KindCustomer:
		return entity.RoleCustomer
	default:
		return ""
	}
}

func notFoundFor(kind access.ResourceKind) error {
	switch kind {
	case access.KindSeller:
		return domainerrors.ErrSellerNotFound
	case access.KindCustomer:
		return domainerrors.ErrCustomerNotFound
	default:
		return domainerrors.ErrPrincipalNotFound
	}
}

func validateSellerFields(errs *fieldErrors, f usecase.SellerProfileFields) {
	errs.required("firstName", f.FirstName)
	errs.required("lastName", f.LastName)
	errs.required("phone", f.Phone)
	errs.required("identificationDoc", f.IdentificationDoc)
	errs.required("username", f.Username)
}

func buildSellerProfile(id uuid.UUID, email string, f *usecase.SellerProfileFields, now time.Time) *entity.SellerProfile {
	languages := f.PreferredLanguages
	if languages == nil {
		languages = []string{}
	}

	return &entity.SellerProfile{
		ID:                 id,
		FirstName:          strings.TrimSpace(f.FirstName),
		LastName:           strings.TrimSpace(f.LastName),
		Email:              email,
		Phone:              strings.TrimSpace(f.Phone),
		IdentificationDoc:  f.IdentificationDoc,
		ProfilePicture:     f.ProfilePicture,
		Bio:                f.Bio,
		SocialLinks:        f.SocialLinks,
		PreferredLanguages: languages,
		Business:           f.Business,
		Username:           strings.TrimSpace(f.Username),
		Status:             entity.SellerStatusPending,
		RegisteredAt:       now,
		UpdatedAt:          now,
	}
}

func buildCustomerProfile(id uuid.UUID, email string, f *usecase.CustomerProfileFields, now time.Time) *entity.CustomerProfile {
	return &entity.CustomerProfile{
		ID:           id,
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(f.Phone),
		Address:      f.Address,
		Interests:    f.Interests,
		RegisteredAt: now,
		UpdatedAt:    now,
	}
}
