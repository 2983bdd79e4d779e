package impl

import (
	"context"
	"log/slog"

	"estate/config"
	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/domain/service"
	"estate/internal/errors"
	"estate/internal/infra/metrics"
	"estate/internal/usecase"

	"go.uber.org/fx"
)

// timingPassword is hashed at construction so that logins for unknown emails pay for exactly
// one hash comparison, like logins with a wrong password.
const timingPassword = "estate-login-timing-equalizer"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	principalRepo     repository.PrincipalRepository
	sellerRepo        repository.SellerRepository
	customerRepo      repository.CustomerRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	revocations       service.RevocationList
	passwordMinLength int
	metrics           *metrics.Metrics
	logger            *slog.Logger
	timingHash        string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	PrincipalRepo repository.PrincipalRepository
	SellerRepo    repository.SellerRepository
	CustomerRepo  repository.CustomerRepository
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	Revocations   service.RevocationList
	Config        *config.Config
	Metrics       *metrics.Metrics `optional:"true"`
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) (usecase.AuthUsecase, error) {
	timingHash, err := params.Hasher.Hash(timingPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare login timing hash")
	}

	return &authService{
		txManager:         params.TxManager,
		principalRepo:     params.PrincipalRepo,
		sellerRepo:        params.SellerRepo,
		customerRepo:      params.CustomerRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		revocations:       params.Revocations,
		passwordMinLength: passwordMinLength(params.Config),
		metrics:           params.Metrics,
		logger:            params.Logger,
		timingHash:        timingHash,
	}, nil
}

// Login verifies the credentials and issues a session token. An unknown email and a
// wrong password produce the same error after the same amount of hashing work.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	principal, err := srv.principalRepo.FindByEmail(ctx, email)
	exists, err := found(err, repository.ErrPrincipalNotFound, "failed to look up principal")
	if err != nil {
		return nil, err
	}

	if !exists {
		srv.hasher.Check(input.Password, srv.timingHash)
		srv.metrics.IncLogin(metrics.OutcomeFailure)
		logger(ctx, srv.logger).Info("Login rejected")

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if !srv.hasher.Check(input.Password, principal.SecretHash) {
		srv.metrics.IncLogin(metrics.OutcomeFailure)
		logger(ctx, srv.logger).Info("Login rejected")

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	issued, err := srv.tokenService.Issue(principal.ID, principal.Role)
	if err != nil {
		return nil, domainerrors.NewDependencyError(err, "failed to issue token")
	}

	srv.metrics.IncLogin(metrics.OutcomeSuccess)
	logger(ctx, srv.logger).Info("Login succeeded", slog.Any("principalID", principal.ID), roleAttr(principal.Role))

	return &usecase.LoginOutput{
		Principal: principal,
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

// Logout revokes the token until it would have expired.
func (srv *authService) Logout(ctx context.Context, token string) error {
	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		return errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	if err := srv.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return domainerrors.NewDependencyError(err, "failed to revoke token")
	}

	logger(ctx, srv.logger).Info("Logged out", slog.String("principalID", claims.Subject))

	return nil
}

// ResolvePrincipal returns the principal a valid, unrevoked token belongs to. The role
// is read from the credential store so that role changes apply to existing tokens.
func (srv *authService) ResolvePrincipal(ctx context.Context, token string) (*access.Principal, error) {
	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	revoked, err := srv.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, domainerrors.NewDependencyError(err, "failed to check token revocation")
	}
	if revoked {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token revoked")
	}

	principalID, err := claims.PrincipalID()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "malformed subject")
	}

	principal, err := srv.principalRepo.FindByID(ctx, principalID)
	exists, err := found(err, repository.ErrPrincipalNotFound, "failed to load principal")
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "principal no longer exists")
	}

	return &access.Principal{ID: principal.ID, Role: principal.Role}, nil
}

// ChangePassword stores a new hash. A principal changing their own password must
// present the current one; an admin changing someone else's does not.
func (srv *authService) ChangePassword(ctx context.Context, actor *access.Principal, input usecase.ChangePasswordInput) error {
	if err := access.Authorize(actor, access.OpUpdate, access.Resource{Kind: access.KindPrincipal, OwnerID: input.PrincipalID}); err != nil {
		return err
	}

	var errs fieldErrors
	checkPassword(&errs, "newPassword", input.NewPassword, srv.passwordMinLength)
	if err := errs.err(); err != nil {
		return err
	}

	self := actor.ID == input.PrincipalID
	if self && input.CurrentPassword == "" {
		return errors.WithStack(domainerrors.ErrCurrentPasswordRequired)
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.NewDependencyError(err, "failed to hash password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		principalRepo := repoFactory.PrincipalRepo()

		principal, err := principalRepo.FindByID(ctx, input.PrincipalID)
		if err != nil {
			return mapStoreError(err, "failed to load principal")
		}

		if self && !srv.hasher.Check(input.CurrentPassword, principal.SecretHash) {
			return errors.WithStack(domainerrors.ErrCurrentPasswordMismatch)
		}

		principal.SecretHash = newHash
		principal.UpdatedAt = utcNow()

		return mapStoreError(principalRepo.Update(ctx, principal), "failed to store password")
	})
	if err != nil {
		return errors.Wrap(err, "failed to change password")
	}

	logger(ctx, srv.logger).Info("Password changed", slog.Any("principalID", input.PrincipalID), slog.Bool("self", self))

	return nil
}

// Me returns the caller's principal and, when one exists, its profile.
func (srv *authService) Me(ctx context.Context, actor *access.Principal) (*usecase.MeOutput, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	principal, err := srv.principalRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, mapStoreError(err, "failed to load principal")
	}

	out := &usecase.MeOutput{Principal: principal}

	switch principal.Role {
	case entity.RoleSeller:
		seller, err := srv.sellerRepo.FindByID(ctx, principal.ID)
		if _, err := found(err, repository.ErrSellerNotFound, "failed to load seller profile"); err != nil {
			return nil, err
		}
		out.Seller = seller
	case entity.RoleCustomer:
		customer, err := srv.customerRepo.FindByID(ctx, principal.ID)
		if _, err := found(err, repository.ErrCustomerNotFound, "failed to load customer profile"); err != nil {
			return nil, err
		}
		out.Customer = customer
	}

	return out, nil
}
