// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	deliverycontext "estate/internal/delivery/context"
	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/errors"
)

// mapStoreError translates repository outcomes into domain errors. Errors that
// already carry a domain kind pass through unchanged; anything else is a store fault.
func mapStoreError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repository.ErrPrincipalNotFound):
		return errors.Wrap(domainerrors.ErrPrincipalNotFound, msg)
	case errors.Is(err, repository.ErrSellerNotFound):
		return errors.Wrap(domainerrors.ErrSellerNotFound, msg)
	case errors.Is(err, repository.ErrCustomerNotFound):
		return errors.Wrap(domainerrors.ErrCustomerNotFound, msg)
	case errors.Is(err, repository.ErrListingNotFound):
		return errors.Wrap(domainerrors.ErrListingNotFound, msg)
	case errors.Is(err, repository.ErrConversationNotFound):
		return errors.Wrap(domainerrors.ErrConversationNotFound, msg)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return errors.Wrap(domainerrors.ErrEmailTaken, msg)
	case errors.Is(err, repository.ErrDuplicateUsername):
		return errors.Wrap(domainerrors.ErrUsernameTaken, msg)
	default:
		return domainerrors.NewDependencyError(err, msg)
	}
}

// found interprets a lookup result: true when the record exists, false when the
// repository reported notFound, and an error for anything else.
func found(err, notFound error, msg string) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, notFound):
		return false, nil
	default:
		return false, mapStoreError(err, msg)
	}
}

// requireActor rejects calls without a resolved principal.
func requireActor(actor *access.Principal) error {
	if actor == nil {
		return errors.WithStack(domainerrors.ErrAuthenticationRequired)
	}

	return nil
}

// fieldErrors collects validation failures for a single input.
type fieldErrors []domainerrors.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, domainerrors.FieldError{Field: field, Message: message})
}

func (f *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "is required")
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}

	return domainerrors.NewValidationError(f...)
}

func checkPassword(errs *fieldErrors, field, password string, minLength int) {
	if len([]rune(password)) < minLength {
		errs.add(field, "must be at least "+strconv.Itoa(minLength)+" characters")
	}
}

func checkEmail(errs *fieldErrors, field, email string) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		errs.add(field, "must be a valid email address")
	}
}

// displayNameFor picks the first non-empty candidate, falling back to the email's local part.
func displayNameFor(email string, candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}

	return email
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// logger returns the request-scoped logger if available, otherwise the fallback.
func logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, fallback)
}

func roleAttr(role entity.Role) slog.Attr {
	return slog.String("role", role.String())
}
