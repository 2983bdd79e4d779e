package postgres

import (
	"strings"

	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/infra/persistence/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// uniqueViolation reports whether err is a unique constraint violation and, when the
// driver exposes it, the name of the violated constraint.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	return "", false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return true
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

// translateWriteError turns a driver error from an insert or update into a repository
// sentinel. Unrecognized errors are wrapped with msg.
func translateWriteError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if constraint, ok := uniqueViolation(err); ok {
		if constraint == model.UniqueSellerUsername || strings.Contains(constraint, "username") {
			return errors.Wrap(repository.ErrDuplicateUsername, constraint)
		}

		return errors.Wrap(repository.ErrDuplicateEmail, constraint)
	}

	return errors.Wrap(err, msg)
}
