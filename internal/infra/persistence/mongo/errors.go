package mongo

import (
	"strings"

	"estate/internal/domain/repository"
	"estate/internal/errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// translateWriteError turns a driver error from an insert or update into a repository
// sentinel. Unrecognized errors are wrapped with msg.
func translateWriteError(err error, msg string) error {
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), indexSellerUsername) {
			return errors.Wrap(repository.ErrDuplicateUsername, indexSellerUsername)
		}

		return errors.Wrap(repository.ErrDuplicateEmail, msg)
	}

	return errors.Wrap(err, msg)
}

// translateFindError maps a missing document to notFound.
func translateFindError(err, notFound error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errors.WithStack(notFound)
	}

	return errors.Wrap(err, msg)
}
