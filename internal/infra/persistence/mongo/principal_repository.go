package mongo

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// principalRepository implements repository.PrincipalRepository on the principals collection.
type principalRepository struct {
	collections
}

func (repo *principalRepository) Create(ctx context.Context, principal *entity.Principal) error {
	_, err := repo.coll(principalsCollection).InsertOne(repo.scope(ctx), toPrincipalDocument(principal))

	return translateWriteError(err, "failed to create principal")
}

func (repo *principalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (repo *principalRepository) FindByEmail(ctx context.Context, email string) (*entity.Principal, error) {
	return repo.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (repo *principalRepository) findOne(ctx context.Context, filter bson.D) (*entity.Principal, error) {
	var doc principalDocument
	if err := repo.coll(principalsCollection).FindOne(repo.scope(ctx), filter).Decode(&doc); err != nil {
		return nil, translateFindError(err, repository.ErrPrincipalNotFound, "failed to find principal")
	}

	return doc.toDomain()
}

func (repo *principalRepository) List(ctx context.Context, role *entity.Role) ([]*entity.Principal, error) {
	filter := bson.D{}
	if role != nil {
		filter = append(filter, bson.E{Key: "role", Value: role.String()})
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := repo.coll(principalsCollection).Find(repo.scope(ctx), filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list principals")
	}

	var docs []principalDocument
	if err := cursor.All(repo.scope(ctx), &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode principals")
	}

	return decodeAll(docs, (*principalDocument).toDomain)
}

func (repo *principalRepository) Update(ctx context.Context, principal *entity.Principal) error {
	doc := toPrincipalDocument(principal)
	result, err := repo.coll(principalsCollection).UpdateByID(repo.scope(ctx), doc.ID, bson.D{{Key: "$set", Value: bson.D{
		{Key: "role", Value: doc.Role},
		{Key: "displayName", Value: doc.DisplayName},
		{Key: "email", Value: doc.Email},
		{Key: "secretHash", Value: doc.SecretHash},
		{Key: "updatedAt", Value: doc.UpdatedAt},
	}}})
	if err != nil {
		return translateWriteError(err, "failed to update principal")
	}
	if result.MatchedCount == 0 {
		return errors.WithStack(repository.ErrPrincipalNotFound)
	}

	return nil
}

func (repo *principalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll(principalsCollection).DeleteOne(repo.scope(ctx), bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return errors.Wrap(err, "failed to delete principal")
	}
	if result.DeletedCount == 0 {
		return errors.WithStack(repository.ErrPrincipalNotFound)
	}

	return nil
}
