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

var newestRegisteredFirst = bson.D{{Key: "registeredAt", Value: -1}, {Key: "_id", Value: 1}}

// sellerRepository implements repository.SellerRepository on the sellers collection.
type sellerRepository struct {
	collections
}

func (repo *sellerRepository) Create(ctx context.Context, seller *entity.SellerProfile) error {
	_, err := repo.coll(sellersCollection).InsertOne(repo.scope(ctx), toSellerDocument(seller))

	return translateWriteError(err, "failed to create seller profile")
}

func (repo *sellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SellerProfile, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (repo *sellerRepository) FindByEmail(ctx context.Context, email string) (*entity.SellerProfile, error) {
	return repo.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (repo *sellerRepository) FindByUsername(ctx context.Context, username string) (*entity.SellerProfile, error) {
	return repo.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (repo *sellerRepository) findOne(ctx context.Context, filter bson.D) (*entity.SellerProfile, error) {
	var doc sellerDocument
	if err := repo.coll(sellersCollection).FindOne(repo.scope(ctx), filter).Decode(&doc); err != nil {
		return nil, translateFindError(err, repository.ErrSellerNotFound, "failed to find seller profile")
	}

	return doc.toDomain()
}

func (repo *sellerRepository) List(ctx context.Context, status *entity.SellerStatus) ([]*entity.SellerProfile, error) {
	filter := bson.D{}
	if status != nil {
		filter = append(filter, bson.E{Key: "status", Value: string(*status)})
	}

	cursor, err := repo.coll(sellersCollection).Find(repo.scope(ctx), filter, options.Find().SetSort(newestRegisteredFirst))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller profiles")
	}

	var docs []sellerDocument
	if err := cursor.All(repo.scope(ctx), &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode seller profiles")
	}

	return decodeAll(docs, (*sellerDocument).toDomain)
}

// Update replaces the document but keeps the stored registration time.
func (repo *sellerRepository) Update(ctx context.Context, seller *entity.SellerProfile) error {
	current, err := repo.FindByID(ctx, seller.ID)
	if err != nil {
		return err
	}

	doc := toSellerDocument(seller)
	doc.RegisteredAt = current.RegisteredAt

	result, err := repo.coll(sellersCollection).ReplaceOne(repo.scope(ctx), bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return translateWriteError(err, "failed to update seller profile")
	}
	if result.MatchedCount == 0 {
		return errors.WithStack(repository.ErrSellerNotFound)
	}

	return nil
}

func (repo *sellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll(sellersCollection).DeleteOne(repo.scope(ctx), bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return errors.Wrap(err, "failed to delete seller profile")
	}
	if result.DeletedCount == 0 {
		return errors.WithStack(repository.ErrSellerNotFound)
	}

	return nil
}

// customerRepository implements repository.CustomerRepository on the customers collection.
type customerRepository struct {
	collections
}

func (repo *customerRepository) Create(ctx context.Context, customer *entity.CustomerProfile) error {
	_, err := repo.coll(customersCollection).InsertOne(repo.scope(ctx), toCustomerDocument(customer))

	return translateWriteError(err, "failed to create customer profile")
}

func (repo *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CustomerProfile, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (repo *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.CustomerProfile, error) {
	return repo.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (repo *customerRepository) findOne(ctx context.Context, filter bson.D) (*entity.CustomerProfile, error) {
	var doc customerDocument
	if err := repo.coll(customersCollection).FindOne(repo.scope(ctx), filter).Decode(&doc); err != nil {
		return nil, translateFindError(err, repository.ErrCustomerNotFound, "failed to find customer profile")
	}

	return doc.toDomain()
}

func (repo *customerRepository) List(ctx context.Context) ([]*entity.CustomerProfile, error) {
	cursor, err := repo.coll(customersCollection).Find(repo.scope(ctx), bson.D{}, options.Find().SetSort(newestRegisteredFirst))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer profiles")
	}

	var docs []customerDocument
	if err := cursor.All(repo.scope(ctx), &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode customer profiles")
	}

	return decodeAll(docs, (*customerDocument).toDomain)
}

func (repo *customerRepository) Update(ctx context.Context, customer *entity.CustomerProfile) error {
	current, err := repo.FindByID(ctx, customer.ID)
	if err != nil {
		return err
	}

	doc := toCustomerDocument(customer)
	doc.RegisteredAt = current.RegisteredAt

	result, err := repo.coll(customersCollection).ReplaceOne(repo.scope(ctx), bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return translateWriteError(err, "failed to update customer profile")
	}
	if result.MatchedCount == 0 {
		return errors.WithStack(repository.ErrCustomerNotFound)
	}

	return nil
}

func (repo *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll(customersCollection).DeleteOne(repo.scope(ctx), bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return errors.Wrap(err, "failed to delete customer profile")
	}
	if result.DeletedCount == 0 {
		return errors.WithStack(repository.ErrCustomerNotFound)
	}

	return nil
}
