package mongo

import (
	"context"
	"regexp"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// listingRepository implements repository.ListingRepository on the listings collection.
type listingRepository struct {
	collections
}

func (repo *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	_, err := repo.coll(listingsCollection).InsertOne(repo.scope(ctx), toListingDocument(listing))

	return errors.Wrap(err, "failed to create listing")
}

func (repo *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var doc listingDocument
	err := repo.coll(listingsCollection).FindOne(repo.scope(ctx), bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		return nil, translateFindError(err, repository.ErrListingNotFound, "failed to find listing")
	}

	return doc.toDomain()
}

func (repo *listingRepository) List(ctx context.Context, filter entity.ListingFilter, page entity.Page) ([]*entity.Listing, int64, error) {
	query := listingQuery(filter)

	total, err := repo.coll(listingsCollection).CountDocuments(repo.scope(ctx), query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count listings")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}

	cursor, err := repo.coll(listingsCollection).Find(repo.scope(ctx), query, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list listings")
	}

	var docs []listingDocument
	if err := cursor.All(repo.scope(ctx), &docs); err != nil {
		return nil, 0, errors.Wrap(err, "failed to decode listings")
	}

	listings, err := decodeAll(docs, (*listingDocument).toDomain)
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

// listingQuery builds a conjunction of every constraint present in the filter.
func listingQuery(f entity.ListingFilter) bson.D {
	query := bson.D{}
	if f.Type != nil {
		query = append(query, bson.E{Key: "type", Value: string(*f.Type)})
	}
	if f.City != nil {
		query = append(query, bson.E{Key: "address.city", Value: bson.Regex{Pattern: regexp.QuoteMeta(*f.City), Options: "i"}})
	}

	price := bson.D{}
	if f.MinPrice != nil {
		price = append(price, bson.E{Key: "$gte", Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		price = append(price, bson.E{Key: "$lte", Value: *f.MaxPrice})
	}
	if len(price) > 0 {
		query = append(query, bson.E{Key: "price", Value: price})
	}

	if f.ForSale != nil {
		query = append(query, bson.E{Key: "forSale", Value: *f.ForSale})
	}
	if f.OwnerID != nil {
		query = append(query, bson.E{Key: "ownerId", Value: f.OwnerID.String()})
	}
	if f.MinBeds != nil {
		query = append(query, bson.E{Key: "beds", Value: bson.D{{Key: "$gte", Value: *f.MinBeds}}})
	}
	if f.MinBaths != nil {
		query = append(query, bson.E{Key: "baths", Value: bson.D{{Key: "$gte", Value: *f.MinBaths}}})
	}

	return query
}

// Update replaces the document but keeps its owner and creation time.
func (repo *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	current, err := repo.FindByID(ctx, listing.ID)
	if err != nil {
		return err
	}

	doc := toListingDocument(listing)
	doc.OwnerID = current.OwnerID.String()
	doc.CreatedAt = current.CreatedAt

	result, err := repo.coll(listingsCollection).ReplaceOne(repo.scope(ctx), bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return errors.Wrap(err, "failed to update listing")
	}
	if result.MatchedCount == 0 {
		return errors.WithStack(repository.ErrListingNotFound)
	}

	return nil
}

func (repo *listingRepository) SetForSale(ctx context.Context, id uuid.UUID, forSale bool) error {
	result, err := repo.coll(listingsCollection).UpdateByID(repo.scope(ctx), id.String(),
		bson.D{{Key: "$set", Value: bson.D{{Key: "forSale", Value: forSale}}}})
	if err != nil {
		return errors.Wrap(err, "failed to update availability")
	}
	if result.MatchedCount == 0 {
		return errors.WithStack(repository.ErrListingNotFound)
	}

	return nil
}

func (repo *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll(listingsCollection).DeleteOne(repo.scope(ctx), bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return errors.Wrap(err, "failed to delete listing")
	}
	if result.DeletedCount == 0 {
		return errors.WithStack(repository.ErrListingNotFound)
	}

	return nil
}

func (repo *listingRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result, err := repo.coll(listingsCollection).DeleteMany(repo.scope(ctx), bson.D{{Key: "ownerId", Value: ownerID.String()}})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete listings by owner")
	}

	return result.DeletedCount, nil
}
