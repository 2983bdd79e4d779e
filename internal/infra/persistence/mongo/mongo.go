// Package mongo implements the persistence layer on MongoDB. Multi-document writes go through
// session transactions, which require a replica set or sharded cluster.
package mongo

import (
	"context"
	"log/slog"

	"estate/config"
	"estate/internal/domain/lifecycle"
	"estate/internal/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/fx"
)

// Collection names.
const (
	principalsCollection    = "principals"
	sellersCollection       = "sellers"
	customersCollection     = "customers"
	listingsCollection      = "listings"
	conversationsCollection = "conversations"
)

// Index names. Duplicate-key errors carry the index name, which is how they are told apart.
const (
	indexPrincipalEmail  = "uq_principals_email"
	indexSellerEmail     = "uq_sellers_email"
	indexSellerUsername  = "uq_sellers_username"
	indexCustomerEmail   = "uq_customers_email"
	indexListingCreated  = "idx_listings_created_at"
	indexListingOwner    = "idx_listings_owner_id"
	indexConversationOwn = "idx_conversations_owner_updated"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the MongoDB client. The connection is verified and the indexes are created on start.
func New(params Params) (*mongo.Database, error) {
	cfg := params.Config.Mongo
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo.uri is required for the mongo storage driver")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo.database is required for the mongo storage driver")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}
	db := client.Database(cfg.Database)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			if err := EnsureIndexes(ctx, db); err != nil {
				return err
			}
			params.Logger.Info("MongoDB indexes are up to date", slog.String("database", cfg.Database))

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			return client.Disconnect(stopCtx)
		},
	})

	return db, nil
}

// EnsureIndexes creates the unique indexes the repositories rely on for conflict detection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(field, name string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(name),
		}
	}

	indexes := map[string][]mongo.IndexModel{
		principalsCollection: {unique("email", indexPrincipalEmail)},
		sellersCollection: {
			unique("email", indexSellerEmail),
			unique("username", indexSellerUsername),
		},
		customersCollection: {unique("email", indexCustomerEmail)},
		listingsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName(indexListingCreated)},
			{Keys: bson.D{{Key: "ownerId", Value: 1}}, Options: options.Index().SetName(indexListingOwner)},
		},
		conversationsCollection: {
			{
				Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "updatedAt", Value: -1}},
				Options: options.Index().SetName(indexConversationOwn),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "failed to create indexes on %s", collection)
		}
	}

	return nil
}
