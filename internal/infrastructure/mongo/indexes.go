package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexNames lists the collections whose indexes EnsureIndexes manages.
type IndexNames struct {
	Listings ListingCollections
	Reviews  string
	Leads    string
	Products string
}

// EnsureIndexes creates the query indexes. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database, names IndexNames) error {
	listingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "isPremium", Value: -1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		{Keys: bson.D{{Key: "portfolioPhotosPending.0", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	plan := map[string][]mongo.IndexModel{
		names.Listings.Concierges: listingIndexes,
		names.Listings.Cleanings:  listingIndexes,
		names.Listings.Designers:  listingIndexes,
		names.Reviews: {
			{Keys: bson.D{{Key: "target.kind", Value: 1}, {Key: "target.listingId", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		names.Leads: {
			{Keys: bson.D{{Key: "capturedAt", Value: -1}}},
		},
		names.Products: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for collection, models := range plan {
		if collection == "" {
			continue
		}
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
