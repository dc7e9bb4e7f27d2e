package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// user_id indexes on the collection documents are what make the
// append-if-absent upsert safe under concurrent first writes.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"watchlists": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		"lists": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		"reviews": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "tmdb_id", Value: 1}}, Options: unique},
		},
		"notifications": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
