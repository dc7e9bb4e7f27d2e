package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CineShelf/internal/apperr"
	"CineShelf/internal/db"
	"CineShelf/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CollectionRepository is the accessor for a per-user singleton movie
// collection document (watchlist or watched list). Mutations use atomic
// array operators so concurrent requests for the same user cannot lose
// updates; a unique index on user_id backs the upsert path.
type CollectionRepository interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*model.Collection, error)
	AddMovie(ctx context.Context, userID primitive.ObjectID, record model.MovieRecord) error
	RemoveMovie(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error
	SetEntryFields(ctx context.Context, userID primitive.ObjectID, tmdbID int64, fields bson.M) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	CountEntries(ctx context.Context) (int64, error)
}

type collectionRepository struct {
	name      string
	mongoRepo *db.Repository[model.Collection]
	logger    *zap.Logger
}

func NewCollectionRepository(name string, mongoRepo *db.Repository[model.Collection], logger *zap.Logger) CollectionRepository {
	return &collectionRepository{
		name:      name,
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

// Get returns the user's collection document, or an empty default when
// none exists yet. It never creates one; the first add does that.
func (r *collectionRepository) Get(ctx context.Context, userID primitive.ObjectID) (*model.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	doc, err := r.mongoRepo.FindOne(ctx, bson.M{"user_id": userID})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &model.Collection{UserID: userID, Movies: []model.MovieRecord{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.name, err)
	}
	return doc, nil
}

// AddMovie appends the record unless its tmdbId is already present.
// The filter excludes documents that already hold the id, so a matching
// document means a clean append; no match plus an existing document
// means a duplicate. The upsert covers the first-write case, and the
// unique user_id index turns a lost upsert race into a duplicate-key
// error, which is reported as a conflict like any other duplicate.
func (r *collectionRepository) AddMovie(ctx context.Context, userID primitive.ObjectID, record model.MovieRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now()
	filter := bson.M{
		"user_id":        userID,
		"movies.tmdb_id": bson.M{"$ne": record.TmdbID},
	}
	update := bson.M{
		"$push":        bson.M{"movies": record},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
	}

	result, err := r.mongoRepo.Upsert(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("tmdbId %d in %s: %w", record.TmdbID, r.name, apperr.ErrConflict)
		}
		return fmt.Errorf("failed to add to %s: %w", r.name, err)
	}

	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return fmt.Errorf("tmdbId %d in %s: %w", record.TmdbID, r.name, apperr.ErrConflict)
	}

	r.logger.Debug("movie added",
		zap.String("collection", r.name),
		zap.String("user_id", userID.Hex()),
		zap.Int64("tmdb_id", record.TmdbID),
	)
	return nil
}

// RemoveMovie pulls every entry matching tmdbID. Removing an id that is
// not present succeeds and leaves the document unchanged; only a missing
// document is an error.
func (r *collectionRepository) RemoveMovie(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"movies": bson.M{"tmdb_id": tmdbID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %w", r.name, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s for user %s: %w", r.name, userID.Hex(), apperr.ErrNotFound)
	}
	return nil
}

// SetEntryFields updates fields of the entry matching tmdbID in place
// via the positional operator.
func (r *collectionRepository) SetEntryFields(ctx context.Context, userID primitive.ObjectID, tmdbID int64, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set["movies.$."+k] = v
	}

	result, err := r.mongoRepo.UpdateOne(ctx,
		bson.M{"user_id": userID, "movies.tmdb_id": tmdbID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to update %s entry: %w", r.name, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("tmdbId %d in %s: %w", tmdbID, r.name, apperr.ErrNotFound)
	}
	return nil
}

func (r *collectionRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if _, err := r.mongoRepo.Delete(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.name, err)
	}
	return nil
}

func (r *collectionRepository) CountEntries(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.Count(ctx, db.Empty())
}
