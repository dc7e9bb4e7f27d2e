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
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ReviewRepository is the canonical store for the rating fact: exactly
// one document per (user, tmdbId), enforced by a unique compound index
// and upsert writes.
type ReviewRepository interface {
	Upsert(ctx context.Context, review *model.Review) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Review, error)
	FindByUserAndMovie(ctx context.Context, userID primitive.ObjectID, tmdbID int64) (*model.Review, error)
	Delete(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	mongoRepo *db.Repository[model.Review]
	logger    *zap.Logger
}

func NewReviewRepository(mongoRepo *db.Repository[model.Review], logger *zap.Logger) ReviewRepository {
	return &reviewRepository{
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

// Upsert overwrites rating/review for the (user, movie) pair, creating
// the document on first write. created_at survives overwrites.
func (r *reviewRepository) Upsert(ctx context.Context, review *model.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now()
	_, err := r.mongoRepo.Upsert(ctx,
		bson.M{"user_id": review.UserID, "tmdb_id": review.TmdbID},
		bson.M{
			"$set": bson.M{
				"rating":     review.Rating,
				"review":     review.Review,
				"media_type": review.MediaType,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"user_id":    review.UserID,
				"tmdb_id":    review.TmdbID,
				"created_at": now,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}

	r.logger.Debug("review upserted",
		zap.String("user_id", review.UserID.Hex()),
		zap.Int64("tmdb_id", review.TmdbID),
	)
	return nil
}

// FindByUser loads every review the user has written, newest first. The
// full set backs the list rating projection and the data export, so the
// read is deliberately unpaginated.
func (r *reviewRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	reviews, err := r.mongoRepo.FindAll(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) FindByUserAndMovie(ctx context.Context, userID primitive.ObjectID, tmdbID int64) (*model.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	review, err := r.mongoRepo.FindOne(ctx, bson.M{"user_id": userID, "tmdb_id": tmdbID})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("review for tmdbId %d: %w", tmdbID, apperr.ErrNotFound)
	}
	return review, err
}

func (r *reviewRepository) Delete(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Delete(ctx, bson.M{"user_id": userID, "tmdb_id": tmdbID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review for tmdbId %d: %w", tmdbID, apperr.ErrNotFound)
	}
	return nil
}

func (r *reviewRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if _, err := r.mongoRepo.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.Count(ctx, db.Empty())
}
