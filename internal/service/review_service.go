package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CineShelf/internal/apperr"
	"CineShelf/internal/model"
	"CineShelf/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ReviewService owns the canonical rating records and keeps the watched
// list membership in step with them.
type ReviewService struct {
	reviewRepo repo.ReviewRepository
	listRepo   repo.CollectionRepository
	logger     *zap.Logger
}

func NewReviewService(reviewRepo repo.ReviewRepository, listRepo repo.CollectionRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		listRepo:   listRepo,
		logger:     logger,
	}
}

// Create upserts the review for (user, tmdbId), overwriting rating and
// text in place when one already exists, and then makes sure the movie
// appears in the user's watched list. The membership write is
// secondary: its failure is logged and the review stands.
func (s *ReviewService) Create(ctx context.Context, userID primitive.ObjectID, raw map[string]interface{}) (*model.Review, error) {
	record := model.NormalizeMovieRecord(raw, model.ContextWatchedAt, time.Now())
	if record.TmdbID == 0 {
		return nil, fmt.Errorf("tmdbId is required: %w", apperr.ErrValidation)
	}
	if record.Rating < 0 || record.Rating > 10 {
		return nil, fmt.Errorf("rating must be between 0 and 10: %w", apperr.ErrValidation)
	}

	review := &model.Review{
		UserID:    userID,
		TmdbID:    record.TmdbID,
		Rating:    record.Rating,
		Review:    record.Review,
		MediaType: record.MediaType,
	}
	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return nil, err
	}

	stored := record
	stored.Rating, stored.Review = 0, ""
	if err := s.listRepo.AddMovie(ctx, userID, stored); err != nil && !errors.Is(err, apperr.ErrConflict) {
		s.logger.Error("list membership after review failed",
			zap.String("user_id", userID.Hex()),
			zap.Int64("tmdb_id", record.TmdbID),
			zap.Error(err),
		)
	}

	return s.reviewRepo.FindByUserAndMovie(ctx, userID, record.TmdbID)
}

func (s *ReviewService) List(ctx context.Context, userID primitive.ObjectID) ([]model.Review, error) {
	return s.reviewRepo.FindByUser(ctx, userID)
}

func (s *ReviewService) Get(ctx context.Context, userID primitive.ObjectID, tmdbID int64) (*model.Review, error) {
	return s.reviewRepo.FindByUserAndMovie(ctx, userID, tmdbID)
}

func (s *ReviewService) Delete(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error {
	return s.reviewRepo.Delete(ctx, userID, tmdbID)
}
