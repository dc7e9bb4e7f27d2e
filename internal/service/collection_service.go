package service

import (
	"context"
	"fmt"
	"time"

	"CineShelf/internal/apperr"
	"CineShelf/internal/model"
	"CineShelf/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const sideEffectTimeout = 5 * time.Second

// WatchlistService wraps the per-user watchlist collection document.
type WatchlistService struct {
	watchlistRepo repo.CollectionRepository
	notifier      *NotificationService
	logger        *zap.Logger
}

func NewWatchlistService(watchlistRepo repo.CollectionRepository, notifier *NotificationService, logger *zap.Logger) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

func (s *WatchlistService) Get(ctx context.Context, userID primitive.ObjectID) (*model.Collection, error) {
	return s.watchlistRepo.Get(ctx, userID)
}

// Add normalizes the raw payload and appends it, rejecting duplicates.
func (s *WatchlistService) Add(ctx context.Context, userID primitive.ObjectID, raw map[string]interface{}) (*model.MovieRecord, error) {
	record := model.NormalizeMovieRecord(raw, model.ContextAddedAt, time.Now())
	if record.TmdbID == 0 {
		return nil, fmt.Errorf("tmdbId is required: %w", apperr.ErrValidation)
	}

	if err := s.watchlistRepo.AddMovie(ctx, userID, record); err != nil {
		return nil, err
	}

	s.notifier.NotifyAsync(userID, &model.Notification{
		Type:    model.NotificationWatchlistUpdate,
		Title:   "Added to watchlist",
		Message: fmt.Sprintf("%s is on your watchlist", record.Title),
		Data:    map[string]interface{}{"tmdbId": record.TmdbID},
	})

	return &record, nil
}

func (s *WatchlistService) Remove(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error {
	return s.watchlistRepo.RemoveMovie(ctx, userID, tmdbID)
}

// ListService wraps the watched list. Entries hold membership and movie
// metadata; the rating fact lives in the review store and is projected
// onto entries at read time, so the two access patterns cannot drift.
type ListService struct {
	listRepo   repo.CollectionRepository
	reviewRepo repo.ReviewRepository
	logger     *zap.Logger
}

func NewListService(listRepo repo.CollectionRepository, reviewRepo repo.ReviewRepository, logger *zap.Logger) *ListService {
	return &ListService{
		listRepo:   listRepo,
		reviewRepo: reviewRepo,
		logger:     logger,
	}
}

// Get returns the list with ratings projected from the review store.
func (s *ListService) Get(ctx context.Context, userID primitive.ObjectID) (*model.Collection, error) {
	list, err := s.listRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byMovie := make(map[int64]*model.Review, len(reviews))
	for i := range reviews {
		byMovie[reviews[i].TmdbID] = &reviews[i]
	}
	for i := range list.Movies {
		if rev, ok := byMovie[list.Movies[i].TmdbID]; ok {
			list.Movies[i].Rating = rev.Rating
			list.Movies[i].Review = rev.Review
		}
	}
	return list, nil
}

// Add appends a watched entry. A payload carrying a rating also records
// the rating, as a detached task: the append is the primary operation
// and never fails because the rating write did.
func (s *ListService) Add(ctx context.Context, userID primitive.ObjectID, raw map[string]interface{}) (*model.MovieRecord, error) {
	record := model.NormalizeMovieRecord(raw, model.ContextWatchedAt, time.Now())
	if record.TmdbID == 0 {
		return nil, fmt.Errorf("tmdbId is required: %w", apperr.ErrValidation)
	}
	if record.Rating < 0 || record.Rating > 10 {
		return nil, fmt.Errorf("rating must be between 0 and 10: %w", apperr.ErrValidation)
	}

	rating, reviewText := record.Rating, record.Review
	stored := record
	stored.Rating, stored.Review = 0, ""

	if err := s.listRepo.AddMovie(ctx, userID, stored); err != nil {
		return nil, err
	}

	if rating > 0 || reviewText != "" {
		review := &model.Review{
			UserID:    userID,
			TmdbID:    record.TmdbID,
			Rating:    rating,
			Review:    reviewText,
			MediaType: record.MediaType,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
			defer cancel()
			if err := s.reviewRepo.Upsert(ctx, review); err != nil {
				s.logger.Error("rating write after list add failed",
					zap.String("user_id", userID.Hex()),
					zap.Int64("tmdb_id", record.TmdbID),
					zap.Error(err),
				)
			}
		}()
	}

	return &record, nil
}

func (s *ListService) Remove(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error {
	return s.listRepo.RemoveMovie(ctx, userID, tmdbID)
}
