package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"CineShelf/internal/model"
	"CineShelf/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ExportBundle is the full JSON dump of one user's data.
type ExportBundle struct {
	ExportedAt time.Time           `json:"exportedAt"`
	Profile    *model.User         `json:"profile"`
	Watchlist  []model.MovieRecord `json:"watchlist"`
	List       []model.MovieRecord `json:"list"`
	Reviews    []model.Review      `json:"reviews"`
}

type ExportService struct {
	userRepo      repo.UserRepository
	watchlistRepo repo.CollectionRepository
	listService   *ListService
	reviewRepo    repo.ReviewRepository
	logger        *zap.Logger
}

func NewExportService(userRepo repo.UserRepository, watchlistRepo repo.CollectionRepository, listService *ListService, reviewRepo repo.ReviewRepository, logger *zap.Logger) *ExportService {
	return &ExportService{
		userRepo:      userRepo,
		watchlistRepo: watchlistRepo,
		listService:   listService,
		reviewRepo:    reviewRepo,
		logger:        logger,
	}
}

// BuildJSON collects everything the user owns into one bundle.
func (s *ExportService) BuildJSON(ctx context.Context, userID primitive.ObjectID) (*ExportBundle, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	watchlist, err := s.watchlistRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	list, err := s.listService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ExportBundle{
		ExportedAt: time.Now(),
		Profile:    user,
		Watchlist:  watchlist.Movies,
		List:       list.Movies,
		Reviews:    reviews,
	}, nil
}

// BuildWatchlistCSV renders the watchlist as CSV bytes.
func (s *ExportService) BuildWatchlistCSV(ctx context.Context, userID primitive.ObjectID) ([]byte, error) {
	watchlist, err := s.watchlistRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordsToCSV(watchlist.Movies, "addedAt")
}

// BuildListCSV renders the watched list, ratings included, as CSV bytes.
func (s *ExportService) BuildListCSV(ctx context.Context, userID primitive.ObjectID) ([]byte, error) {
	list, err := s.listService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordsToCSV(list.Movies, "watchedAt")
}

func recordsToCSV(records []model.MovieRecord, timestampColumn string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"tmdbId", "title", "mediaType", "releaseDate", "voteAverage", "rating", "review", timestampColumn}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range records {
		ts := ""
		switch timestampColumn {
		case "addedAt":
			if rec.AddedAt != nil {
				ts = rec.AddedAt.Format(time.RFC3339)
			}
		case "watchedAt":
			if rec.WatchedAt != nil {
				ts = rec.WatchedAt.Format(time.RFC3339)
			}
		}

		row := []string{
			strconv.FormatInt(rec.TmdbID, 10),
			rec.Title,
			rec.MediaType,
			rec.ReleaseDate,
			strconv.FormatFloat(rec.VoteAverage, 'f', 1, 64),
			strconv.FormatFloat(rec.Rating, 'f', 1, 64),
			rec.Review,
			ts,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
