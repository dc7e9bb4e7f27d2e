package service

import (
	"context"
	"time"

	"CineShelf/internal/db"
	"CineShelf/internal/model"
	"CineShelf/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SystemStats is the admin dashboard aggregate.
type SystemStats struct {
	Users         int64     `json:"users"`
	Reviews       int64     `json:"reviews"`
	WatchlistDocs int64     `json:"watchlistDocs"`
	ListDocs      int64     `json:"listDocs"`
	Picks         int64     `json:"picks"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

type AdminService struct {
	userRepo      repo.UserRepository
	watchlistRepo repo.CollectionRepository
	listRepo      repo.CollectionRepository
	reviewRepo    repo.ReviewRepository
	notifRepo     repo.NotificationRepository
	pickRepo      repo.PickRepository
	logger        *zap.Logger
}

func NewAdminService(
	userRepo repo.UserRepository,
	watchlistRepo repo.CollectionRepository,
	listRepo repo.CollectionRepository,
	reviewRepo repo.ReviewRepository,
	notifRepo repo.NotificationRepository,
	pickRepo repo.PickRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		userRepo:      userRepo,
		watchlistRepo: watchlistRepo,
		listRepo:      listRepo,
		reviewRepo:    reviewRepo,
		notifRepo:     notifRepo,
		pickRepo:      pickRepo,
		logger:        logger,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, params db.PaginationParams) (*db.PaginatedResult[model.User], error) {
	return s.userRepo.List(ctx, params)
}

// DeleteUser removes the account and everything it owns. The user
// document goes first so the account stops resolving immediately; the
// owned documents follow, each logged on failure so a partial cascade
// is visible in the logs.
func (s *AdminService) DeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	cascade := []struct {
		name string
		fn   func(context.Context, primitive.ObjectID) error
	}{
		{"watchlist", s.watchlistRepo.DeleteByUser},
		{"list", s.listRepo.DeleteByUser},
		{"reviews", s.reviewRepo.DeleteByUser},
		{"notifications", s.notifRepo.DeleteByUser},
	}
	for _, step := range cascade {
		if err := step.fn(ctx, userID); err != nil {
			s.logger.Error("cascade delete failed",
				zap.String("user_id", userID.Hex()),
				zap.String("target", step.name),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("user account deleted with cascade", zap.String("user_id", userID.Hex()))
	return nil
}

func (s *AdminService) SetVerified(ctx context.Context, userID primitive.ObjectID, verified bool) error {
	return s.userRepo.SetFields(ctx, userID, bson.M{"is_verified": verified})
}

func (s *AdminService) SetAdmin(ctx context.Context, userID primitive.ObjectID, isAdmin bool) error {
	return s.userRepo.SetFields(ctx, userID, bson.M{"is_admin": isAdmin})
}

func (s *AdminService) Stats(ctx context.Context) (*SystemStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	watchlists, err := s.watchlistRepo.CountEntries(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := s.listRepo.CountEntries(ctx)
	if err != nil {
		return nil, err
	}
	picks, err := s.pickRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &SystemStats{
		Users:         users,
		Reviews:       reviews,
		WatchlistDocs: watchlists,
		ListDocs:      lists,
		Picks:         picks,
		GeneratedAt:   time.Now(),
	}, nil
}
