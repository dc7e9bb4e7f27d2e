package service

import (
	"context"
	"fmt"

	"CineShelf/internal/apperr"
	"CineShelf/internal/model"
	"CineShelf/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PeopleService manages the sakha graph. The relation is an explicit
// directed follow: adding B to A's sakha never touches B's document.
type PeopleService struct {
	userRepo repo.UserRepository
	notifier *NotificationService
	logger   *zap.Logger
}

func NewPeopleService(userRepo repo.UserRepository, notifier *NotificationService, logger *zap.Logger) *PeopleService {
	return &PeopleService{
		userRepo: userRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *PeopleService) Search(ctx context.Context, query string) ([]model.User, error) {
	if query == "" {
		return nil, fmt.Errorf("search query required: %w", apperr.ErrValidation)
	}
	return s.userRepo.Search(ctx, query, 20)
}

// AddSakha looks up the target by email and appends it to the caller's
// sakha list. The write is idempotent; following yourself is rejected.
func (s *PeopleService) AddSakha(ctx context.Context, userID primitive.ObjectID, email string) (*model.User, error) {
	target, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if target.ID == userID {
		return nil, fmt.Errorf("cannot add yourself: %w", apperr.ErrValidation)
	}

	if err := s.userRepo.AddSakha(ctx, userID, target.ID); err != nil {
		return nil, err
	}

	// Fire-and-forget: the target learns about the new follower, but a
	// failed notification never fails the add.
	s.notifier.NotifyAsync(target.ID, &model.Notification{
		Type:    model.NotificationFriendRequest,
		Title:   "New sakha",
		Message: "Someone added you as a sakha",
		Data:    map[string]interface{}{"userId": userID.Hex()},
	})

	return target, nil
}

func (s *PeopleService) RemoveSakha(ctx context.Context, userID, sakhaID primitive.ObjectID) error {
	return s.userRepo.RemoveSakha(ctx, userID, sakhaID)
}

// ListSakha resolves the caller's sakha ids into user records.
func (s *PeopleService) ListSakha(ctx context.Context, userID primitive.ObjectID) ([]model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Sakha) == 0 {
		return []model.User{}, nil
	}
	return s.userRepo.FindByIDs(ctx, user.Sakha)
}
