package service

import (
	"context"
	"fmt"
	"time"

	"CineShelf/internal/apperr"
	"CineShelf/internal/hub"
	"CineShelf/internal/model"
	"CineShelf/internal/repo"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const notifyTimeout = 5 * time.Second

type NotificationService struct {
	notifRepo repo.NotificationRepository
	userRepo  repo.UserRepository
	hub       *hub.Hub
	logger    *zap.Logger
}

func NewNotificationService(notifRepo repo.NotificationRepository, userRepo repo.UserRepository, h *hub.Hub, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		hub:       h,
		logger:    logger,
	}
}

// Notify persists a notification for the user and pushes it to any open
// stream connections. Users who disabled push notifications still get
// the stored record but no live push.
func (s *NotificationService) Notify(ctx context.Context, userID primitive.ObjectID, n *model.Notification) error {
	if !model.ValidNotificationType(n.Type) {
		return fmt.Errorf("notification type %q: %w", n.Type, apperr.ErrValidation)
	}

	n.UserID = userID
	id, err := s.notifRepo.Create(ctx, n)
	if err != nil {
		return err
	}
	n.ID = id

	user, err := s.userRepo.FindByID(ctx, userID)
	if err == nil && user.Preferences.PushNotifications {
		s.hub.Push(userID.Hex(), n)
	}
	return nil
}

// NotifyAsync runs Notify on its own goroutine with its own deadline.
// Callers use it for side-effect notifications that must never fail or
// slow down the primary operation; failures are logged, not surfaced.
func (s *NotificationService) NotifyAsync(userID primitive.ObjectID, n *model.Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.Notify(ctx, userID, n); err != nil {
			s.logger.Error("best-effort notification failed",
				zap.String("user_id", userID.Hex()),
				zap.String("type", n.Type),
				zap.Error(err),
			)
		}
	}()
}

func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID, unreadOnly bool) ([]model.Notification, error) {
	return s.notifRepo.FindByUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.notifRepo.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.notifRepo.Delete(ctx, userID, id)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}
