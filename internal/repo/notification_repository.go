package repo

import (
	"context"
	"fmt"
	"time"

	"CineShelf/internal/apperr"
	"CineShelf/internal/db"
	"CineShelf/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// recentNotificationLimit bounds the notification feed to the newest
// entries. Older ones stay in the store and still count toward
// MarkAllRead; the feed itself is a recency window.
const recentNotificationLimit = 500

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (primitive.ObjectID, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type notificationRepository struct {
	mongoRepo *db.Repository[model.Notification]
	logger    *zap.Logger
}

func NewNotificationRepository(mongoRepo *db.Repository[model.Notification], logger *zap.Logger) NotificationRepository {
	return &notificationRepository{
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	n.CreatedAt = time.Now()
	result, err := r.mongoRepo.Create(ctx, *n)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create notification: %w", err)
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool) ([]model.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("user_id", userID)
	if unreadOnly {
		filter.Ne("is_read", true)
	}

	notifications, err := r.mongoRepo.FindAll(ctx, filter.Build(),
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(recentNotificationLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.SetFields(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"is_read": true},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("notification %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	_, err := r.mongoRepo.SetFieldsMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"is_read": true},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Delete(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("notification %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if _, err := r.mongoRepo.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.Count(ctx, bson.M{"user_id": userID, "is_read": false})
}
