package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationFriendRequest   = "friend_request"
	NotificationWatchlistUpdate = "watchlist_update"
	NotificationReviewLike      = "review_like"
	NotificationListShare       = "list_share"
	NotificationSystem          = "system"
)

// Notification represents a notification document in MongoDB
type Notification struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID     `json:"userId" bson:"user_id"`
	Type      string                 `json:"type" bson:"type"`
	Title     string                 `json:"title" bson:"title"`
	Message   string                 `json:"message" bson:"message"`
	Data      map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	IsRead    bool                   `json:"isRead" bson:"is_read"`
	Link      string                 `json:"link,omitempty" bson:"link,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"created_at"`
}

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationFriendRequest, NotificationWatchlistUpdate,
		NotificationReviewLike, NotificationListShare, NotificationSystem:
		return true
	}
	return false
}
