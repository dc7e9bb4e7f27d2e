package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is a per-user singleton document holding an ordered list of
// movie records. The same shape backs both the watchlist and the watched
// list; they live in separate MongoDB collections. Entry order is display
// order and tmdb_id is unique within one document.
type Collection struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	Movies    []MovieRecord      `json:"movies" bson:"movies"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
