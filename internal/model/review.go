package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is the canonical rating record, one per (user, tmdbId).
// List entries project their rating/review fields from here.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	TmdbID    int64              `json:"tmdbId" bson:"tmdb_id"`
	Rating    float64            `json:"rating" bson:"rating"`
	Review    string             `json:"review" bson:"review"`
	MediaType string             `json:"mediaType" bson:"media_type"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
