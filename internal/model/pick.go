package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pick types.
const (
	PickEditorial = "editorial"
	PickCommunity = "community"
	PickSeasonal  = "seasonal"
)

// Pick represents a curated content document in MongoDB
type Pick struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Type        string             `json:"type" bson:"type"`
	Image       string             `json:"image" bson:"image"`
	Movies      []string           `json:"movies" bson:"movies"`
	Featured    bool               `json:"featured" bson:"featured"`
	CreatedBy   primitive.ObjectID `json:"createdBy" bson:"created_by"`
	Likes       int                `json:"likes" bson:"likes"`
	Tags        []string           `json:"tags" bson:"tags"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}
