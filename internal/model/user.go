package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Preferences holds a user's client-facing settings.
type Preferences struct {
	Theme              string   `json:"theme" bson:"theme"`
	Language           string   `json:"language" bson:"language"`
	EmailNotifications bool     `json:"emailNotifications" bson:"email_notifications"`
	PushNotifications  bool     `json:"pushNotifications" bson:"push_notifications"`
	PrivateProfile     bool     `json:"privateProfile" bson:"private_profile"`
	HideWatchlist      bool     `json:"hideWatchlist" bson:"hide_watchlist"`
	FavoriteGenres     []int    `json:"favoriteGenres" bson:"favorite_genres"`
	PreferredLanguages []string `json:"preferredLanguages" bson:"preferred_languages"`
}

// DefaultPreferences is what a fresh account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:              "dark",
		Language:           "en",
		EmailNotifications: true,
		PushNotifications:  true,
	}
}

// User represents a user document in MongoDB
type User struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Username     string               `json:"username" bson:"username"`
	Email        string               `json:"email" bson:"email"`
	Password     string               `json:"-" bson:"password"`
	Avatar       string               `json:"avatar" bson:"avatar"`
	Bio          string               `json:"bio" bson:"bio"`
	Sakha        []primitive.ObjectID `json:"sakha" bson:"sakha"`
	Preferences  Preferences          `json:"preferences" bson:"preferences"`
	IsAdmin      bool                 `json:"isAdmin" bson:"is_admin"`
	IsVerified   bool                 `json:"isVerified" bson:"is_verified"`
	CreatedAt    time.Time            `json:"createdAt" bson:"created_at"`
	LastActiveAt time.Time            `json:"lastActiveAt" bson:"last_active_at"`
}

// HasSakha reports whether id is already in the user's sakha list.
func (u *User) HasSakha(id primitive.ObjectID) bool {
	for _, s := range u.Sakha {
		if s == id {
			return true
		}
	}
	return false
}
