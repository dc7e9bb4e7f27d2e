package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"CineShelf/internal/apperr"
	"CineShelf/internal/db"
	"CineShelf/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository doubles. They mirror the error contracts of the
// Mongo-backed implementations (conflict on duplicates, not-found on
// missing documents) so the services can be tested without a database.
// All of them are safe for concurrent use because several services run
// detached side-effect goroutines.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, fmt.Errorf("email %s: %w", user.Email, apperr.ErrConflict)
		}
	}
	id := primitive.NewObjectID()
	clone := *user
	clone.ID = id
	f.users[id] = &clone
	return id, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Search(ctx context.Context, query string, limit int64) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.User
	for _, u := range f.users {
		if strings.Contains(u.Username, query) || strings.Contains(u.Name, query) || strings.Contains(u.Email, query) {
			out = append(out, *u)
		}
		if int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(ctx context.Context, params db.PaginationParams) (*db.PaginatedResult[model.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return &db.PaginatedResult[model.User]{
		Data:     out,
		Total:    int64(len(out)),
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func (f *fakeUserRepo) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "username":
			u.Username = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "avatar":
			u.Avatar = v.(string)
		case "password":
			u.Password = v.(string)
		case "is_verified":
			u.IsVerified = v.(bool)
		case "is_admin":
			u.IsAdmin = v.(bool)
		case "preferences":
			switch p := v.(type) {
			case model.Preferences:
				u.Preferences = p
			case *model.Preferences:
				u.Preferences = *p
			}
		case "last_active_at":
			u.LastActiveAt = v.(time.Time)
		}
	}
	return nil
}

func (f *fakeUserRepo) AddSakha(ctx context.Context, userID, sakhaID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID.Hex(), apperr.ErrNotFound)
	}
	if !u.HasSakha(sakhaID) {
		u.Sakha = append(u.Sakha, sakhaID)
	}
	return nil
}

func (f *fakeUserRepo) RemoveSakha(ctx context.Context, userID, sakhaID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID.Hex(), apperr.ErrNotFound)
	}
	kept := u.Sakha[:0]
	for _, s := range u.Sakha {
		if s != sakhaID {
			kept = append(kept, s)
		}
	}
	u.Sakha = kept
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeCollectionRepo struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]*model.Collection
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{docs: make(map[primitive.ObjectID]*model.Collection)}
}

func (f *fakeCollectionRepo) Get(ctx context.Context, userID primitive.ObjectID) (*model.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[userID]
	if !ok {
		return &model.Collection{UserID: userID, Movies: []model.MovieRecord{}}, nil
	}
	clone := *doc
	clone.Movies = append([]model.MovieRecord(nil), doc.Movies...)
	return &clone, nil
}

func (f *fakeCollectionRepo) AddMovie(ctx context.Context, userID primitive.ObjectID, record model.MovieRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[userID]
	if !ok {
		now := time.Now()
		f.docs[userID] = &model.Collection{
			UserID:    userID,
			Movies:    []model.MovieRecord{record},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	}
	for _, m := range doc.Movies {
		if m.TmdbID == record.TmdbID {
			return fmt.Errorf("tmdbId %d: %w", record.TmdbID, apperr.ErrConflict)
		}
	}
	doc.Movies = append(doc.Movies, record)
	doc.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCollectionRepo) RemoveMovie(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[userID]
	if !ok {
		return fmt.Errorf("collection for user %s: %w", userID.Hex(), apperr.ErrNotFound)
	}
	kept := doc.Movies[:0]
	for _, m := range doc.Movies {
		if m.TmdbID != tmdbID {
			kept = append(kept, m)
		}
	}
	doc.Movies = kept
	doc.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCollectionRepo) SetEntryFields(ctx context.Context, userID primitive.ObjectID, tmdbID int64, fields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, ok := f.docs[userID]
	if !ok {
		return fmt.Errorf("collection for user %s: %w", userID.Hex(), apperr.ErrNotFound)
	}
	for i := range doc.Movies {
		if doc.Movies[i].TmdbID == tmdbID {
			return nil
		}
	}
	return fmt.Errorf("tmdbId %d: %w", tmdbID, apperr.ErrNotFound)
}

func (f *fakeCollectionRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, userID)
	return nil
}

func (f *fakeCollectionRepo) CountEntries(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.docs)), nil
}

type reviewKey struct {
	user primitive.ObjectID
	tmdb int64
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[reviewKey]*model.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[reviewKey]*model.Review)}
}

func (f *fakeReviewRepo) Upsert(ctx context.Context, review *model.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := reviewKey{review.UserID, review.TmdbID}
	now := time.Now()
	if existing, ok := f.reviews[key]; ok {
		existing.Rating = review.Rating
		existing.Review = review.Review
		existing.MediaType = review.MediaType
		existing.UpdatedAt = now
		return nil
	}
	clone := *review
	clone.ID = primitive.NewObjectID()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	f.reviews[key] = &clone
	return nil
}

func (f *fakeReviewRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Review
	for key, r := range f.reviews {
		if key.user == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByUserAndMovie(ctx context.Context, userID primitive.ObjectID, tmdbID int64) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.reviews[reviewKey{userID, tmdbID}]
	if !ok {
		return nil, fmt.Errorf("review for tmdbId %d: %w", tmdbID, apperr.ErrNotFound)
	}
	clone := *r
	return &clone, nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, userID primitive.ObjectID, tmdbID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := reviewKey{userID, tmdbID}
	if _, ok := f.reviews[key]; !ok {
		return fmt.Errorf("review for tmdbId %d: %w", tmdbID, apperr.ErrNotFound)
	}
	delete(f.reviews, key)
	return nil
}

func (f *fakeReviewRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key := range f.reviews {
		if key.user == userID {
			delete(f.reviews, key)
		}
	}
	return nil
}

func (f *fakeReviewRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.reviews)), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	clone := *n
	clone.ID = primitive.NewObjectID()
	clone.CreatedAt = time.Now()
	f.notifications = append(f.notifications, clone)
	return clone.ID, nil
}

func (f *fakeNotificationRepo) FindByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, userID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id.Hex(), apperr.ErrNotFound)
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.notifications {
		if f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id.Hex(), apperr.ErrNotFound)
}

func (f *fakeNotificationRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakePickRepo struct {
	mu    sync.Mutex
	picks map[primitive.ObjectID]*model.Pick
}

func newFakePickRepo() *fakePickRepo {
	return &fakePickRepo{picks: make(map[primitive.ObjectID]*model.Pick)}
}

func (f *fakePickRepo) Create(ctx context.Context, pick *model.Pick) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := primitive.NewObjectID()
	clone := *pick
	clone.ID = id
	now := time.Now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	f.picks[id] = &clone
	return id, nil
}

func (f *fakePickRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Pick, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.picks[id]
	if !ok {
		return nil, fmt.Errorf("pick %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	clone := *p
	return &clone, nil
}

func (f *fakePickRepo) Find(ctx context.Context, pickType string, featuredOnly bool) ([]model.Pick, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Pick
	for _, p := range f.picks {
		if pickType != "" && p.Type != pickType {
			continue
		}
		if featuredOnly && !p.Featured {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePickRepo) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.picks[id]
	if !ok {
		return fmt.Errorf("pick %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	for k, v := range fields {
		switch k {
		case "title":
			p.Title = v.(string)
		case "description":
			p.Description = v.(string)
		case "image":
			p.Image = v.(string)
		case "movies":
			p.Movies = v.([]string)
		case "featured":
			p.Featured = v.(bool)
		case "tags":
			p.Tags = v.([]string)
		}
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakePickRepo) IncrementLikes(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.picks[id]
	if !ok {
		return fmt.Errorf("pick %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	p.Likes++
	return nil
}

func (f *fakePickRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.picks[id]; !ok {
		return fmt.Errorf("pick %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	delete(f.picks, id)
	return nil
}

func (f *fakePickRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.picks)), nil
}
