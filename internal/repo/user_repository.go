package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CineShelf/internal/apperr"
	"CineShelf/internal/db"
	"CineShelf/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultReadTimeout  = 10 * time.Second
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error)
	Search(ctx context.Context, query string, limit int64) ([]model.User, error)
	List(ctx context.Context, params db.PaginationParams) (*db.PaginatedResult[model.User], error)
	SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	AddSakha(ctx context.Context, userID, sakhaID primitive.ObjectID) error
	RemoveSakha(ctx context.Context, userID, sakhaID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	mongoRepo *db.Repository[model.User]
	logger    *zap.Logger
}

func NewUserRepository(mongoRepo *db.Repository[model.User], logger *zap.Logger) UserRepository {
	return &userRepository{
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Create(ctx, *user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, fmt.Errorf("email %s: %w", user.Email, apperr.ErrConflict)
		}
		return primitive.NilObjectID, fmt.Errorf("failed to create user: %w", err)
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	r.logger.Info("user created", zap.String("user_id", id.Hex()))
	return id, nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOne(ctx, bson.M{"_id": id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return user, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOne(ctx, bson.M{"email": email})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
	}
	return user, err
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindAll(ctx, db.NewFilter().In("_id", ids).Build())
}

func (r *userRepository) Search(ctx context.Context, query string, limit int64) ([]model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Or(
		db.NewFilter().Contains("username", query).Build(),
		db.NewFilter().Contains("name", query).Build(),
		db.NewFilter().Contains("email", query).Build(),
	).Build()

	result, err := r.mongoRepo.FindWithPagination(ctx, filter, db.PaginationParams{
		Page: 1, PageSize: limit, SortBy: "username",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return result.Data, nil
}

func (r *userRepository) List(ctx context.Context, params db.PaginationParams) (*db.PaginatedResult[model.User], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.FindWithPagination(ctx, db.Empty(), params)
}

func (r *userRepository) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.SetFields(ctx, bson.M{"_id": id}, fields)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return nil
}

// AddSakha appends sakhaID to the caller's sakha list. $addToSet keeps
// the operation idempotent without a read-modify-write cycle.
func (r *userRepository) AddSakha(ctx context.Context, userID, sakhaID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"sakha": sakhaID}},
	)
	if err != nil {
		return fmt.Errorf("failed to add sakha: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (r *userRepository) RemoveSakha(ctx context.Context, userID, sakhaID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"sakha": sakhaID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove sakha: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Delete(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
	}

	r.logger.Info("user deleted", zap.String("user_id", id.Hex()))
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.Count(ctx, db.Empty())
}
