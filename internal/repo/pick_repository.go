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

type PickRepository interface {
	Create(ctx context.Context, pick *model.Pick) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Pick, error)
	Find(ctx context.Context, pickType string, featuredOnly bool) ([]model.Pick, error)
	SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	IncrementLikes(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type pickRepository struct {
	mongoRepo *db.Repository[model.Pick]
	logger    *zap.Logger
}

func NewPickRepository(mongoRepo *db.Repository[model.Pick], logger *zap.Logger) PickRepository {
	return &pickRepository{
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

func (r *pickRepository) Create(ctx context.Context, pick *model.Pick) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now()
	pick.CreatedAt = now
	pick.UpdatedAt = now

	result, err := r.mongoRepo.Create(ctx, *pick)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create pick: %w", err)
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	r.logger.Info("pick created", zap.String("pick_id", id.Hex()), zap.String("title", pick.Title))
	return id, nil
}

func (r *pickRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Pick, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	pick, err := r.mongoRepo.FindOne(ctx, bson.M{"_id": id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("pick %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return pick, err
}

func (r *pickRepository) Find(ctx context.Context, pickType string, featuredOnly bool) ([]model.Pick, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter()
	if pickType != "" {
		filter.Eq("type", pickType)
	}
	if featuredOnly {
		filter.Eq("featured", true)
	}

	result, err := r.mongoRepo.FindWithPagination(ctx, filter.Build(), db.PaginationParams{
		Page: 1, PageSize: 100, SortBy: "created_at", SortDesc: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load picks: %w", err)
	}
	return result.Data, nil
}

func (r *pickRepository) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.mongoRepo.SetFields(ctx, bson.M{"_id": id}, fields)
	if err != nil {
		return fmt.Errorf("failed to update pick: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pick %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (r *pickRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to like pick: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pick %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (r *pickRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Delete(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pick: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("pick %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (r *pickRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return r.mongoRepo.Count(ctx, db.Empty())
}
