package service

import (
	"context"
	"fmt"

	"CineShelf/internal/apperr"
	"CineShelf/internal/model"
	"CineShelf/internal/repo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CreatePickRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type" binding:"required"`
	Image       string   `json:"image"`
	Movies      []string `json:"movies"`
	Featured    bool     `json:"featured"`
	Tags        []string `json:"tags"`
}

type UpdatePickRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Movies      []string `json:"movies"`
	Featured    *bool    `json:"featured"`
	Tags        []string `json:"tags"`
}

// PickService serves curated content. All reads hit the store; there is
// no in-memory sample set standing in for persisted picks.
type PickService struct {
	pickRepo repo.PickRepository
	logger   *zap.Logger
}

func NewPickService(pickRepo repo.PickRepository, logger *zap.Logger) *PickService {
	return &PickService{
		pickRepo: pickRepo,
		logger:   logger,
	}
}

func (s *PickService) List(ctx context.Context, pickType string, featuredOnly bool) ([]model.Pick, error) {
	if pickType != "" && pickType != model.PickEditorial && pickType != model.PickCommunity && pickType != model.PickSeasonal {
		return nil, fmt.Errorf("unknown pick type %q: %w", pickType, apperr.ErrValidation)
	}
	return s.pickRepo.Find(ctx, pickType, featuredOnly)
}

func (s *PickService) Get(ctx context.Context, id primitive.ObjectID) (*model.Pick, error) {
	return s.pickRepo.FindByID(ctx, id)
}

func (s *PickService) Create(ctx context.Context, creator primitive.ObjectID, req *CreatePickRequest) (*model.Pick, error) {
	if req.Type != model.PickEditorial && req.Type != model.PickCommunity && req.Type != model.PickSeasonal {
		return nil, fmt.Errorf("unknown pick type %q: %w", req.Type, apperr.ErrValidation)
	}

	pick := &model.Pick{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Image:       req.Image,
		Movies:      req.Movies,
		Featured:    req.Featured,
		CreatedBy:   creator,
		Tags:        req.Tags,
	}

	id, err := s.pickRepo.Create(ctx, pick)
	if err != nil {
		return nil, err
	}
	pick.ID = id
	return pick, nil
}

func (s *PickService) Update(ctx context.Context, id primitive.ObjectID, req *UpdatePickRequest) (*model.Pick, error) {
	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Movies != nil {
		fields["movies"] = req.Movies
	}
	if req.Featured != nil {
		fields["featured"] = *req.Featured
	}
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}

	if len(fields) > 0 {
		if err := s.pickRepo.SetFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.pickRepo.FindByID(ctx, id)
}

func (s *PickService) Like(ctx context.Context, id primitive.ObjectID) error {
	return s.pickRepo.IncrementLikes(ctx, id)
}

func (s *PickService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.pickRepo.Delete(ctx, id)
}
