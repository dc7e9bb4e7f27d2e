package service

import (
	"context"
	"testing"

	"CineShelf/internal/apperr"
	"CineShelf/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestPickCreateAndGet(t *testing.T) {
	svc := NewPickService(newFakePickRepo(), zap.NewNop())
	ctx := context.Background()
	creator := primitive.NewObjectID()

	pick, err := svc.Create(ctx, creator, &CreatePickRequest{
		Title:    "Rainy Day Noir",
		Type:     model.PickEditorial,
		Movies:   []string{"603", "550"},
		Featured: true,
	})
	require.NoError(t, err)
	assert.False(t, pick.ID.IsZero())
	assert.Equal(t, creator, pick.CreatedBy)

	loaded, err := svc.Get(ctx, pick.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rainy Day Noir", loaded.Title)
}

func TestPickCreateRejectsUnknownType(t *testing.T) {
	svc := NewPickService(newFakePickRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), &CreatePickRequest{
		Title: "Bad",
		Type:  "trending",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPickListFilters(t *testing.T) {
	svc := NewPickService(newFakePickRepo(), zap.NewNop())
	ctx := context.Background()
	creator := primitive.NewObjectID()

	_, err := svc.Create(ctx, creator, &CreatePickRequest{Title: "A", Type: model.PickEditorial, Featured: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, creator, &CreatePickRequest{Title: "B", Type: model.PickSeasonal})
	require.NoError(t, err)

	all, err := svc.List(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	editorial, err := svc.List(ctx, model.PickEditorial, false)
	require.NoError(t, err)
	assert.Len(t, editorial, 1)

	featured, err := svc.List(ctx, "", true)
	require.NoError(t, err)
	assert.Len(t, featured, 1)

	_, err = svc.List(ctx, "bogus", false)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestPickUpdatePartial(t *testing.T) {
	svc := NewPickService(newFakePickRepo(), zap.NewNop())
	ctx := context.Background()

	pick, err := svc.Create(ctx, primitive.NewObjectID(), &CreatePickRequest{Title: "Original", Type: model.PickCommunity})
	require.NoError(t, err)

	newTitle := "Renamed"
	featured := true
	updated, err := svc.Update(ctx, pick.ID, &UpdatePickRequest{Title: &newTitle, Featured: &featured})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.Featured)
	assert.Equal(t, model.PickCommunity, updated.Type, "type is immutable through update")
}

func TestPickLike(t *testing.T) {
	svc := NewPickService(newFakePickRepo(), zap.NewNop())
	ctx := context.Background()

	pick, err := svc.Create(ctx, primitive.NewObjectID(), &CreatePickRequest{Title: "Likable", Type: model.PickCommunity})
	require.NoError(t, err)

	require.NoError(t, svc.Like(ctx, pick.ID))
	require.NoError(t, svc.Like(ctx, pick.ID))

	loaded, err := svc.Get(ctx, pick.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Likes)

	err = svc.Like(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
