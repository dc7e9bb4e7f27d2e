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
	"golang.org/x/crypto/bcrypt"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type UserService struct {
	userRepo repo.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repo.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpdateProfile overwrites only the fields present in the request.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req *UpdateProfileRequest) (*model.User, error) {
	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}

	if len(fields) > 0 {
		if err := s.userRepo.SetFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.userRepo.FindByID(ctx, userID)
}

// UpdatePassword verifies the current password before rehashing the new one.
func (s *UserService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, req *UpdatePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("bad credentials: %w", apperr.ErrUnauthorized)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.SetFields(ctx, userID, bson.M{"password": string(hashed)}); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID.Hex()))
	return nil
}

// UpdatePreferences replaces the whole preferences sub-document.
func (s *UserService) UpdatePreferences(ctx context.Context, userID primitive.ObjectID, prefs *model.Preferences) (*model.User, error) {
	if err := s.userRepo.SetFields(ctx, userID, bson.M{"preferences": prefs}); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}

// SetAvatar records the stored avatar path on the user document.
func (s *UserService) SetAvatar(ctx context.Context, userID primitive.ObjectID, path string) error {
	return s.userRepo.SetFields(ctx, userID, bson.M{"avatar": path})
}
