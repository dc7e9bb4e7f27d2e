package service

import (
	"context"
	"fmt"
	"time"

	"CineShelf/internal/apperr"
	"CineShelf/internal/model"
	"CineShelf/internal/repo"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	authTokenTTL  = 7 * 24 * time.Hour
	resetTokenTTL = time.Hour

	purposeAuth  = "auth"
	purposeReset = "reset"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthService struct {
	userRepo  repo.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(userRepo repo.UserRepository, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Signup creates the account and issues a bearer token. A duplicate
// email is a conflict, whether caught by the pre-check or by the unique
// index when two signups race.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*model.User, string, error) {
	if existing, _ := s.userRepo.FindByEmail(ctx, req.Email); existing != nil {
		return nil, "", fmt.Errorf("email %s: %w", req.Email, apperr.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Password:     string(hashed),
		Sakha:        []primitive.ObjectID{},
		Preferences:  model.DefaultPreferences(),
		CreatedAt:    now,
		LastActiveAt: now,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.ID = id

	token, err := s.signToken(id, purposeAuth, authTokenTTL)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user signed up", zap.String("user_id", id.Hex()))
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", fmt.Errorf("bad credentials: %w", apperr.ErrUnauthorized)
	}

	token, err := s.signToken(user.ID, purposeAuth, authTokenTTL)
	if err != nil {
		return nil, "", err
	}

	// Best effort; a stale activity timestamp never fails a login.
	if err := s.userRepo.SetFields(ctx, user.ID, bson.M{"last_active_at": time.Now()}); err != nil {
		s.logger.Warn("failed to update last active", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}

	return user, token, nil
}

func (s *AuthService) Me(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ForgotPassword issues a short-lived reset token bound to the account.
// The token is returned in the response body instead of being delivered
// out-of-band; there is no mail pipeline behind this deployment.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return s.signToken(user.ID, purposeReset, resetTokenTTL)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.verifyToken(token, purposeReset)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.SetFields(ctx, userID, bson.M{"password": string(hashed)}); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", userID.Hex()))
	return nil
}

// VerifyAuthToken validates a bearer token and returns the subject id.
func (s *AuthService) VerifyAuthToken(token string) (primitive.ObjectID, error) {
	return s.verifyToken(token, purposeAuth)
}

func (s *AuthService) signToken(userID primitive.ObjectID, purpose string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.Hex(),
		"purpose": purpose,
		"exp":     time.Now().Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) verifyToken(tokenStr, purpose string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, apperr.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, apperr.ErrInvalidToken
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return primitive.NilObjectID, apperr.ErrInvalidToken
	}

	hex, _ := claims["user_id"].(string)
	userID, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrInvalidToken
	}
	return userID, nil
}
