package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"CineShelf/internal/middleware"
	"CineShelf/internal/model"
	"CineShelf/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxAvatarSize = 5 << 20 // 5MB

type UserHandler struct {
	userService *service.UserService
	uploadDir   string
}

func NewUserHandler(userService *service.UserService, uploadDir string) *UserHandler {
	return &UserHandler{
		userService: userService,
		uploadDir:   uploadDir,
	}
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req service.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), middleware.UserID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var prefs model.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdatePreferences(c.Request.Context(), middleware.UserID(c), &prefs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadAvatar accepts a multipart image capped at 5MB and stores it
// under the avatars directory with a random filename.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file missing"})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be 5MB or smaller"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be an image"})
		return
	}

	avatarDir := filepath.Join(h.uploadDir, "avatars")
	if err := os.MkdirAll(avatarDir, 0o755); err != nil {
		respondError(c, err)
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(avatarDir, filename)

	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		respondError(c, err)
		return
	}

	publicPath := "/uploads/avatars/" + filename
	if err := h.userService.SetAvatar(c.Request.Context(), middleware.UserID(c), publicPath); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": publicPath})
}
