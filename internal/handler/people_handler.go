package handler

import (
	"net/http"

	"CineShelf/internal/middleware"
	"CineShelf/internal/model"
	"CineShelf/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PeopleHandler struct {
	peopleService *service.PeopleService
}

func NewPeopleHandler(peopleService *service.PeopleService) *PeopleHandler {
	return &PeopleHandler{
		peopleService: peopleService,
	}
}

func publicProfiles(users []model.User) []gin.H {
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":         u.ID,
			"name":       u.Name,
			"username":   u.Username,
			"email":      u.Email,
			"avatar":     u.Avatar,
			"isVerified": u.IsVerified,
		})
	}
	return out
}

func (h *PeopleHandler) Search(c *gin.Context) {
	users, err := h.peopleService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": publicProfiles(users)})
}

func (h *PeopleHandler) ListSakha(c *gin.Context) {
	users, err := h.peopleService.ListSakha(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sakha": publicProfiles(users)})
}

func (h *PeopleHandler) AddSakha(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	target, err := h.peopleService.AddSakha(c.Request.Context(), middleware.UserID(c), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sakha": publicProfiles([]model.User{*target})[0]})
}

func (h *PeopleHandler) RemoveSakha(c *gin.Context) {
	sakhaID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.peopleService.RemoveSakha(c.Request.Context(), middleware.UserID(c), sakhaID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}
