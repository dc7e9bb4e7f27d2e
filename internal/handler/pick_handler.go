package handler

import (
	"net/http"

	"CineShelf/internal/middleware"
	"CineShelf/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PickHandler struct {
	pickService *service.PickService
}

func NewPickHandler(pickService *service.PickService) *PickHandler {
	return &PickHandler{
		pickService: pickService,
	}
}

func pickID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pick id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *PickHandler) List(c *gin.Context) {
	picks, err := h.pickService.List(c.Request.Context(), c.Query("type"), c.Query("featured") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"picks": picks})
}

func (h *PickHandler) Get(c *gin.Context) {
	id, ok := pickID(c)
	if !ok {
		return
	}

	pick, err := h.pickService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pick)
}

func (h *PickHandler) Create(c *gin.Context) {
	var req service.CreatePickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pick, err := h.pickService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pick)
}

func (h *PickHandler) Update(c *gin.Context) {
	id, ok := pickID(c)
	if !ok {
		return
	}

	var req service.UpdatePickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pick, err := h.pickService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pick)
}

func (h *PickHandler) Like(c *gin.Context) {
	id, ok := pickID(c)
	if !ok {
		return
	}

	if err := h.pickService.Like(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "liked"})
}

func (h *PickHandler) Delete(c *gin.Context) {
	id, ok := pickID(c)
	if !ok {
		return
	}

	if err := h.pickService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
