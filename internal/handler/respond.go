package handler

import (
	"errors"
	"net/http"

	"CineShelf/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps a service error onto an HTTP status with a short
// JSON message. Anything unrecognized becomes a generic 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperr.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, apperr.ErrUnauthorized), errors.Is(err, apperr.ErrInvalidToken):
		status, message = http.StatusUnauthorized, err.Error()
	case errors.Is(err, apperr.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrUpstream):
		status, message = http.StatusBadGateway, err.Error()
	}

	c.JSON(status, gin.H{"error": message})
}

// respondBindError turns gin binding failures into a readable message.
func respondBindError(c *gin.Context, err error) {
	message := "invalid request format"
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		e := ve[0]
		switch e.Tag() {
		case "required":
			message = e.Field() + " is required"
		case "email":
			message = "please provide a valid email address"
		case "min":
			message = e.Field() + " must be at least " + e.Param() + " characters long"
		default:
			message = "invalid value for " + e.Field()
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
