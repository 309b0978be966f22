package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swapwise/internal/service"
)

// RatingHandler recibe calificaciones entre usuarios con match.
type RatingHandler struct {
	logger    *zap.Logger
	ratingSvc *service.RatingService
}

func NewRatingHandler(logger *zap.Logger, ratingSvc *service.RatingService) *RatingHandler {
	return &RatingHandler{logger: logger, ratingSvc: ratingSvc}
}

// Rate maneja POST /ratings.
func (h *RatingHandler) Rate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		ToUserID string  `json:"to_user_id" binding:"required"`
		Score    float64 `json:"score" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid rating request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	avg, err := h.ratingSvc.Rate(c.Request.Context(), userID, req.ToUserID, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot rate yourself"})
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotMatched):
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only rate your matches"})
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		default:
			h.logger.Error("rating failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save rating"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": req.ToUserID, "rating": avg})
}
