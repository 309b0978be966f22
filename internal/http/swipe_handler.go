package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swapwise/internal/domain"
	"swapwise/internal/service"
)

// matchView es un match visto desde uno de sus participantes.
type matchView struct {
	ID          string    `json:"id"`
	OtherUserID string    `json:"other_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func newMatchViews(userID string, matches []domain.Match) []matchView {
	views := make([]matchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, matchView{ID: m.ID, OtherUserID: m.Other(userID), CreatedAt: m.CreatedAt})
	}
	return views
}

// SwipeHandler registra likes y lista matches.
type SwipeHandler struct {
	logger   *zap.Logger
	swipeSvc *service.SwipeService
}

func NewSwipeHandler(logger *zap.Logger, swipeSvc *service.SwipeService) *SwipeHandler {
	return &SwipeHandler{logger: logger, swipeSvc: swipeSvc}
}

// Like maneja POST /likes.
func (h *SwipeHandler) Like(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		ToUserID string `json:"to_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid like request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.swipeSvc.Like(c.Request.Context(), userID, req.ToUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfLike):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot like yourself"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many likes, slow down"})
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		default:
			h.logger.Error("like failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register like"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// Matches maneja GET /matches.
func (h *SwipeHandler) Matches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	matches, err := h.swipeSvc.Matches(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list matches failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list matches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": newMatchViews(userID, matches)})
}
