package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swapwise/internal/service"
)

const (
	defaultRecommendationLimit = 20
	maxRecommendationLimit     = 100
)

// RecommendationHandler sirve el mazo de candidatos.
type RecommendationHandler struct {
	logger *zap.Logger
	recSvc *service.RecommendationService
}

func NewRecommendationHandler(logger *zap.Logger, recSvc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{logger: logger, recSvc: recSvc}
}

// List maneja GET /recommendations?limit=N.
func (h *RecommendationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := defaultRecommendationLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, maxRecommendationLimit)
	}

	recs, err := h.recSvc.Recommend(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "create your profile first"})
			return
		}
		h.logger.Error("recommend failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
