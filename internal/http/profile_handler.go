package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swapwise/internal/service"
)

// ProfileHandler expone el perfil de matching del usuario.
type ProfileHandler struct {
	logger      *zap.Logger
	profileServ *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profileServ *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{logger: logger, profileServ: profileServ}
}

// UpsertOwn maneja PUT /profile.
func (h *ProfileHandler) UpsertOwn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profileServ.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile"})
			return
		}
		h.logger.Error("upsert profile failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetOwn maneja GET /profile.
func (h *ProfileHandler) GetOwn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respondProfile(c, userID)
}

// GetByID maneja GET /profiles/:id.
func (h *ProfileHandler) GetByID(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	h.respondProfile(c, c.Param("id"))
}

func (h *ProfileHandler) respondProfile(c *gin.Context, id string) {
	profile, err := h.profileServ.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.String("profile_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
