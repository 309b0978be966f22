package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swapwise/internal/service"
)

const dayLayout = "2006-01-02"

// MeetingHandler agenda reuniones y arma la agenda diaria.
type MeetingHandler struct {
	logger     *zap.Logger
	meetingSvc *service.MeetingService
}

func NewMeetingHandler(logger *zap.Logger, meetingSvc *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{logger: logger, meetingSvc: meetingSvc}
}

// Create maneja POST /meetings.
func (h *MeetingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.MeetingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid meeting request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	meeting, err := h.meetingSvc.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.respondError(c, userID, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meeting": meeting})
}

// Update maneja PUT /meetings/:id.
func (h *MeetingHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.MeetingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid meeting request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	meeting, err := h.meetingSvc.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.respondError(c, userID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

// ListDay maneja GET /meetings?day=YYYY-MM-DD&tz=Area/City. Sin day usa hoy.
func (h *MeetingHandler) ListDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tz"})
			return
		}
		loc = l
	}
	day := time.Now().In(loc)
	if raw := c.Query("day"); raw != "" {
		d, err := time.ParseInLocation(dayLayout, raw, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "day must be YYYY-MM-DD"})
			return
		}
		day = d
	}

	meetings, err := h.meetingSvc.ListDay(c.Request.Context(), userID, day, loc)
	if err != nil {
		h.logger.Error("list meetings failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list meetings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": day.Format(dayLayout), "meetings": meetings})
}

func (h *MeetingHandler) respondError(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMeeting):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotMatched):
		c.JSON(http.StatusForbidden, gin.H{"error": "attendees must be your matches"})
	case errors.Is(err, service.ErrMeetingForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the organizer can edit this meeting"})
	case errors.Is(err, service.ErrMeetingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	default:
		h.logger.Error("meeting failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save meeting"})
	}
}

