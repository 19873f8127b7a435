package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hunt-wet/hunt-intel-backend/errors"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

// HuntLogger is the hunt surface the handler depends on. Satisfied by the
// hunt service.
type HuntLogger interface {
	LogHunt(ctx context.Context, input types.HuntLogInput) (*types.HuntLog, error)
	GetUserHunts(ctx context.Context, userID, species string, limit int) ([]types.HuntLog, error)
	GetUserStats(ctx context.Context, userID, species string) (types.HuntStats, error)
}

type HuntHandler struct {
	hunts HuntLogger
}

func NewHuntHandler(hunts HuntLogger) *HuntHandler {
	return &HuntHandler{hunts: hunts}
}

// LogHunt handles POST /hunts. The environmental snapshot is captured
// server-side from the hunt date and location.
func (h *HuntHandler) LogHunt(c *gin.Context) {
	var input types.HuntLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid hunt log", err.Error()))
		return
	}

	entry, err := h.hunts.LogHunt(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListHunts handles GET /hunts?user_id=..&species=..&limit=..
func (h *HuntHandler) ListHunts(c *gin.Context) {
	userID := c.Query("user_id")
	species := c.Query("species")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			_ = c.Error(errors.ValidationFailed("Invalid request", "limit must be an integer"))
			return
		}
		limit = parsed
	}

	hunts, err := h.hunts.GetUserHunts(c.Request.Context(), userID, species, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hunts": hunts,
		"count": len(hunts),
	})
}

// GetStats handles GET /hunts/stats?user_id=..&species=..
func (h *HuntHandler) GetStats(c *gin.Context) {
	stats, err := h.hunts.GetUserStats(c.Request.Context(), c.Query("user_id"), c.Query("species"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
