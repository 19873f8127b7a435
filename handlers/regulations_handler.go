package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hunt-wet/hunt-intel-backend/types"
)

// RegulationsProvider is the regulations surface the handler depends on.
type RegulationsProvider interface {
	GetStateRegulations(ctx context.Context, state string) (*types.StateRegulations, error)
}

type RegulationsHandler struct {
	regulations RegulationsProvider
}

func NewRegulationsHandler(regulations RegulationsProvider) *RegulationsHandler {
	return &RegulationsHandler{regulations: regulations}
}

// GetByState handles GET /regulations/:state.
func (h *RegulationsHandler) GetByState(c *gin.Context) {
	regs, err := h.regulations.GetStateRegulations(c.Request.Context(), c.Param("state"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, regs)
}
