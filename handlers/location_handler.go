package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hunt-wet/hunt-intel-backend/pkg/geocode"
)

type LocationHandler struct {
	geocoder geocode.ClientInterface
}

func NewLocationHandler(geocoder geocode.ClientInterface) *LocationHandler {
	return &LocationHandler{geocoder: geocoder}
}

// ResolveZip handles GET /locations/zip/:zip.
func (h *LocationHandler) ResolveZip(c *gin.Context) {
	loc, err := h.geocoder.LocationFromZip(c.Request.Context(), c.Param("zip"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, loc)
}
