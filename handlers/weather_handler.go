package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hunt-wet/hunt-intel-backend/errors"
	weatherservice "github.com/hunt-wet/hunt-intel-backend/models/weather/service"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

// WeatherQueryService is the weather surface the handler depends on.
// Satisfied by the weather history service.
type WeatherQueryService interface {
	FindSimilarDates(ctx context.Context, coords types.Coordinates, r types.DateRange, target types.TargetConditions) ([]types.HistoricalMatch, error)
	GetTodayConditions(ctx context.Context, coords types.Coordinates) (*weatherservice.TodayConditions, error)
}

type WeatherHandler struct {
	weather WeatherQueryService
}

func NewWeatherHandler(weather WeatherQueryService) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// MatchRequest is the pattern-match query body. Coordinates are pointers so
// 0.0 (equator, prime meridian) binds as present rather than missing.
type MatchRequest struct {
	Latitude   *float64               `json:"latitude" binding:"required"`
	Longitude  *float64               `json:"longitude" binding:"required"`
	StartDate  types.Date             `json:"start_date" binding:"required"`
	EndDate    types.Date             `json:"end_date" binding:"required"`
	Conditions types.TargetConditions `json:"target_conditions"`
}

// FindMatches handles POST /weather/matches: historical dates whose weather
// resembled the target conditions, best matches first.
func (h *WeatherHandler) FindMatches(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid match request", err.Error()))
		return
	}

	coords := types.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	dateRange := types.DateRange{Start: req.StartDate, End: req.EndDate}

	matches, err := h.weather.FindSimilarDates(c.Request.Context(), coords, dateRange, req.Conditions)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

// TodayConditions handles GET /weather/today?lat=..&lon=..
func (h *WeatherHandler) TodayConditions(c *gin.Context) {
	coords, err := coordsFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	today, err := h.weather.GetTodayConditions(c.Request.Context(), coords)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, today)
}

func coordsFromQuery(c *gin.Context) (types.Coordinates, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return types.Coordinates{}, errors.ValidationFailed("Invalid coordinates", "lat must be a number")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return types.Coordinates{}, errors.ValidationFailed("Invalid coordinates", "lon must be a number")
	}
	return types.Coordinates{Latitude: lat, Longitude: lon}, nil
}
