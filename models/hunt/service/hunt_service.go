// Package service implements hunt logging with a full environmental snapshot:
// the logged hunt carries the weather, pressure trend, wind, sun timing, and
// lunar state for the hunt date, captured through the same cache pipeline the
// pattern matcher uses.
package service

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/hunt-wet/hunt-intel-backend/errors"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/pkg/lunar"
	"github.com/hunt-wet/hunt-intel-backend/store"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

const defaultListLimit = 50

// WeatherSnapshotter provides the weather day for a hunt's location and date.
// Satisfied by the weather history service.
type WeatherSnapshotter interface {
	GetDay(ctx context.Context, coords types.Coordinates, date types.Date) (*types.WeatherDay, error)
}

// HuntService logs and reports on user hunts.
type HuntService struct {
	hunts   store.HuntLogStore
	weather WeatherSnapshotter
	now     func() time.Time
}

// NewHuntService wires the service. now defaults to time.Now when nil.
func NewHuntService(hunts store.HuntLogStore, weather WeatherSnapshotter, now func() time.Time) *HuntService {
	if now == nil {
		now = time.Now
	}
	return &HuntService{hunts: hunts, weather: weather, now: now}
}

// LogHunt captures the environmental snapshot for the hunt date and persists
// the complete record. A weather lookup failure fails the log; a hunt without
// its snapshot has no pattern-recognition value.
func (s *HuntService) LogHunt(ctx context.Context, input types.HuntLogInput) (*types.HuntLog, error) {
	log := logger.GetLogger()

	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationFailed("Invalid hunt log", err.Error())
	}

	coords := types.Coordinates{Latitude: input.Latitude, Longitude: input.Longitude}.Quantize()

	day, err := s.weather.GetDay(ctx, coords, input.HuntDate)
	if err != nil {
		log.Errorw("Weather snapshot unavailable for hunt log",
			"hunt_date", input.HuntDate.String(),
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err)
		return nil, err
	}

	entry := &types.HuntLog{
		HuntLogInput: input,

		Temperature:   day.Temperature,
		FeelsLike:     day.FeelsLike,
		Humidity:      day.Humidity,
		DewPoint:      day.DewPoint,
		Pressure:      day.Pressure,
		PressureTrend: day.PressureTrend,
		WindSpeed:     day.WindSpeed,
		WindGust:      day.WindGust,
		WindDirection: day.WindDirection,
		WindDegrees:   day.WindDirectionDegrees,
		Precipitation: day.Precipitation,
		PrecipType:    day.PrecipitationType,
		CloudCover:    day.CloudCover,
		Visibility:    day.Visibility,

		Sunrise:          day.Sunrise,
		Sunset:           day.Sunset,
		MoonPhase:        day.MoonPhase,
		MoonIllumination: day.MoonIllumination,
		SolunarScore:     lunar.SolunarScore(day.MoonPhase),

		CreatedAt: s.now().UTC(),
	}

	id, err := s.hunts.InsertHunt(ctx, entry)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperrors.Wrap(err, apperrors.ConflictError, "Hunt log already exists")
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	entry.ID = id

	log.Infow("Hunt logged",
		"hunt_id", id,
		"species", input.Species,
		"outcome", input.Outcome,
		"temperature", entry.Temperature,
		"pressure_trend", entry.PressureTrend,
		"moon_phase", entry.MoonPhase)

	return entry, nil
}

// GetUserHunts returns a user's hunt history, newest first. Species filters
// when non-empty; limit <= 0 selects the default.
func (s *HuntService) GetUserHunts(ctx context.Context, userID, species string, limit int) ([]types.HuntLog, error) {
	if userID == "" {
		return nil, apperrors.ValidationFailed("Invalid request", "user id is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	hunts, err := s.hunts.ListHunts(ctx, userID, species, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return hunts, nil
}

// GetUserStats aggregates a user's hunts into success statistics.
func (s *HuntService) GetUserStats(ctx context.Context, userID, species string) (types.HuntStats, error) {
	if userID == "" {
		return types.HuntStats{}, apperrors.ValidationFailed("Invalid request", "user id is required")
	}

	stats, err := s.hunts.GetStats(ctx, userID, species)
	if err != nil {
		return types.HuntStats{}, apperrors.NewDatabaseError(err)
	}
	return stats, nil
}
