// Package service implements the historical weather pipeline: cache read,
// gap resolution, remote fetch with cache write-back, and pattern-match
// scoring.
package service

import (
	"context"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hunt-wet/hunt-intel-backend/errors"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/pkg/lunar"
	"github.com/hunt-wet/hunt-intel-backend/pkg/visualcrossing"
	"github.com/hunt-wet/hunt-intel-backend/store"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

const defaultMaxMatches = 50

var (
	cacheDaysServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_pipeline_days_total",
		Help: "Weather days served by the pipeline, by source.",
	}, []string{"source"})

	providerFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weather_provider_fetches_total",
		Help: "Outbound timeline requests to the weather provider.",
	})

	cacheWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weather_cache_write_failures_total",
		Help: "Cache upserts that failed and were swallowed.",
	})
)

// HistoryService answers "find historical dates whose weather resembled
// target conditions" using as few remote calls as possible.
type HistoryService struct {
	cache      store.WeatherCacheStore
	hunts      store.HuntLogStore
	provider   visualcrossing.ClientInterface
	maxMatches int
}

// NewHistoryService wires the pipeline. hunts may be nil; matches are then
// returned with Hunted always false. maxMatches <= 0 selects the default cap.
func NewHistoryService(cache store.WeatherCacheStore, hunts store.HuntLogStore, provider visualcrossing.ClientInterface, maxMatches int) *HistoryService {
	if maxMatches <= 0 {
		maxMatches = defaultMaxMatches
	}
	return &HistoryService{
		cache:      cache,
		hunts:      hunts,
		provider:   provider,
		maxMatches: maxMatches,
	}
}

// FindSimilarDates runs the full pipeline for one query. A provider fetch
// failure fails the whole query with no partial results; cache read and write
// failures degrade gracefully.
func (s *HistoryService) FindSimilarDates(ctx context.Context, coords types.Coordinates, r types.DateRange, target types.TargetConditions) ([]types.HistoricalMatch, error) {
	log := logger.GetLogger()

	if err := coords.Validate(); err != nil {
		return nil, errors.ValidationFailed("Invalid coordinates", err.Error())
	}
	if err := r.Validate(); err != nil {
		return nil, errors.ValidationFailed("Invalid date range", err.Error())
	}
	if err := target.Validate(); err != nil {
		return nil, errors.ValidationFailed("Invalid target conditions", err.Error())
	}

	coords = coords.Quantize()

	days, err := s.materializeDays(ctx, coords, r)
	if err != nil {
		return nil, err
	}

	matches := s.scoreDays(days, target)

	s.markHunted(ctx, coords, r, matches)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	if len(matches) > s.maxMatches {
		matches = matches[:s.maxMatches]
	}

	log.Infow("Historical weather query complete",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"range_start", r.Start.String(),
		"range_end", r.End.String(),
		"days", len(days),
		"matches", len(matches))

	return matches, nil
}

// materializeDays returns every weather day in the range, reading the cache
// first and fetching only the missing gaps from the provider.
func (s *HistoryService) materializeDays(ctx context.Context, coords types.Coordinates, r types.DateRange) ([]types.WeatherDay, error) {
	log := logger.GetLogger()

	cached, err := s.cache.GetCachedDays(ctx, coords, r)
	if err != nil {
		// A broken cache only costs extra fetching, never wrong results.
		log.Warnw("Cache read failed, treating range as uncached", "error", err)
		cached = nil
	}
	cacheDaysServed.WithLabelValues("cache").Add(float64(len(cached)))

	cachedDates := make([]types.Date, len(cached))
	for i, d := range cached {
		cachedDates[i] = d.Date
	}

	days := cached
	for _, gap := range MissingRanges(r, cachedDates) {
		providerFetches.Inc()
		records, err := s.provider.Timeline(ctx, coords, gap)
		if err != nil {
			return nil, errors.WeatherProviderFailed(err)
		}

		fetched := make([]types.WeatherDay, 0, len(records))
		for _, rec := range records {
			day, convErr := dayFromRecord(coords, rec)
			if convErr != nil {
				log.Warnw("Skipping malformed provider record", "datetime", rec.Datetime, "error", convErr)
				continue
			}
			fetched = append(fetched, day)
		}
		cacheDaysServed.WithLabelValues("remote").Add(float64(len(fetched)))

		if err := s.cache.UpsertDays(ctx, coords, fetched); err != nil {
			// The fetched data still feeds scoring; the next query may
			// just refetch this range.
			cacheWriteFailures.Inc()
			log.Warnw("Cache write failed, continuing with fetched data",
				"range_start", gap.Start.String(),
				"range_end", gap.End.String(),
				"error", err)
		}

		days = append(days, fetched...)
	}

	return days, nil
}

// scoreDays applies the two-tier filter-then-score design: the pre-filter is
// a hard gate, the score ranks the survivors.
func (s *HistoryService) scoreDays(days []types.WeatherDay, target types.TargetConditions) []types.HistoricalMatch {
	matches := make([]types.HistoricalMatch, 0, len(days))
	for _, day := range days {
		if !passesFilter(day, target) {
			continue
		}
		matches = append(matches, types.HistoricalMatch{
			Date: day.Date,
			Conditions: types.MatchConditions{
				Temperature:   day.Temperature,
				FeelsLike:     day.FeelsLike,
				DewPoint:      day.DewPoint,
				Pressure:      day.Pressure,
				PressureTrend: day.PressureTrend,
				WindSpeed:     day.WindSpeed,
				WindDirection: day.WindDirection,
				MoonPhase:     day.MoonPhase,
				Humidity:      day.Humidity,
				Precipitation: day.Precipitation,
				CloudCover:    day.CloudCover,
			},
			MatchScore: scoreDay(day, target),
		})
	}
	return matches
}

// markHunted flags matches whose date has a logged hunt at this location.
// Lookup failure leaves the flags false; it never fails the query.
func (s *HistoryService) markHunted(ctx context.Context, coords types.Coordinates, r types.DateRange, matches []types.HistoricalMatch) {
	if s.hunts == nil || len(matches) == 0 {
		return
	}

	hunted, err := s.hunts.HuntedDates(ctx, coords, r)
	if err != nil {
		logger.GetLogger().Warnw("Hunt log cross-reference failed", "error", err)
		return
	}

	for i := range matches {
		matches[i].Hunted = hunted[matches[i].Date.String()]
	}
}

// TodayConditions is the current-conditions snapshot returned alongside the
// query surface, with the trend derived by the same rule the scorer uses.
type TodayConditions struct {
	Temperature      float64              `json:"temperature"`
	Pressure         float64              `json:"pressure"`
	PressureTrend    types.PressureTrend  `json:"pressure_trend"`
	WindSpeed        float64              `json:"wind_speed"`
	WindDirection    string               `json:"wind_direction"`
	MoonPhase        string               `json:"moon_phase"`
	MoonIllumination float64              `json:"moon_illumination"`
	SolunarScore     int                  `json:"solunar_score"`
	SolunarPeriods   lunar.SolunarPeriods `json:"solunar_periods"`
	Recommendation   string               `json:"recommendation"`
	Sunrise          string               `json:"sunrise"`
	Sunset           string               `json:"sunset"`
}

// GetTodayConditions fetches current conditions and maps them to the same
// shape the match targets use.
func (s *HistoryService) GetTodayConditions(ctx context.Context, coords types.Coordinates) (*TodayConditions, error) {
	if err := coords.Validate(); err != nil {
		return nil, errors.ValidationFailed("Invalid coordinates", err.Error())
	}

	current, err := s.provider.Current(ctx, coords.Quantize())
	if err != nil {
		return nil, errors.WeatherProviderFailed(err)
	}

	phaseName := lunar.PhaseName(current.MoonPhase)
	solunarScore := lunar.SolunarScore(phaseName)
	return &TodayConditions{
		Temperature:      current.Temp,
		Pressure:         current.Pressure,
		PressureTrend:    types.DerivePressureTrend(current.Pressure),
		WindSpeed:        current.WindSpeed,
		WindDirection:    types.CardinalDirection(current.WindDir),
		MoonPhase:        phaseName,
		MoonIllumination: lunar.Illumination(current.MoonPhase),
		SolunarScore:     solunarScore,
		SolunarPeriods:   lunar.Periods(phaseName),
		Recommendation:   lunar.Recommendation(phaseName, solunarScore),
		Sunrise:          current.Sunrise,
		Sunset:           current.Sunset,
	}, nil
}

// GetDay returns the weather day for a single date at a location, through the
// same cache pipeline as pattern queries. Used by hunt logging to capture the
// environmental snapshot.
func (s *HistoryService) GetDay(ctx context.Context, coords types.Coordinates, date types.Date) (*types.WeatherDay, error) {
	coords = coords.Quantize()
	days, err := s.materializeDays(ctx, coords, types.DateRange{Start: date, End: date})
	if err != nil {
		return nil, err
	}
	for _, d := range days {
		if d.Date.Equal(date.Time) {
			return &d, nil
		}
	}
	return nil, errors.NotFound("WeatherDay", date.String())
}

// dayFromRecord converts one provider record into a cache row, deriving the
// trend, the cardinal wind direction, and the named moon phase.
func dayFromRecord(coords types.Coordinates, rec visualcrossing.DayRecord) (types.WeatherDay, error) {
	date, err := types.ParseDate(rec.Datetime)
	if err != nil {
		return types.WeatherDay{}, err
	}

	return types.WeatherDay{
		Latitude:             coords.Latitude,
		Longitude:            coords.Longitude,
		Date:                 date,
		Temperature:          rec.Temp,
		FeelsLike:            rec.FeelsLike,
		DewPoint:             rec.Dew,
		Humidity:             rec.Humidity,
		Pressure:             rec.Pressure,
		PressureTrend:        types.DerivePressureTrend(rec.Pressure),
		WindSpeed:            rec.WindSpeed,
		WindGust:             rec.WindGust,
		WindDirection:        types.CardinalDirection(rec.WindDir),
		WindDirectionDegrees: rec.WindDir,
		Precipitation:        rec.Precip,
		PrecipitationType:    strings.Join(rec.PrecipType, ","),
		CloudCover:           rec.CloudCover,
		Visibility:           rec.Visibility,
		MoonPhase:            lunar.PhaseName(rec.MoonPhase),
		MoonPhaseValue:       rec.MoonPhase,
		MoonIllumination:     lunar.Illumination(rec.MoonPhase),
		Sunrise:              rec.Sunrise,
		Sunset:               rec.Sunset,
	}, nil
}
