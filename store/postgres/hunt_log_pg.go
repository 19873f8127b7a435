package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/store"
	"github.com/hunt-wet/hunt-intel-backend/types"
	"github.com/jackc/pgx/v5/pgconn"
)

// Ensure pgHuntLogStore implements store.HuntLogStore.
var _ store.HuntLogStore = (*pgHuntLogStore)(nil)

type pgHuntLogStore struct {
	pool PgxPool
}

// NewPgHuntLogStore creates a new PostgreSQL hunt log store.
func NewPgHuntLogStore(pool PgxPool) store.HuntLogStore {
	return &pgHuntLogStore{pool: pool}
}

// InsertHunt implements store.HuntLogStore.
func (s *pgHuntLogStore) InsertHunt(ctx context.Context, huntLog *types.HuntLog) (string, error) {
	log := logger.GetLogger()

	if huntLog.ID == "" {
		huntLog.ID = uuid.NewString()
	}

	_, err := s.pool.Exec(ctx, `
        INSERT INTO hunt_logs (
            id, user_id, hunt_date, location_name, latitude, longitude,
            species, outcome, animals_seen, animals_killed, notes, season, hunting_method,
            temperature, feels_like, humidity, dew_point,
            barometric_pressure, pressure_trend,
            wind_speed, wind_gust, wind_direction, wind_degrees,
            precipitation, precipitation_type, cloud_cover, visibility,
            sunrise, sunset, moon_phase, moon_illumination, solunar_score
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
                $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)`,
		huntLog.ID,
		huntLog.UserID,
		huntLog.HuntDate.Time,
		huntLog.LocationName,
		huntLog.Latitude,
		huntLog.Longitude,
		huntLog.Species,
		string(huntLog.Outcome),
		huntLog.AnimalsSeen,
		huntLog.AnimalsKilled,
		huntLog.Notes,
		huntLog.Season,
		huntLog.HuntingMethod,
		huntLog.Temperature,
		huntLog.FeelsLike,
		huntLog.Humidity,
		huntLog.DewPoint,
		huntLog.Pressure,
		string(huntLog.PressureTrend),
		huntLog.WindSpeed,
		huntLog.WindGust,
		huntLog.WindDirection,
		huntLog.WindDegrees,
		huntLog.Precipitation,
		huntLog.PrecipType,
		huntLog.CloudCover,
		huntLog.Visibility,
		huntLog.Sunrise,
		huntLog.Sunset,
		huntLog.MoonPhase,
		huntLog.MoonIllumination,
		huntLog.SolunarScore,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fmt.Errorf("hunt log %s already exists: %w", huntLog.ID, store.ErrConflict)
		}
		log.Errorw("Failed to insert hunt log", "huntId", huntLog.ID, "userId", huntLog.UserID, "error", err)
		return "", fmt.Errorf("failed to insert hunt log: %w", err)
	}

	log.Infow("Hunt log stored", "huntId", huntLog.ID, "species", huntLog.Species, "outcome", huntLog.Outcome)
	return huntLog.ID, nil
}

// ListHunts implements store.HuntLogStore.
func (s *pgHuntLogStore) ListHunts(ctx context.Context, userID, species string, limit int) ([]types.HuntLog, error) {
	query := `
        SELECT id, user_id, hunt_date, location_name, latitude, longitude,
               species, outcome, animals_seen, animals_killed, notes, season, hunting_method,
               temperature, feels_like, humidity, dew_point,
               barometric_pressure, pressure_trend,
               wind_speed, wind_gust, wind_direction, wind_degrees,
               precipitation, precipitation_type, cloud_cover, visibility,
               sunrise, sunset, moon_phase, moon_illumination, solunar_score, created_at
        FROM hunt_logs
        WHERE user_id = $1 AND ($2 = '' OR species = $2)
        ORDER BY hunt_date DESC
        LIMIT $3`

	rows, err := s.pool.Query(ctx, query, userID, species, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query hunt logs: %w", err)
	}
	defer rows.Close()

	var hunts []types.HuntLog
	for rows.Next() {
		var h types.HuntLog
		err := rows.Scan(
			&h.ID, &h.UserID, &h.HuntDate.Time, &h.LocationName, &h.Latitude, &h.Longitude,
			&h.Species, &h.Outcome, &h.AnimalsSeen, &h.AnimalsKilled, &h.Notes, &h.Season, &h.HuntingMethod,
			&h.Temperature, &h.FeelsLike, &h.Humidity, &h.DewPoint,
			&h.Pressure, &h.PressureTrend,
			&h.WindSpeed, &h.WindGust, &h.WindDirection, &h.WindDegrees,
			&h.Precipitation, &h.PrecipType, &h.CloudCover, &h.Visibility,
			&h.Sunrise, &h.Sunset, &h.MoonPhase, &h.MoonIllumination, &h.SolunarScore, &h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hunt log: %w", err)
		}
		hunts = append(hunts, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hunt log rows: %w", err)
	}

	return hunts, nil
}

// GetStats implements store.HuntLogStore.
func (s *pgHuntLogStore) GetStats(ctx context.Context, userID, species string) (types.HuntStats, error) {
	var stats types.HuntStats
	err := s.pool.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE outcome = 'success'),
               COALESCE(SUM(animals_seen), 0),
               COALESCE(SUM(animals_killed), 0)
        FROM hunt_logs
        WHERE user_id = $1 AND ($2 = '' OR species = $2)`,
		userID, species,
	).Scan(&stats.TotalHunts, &stats.SuccessfulHunts, &stats.AnimalsSeen, &stats.AnimalsKilled)
	if err != nil {
		return types.HuntStats{}, fmt.Errorf("failed to aggregate hunt stats: %w", err)
	}

	if stats.TotalHunts > 0 {
		stats.SuccessRate = float64(stats.SuccessfulHunts) / float64(stats.TotalHunts) * 100
	}
	return stats, nil
}

// HuntedDates implements store.HuntLogStore. Coordinates must be quantized by
// the caller, matching the keys used when hunts were logged.
func (s *pgHuntLogStore) HuntedDates(ctx context.Context, coords types.Coordinates, r types.DateRange) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT DISTINCT hunt_date
        FROM hunt_logs
        WHERE latitude = $1 AND longitude = $2 AND hunt_date >= $3 AND hunt_date <= $4`,
		coords.Latitude, coords.Longitude, r.Start.Time, r.End.Time,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query hunted dates: %w", err)
	}
	defer rows.Close()

	hunted := make(map[string]bool)
	for rows.Next() {
		var d types.Date
		if err := rows.Scan(&d.Time); err != nil {
			return nil, fmt.Errorf("failed to scan hunted date: %w", err)
		}
		hunted[d.String()] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hunted dates: %w", err)
	}

	return hunted, nil
}
