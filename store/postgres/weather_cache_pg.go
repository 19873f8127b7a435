package postgres

import (
	"context"
	"fmt"

	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/store"
	"github.com/hunt-wet/hunt-intel-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the stores need. Satisfied by
// *pgxpool.Pool in production and by pgxmock in tests.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Ensure pgWeatherCacheStore implements store.WeatherCacheStore.
var _ store.WeatherCacheStore = (*pgWeatherCacheStore)(nil)

type pgWeatherCacheStore struct {
	pool PgxPool
}

// NewPgWeatherCacheStore creates a new PostgreSQL weather cache store.
func NewPgWeatherCacheStore(pool PgxPool) store.WeatherCacheStore {
	return &pgWeatherCacheStore{pool: pool}
}

const weatherDayColumns = `latitude, longitude, date, temperature, feels_like, dew_point,
               humidity, barometric_pressure, pressure_trend, wind_speed, wind_gust,
               wind_direction, wind_direction_degrees, precipitation, precipitation_type,
               cloud_cover, visibility, moon_phase, moon_phase_value, moon_illumination,
               sunrise, sunset`

// GetCachedDays implements store.WeatherCacheStore. Coordinates must already
// be quantized by the caller so read keys match write keys.
func (s *pgWeatherCacheStore) GetCachedDays(ctx context.Context, coords types.Coordinates, r types.DateRange) ([]types.WeatherDay, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM historical_weather_cache
        WHERE latitude = $1 AND longitude = $2 AND date >= $3 AND date <= $4
        ORDER BY date ASC`, weatherDayColumns)

	rows, err := s.pool.Query(ctx, query, coords.Latitude, coords.Longitude, r.Start.Time, r.End.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather cache: %w", err)
	}
	defer rows.Close()

	var days []types.WeatherDay
	for rows.Next() {
		day, err := scanWeatherDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached weather day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weather cache rows: %w", err)
	}

	return days, nil
}

// UpsertDays implements store.WeatherCacheStore. Each day is written with an
// explicit conflict target on (latitude, longitude, date) so refetches
// overwrite instead of duplicating.
func (s *pgWeatherCacheStore) UpsertDays(ctx context.Context, coords types.Coordinates, days []types.WeatherDay) error {
	log := logger.GetLogger()
	if len(days) == 0 {
		return nil
	}

	upsert := fmt.Sprintf(`
        INSERT INTO historical_weather_cache (%s)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
        ON CONFLICT (latitude, longitude, date) DO UPDATE SET
            temperature = EXCLUDED.temperature,
            feels_like = EXCLUDED.feels_like,
            dew_point = EXCLUDED.dew_point,
            humidity = EXCLUDED.humidity,
            barometric_pressure = EXCLUDED.barometric_pressure,
            pressure_trend = EXCLUDED.pressure_trend,
            wind_speed = EXCLUDED.wind_speed,
            wind_gust = EXCLUDED.wind_gust,
            wind_direction = EXCLUDED.wind_direction,
            wind_direction_degrees = EXCLUDED.wind_direction_degrees,
            precipitation = EXCLUDED.precipitation,
            precipitation_type = EXCLUDED.precipitation_type,
            cloud_cover = EXCLUDED.cloud_cover,
            visibility = EXCLUDED.visibility,
            moon_phase = EXCLUDED.moon_phase,
            moon_phase_value = EXCLUDED.moon_phase_value,
            moon_illumination = EXCLUDED.moon_illumination,
            sunrise = EXCLUDED.sunrise,
            sunset = EXCLUDED.sunset`, weatherDayColumns)

	batch := &pgx.Batch{}
	for _, day := range days {
		batch.Queue(upsert,
			coords.Latitude,
			coords.Longitude,
			day.Date.Time,
			day.Temperature,
			day.FeelsLike,
			day.DewPoint,
			day.Humidity,
			day.Pressure,
			string(day.PressureTrend),
			day.WindSpeed,
			day.WindGust,
			day.WindDirection,
			day.WindDirectionDegrees,
			day.Precipitation,
			day.PrecipitationType,
			day.CloudCover,
			day.Visibility,
			day.MoonPhase,
			day.MoonPhaseValue,
			day.MoonIllumination,
			day.Sunrise,
			day.Sunset,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert weather day %s: %w", days[i].Date, err)
		}
	}

	log.Debugw("Upserted weather days into cache",
		"count", len(days),
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)
	return nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeatherDay(row rowScanner) (types.WeatherDay, error) {
	var day types.WeatherDay
	err := row.Scan(
		&day.Latitude,
		&day.Longitude,
		&day.Date.Time,
		&day.Temperature,
		&day.FeelsLike,
		&day.DewPoint,
		&day.Humidity,
		&day.Pressure,
		&day.PressureTrend,
		&day.WindSpeed,
		&day.WindGust,
		&day.WindDirection,
		&day.WindDirectionDegrees,
		&day.Precipitation,
		&day.PrecipitationType,
		&day.CloudCover,
		&day.Visibility,
		&day.MoonPhase,
		&day.MoonPhaseValue,
		&day.MoonIllumination,
		&day.Sunrise,
		&day.Sunset,
	)
	return day, err
}
