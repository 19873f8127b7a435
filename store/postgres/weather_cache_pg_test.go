package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/types"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	os.Exit(m.Run())
}

var weatherDayCols = []string{
	"latitude", "longitude", "date", "temperature", "feels_like", "dew_point",
	"humidity", "barometric_pressure", "pressure_trend", "wind_speed", "wind_gust",
	"wind_direction", "wind_direction_degrees", "precipitation", "precipitation_type",
	"cloud_cover", "visibility", "moon_phase", "moon_phase_value", "moon_illumination",
	"sunrise", "sunset",
}

func testDayRow(date time.Time) []any {
	return []any{
		39.4143, -76.5761, date, 45.2, 41.0, 38.5,
		72.0, 1013.2, types.PressureSteady, 8.1, (*float64)(nil),
		"NW", 310.0, 0.0, "",
		40.0, 9.9, "Waxing Crescent", 0.12, 12.0,
		"07:02:11", "18:34:40",
	}
}

func TestGetCachedDays(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgWeatherCacheStore(mock)
	coords := types.Coordinates{Latitude: 39.4143, Longitude: -76.5761}
	r := types.DateRange{
		Start: types.NewDate(2024, time.October, 1),
		End:   types.NewDate(2024, time.October, 3),
	}

	t.Run("returns rows ordered by date", func(t *testing.T) {
		rows := pgxmock.NewRows(weatherDayCols).
			AddRow(testDayRow(r.Start.Time)...).
			AddRow(testDayRow(r.Start.AddDays(1).Time)...)

		mock.ExpectQuery("SELECT .+ FROM historical_weather_cache").
			WithArgs(coords.Latitude, coords.Longitude, r.Start.Time, r.End.Time).
			WillReturnRows(rows)

		days, err := s.GetCachedDays(context.Background(), coords, r)
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "2024-10-01", days[0].Date.String())
		assert.Equal(t, "2024-10-02", days[1].Date.String())
		assert.Equal(t, types.PressureSteady, days[0].PressureTrend)
		assert.Equal(t, 1013.2, days[0].Pressure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates query errors", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM historical_weather_cache").
			WithArgs(coords.Latitude, coords.Longitude, r.Start.Time, r.End.Time).
			WillReturnError(errors.New("connection reset"))

		_, err := s.GetCachedDays(context.Background(), coords, r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query weather cache")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty range yields no days", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM historical_weather_cache").
			WithArgs(coords.Latitude, coords.Longitude, r.Start.Time, r.End.Time).
			WillReturnRows(pgxmock.NewRows(weatherDayCols))

		days, err := s.GetCachedDays(context.Background(), coords, r)
		require.NoError(t, err)
		assert.Empty(t, days)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertDays(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgWeatherCacheStore(mock)
	coords := types.Coordinates{Latitude: 39.4143, Longitude: -76.5761}
	day := types.WeatherDay{
		Date:          types.NewDate(2024, time.October, 4),
		Temperature:   45.2,
		Pressure:      1013.2,
		PressureTrend: types.PressureSteady,
		WindDirection: "NW",
		MoonPhase:     "Waxing Crescent",
	}

	t.Run("writes with conflict target on the key triple", func(t *testing.T) {
		batch := mock.ExpectBatch()
		batch.ExpectExec(`INSERT INTO historical_weather_cache .+ ON CONFLICT \(latitude, longitude, date\) DO UPDATE`).
			WithArgs(
				coords.Latitude, coords.Longitude, day.Date.Time,
				day.Temperature, day.FeelsLike, day.DewPoint, day.Humidity,
				day.Pressure, string(day.PressureTrend), day.WindSpeed, day.WindGust,
				day.WindDirection, day.WindDirectionDegrees, day.Precipitation,
				day.PrecipitationType, day.CloudCover, day.Visibility,
				day.MoonPhase, day.MoonPhaseValue, day.MoonIllumination,
				day.Sunrise, day.Sunset,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := s.UpsertDays(context.Background(), coords, []types.WeatherDay{day})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no-op on empty slice", func(t *testing.T) {
		err := s.UpsertDays(context.Background(), coords, nil)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces batch errors", func(t *testing.T) {
		batch := mock.ExpectBatch()
		batch.ExpectExec("INSERT INTO historical_weather_cache").
			WithArgs(
				coords.Latitude, coords.Longitude, day.Date.Time,
				day.Temperature, day.FeelsLike, day.DewPoint, day.Humidity,
				day.Pressure, string(day.PressureTrend), day.WindSpeed, day.WindGust,
				day.WindDirection, day.WindDirectionDegrees, day.Precipitation,
				day.PrecipitationType, day.CloudCover, day.Visibility,
				day.MoonPhase, day.MoonPhaseValue, day.MoonIllumination,
				day.Sunrise, day.Sunset,
			).
			WillReturnError(errors.New("disk full"))

		err := s.UpsertDays(context.Background(), coords, []types.WeatherDay{day})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert weather day 2024-10-04")
	})
}
