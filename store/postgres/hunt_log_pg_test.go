package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/hunt-wet/hunt-intel-backend/store"
	"github.com/hunt-wet/hunt-intel-backend/types"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHuntLog() *types.HuntLog {
	return &types.HuntLog{
		HuntLogInput: types.HuntLogInput{
			UserID:       "user-1",
			HuntDate:     types.NewDate(2024, time.November, 16),
			LocationName: "Towson, MD",
			Latitude:     39.4143,
			Longitude:    -76.5761,
			Species:      "deer",
			Outcome:      types.HuntSuccess,
			AnimalsSeen:  3,
		},
		Temperature:   38.5,
		Pressure:      1022.4,
		PressureTrend: types.PressureRising,
		WindSpeed:     6.2,
		WindDirection: "NW",
		MoonPhase:     "Waning Gibbous",
		SolunarScore:  7,
	}
}

func TestInsertHunt(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgHuntLogStore(mock)

	t.Run("assigns an id and inserts", func(t *testing.T) {
		huntLog := testHuntLog()

		mock.ExpectExec("INSERT INTO hunt_logs").
			WithArgs(
				pgxmock.AnyArg(), huntLog.UserID, huntLog.HuntDate.Time, huntLog.LocationName,
				huntLog.Latitude, huntLog.Longitude, huntLog.Species, string(huntLog.Outcome),
				huntLog.AnimalsSeen, huntLog.AnimalsKilled, huntLog.Notes, huntLog.Season,
				huntLog.HuntingMethod, huntLog.Temperature, huntLog.FeelsLike, huntLog.Humidity,
				huntLog.DewPoint, huntLog.Pressure, string(huntLog.PressureTrend),
				huntLog.WindSpeed, huntLog.WindGust, huntLog.WindDirection, huntLog.WindDegrees,
				huntLog.Precipitation, huntLog.PrecipType, huntLog.CloudCover, huntLog.Visibility,
				huntLog.Sunrise, huntLog.Sunset, huntLog.MoonPhase, huntLog.MoonIllumination,
				huntLog.SolunarScore,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		id, err := s.InsertHunt(context.Background(), huntLog)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, huntLog.ID, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		huntLog := testHuntLog()
		huntLog.ID = "hunt-1"

		anyArgs := make([]interface{}, 32)
		for i := range anyArgs {
			anyArgs[i] = pgxmock.AnyArg()
		}
		mock.ExpectExec("INSERT INTO hunt_logs").
			WithArgs(anyArgs...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "hunt_logs_pkey"})

		_, err := s.InsertHunt(context.Background(), huntLog)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgHuntLogStore(mock)

	t.Run("computes success rate", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
			WithArgs("user-1", "deer").
			WillReturnRows(pgxmock.NewRows([]string{"count", "successes", "seen", "killed"}).
				AddRow(4, 1, 9, 1))

		stats, err := s.GetStats(context.Background(), "user-1", "deer")
		require.NoError(t, err)
		assert.Equal(t, 4, stats.TotalHunts)
		assert.Equal(t, 1, stats.SuccessfulHunts)
		assert.Equal(t, 25.0, stats.SuccessRate)
		assert.Equal(t, 9, stats.AnimalsSeen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero hunts yields zero rate", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
			WithArgs("user-2", "").
			WillReturnRows(pgxmock.NewRows([]string{"count", "successes", "seen", "killed"}).
				AddRow(0, 0, 0, 0))

		stats, err := s.GetStats(context.Background(), "user-2", "")
		require.NoError(t, err)
		assert.Zero(t, stats.SuccessRate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHuntedDates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPgHuntLogStore(mock)
	coords := types.Coordinates{Latitude: 39.4143, Longitude: -76.5761}
	r := types.DateRange{
		Start: types.NewDate(2024, time.October, 1),
		End:   types.NewDate(2024, time.October, 31),
	}

	mock.ExpectQuery("SELECT DISTINCT hunt_date").
		WithArgs(coords.Latitude, coords.Longitude, r.Start.Time, r.End.Time).
		WillReturnRows(pgxmock.NewRows([]string{"hunt_date"}).
			AddRow(types.NewDate(2024, time.October, 12).Time).
			AddRow(types.NewDate(2024, time.October, 19).Time))

	hunted, err := s.HuntedDates(context.Background(), coords, r)
	require.NoError(t, err)
	assert.True(t, hunted["2024-10-12"])
	assert.True(t, hunted["2024-10-19"])
	assert.False(t, hunted["2024-10-13"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
