package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hunt-wet/hunt-intel-backend/errors"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/store"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	m.Run()
}

type fakeHuntStore struct {
	inserted  *types.HuntLog
	insertErr error
	hunts     []types.HuntLog
	stats     types.HuntStats
	listErr   error
}

func (f *fakeHuntStore) InsertHunt(ctx context.Context, log *types.HuntLog) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = log
	return "hunt-123", nil
}

func (f *fakeHuntStore) ListHunts(ctx context.Context, userID, species string, limit int) ([]types.HuntLog, error) {
	return f.hunts, f.listErr
}

func (f *fakeHuntStore) GetStats(ctx context.Context, userID, species string) (types.HuntStats, error) {
	return f.stats, f.listErr
}

func (f *fakeHuntStore) HuntedDates(ctx context.Context, coords types.Coordinates, r types.DateRange) (map[string]bool, error) {
	return nil, nil
}

type fakeWeather struct {
	day *types.WeatherDay
	err error
}

func (f *fakeWeather) GetDay(ctx context.Context, coords types.Coordinates, date types.Date) (*types.WeatherDay, error) {
	return f.day, f.err
}

func validInput() types.HuntLogInput {
	d, _ := types.ParseDate("2024-11-15")
	return types.HuntLogInput{
		UserID:       "user-1",
		HuntDate:     d,
		LocationName: "Towson, MD",
		Latitude:     39.4143,
		Longitude:    -76.5761,
		Species:      "deer",
		Outcome:      types.HuntSuccess,
		AnimalsSeen:  3,
		Season:       "firearm",
	}
}

func snapshotDay() *types.WeatherDay {
	d, _ := types.ParseDate("2024-11-15")
	gust := 18.0
	return &types.WeatherDay{
		Date:                 d,
		Temperature:          38,
		FeelsLike:            33,
		Humidity:             70,
		DewPoint:             29,
		Pressure:             1004,
		PressureTrend:        types.PressureFalling,
		WindSpeed:            11,
		WindGust:             &gust,
		WindDirection:        "NW",
		WindDirectionDegrees: 310,
		MoonPhase:            "New Moon",
		MoonIllumination:     0,
		Sunrise:              "06:52:00",
		Sunset:               "16:49:00",
	}
}

func TestLogHuntCapturesSnapshot(t *testing.T) {
	st := &fakeHuntStore{}
	now := time.Date(2024, 11, 15, 18, 0, 0, 0, time.UTC)
	svc := NewHuntService(st, &fakeWeather{day: snapshotDay()}, func() time.Time { return now })

	entry, err := svc.LogHunt(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "hunt-123", entry.ID)
	assert.Equal(t, 38.0, entry.Temperature)
	assert.Equal(t, types.PressureFalling, entry.PressureTrend)
	assert.Equal(t, "NW", entry.WindDirection)
	assert.Equal(t, "New Moon", entry.MoonPhase)
	assert.Equal(t, 8, entry.SolunarScore)
	assert.Equal(t, now, entry.CreatedAt)
	require.NotNil(t, st.inserted)
}

func TestLogHuntFailsWithoutWeather(t *testing.T) {
	svc := NewHuntService(&fakeHuntStore{}, &fakeWeather{err: errors.New("provider down")}, nil)

	_, err := svc.LogHunt(context.Background(), validInput())
	require.Error(t, err)
}

func TestLogHuntRejectsBadOutcome(t *testing.T) {
	input := validInput()
	input.Outcome = "maybe"

	svc := NewHuntService(&fakeHuntStore{}, &fakeWeather{day: snapshotDay()}, nil)
	_, err := svc.LogHunt(context.Background(), input)
	require.Error(t, err)
}

func TestLogHuntInsertFailure(t *testing.T) {
	st := &fakeHuntStore{insertErr: errors.New("constraint violation")}
	svc := NewHuntService(st, &fakeWeather{day: snapshotDay()}, nil)

	_, err := svc.LogHunt(context.Background(), validInput())
	require.Error(t, err)
}

func TestLogHuntDuplicateMapsToConflict(t *testing.T) {
	st := &fakeHuntStore{insertErr: fmt.Errorf("hunt log abc already exists: %w", store.ErrConflict)}
	svc := NewHuntService(st, &fakeWeather{day: snapshotDay()}, nil)

	_, err := svc.LogHunt(context.Background(), validInput())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ConflictError, appErr.Type)
	assert.Equal(t, http.StatusConflict, appErr.GetHTTPStatus())
}

func TestLogHuntAcceptsZeroCoordinates(t *testing.T) {
	input := validInput()
	input.Latitude = 0
	input.Longitude = 0

	svc := NewHuntService(&fakeHuntStore{}, &fakeWeather{day: snapshotDay()}, nil)
	_, err := svc.LogHunt(context.Background(), input)
	require.NoError(t, err)
}

func TestGetUserHuntsRequiresUser(t *testing.T) {
	svc := NewHuntService(&fakeHuntStore{}, &fakeWeather{}, nil)
	_, err := svc.GetUserHunts(context.Background(), "", "", 10)
	require.Error(t, err)
}

func TestGetUserStats(t *testing.T) {
	st := &fakeHuntStore{stats: types.HuntStats{
		TotalHunts:      4,
		SuccessfulHunts: 1,
		SuccessRate:     25,
	}}
	svc := NewHuntService(st, &fakeWeather{}, nil)

	stats, err := svc.GetUserStats(context.Background(), "user-1", "deer")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalHunts)
	assert.Equal(t, 25.0, stats.SuccessRate)
}
