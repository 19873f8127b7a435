package visualcrossing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/hunt-wet/hunt-intel-backend/errors"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	os.Exit(m.Run())
}

func testRange() types.DateRange {
	return types.DateRange{
		Start: types.NewDate(2024, time.October, 4),
		End:   types.NewDate(2024, time.October, 6),
	}
}

func newTestClient(baseURL string, attempts int) *Client {
	return NewClient("test-key", baseURL, 2*time.Second, RetryPolicy{
		Attempts: attempts,
		Backoff:  time.Millisecond,
	})
}

func TestTimeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "us", r.URL.Query().Get("unitGroup"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "days", r.URL.Query().Get("include"))
		assert.Contains(t, r.URL.Path, "2024-10-04/2024-10-06")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"days": [
			{"datetime": "2024-10-04", "temp": 52.1, "pressure": 1013.0, "moonphase": 0.1, "preciptype": ["rain"]},
			{"datetime": "2024-10-05", "temp": 49.8, "pressure": 1008.2, "moonphase": 0.13},
			{"datetime": "2024-10-06", "temp": 55.0, "pressure": 1021.7, "moonphase": 0.17}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	days, err := client.Timeline(context.Background(), types.Coordinates{Latitude: 39.4143, Longitude: -76.5761}, testRange())

	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "2024-10-04", days[0].Datetime)
	assert.Equal(t, 52.1, days[0].Temp)
	assert.Equal(t, []string{"rain"}, days[0].PrecipType)
}

func TestTimeline_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"days": [{"datetime": "2024-10-04", "temp": 52.1}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	days, err := client.Timeline(context.Background(), types.Coordinates{}, testRange())

	require.NoError(t, err)
	assert.Len(t, days, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestTimeline_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.Timeline(context.Background(), types.Coordinates{}, testRange())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTimeline_ExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	_, err := client.Timeline(context.Background(), types.Coordinates{}, testRange())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestTimeline_MissingKey(t *testing.T) {
	client := NewClient("", "http://localhost:0", time.Second, RetryPolicy{Attempts: 1})
	_, err := client.Timeline(context.Background(), types.Coordinates{}, testRange())

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ConfigurationError, appErr.Type)
	assert.Contains(t, appErr.Detail, "VISUAL_CROSSING_API_KEY")
}

func TestCurrent_PrefersCurrentConditions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "current", r.URL.Query().Get("include"))
		_, _ = w.Write([]byte(`{
			"currentConditions": {"temp": 41.3, "pressure": 1005.0, "windspeed": 7.5},
			"days": [{"datetime": "2024-10-04", "temp": 45.0, "moonphase": 0.5}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	current, err := client.Current(context.Background(), types.Coordinates{Latitude: 39.4, Longitude: -76.5})

	require.NoError(t, err)
	assert.Equal(t, 41.3, current.Temp)
	assert.Equal(t, 1005.0, current.Pressure)
	// Moon phase comes from the day record.
	assert.Equal(t, 0.5, current.MoonPhase)
}

func TestCurrent_FallsBackToDayRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"days": [{"datetime": "2024-10-04", "temp": 45.0, "pressure": 1013.0, "moonphase": 0.25}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	current, err := client.Current(context.Background(), types.Coordinates{})

	require.NoError(t, err)
	assert.Equal(t, 45.0, current.Temp)
	assert.Equal(t, 0.25, current.MoonPhase)
}

func TestCurrent_NoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"days": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	_, err := client.Current(context.Background(), types.Coordinates{})
	assert.Error(t, err)
}
