package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(ValidationError, "invalid date range", "end before start")
	assert.Equal(t, "VALIDATION_ERROR: invalid date range (end before start)", err.Error())

	noDetail := New(ServerError, "something broke", "")
	assert.Equal(t, "SERVER_ERROR: something broke", noDetail.Error())
}

func TestWrap(t *testing.T) {
	raw := stderrors.New("connection refused")
	err := Wrap(raw, WeatherProviderError, "timeline request failed")

	assert.Equal(t, WeatherProviderError, err.Type)
	assert.Equal(t, "connection refused", err.Detail)
	assert.True(t, stderrors.Is(err, raw))
	assert.Nil(t, Wrap(nil, WeatherProviderError, "no-op"))
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		errType ErrorType
		status  int
	}{
		{ValidationError, http.StatusBadRequest},
		{NotFoundError, http.StatusNotFound},
		{ConfigurationError, http.StatusInternalServerError},
		{DatabaseError, http.StatusInternalServerError},
		{WeatherProviderError, http.StatusBadGateway},
		{GeocodingError, http.StatusBadGateway},
		{RateLimitError, http.StatusTooManyRequests},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.status, New(tc.errType, "msg", "").GetHTTPStatus(), string(tc.errType))
	}
}

func TestMissingCredential(t *testing.T) {
	err := MissingCredential("VISUAL_CROSSING_API_KEY")
	assert.Equal(t, ConfigurationError, err.Type)
	assert.Contains(t, err.Detail, "VISUAL_CROSSING_API_KEY")
	assert.Equal(t, http.StatusInternalServerError, err.GetHTTPStatus())
}
