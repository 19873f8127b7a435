// Package visualcrossing is an adapter for the Visual Crossing timeline
// weather API. It exposes per-day historical records and current conditions;
// the pressure values it returns are millibars.
package visualcrossing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/hunt-wet/hunt-intel-backend/errors"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/types"
	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"

// ClientInterface defines the operations the weather services need from the
// provider.
type ClientInterface interface {
	// Timeline fetches one per-day record for every date in the range.
	Timeline(ctx context.Context, coords types.Coordinates, r types.DateRange) ([]DayRecord, error)
	// Current fetches today's conditions, preferring the provider's
	// currentConditions block and falling back to today's day record.
	Current(ctx context.Context, coords types.Coordinates) (*CurrentRecord, error)
}

// DayRecord is the provider's per-day observation, decoded verbatim.
type DayRecord struct {
	Datetime   string   `json:"datetime"`
	Temp       float64  `json:"temp"`
	FeelsLike  float64  `json:"feelslike"`
	Dew        float64  `json:"dew"`
	Humidity   float64  `json:"humidity"`
	Pressure   float64  `json:"pressure"`
	WindSpeed  float64  `json:"windspeed"`
	WindGust   *float64 `json:"windgust"`
	WindDir    float64  `json:"winddir"`
	Precip     float64  `json:"precip"`
	PrecipType []string `json:"preciptype"`
	CloudCover float64  `json:"cloudcover"`
	Visibility float64  `json:"visibility"`
	MoonPhase  float64  `json:"moonphase"`
	Sunrise    string   `json:"sunrise"`
	Sunset     string   `json:"sunset"`
	Conditions string   `json:"conditions"`
}

// CurrentRecord is a current-conditions observation plus today's moon phase.
type CurrentRecord struct {
	Temp      float64  `json:"temp"`
	Pressure  float64  `json:"pressure"`
	Humidity  float64  `json:"humidity"`
	WindSpeed float64  `json:"windspeed"`
	WindGust  *float64 `json:"windgust"`
	WindDir   float64  `json:"winddir"`
	Precip    float64  `json:"precip"`
	MoonPhase float64  `json:"moonphase"`
	Sunrise   string   `json:"sunrise"`
	Sunset    string   `json:"sunset"`
}

type timelineResponse struct {
	Days              []DayRecord    `json:"days"`
	CurrentConditions *CurrentRecord `json:"currentConditions"`
}

// RetryPolicy bounds the retry loop around provider requests. Transport
// errors and retryable statuses (429, 5xx) are retried with exponential
// backoff; other 4xx responses fail immediately.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
	breaker    *gobreaker.CircuitBreaker
}

var _ ClientInterface = (*Client)(nil)

// NewClient creates a Visual Crossing timeline client. baseURL may be empty
// to use the production endpoint; tests point it at a local server.
func NewClient(apiKey, baseURL string, timeout time.Duration, retry RetryPolicy) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if retry.Attempts < 1 {
		retry.Attempts = 1
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retry: retry,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "visual-crossing",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			Timeout: 30 * time.Second,
		}),
	}
}

// Timeline implements ClientInterface.
func (c *Client) Timeline(ctx context.Context, coords types.Coordinates, r types.DateRange) ([]DayRecord, error) {
	endpoint := fmt.Sprintf("%s/%f,%f/%s/%s", c.baseURL, coords.Latitude, coords.Longitude, r.Start, r.End)
	resp, err := c.get(ctx, endpoint, url.Values{"include": {"days"}})
	if err != nil {
		return nil, err
	}
	return resp.Days, nil
}

// Current implements ClientInterface.
func (c *Client) Current(ctx context.Context, coords types.Coordinates) (*CurrentRecord, error) {
	today := types.DateOf(time.Now())
	endpoint := fmt.Sprintf("%s/%f,%f/%s", c.baseURL, coords.Latitude, coords.Longitude, today)
	resp, err := c.get(ctx, endpoint, url.Values{"include": {"current"}})
	if err != nil {
		return nil, err
	}

	current := resp.CurrentConditions
	if current == nil {
		if len(resp.Days) == 0 {
			return nil, fmt.Errorf("no weather data available for today")
		}
		day := resp.Days[0]
		current = &CurrentRecord{
			Temp:      day.Temp,
			Pressure:  day.Pressure,
			Humidity:  day.Humidity,
			WindSpeed: day.WindSpeed,
			WindGust:  day.WindGust,
			WindDir:   day.WindDir,
			Precip:    day.Precip,
			Sunrise:   day.Sunrise,
			Sunset:    day.Sunset,
		}
	}
	// Moon phase only appears on day records.
	if len(resp.Days) > 0 {
		current.MoonPhase = resp.Days[0].MoonPhase
	}
	return current, nil
}

// get issues the request through the circuit breaker with the retry policy.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*timelineResponse, error) {
	log := logger.GetLogger()

	if c.apiKey == "" {
		return nil, apperrors.MissingCredential("VISUAL_CROSSING_API_KEY")
	}

	params.Set("unitGroup", "us")
	params.Set("key", c.apiKey)
	requestURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	backoff := c.retry.Backoff
	var lastErr error
	for attempt := 1; attempt <= c.retry.Attempts; attempt++ {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.doRequest(ctx, requestURL)
		})
		if err == nil {
			return result.(*timelineResponse), nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
		if attempt == c.retry.Attempts {
			break
		}

		log.Warnw("Visual Crossing request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, fmt.Errorf("visual crossing request failed after %d attempts: %w", c.retry.Attempts, lastErr)
}

func (c *Client) doRequest(ctx context.Context, requestURL string) (*timelineResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &statusError{status: resp.StatusCode}
	}

	var decoded timelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode timeline response: %w", err)
	}
	return &decoded, nil
}

type transportError struct {
	err error
}

func (e *transportError) Error() string { return fmt.Sprintf("transport error: %v", e.err) }
func (e *transportError) Unwrap() error { return e.err }

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("visual crossing API error: status %d", e.status)
}

// isRetryable reports whether the failure is worth another attempt: network
// errors, 429, and 5xx are; other 4xx responses are not.
func isRetryable(err error) bool {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return false
	}
	if _, ok := err.(*transportError); ok {
		return true
	}
	if se, ok := err.(*statusError); ok {
		return se.status == http.StatusTooManyRequests || se.status >= 500
	}
	return false
}
