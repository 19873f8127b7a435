// Package geocode resolves US ZIP codes to coordinates and display names
// using the OpenWeatherMap geocoding API, with a small static table as an
// offline fallback for well-known codes.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hunt-wet/hunt-intel-backend/errors"
	"github.com/hunt-wet/hunt-intel-backend/logger"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

const defaultBaseURL = "https://api.openweathermap.org/geo/1.0"

// ClientInterface is the geocoding surface consumed by services. Defined here
// so handlers and tests can substitute implementations.
type ClientInterface interface {
	LocationFromZip(ctx context.Context, zipCode string) (*types.Location, error)
}

// Client resolves ZIP codes against OpenWeatherMap.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoding client. An empty apiKey is allowed; lookups
// then serve only the static table.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type zipResponse struct {
	Name  string  `json:"name"`
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// LocationFromZip resolves a US ZIP code to a location. The remote API is
// tried first; on any failure the static table is consulted before giving up.
func (c *Client) LocationFromZip(ctx context.Context, zipCode string) (*types.Location, error) {
	log := logger.GetLogger()

	if zipCode == "" {
		return nil, errors.ValidationFailed("Invalid ZIP code", "zip code is required")
	}

	if c.apiKey != "" {
		loc, err := c.lookupRemote(ctx, zipCode)
		if err == nil {
			return loc, nil
		}
		log.Warnw("Remote geocoding failed, falling back to static table", "zip", zipCode, "error", err)
	}

	if static, ok := staticZipTable[zipCode]; ok {
		loc := static
		loc.ZipCode = zipCode
		return &loc, nil
	}

	return nil, errors.GeocodingFailed(zipCode, fmt.Errorf("zip code not resolvable remotely or in static table"))
}

func (c *Client) lookupRemote(ctx context.Context, zipCode string) (*types.Location, error) {
	endpoint := fmt.Sprintf("%s/zip?zip=%s&appid=%s",
		c.baseURL, url.QueryEscape(zipCode+",US"), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling geocoding API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var body zipResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}

	return &types.Location{
		City:    body.Name,
		State:   body.State,
		ZipCode: zipCode,
		Lat:     body.Lat,
		Lon:     body.Lon,
	}, nil
}

// QuickName returns "City, ST" for ZIP codes in the static table, or the ZIP
// itself when unknown. Used for instant display before a full lookup lands.
func QuickName(zipCode string) string {
	if loc, ok := staticZipTable[zipCode]; ok {
		return fmt.Sprintf("%s, %s", loc.City, loc.State)
	}
	return zipCode
}

// staticZipTable covers frequently queried ZIP codes so the API can answer
// without network access.
var staticZipTable = map[string]types.Location{
	"10001": {City: "New York", State: "NY", Lat: 40.7484, Lon: -73.9967},
	"90210": {City: "Beverly Hills", State: "CA", Lat: 34.0901, Lon: -118.4065},
	"21286": {City: "Towson", State: "MD", Lat: 39.4143, Lon: -76.5761},
	"33101": {City: "Miami Beach", State: "FL", Lat: 25.7791, Lon: -80.1978},
	"80424": {City: "Frisco", State: "CO", Lat: 39.4753, Lon: -106.0225},
	"12345": {City: "Schenectady", State: "NY", Lat: 42.8142, Lon: -73.9396},
}
