package types

import (
	"fmt"
	"math"
)

// PressureTrend is a derived three-state label computed from absolute
// barometric pressure against fixed millibar thresholds.
type PressureTrend string

const (
	PressureRising  PressureTrend = "rising"
	PressureFalling PressureTrend = "falling"
	PressureSteady  PressureTrend = "steady"
)

// Millibar thresholds for the trend derivation. The provider reports pressure
// in mb: low systems sit around 980-1000, normal is ~1013, high 1020-1030.
const (
	pressureFallingBelowMb = 1010.0
	pressureRisingAboveMb  = 1020.0
)

// DerivePressureTrend computes the trend label from absolute barometric
// pressure in millibars. This is the single derivation used by the cache
// writer, the match scorer, and the today-conditions endpoint.
func DerivePressureTrend(pressureMb float64) PressureTrend {
	switch {
	case pressureMb < pressureFallingBelowMb:
		return PressureFalling
	case pressureMb > pressureRisingAboveMb:
		return PressureRising
	default:
		return PressureSteady
	}
}

// Valid reports whether the trend is one of the three known labels.
func (p PressureTrend) Valid() bool {
	switch p {
	case PressureRising, PressureFalling, PressureSteady:
		return true
	}
	return false
}

// Coordinates identifies a location by latitude and longitude.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// coordPrecision quantizes cache-key coordinates to 4 decimal places (~11m),
// so representation drift like 39.4000001 vs 39.4 cannot create duplicate
// cache entries for the same location.
const coordPrecision = 1e4

// Quantize rounds the coordinates to the fixed cache-key precision. Applied
// consistently at cache read and write time.
func (c Coordinates) Quantize() Coordinates {
	return Coordinates{
		Latitude:  math.Round(c.Latitude*coordPrecision) / coordPrecision,
		Longitude: math.Round(c.Longitude*coordPrecision) / coordPrecision,
	}
}

// Validate checks the coordinates are on the globe.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range", c.Longitude)
	}
	return nil
}

// CardinalDirection converts wind direction degrees to an 8-point cardinal
// label.
func CardinalDirection(degrees float64) string {
	directions := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	index := int(math.Round(degrees/45)) % 8
	if index < 0 {
		index += 8
	}
	return directions[index]
}

// WeatherDay is one calendar day's observed conditions at a location. The
// tuple (latitude, longitude, date) identifies a day in the cache, with
// coordinates quantized via Coordinates.Quantize.
type WeatherDay struct {
	Latitude             float64       `json:"latitude"`
	Longitude            float64       `json:"longitude"`
	Date                 Date          `json:"date"`
	Temperature          float64       `json:"temperature"`
	FeelsLike            float64       `json:"feels_like"`
	DewPoint             float64       `json:"dew_point"`
	Humidity             float64       `json:"humidity"`
	Pressure             float64       `json:"barometric_pressure"`
	PressureTrend        PressureTrend `json:"pressure_trend"`
	WindSpeed            float64       `json:"wind_speed"`
	WindGust             *float64      `json:"wind_gust,omitempty"`
	WindDirection        string        `json:"wind_direction"`
	WindDirectionDegrees float64       `json:"wind_direction_degrees"`
	Precipitation        float64       `json:"precipitation"`
	PrecipitationType    string        `json:"precipitation_type"`
	CloudCover           float64       `json:"cloud_cover"`
	Visibility           float64       `json:"visibility"`
	MoonPhase            string        `json:"moon_phase"`
	MoonPhaseValue       float64       `json:"moon_phase_value"`
	MoonIllumination     float64       `json:"moon_illumination"`
	Sunrise              string        `json:"sunrise"`
	Sunset               string        `json:"sunset"`
}

// Coordinates returns the day's quantized location.
func (w WeatherDay) Coordinates() Coordinates {
	return Coordinates{Latitude: w.Latitude, Longitude: w.Longitude}.Quantize()
}

// TemperatureTarget is a tagged temperature constraint: either an absolute
// point value or an inclusive [Min, Max] range, never both. Keeping the two
// shapes mutually exclusive means only one temperature scoring rule ever
// fires for a query.
type TemperatureTarget struct {
	Point *float64 `json:"point,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Validate rejects targets that specify both a point and a range, or a
// half-open range.
func (t TemperatureTarget) Validate() error {
	hasRange := t.Min != nil || t.Max != nil
	if t.Point != nil && hasRange {
		return fmt.Errorf("temperature target cannot combine a point value with a range")
	}
	if hasRange && (t.Min == nil || t.Max == nil) {
		return fmt.Errorf("temperature range requires both min and max")
	}
	if t.Min != nil && t.Max != nil && *t.Max < *t.Min {
		return fmt.Errorf("temperature range max %f below min %f", *t.Max, *t.Min)
	}
	if t.Point == nil && !hasRange {
		return fmt.Errorf("temperature target is empty")
	}
	return nil
}

// TargetConditions is a partially specified pattern-match query. Nil fields
// do not constrain matching. Constructed per query, never persisted.
type TargetConditions struct {
	Temperature   *TemperatureTarget `json:"temperature,omitempty"`
	Pressure      *float64           `json:"pressure,omitempty"`
	PressureTrend *PressureTrend     `json:"pressure_trend,omitempty"`
	WindSpeed     *float64           `json:"wind_speed,omitempty"`
	MoonPhase     *string            `json:"moon_phase,omitempty"`
}

// Validate checks the specified fields for internal consistency.
func (t TargetConditions) Validate() error {
	if t.Temperature != nil {
		if err := t.Temperature.Validate(); err != nil {
			return err
		}
	}
	if t.PressureTrend != nil && !t.PressureTrend.Valid() {
		return fmt.Errorf("unknown pressure trend %q", *t.PressureTrend)
	}
	return nil
}

// MatchConditions is the snapshot of a historical day's fields carried on a
// match result.
type MatchConditions struct {
	Temperature   float64       `json:"temperature"`
	FeelsLike     float64       `json:"feels_like"`
	DewPoint      float64       `json:"dew_point"`
	Pressure      float64       `json:"pressure"`
	PressureTrend PressureTrend `json:"pressure_trend"`
	WindSpeed     float64       `json:"wind_speed"`
	WindDirection string        `json:"wind_direction"`
	MoonPhase     string        `json:"moon_phase"`
	Humidity      float64       `json:"humidity"`
	Precipitation float64       `json:"precipitation"`
	CloudCover    float64       `json:"cloud_cover"`
}

// HistoricalMatch is a scored pairing of one WeatherDay with a
// TargetConditions query. Produced fresh per query, ordered by MatchScore
// descending. Hunted is populated by cross-referencing the hunt-log store.
type HistoricalMatch struct {
	Date       Date            `json:"date"`
	Conditions MatchConditions `json:"conditions"`
	MatchScore float64         `json:"match_score"`
	Hunted     bool            `json:"hunted"`
}
