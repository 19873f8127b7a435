package types

import (
	"fmt"
	"time"
)

// HuntOutcome classifies how a logged hunt ended.
type HuntOutcome string

const (
	HuntSuccess  HuntOutcome = "success"
	HuntFailure  HuntOutcome = "failure"
	HuntScouting HuntOutcome = "scouting"
)

// Valid reports whether the outcome is one of the known labels.
func (o HuntOutcome) Valid() bool {
	switch o {
	case HuntSuccess, HuntFailure, HuntScouting:
		return true
	}
	return false
}

// HuntLogInput is the user-supplied portion of a hunt log.
type HuntLogInput struct {
	UserID        string      `json:"user_id" binding:"required"`
	HuntDate      Date        `json:"hunt_date" binding:"required"`
	LocationName  string      `json:"location_name"`
	// No required binding on coordinates: 0.0 is a legal value and gin
	// treats required zero values as missing. Validate checks the ranges.
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	Species       string      `json:"species" binding:"required"`
	Outcome       HuntOutcome `json:"outcome" binding:"required"`
	AnimalsSeen   int         `json:"animals_seen"`
	AnimalsKilled int         `json:"animals_killed"`
	Notes         string      `json:"notes"`
	Season        string      `json:"season"`
	HuntingMethod string      `json:"hunting_method"`
}

// Validate checks the input fields the binding tags cannot express.
func (in HuntLogInput) Validate() error {
	if !in.Outcome.Valid() {
		return fmt.Errorf("unknown hunt outcome %q", in.Outcome)
	}
	coords := Coordinates{Latitude: in.Latitude, Longitude: in.Longitude}
	return coords.Validate()
}

// HuntLog is a logged hunt with its full environmental snapshot, captured at
// log time from the weather cache pipeline and the lunar calculator.
type HuntLog struct {
	ID string `json:"id"`
	HuntLogInput

	// Weather snapshot
	Temperature   float64       `json:"temperature"`
	FeelsLike     float64       `json:"feels_like"`
	Humidity      float64       `json:"humidity"`
	DewPoint      float64       `json:"dew_point"`
	Pressure      float64       `json:"barometric_pressure"`
	PressureTrend PressureTrend `json:"pressure_trend"`
	WindSpeed     float64       `json:"wind_speed"`
	WindGust      *float64      `json:"wind_gust,omitempty"`
	WindDirection string        `json:"wind_direction"`
	WindDegrees   float64       `json:"wind_degrees"`
	Precipitation float64       `json:"precipitation"`
	PrecipType    string        `json:"precipitation_type"`
	CloudCover    float64       `json:"cloud_cover"`
	Visibility    float64       `json:"visibility"`

	// Sun and lunar
	Sunrise          string  `json:"sunrise"`
	Sunset           string  `json:"sunset"`
	MoonPhase        string  `json:"moon_phase"`
	MoonIllumination float64 `json:"moon_illumination"`
	SolunarScore     int     `json:"solunar_score"`

	CreatedAt time.Time `json:"created_at"`
}

// HuntStats aggregates a user's logged hunts.
type HuntStats struct {
	TotalHunts      int     `json:"total_hunts"`
	SuccessfulHunts int     `json:"successful_hunts"`
	SuccessRate     float64 `json:"success_rate"`
	AnimalsSeen     int     `json:"animals_seen_total"`
	AnimalsKilled   int     `json:"animals_killed_total"`
}
