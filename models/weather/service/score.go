package service

import (
	"math"

	"github.com/hunt-wet/hunt-intel-backend/pkg/lunar"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

// Factor weights. They sum to 100, so a day matching every specified factor
// exactly scores 100.
const (
	weightPressure      = 30.0
	weightPressureTrend = 25.0
	weightTemperature   = 20.0
	weightMoonPhase     = 15.0
	weightWind          = 10.0
)

// Graduated tolerance bands for the scorer. Partial credit shrinks as the
// difference grows; outside the widest band a factor contributes nothing.
const (
	tempFullBand    = 5.0
	tempNearBand    = 10.0
	tempFarBand     = 15.0
	tempRangeSlack  = 5.0
	pressureFull    = 0.3
	pressureNear    = 0.6
	pressureFar     = 1.0
	windFullBand    = 5.0
	windNearBand    = 10.0
	trendSteadyPart = 0.4
)

// Hard gates for the pre-filter. These are coarser than the scoring bands:
// the filter decides whether a day is a plausible candidate at all, the score
// ranks the survivors.
const (
	filterTempWindow     = 10.0
	filterPressureWindow = 0.5
)

// passesFilter reports whether a day survives the categorical pre-filter. Any
// specified target field that categorically disagrees excludes the day
// entirely rather than merely scoring it low.
func passesFilter(day types.WeatherDay, target types.TargetConditions) bool {
	if target.PressureTrend != nil && day.PressureTrend != *target.PressureTrend {
		return false
	}

	if target.Temperature != nil {
		t := target.Temperature
		if t.Point != nil && math.Abs(day.Temperature-*t.Point) > filterTempWindow {
			return false
		}
		if t.Min != nil && t.Max != nil && (day.Temperature < *t.Min || day.Temperature > *t.Max) {
			return false
		}
	}

	if target.Pressure != nil && day.Pressure != 0 {
		if math.Abs(day.Pressure-*target.Pressure) > filterPressureWindow {
			return false
		}
	}

	if target.MoonPhase != nil && day.MoonPhase != *target.MoonPhase {
		return false
	}

	return true
}

// scoreDay computes the 0-100 additive weighted similarity between one day
// and the target conditions. Unspecified target fields contribute nothing.
func scoreDay(day types.WeatherDay, target types.TargetConditions) float64 {
	score := 0.0

	if target.Temperature != nil {
		score += temperatureScore(day.Temperature, *target.Temperature)
	}

	if target.Pressure != nil && day.Pressure != 0 {
		diff := math.Abs(day.Pressure - *target.Pressure)
		switch {
		case diff <= pressureFull:
			score += weightPressure
		case diff <= pressureNear:
			score += weightPressure * 0.7
		case diff <= pressureFar:
			score += weightPressure * 0.4
		}
	}

	if target.PressureTrend != nil {
		want := *target.PressureTrend
		switch {
		case day.PressureTrend == want:
			score += weightPressureTrend
		case day.PressureTrend == types.PressureSteady &&
			(want == types.PressureFalling || want == types.PressureRising):
			score += weightPressureTrend * trendSteadyPart
		}
	}

	if target.WindSpeed != nil {
		diff := math.Abs(day.WindSpeed - *target.WindSpeed)
		switch {
		case diff <= windFullBand:
			score += weightWind
		case diff <= windNearBand:
			score += weightWind * 0.5
		}
	}

	if target.MoonPhase != nil {
		switch {
		case day.MoonPhase == *target.MoonPhase:
			score += weightMoonPhase
		case lunar.SamePolarity(day.MoonPhase, *target.MoonPhase):
			score += weightMoonPhase * 0.5
		}
	}

	return score
}

// temperatureScore applies exactly one rule depending on the target shape:
// a point target uses distance bands, a range target checks containment with
// slack near the bounds.
func temperatureScore(temp float64, target types.TemperatureTarget) float64 {
	if target.Point != nil {
		diff := math.Abs(temp - *target.Point)
		switch {
		case diff <= tempFullBand:
			return weightTemperature
		case diff <= tempNearBand:
			return weightTemperature * 0.7
		case diff <= tempFarBand:
			return weightTemperature * 0.4
		}
		return 0
	}

	if target.Min != nil && target.Max != nil {
		if temp >= *target.Min && temp <= *target.Max {
			return weightTemperature
		}
		if temp >= *target.Min-tempRangeSlack && temp <= *target.Max+tempRangeSlack {
			return weightTemperature * 0.6
		}
	}

	return 0
}
