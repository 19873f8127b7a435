package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-10-04")
	require.NoError(t, err)
	assert.Equal(t, "2024-10-04", d.String())

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-10-04"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("10/04/2024")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.October, 30)
	assert.Equal(t, "2024-11-01", d.AddDays(2).String())
	assert.Equal(t, "2024-10-29", d.AddDays(-1).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
}

func TestDateRange(t *testing.T) {
	r := DateRange{Start: NewDate(2024, time.October, 1), End: NewDate(2024, time.October, 3)}
	require.NoError(t, r.Validate())

	days := r.Days()
	require.Len(t, days, 3)
	assert.Equal(t, "2024-10-01", days[0].String())
	assert.Equal(t, "2024-10-03", days[2].String())

	assert.True(t, r.Contains(NewDate(2024, time.October, 2)))
	assert.False(t, r.Contains(NewDate(2024, time.October, 4)))

	inverted := DateRange{Start: r.End, End: r.Start}
	assert.Error(t, inverted.Validate())

	single := DateRange{Start: r.Start, End: r.Start}
	assert.Len(t, single.Days(), 1)
}

func TestDerivePressureTrend(t *testing.T) {
	assert.Equal(t, PressureFalling, DerivePressureTrend(1005))
	assert.Equal(t, PressureSteady, DerivePressureTrend(1013))
	assert.Equal(t, PressureRising, DerivePressureTrend(1025))
	// Boundary values fall into steady.
	assert.Equal(t, PressureSteady, DerivePressureTrend(1010))
	assert.Equal(t, PressureSteady, DerivePressureTrend(1020))
}

func TestCoordinatesQuantize(t *testing.T) {
	a := Coordinates{Latitude: 39.4000001, Longitude: -76.5760999}.Quantize()
	b := Coordinates{Latitude: 39.4, Longitude: -76.5761}.Quantize()
	assert.Equal(t, b, a)
}

func TestCardinalDirection(t *testing.T) {
	assert.Equal(t, "N", CardinalDirection(0))
	assert.Equal(t, "NE", CardinalDirection(45))
	assert.Equal(t, "S", CardinalDirection(180))
	assert.Equal(t, "NW", CardinalDirection(315))
	assert.Equal(t, "N", CardinalDirection(359))
}

func TestTemperatureTargetValidate(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.NoError(t, TemperatureTarget{Point: f(45)}.Validate())
	assert.NoError(t, TemperatureTarget{Min: f(40), Max: f(55)}.Validate())
	assert.Error(t, TemperatureTarget{Point: f(45), Min: f(40), Max: f(55)}.Validate())
	assert.Error(t, TemperatureTarget{Min: f(40)}.Validate())
	assert.Error(t, TemperatureTarget{Min: f(55), Max: f(40)}.Validate())
	assert.Error(t, TemperatureTarget{}.Validate())
}

func TestTargetConditionsValidate(t *testing.T) {
	bad := PressureTrend("plummeting")
	tc := TargetConditions{PressureTrend: &bad}
	assert.Error(t, tc.Validate())

	good := PressureFalling
	assert.NoError(t, TargetConditions{PressureTrend: &good}.Validate())
	assert.NoError(t, TargetConditions{}.Validate())
}
