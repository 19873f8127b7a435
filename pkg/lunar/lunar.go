// Package lunar derives moon phase names and solunar hunting-activity scores
// from the fractional moon phase value reported by the weather provider
// (0.0 = new moon, 0.5 = full moon, wrapping back to new at 1.0).
package lunar

import (
	"fmt"
	"strings"
)

// The eight named phases.
const (
	PhaseNew            = "New Moon"
	PhaseWaxingCrescent = "Waxing Crescent"
	PhaseFirstQuarter   = "First Quarter"
	PhaseWaxingGibbous  = "Waxing Gibbous"
	PhaseFull           = "Full Moon"
	PhaseWaningGibbous  = "Waning Gibbous"
	PhaseLastQuarter    = "Last Quarter"
	PhaseWaningCrescent = "Waning Crescent"
)

// PhaseName converts a fractional moon phase value to its named phase.
// Exact quarter values map to the cardinal phases; everything between maps to
// the crescent/gibbous phase it falls inside.
func PhaseName(phase float64) string {
	switch {
	case phase == 0:
		return PhaseNew
	case phase < 0.25:
		return PhaseWaxingCrescent
	case phase == 0.25:
		return PhaseFirstQuarter
	case phase < 0.5:
		return PhaseWaxingGibbous
	case phase == 0.5:
		return PhaseFull
	case phase < 0.75:
		return PhaseWaningGibbous
	case phase == 0.75:
		return PhaseLastQuarter
	default:
		return PhaseWaningCrescent
	}
}

// Illumination approximates the illuminated fraction as a percentage from the
// phase value.
func Illumination(phase float64) float64 {
	return phase * 100
}

// IsWaxing reports whether a named phase is on the waxing side of the cycle.
func IsWaxing(phaseName string) bool {
	return strings.Contains(phaseName, "Waxing")
}

// SamePolarity reports whether two named phases share the waxing/waning side
// of the cycle. Used for partial moon-phase match credit.
func SamePolarity(a, b string) bool {
	return IsWaxing(a) == IsWaxing(b)
}

// SolunarPeriods are the peak (major) and secondary (minor) activity windows
// for a day.
type SolunarPeriods struct {
	Major []string `json:"major_periods"`
	Minor []string `json:"minor_periods"`
}

// SolunarScore rates expected animal activity 1-10 from the named phase.
// New and full moons drive the highest activity, quarter moons are good, and
// waxing phases edge out waning ones for feeding movement.
func SolunarScore(phaseName string) int {
	score := 5

	if phaseName == PhaseNew || phaseName == PhaseFull {
		score += 3
	}
	if strings.Contains(phaseName, "Quarter") {
		score += 2
	}
	if IsWaxing(phaseName) {
		score++
	}

	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// Periods returns the solunar activity windows for the named phase. This is a
// simplified table; real solunar calculations use moon transit times specific
// to the location.
func Periods(phaseName string) SolunarPeriods {
	periods := SolunarPeriods{
		Major: []string{"5:30 AM - 7:30 AM", "5:30 PM - 7:30 PM"},
		Minor: []string{"11:30 AM - 12:30 PM", "11:30 PM - 12:30 AM"},
	}

	// Full and new moons shift the peak windows.
	switch phaseName {
	case PhaseFull:
		periods.Major = []string{"6:00 AM - 8:00 AM", "6:00 PM - 8:00 PM"}
	case PhaseNew:
		periods.Major = []string{"5:00 AM - 7:00 AM", "5:00 PM - 7:00 PM"}
	}

	return periods
}

// Recommendation turns a solunar score into a hunter-facing summary line.
func Recommendation(phaseName string, score int) string {
	switch {
	case score >= 8:
		return fmt.Sprintf("Excellent hunting conditions - %s creates peak animal activity", phaseName)
	case score >= 6:
		return fmt.Sprintf("Good hunting conditions - %s encourages animal movement", phaseName)
	case score >= 4:
		return fmt.Sprintf("Fair hunting conditions - %s provides moderate activity", phaseName)
	default:
		return fmt.Sprintf("Poor hunting conditions - %s may reduce animal activity", phaseName)
	}
}
