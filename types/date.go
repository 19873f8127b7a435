package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component, normalized to UTC midnight.
// It marshals to and from ISO "YYYY-MM-DD" strings.
type Date struct {
	time.Time
}

// ParseDate parses an ISO calendar date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t.UTC()}, nil
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(days int) Date {
	return Date{d.Time.AddDate(0, 0, days)}
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler, emitting "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler, accepting "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive calendar date range [Start, End].
// It is both the query envelope and the unit of missing cache gaps.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Validate checks that the range is well formed.
func (r DateRange) Validate() error {
	if r.End.Before(r.Start.Time) {
		return fmt.Errorf("date range end %s is before start %s", r.End, r.Start)
	}
	return nil
}

// Contains reports whether the date falls inside the range, inclusive.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start.Time) && !d.After(r.End.Time)
}

// Days enumerates every date in the range, ascending.
func (r DateRange) Days() []Date {
	var days []Date
	for d := r.Start; !d.After(r.End.Time); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
