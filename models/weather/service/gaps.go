package service

import (
	"sort"

	"github.com/hunt-wet/hunt-intel-backend/types"
)

// MissingRanges computes the minimal list of maximal contiguous sub-ranges of
// requested that contain no cached date. Cached dates outside requested are
// ignored. The union of the returned gaps plus the cached dates covers
// requested exactly once per date.
func MissingRanges(requested types.DateRange, cached []types.Date) []types.DateRange {
	inRange := make([]types.Date, 0, len(cached))
	for _, d := range cached {
		if requested.Contains(d) {
			inRange = append(inRange, d)
		}
	}

	if len(inRange) == 0 {
		return []types.DateRange{requested}
	}

	sort.Slice(inRange, func(i, j int) bool {
		return inRange[i].Before(inRange[j].Time)
	})

	var gaps []types.DateRange

	if inRange[0].After(requested.Start.Time) {
		gaps = append(gaps, types.DateRange{
			Start: requested.Start,
			End:   inRange[0].AddDays(-1),
		})
	}

	for i := 0; i < len(inRange)-1; i++ {
		if inRange[i].DaysUntil(inRange[i+1]) > 1 {
			gaps = append(gaps, types.DateRange{
				Start: inRange[i].AddDays(1),
				End:   inRange[i+1].AddDays(-1),
			})
		}
	}

	last := inRange[len(inRange)-1]
	if last.Before(requested.End.Time) {
		gaps = append(gaps, types.DateRange{
			Start: last.AddDays(1),
			End:   requested.End,
		})
	}

	return gaps
}
