// Package store defines the persistence interfaces consumed by the service
// layer. Concrete implementations live in store/postgres.
package store

import (
	"context"

	"github.com/hunt-wet/hunt-intel-backend/types"
)

// WeatherCacheStore is the local cache of historical weather days, keyed by
// (latitude, longitude, date) with coordinates quantized by the caller.
type WeatherCacheStore interface {
	// GetCachedDays returns every stored day for the location whose date
	// falls within the range, ordered by date ascending.
	GetCachedDays(ctx context.Context, coords types.Coordinates, r types.DateRange) ([]types.WeatherDay, error)

	// UpsertDays writes the days for the location, overwriting any existing
	// record for the same (latitude, longitude, date) key. Refetching a date
	// is safe and simply refreshes the stored value.
	UpsertDays(ctx context.Context, coords types.Coordinates, days []types.WeatherDay) error
}

// HuntLogStore persists user hunt logs with their environmental snapshots.
type HuntLogStore interface {
	// InsertHunt stores a complete hunt log and returns its ID.
	InsertHunt(ctx context.Context, log *types.HuntLog) (string, error)

	// ListHunts returns a user's hunts, newest first. Species filters when
	// non-empty; limit caps the result size.
	ListHunts(ctx context.Context, userID, species string, limit int) ([]types.HuntLog, error)

	// GetStats aggregates a user's hunts into success statistics. Species
	// filters when non-empty.
	GetStats(ctx context.Context, userID, species string) (types.HuntStats, error)

	// HuntedDates returns the set of dates within the range on which any
	// hunt was logged at the location.
	HuntedDates(ctx context.Context, coords types.Coordinates, r types.DateRange) (map[string]bool, error)
}
