// Manual verification tool for the Visual Crossing integration. Fetches a
// short historical range and current conditions for a known location and
// prints what the pipeline would derive from them.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hunt-wet/hunt-intel-backend/config"
	"github.com/hunt-wet/hunt-intel-backend/pkg/lunar"
	"github.com/hunt-wet/hunt-intel-backend/pkg/visualcrossing"
	"github.com/hunt-wet/hunt-intel-backend/types"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := visualcrossing.NewClient(
		cfg.ExternalServices.VisualCrossingKey,
		cfg.ExternalServices.VisualCrossingBaseURL,
		10*time.Second,
		visualcrossing.RetryPolicy{Attempts: 1},
	)

	// Towson, MD
	coords := types.Coordinates{Latitude: 39.4143, Longitude: -76.5761}
	end := types.DateOf(time.Now().AddDate(0, 0, -1))
	start := end.AddDays(-4)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	days, err := client.Timeline(ctx, coords, types.DateRange{Start: start, End: end})
	if err != nil {
		log.Fatalf("Timeline fetch failed: %v", err)
	}

	fmt.Printf("Fetched %d days for %.4f,%.4f\n", len(days), coords.Latitude, coords.Longitude)
	for _, d := range days {
		fmt.Printf("  %s  %5.1f°F  %7.1fmb (%s)  wind %4.1f %s  moon %s\n",
			d.Datetime,
			d.Temp,
			d.Pressure,
			types.DerivePressureTrend(d.Pressure),
			d.WindSpeed,
			types.CardinalDirection(d.WindDir),
			lunar.PhaseName(d.MoonPhase))
	}

	current, err := client.Current(ctx, coords)
	if err != nil {
		log.Fatalf("Current conditions fetch failed: %v", err)
	}

	phase := lunar.PhaseName(current.MoonPhase)
	fmt.Printf("\nCurrent: %.1f°F, %.1fmb (%s), moon %s, solunar %d/10\n",
		current.Temp,
		current.Pressure,
		types.DerivePressureTrend(current.Pressure),
		phase,
		lunar.SolunarScore(phase))
}
