package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/helio/heliogo/internal/catalog"
	"github.com/helio/heliogo/internal/engine"
	"github.com/helio/heliogo/internal/ephemeris"
	"github.com/helio/heliogo/internal/epoch"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	at := time.Now().UTC()
	if len(os.Args) > 1 {
		t, err := time.Parse("2006-01-02", os.Args[1])
		if err != nil {
			t, err = time.Parse(time.RFC3339, os.Args[1])
		}
		if err != nil {
			fmt.Println("ERROR parsing date (want YYYY-MM-DD or RFC3339):", err)
			os.Exit(1)
		}
		at = t.UTC()
	}

	var model ephemeris.Model
	if dir := os.Getenv("HELIOGO_VSOP87_DIR"); dir != "" {
		vsop := ephemeris.NewVSOP87Model(dir)
		if err := vsop.Probe(); err != nil {
			fmt.Println("WARNING: VSOP87 data not loadable, using mean elements:", err)
			model = ephemeris.NewMeanElementsModel()
		} else {
			model = vsop
		}
	} else {
		model = ephemeris.NewMeanElementsModel()
	}

	adapter := ephemeris.NewAdapter(model, logger)
	cache := ephemeris.NewLongitudeCache(adapter, ephemeris.DefaultCacheConfig(), logger)
	eng := engine.New(catalog.Default(), cache, logger)

	days, err := epoch.DaysSince(at)
	if err != nil {
		fmt.Println("ERROR computing epoch offset:", err)
		os.Exit(1)
	}

	fmt.Printf("Positions at %s (%.3f days since J2000)\n\n", at.Format(time.RFC3339), days)
	fmt.Printf("%-10s %12s %12s %10s %10s %10s\n", "body", "lon_deg", "rot_rad", "x", "y", "z")

	for _, b := range catalog.Bodies() {
		p := eng.PositionAt(b, at)
		fmt.Printf("%-10s %12.4f %12.4f %10.4f %10.4f %10.4f\n",
			p.Body.String(), p.LongitudeDeg, p.RotationRad, p.X, p.Y, p.Z)
	}

	fmt.Printf("\nCache entries after query: %d\n", cache.Size())
}
