package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/manolides/satellite-tracker/internal/output"
	"github.com/manolides/satellite-tracker/internal/track"
)

func main() {
	file := flag.String("file", "satellites.json", "satellite document produced by satfetch")
	flag.Parse()

	records, err := output.Load(*file)
	if err != nil {
		fmt.Println("ERROR reading satellite document:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d satellites from %s\n", len(records), *file)

	now := time.Now().UTC()
	fmt.Printf("Positions at %s\n", now.Format(time.RFC3339))

	for _, rec := range records {
		prop, err := track.NewPropagator(rec.Line1, rec.Line2, rec.CatNr)
		if err != nil {
			fmt.Printf("  %s (catalog %d): ERROR %v\n", rec.Name, rec.CatNr, err)
			continue
		}
		pos, err := prop.PositionAt(now)
		if err != nil {
			fmt.Printf("  %s (catalog %d): ERROR %v\n", rec.Name, rec.CatNr, err)
			continue
		}
		fmt.Printf("  %s (catalog %d): lat=%.4f° lon=%.4f° alt=%.1f km\n",
			rec.Name, rec.CatNr, pos.LatDeg, pos.LonDeg, pos.AltKm)
	}
}
