// Package track computes geodetic satellite positions from element sets
// using the SGP4 model.
package track

import (
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// Propagator wraps the go-satellite SGP4 model for a single element set.
//
// go-satellite calls log.Fatal on malformed TLE input, so lines are
// validated before they reach the library. Propagate() takes the satellite
// by value so SGP4 error codes are not visible afterwards; failures are
// detected by checking the output for NaN/Inf and unreasonable magnitudes.
type Propagator struct {
	sat   satellite.Satellite
	catNr int
}

// Geodetic is a position in degrees latitude and longitude with altitude
// in kilometers.
type Geodetic struct {
	LatDeg float64
	LonDeg float64
	AltKm  float64
}

// NewPropagator creates a Propagator from TLE lines. Returns an error if
// the lines fail basic format validation or the SGP4 model cannot
// initialize.
func NewPropagator(line1, line2 string, catNr int) (*Propagator, error) {
	if err := validateLines(line1, line2); err != nil {
		return nil, fmt.Errorf("invalid TLE for catalog %d: %w", catNr, err)
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed for catalog %d: code=%d %s", catNr, sat.Error, sat.ErrorStr)
	}
	return &Propagator{sat: sat, catNr: catNr}, nil
}

// validateLines performs basic format validation on TLE lines before they
// are handed to the library.
func validateLines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("line1 must start with '1', got '%c'", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("line2 must start with '2', got '%c'", line2[0])
	}
	return nil
}

// PositionAt propagates the element set to t and converts the result to
// geodetic coordinates.
func (p *Propagator) PositionAt(t time.Time) (Geodetic, error) {
	t = t.UTC()
	pos, _ := satellite.Propagate(p.sat, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())

	if math.IsNaN(pos.X) || math.IsNaN(pos.Y) || math.IsNaN(pos.Z) ||
		math.IsInf(pos.X, 0) || math.IsInf(pos.Y, 0) || math.IsInf(pos.Z, 0) {
		return Geodetic{}, fmt.Errorf("sgp4 propagation failed for catalog %d: output is NaN/Inf", p.catNr)
	}

	// Position magnitude should be between ~6200km (surface) and ~50000km.
	mag := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if mag < 6200.0 || mag > 50000.0 {
		return Geodetic{}, fmt.Errorf("sgp4 propagation failed for catalog %d: unreasonable position magnitude %.1f km", p.catNr, mag)
	}

	gmst := satellite.GSTimeFromDate(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	altKm, _, ll := satellite.ECIToLLA(pos, gmst)
	deg := satellite.LatLongDeg(ll)

	return Geodetic{
		LatDeg: deg.Latitude,
		LonDeg: deg.Longitude,
		AltKm:  altKm,
	}, nil
}
