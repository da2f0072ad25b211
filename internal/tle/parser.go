package tle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidData reports a response body with fewer than the three
// non-empty lines a named TLE set requires.
var ErrInvalidData = errors.New("invalid TLE data")

// ExtractRecord splits body on newlines, trims each line, drops empty
// lines, and takes the first three remaining lines as name, line1 and
// line2. A body with fewer than three usable lines yields ErrInvalidData
// and no partial record.
func ExtractRecord(body string, catNr int) (Record, error) {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 3 {
		return Record{}, fmt.Errorf("%w for catalog %d: %d non-empty lines, need 3", ErrInvalidData, catNr, len(lines))
	}
	return Record{
		Name:  lines[0],
		Line1: lines[1],
		Line2: lines[2],
		CatNr: catNr,
	}, nil
}

// EpochOf extracts the element set epoch from line1 cols 19-32 in
// YYDDD.DDDDDDDD format. Year 00-56 → 2000s, 57-99 → 1900s.
// The epoch is informational; a record is never rejected over it.
func EpochOf(line1 string) (time.Time, error) {
	if len(line1) < 32 {
		return time.Time{}, fmt.Errorf("line1 too short for epoch field: %d chars", len(line1))
	}
	s := strings.TrimSpace(line1[18:32])
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("epoch string too short: %q", s)
	}

	year, err := strconv.Atoi(s[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch year %q: %w", s[:2], err)
	}
	if year >= 57 {
		year += 1900
	} else {
		year += 2000
	}

	dayOfYear, err := strconv.ParseFloat(s[2:], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch day %q: %w", s[2:], err)
	}

	// dayOfYear is 1-based: day 1 = Jan 1.
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return t.Add(time.Duration((dayOfYear - 1) * float64(24*time.Hour))), nil
}
