// Package output reads and writes the satellite document consumed by the
// front-end: a JSON array of records with 2-space indentation, overwritten
// on every run.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/manolides/satellite-tracker/internal/tle"
)

// Write serializes records as an indented JSON array and overwrites path.
// An empty or nil slice still produces a valid empty array document.
// Identical input produces byte-identical output.
func Write(path string, records []tle.Record) error {
	if records == nil {
		records = []tle.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads a document previously written by Write.
func Load(path string) ([]tle.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []tle.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}
