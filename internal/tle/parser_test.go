package tle

import (
	"errors"
	"testing"
	"time"
)

const (
	issName  = "ISS (ZARYA)"
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

func TestExtractRecord(t *testing.T) {
	body := issName + "\r\n" + issLine1 + "\r\n" + issLine2 + "\r\n"

	rec, err := ExtractRecord(body, 25544)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != issName {
		t.Errorf("name = %q, want %q", rec.Name, issName)
	}
	if rec.Line1 != issLine1 {
		t.Errorf("line1 = %q, want %q", rec.Line1, issLine1)
	}
	if rec.Line2 != issLine2 {
		t.Errorf("line2 = %q, want %q", rec.Line2, issLine2)
	}
	if rec.CatNr != 25544 {
		t.Errorf("catNr = %d, want 25544", rec.CatNr)
	}
}

// TestExtractRecordSkipsBlankAndPaddedLines verifies that surrounding
// whitespace and interleaved blank lines do not affect extraction.
func TestExtractRecordSkipsBlankAndPaddedLines(t *testing.T) {
	body := "\n\n  " + issName + "  \n\n " + issLine1 + " \n\n" + issLine2 + "\n\n"

	rec, err := ExtractRecord(body, 25544)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != issName || rec.Line1 != issLine1 || rec.Line2 != issLine2 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestExtractRecordTooFewLines(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"whitespace only", "  \n\r\n  \n"},
		{"one line", issName + "\n"},
		{"two lines", issName + "\n" + issLine1 + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractRecord(tt.body, 25544)
			if !errors.Is(err, ErrInvalidData) {
				t.Errorf("expected ErrInvalidData, got %v", err)
			}
		})
	}
}

func TestEpochOf(t *testing.T) {
	tests := []struct {
		name  string
		line1 string
		want  time.Time
	}{
		{
			// 08264.51782528: day 264 of 2008 plus fractional day.
			name:  "ISS reference epoch",
			line1: issLine1,
			want:  time.Date(2008, 9, 20, 12, 25, 40, 0, time.UTC),
		},
		{
			// Pivot year 57 maps to 1957.
			name:  "pivot year",
			line1: "1 00001U 57001A   57001.00000000  .00000000  00000-0  00000-0 0  0000",
			want:  time.Date(1957, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EpochOf(tt.line1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := got.Sub(tt.want); diff < -time.Second || diff > time.Second {
				t.Errorf("epoch = %v, want %v (±1s)", got, tt.want)
			}
		})
	}
}

func TestEpochOfShortLine(t *testing.T) {
	if _, err := EpochOf("1 25544U"); err == nil {
		t.Fatal("expected error for short line1, got nil")
	}
}
