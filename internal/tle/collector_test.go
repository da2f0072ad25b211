package tle

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

const (
	csoName  = "CSO-2"
	csoLine1 = "1 47305U 20086A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	csoLine2 = "2 47305  98.0000 247.4627 0006703 130.5360 325.0288 14.80000000563537"
)

// catalogHandler serves per-catalog-number TLE bodies keyed by CATNR.
func catalogHandler(bodies map[string]string, status map[string]int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("CATNR")
		if code, ok := status[id]; ok {
			w.WriteHeader(code)
			return
		}
		body, ok := bodies[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}
}

func newTestCollector(serverURL string, archiver Archiver) *Collector {
	fetcher := NewFetcher(serverURL, 5*time.Second, false)
	return NewCollector(fetcher, archiver, testLogger)
}

// TestCollectorOrderedRecords verifies the happy path: one record per
// identifier, in configured order, tagged with the requested number.
func TestCollectorOrderedRecords(t *testing.T) {
	server := httptest.NewServer(catalogHandler(map[string]string{
		"48268": csoName + "\n" + csoLine1 + "\n" + csoLine2 + "\n",
		"49070": testBody,
	}, nil))
	defer server.Close()

	records := newTestCollector(server.URL, nil).Collect(context.Background(), []int{48268, 49070})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].CatNr != 48268 || records[1].CatNr != 49070 {
		t.Errorf("unexpected order: %d, %d", records[0].CatNr, records[1].CatNr)
	}
	if records[0].Name != csoName {
		t.Errorf("name = %q, want %q", records[0].Name, csoName)
	}
	if records[1].Line2 != issLine2 {
		t.Errorf("line2 = %q, want %q", records[1].Line2, issLine2)
	}
}

// TestCollectorSkipsHTTPError verifies that a non-200 for one identifier
// does not halt processing of subsequent identifiers.
func TestCollectorSkipsHTTPError(t *testing.T) {
	server := httptest.NewServer(catalogHandler(
		map[string]string{"49070": testBody},
		map[string]int{"48268": http.StatusServiceUnavailable},
	))
	defer server.Close()

	records := newTestCollector(server.URL, nil).Collect(context.Background(), []int{48268, 49070})
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].CatNr != 49070 {
		t.Errorf("catNr = %d, want 49070", records[0].CatNr)
	}
}

// TestCollectorSkipsShortBody verifies that a body with fewer than three
// non-empty lines yields no record for that identifier only.
func TestCollectorSkipsShortBody(t *testing.T) {
	server := httptest.NewServer(catalogHandler(map[string]string{
		"48268": "NO GP DATA FOUND\n",
		"49070": testBody,
	}, nil))
	defer server.Close()

	records := newTestCollector(server.URL, nil).Collect(context.Background(), []int{48268, 49070})
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].CatNr != 49070 {
		t.Errorf("catNr = %d, want 49070", records[0].CatNr)
	}
}

// TestCollectorAllFail verifies that a fully failed run still returns a
// non-nil empty slice.
func TestCollectorAllFail(t *testing.T) {
	server := httptest.NewServer(catalogHandler(nil, nil)) // 404 for everything
	defer server.Close()

	records := newTestCollector(server.URL, nil).Collect(context.Background(), []int{48268, 49070})
	if records == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
}

// TestCollectorTransportFailure verifies that an unreachable catalog does
// not abort the run.
func TestCollectorTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	records := newTestCollector(server.URL, nil).Collect(context.Background(), []int{48268})
	if len(records) != 0 {
		t.Fatalf("expected 0 records, got %d", len(records))
	}
}

type recordingArchiver struct {
	calls map[int][]byte
}

func (a *recordingArchiver) Archive(catNr int, body []byte) error {
	a.calls[catNr] = body
	return nil
}

// TestCollectorArchivesRawBodies verifies that the raw body of each
// successful fetch reaches the archiver, and failed fetches do not.
func TestCollectorArchivesRawBodies(t *testing.T) {
	server := httptest.NewServer(catalogHandler(
		map[string]string{"49070": testBody},
		map[string]int{"48268": http.StatusBadGateway},
	))
	defer server.Close()

	archiver := &recordingArchiver{calls: map[int][]byte{}}
	newTestCollector(server.URL, archiver).Collect(context.Background(), []int{48268, 49070})

	if _, ok := archiver.calls[48268]; ok {
		t.Error("failed fetch should not be archived")
	}
	if got := string(archiver.calls[49070]); got != testBody {
		t.Errorf("archived body mismatch: got %d bytes, want %d", len(got), len(testBody))
	}
}
