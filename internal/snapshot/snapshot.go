// Package snapshot archives raw catalog responses on disk, one timestamped
// file per successful fetch, pruned to a per-satellite file budget.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Store manages snapshot files in a single directory.
type Store struct {
	dir      string
	maxFiles int
	now      func() time.Time
}

// New creates a Store that writes to dir and keeps at most maxFiles
// snapshots per catalog number.
func New(dir string, maxFiles int) *Store {
	if maxFiles <= 0 {
		maxFiles = 5
	}
	return &Store{
		dir:      dir,
		maxFiles: maxFiles,
		now:      time.Now,
	}
}

// Archive saves body to a timestamped file for catNr and prunes older
// snapshots of the same satellite beyond the file budget. Timestamps carry
// nanosecond precision so archives within the same second never collide.
func (s *Store) Archive(catNr int, body []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	name := fmt.Sprintf("tle_%d_%d.txt", catNr, s.now().UnixNano())
	if err := os.WriteFile(filepath.Join(s.dir, name), body, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return s.prune(catNr)
}

// LoadLatest reads the newest snapshot for catNr by the timestamp in the
// filename. Returns the body, the timestamp, and any error.
func (s *Store) LoadLatest(catNr int) ([]byte, time.Time, error) {
	files, err := s.list(catNr)
	if err != nil {
		return nil, time.Time{}, err
	}
	if len(files) == 0 {
		return nil, time.Time{}, fmt.Errorf("no snapshots found for catalog %d", catNr)
	}

	// Files are sorted oldest first; take the last one.
	latest := files[len(files)-1]
	body, err := os.ReadFile(filepath.Join(s.dir, latest.name))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading snapshot: %w", err)
	}
	return body, latest.ts, nil
}

type snapshotFile struct {
	name string
	ts   time.Time
}

func (s *Store) list(catNr int) ([]snapshotFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing snapshot dir: %w", err)
	}

	prefix := fmt.Sprintf("tle_%d_", catNr)
	var files []snapshotFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".txt") {
			continue
		}
		tsStr := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".txt")
		nanos, err := strconv.ParseInt(tsStr, 10, 64)
		if err != nil {
			continue
		}
		files = append(files, snapshotFile{name: name, ts: time.Unix(0, nanos)})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ts.Before(files[j].ts)
	})
	return files, nil
}

func (s *Store) prune(catNr int) error {
	files, err := s.list(catNr)
	if err != nil {
		return err
	}
	if len(files) <= s.maxFiles {
		return nil
	}

	for _, f := range files[:len(files)-s.maxFiles] {
		if err := os.Remove(filepath.Join(s.dir, f.name)); err != nil {
			return fmt.Errorf("pruning snapshot %s: %w", f.name, err)
		}
	}
	return nil
}
