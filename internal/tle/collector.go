package tle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/manolides/satellite-tracker/internal/metrics"
)

// Archiver receives the raw body of each successful fetch. Archive failures
// are non-fatal; the Collector logs them and continues.
type Archiver interface {
	Archive(catNr int, body []byte) error
}

// Collector fetches records for an ordered list of catalog numbers.
// A failure for one catalog number never aborts processing of the others.
type Collector struct {
	fetcher  *Fetcher
	archiver Archiver
	logger   *slog.Logger
}

// NewCollector creates a Collector. archiver may be nil to disable raw
// response archiving.
func NewCollector(fetcher *Fetcher, archiver Archiver, logger *slog.Logger) *Collector {
	return &Collector{
		fetcher:  fetcher,
		archiver: archiver,
		logger:   logger,
	}
}

// Collect fetches each catalog number strictly in the given order and
// returns the records that could be extracted, in the same order. The
// result is possibly empty, never nil.
func (c *Collector) Collect(ctx context.Context, catNrs []int) []Record {
	records := make([]Record, 0, len(catNrs))

	for _, catNr := range catNrs {
		c.logger.Info("fetching TLE", "catnr", catNr, "url", c.fetcher.URL(catNr))
		metrics.IncFetchAttempt()

		body, err := c.fetcher.Fetch(ctx, catNr)
		if err != nil {
			reason := metrics.ReasonTransport
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				reason = metrics.ReasonStatus
			}
			metrics.IncFetchFailure(reason)
			c.logger.Warn("skipping catalog number", "catnr", catNr, "error", err)
			continue
		}

		if c.archiver != nil {
			if err := c.archiver.Archive(catNr, []byte(body)); err != nil {
				c.logger.Warn("archiving raw response", "catnr", catNr, "error", err)
			}
		}

		rec, err := ExtractRecord(body, catNr)
		if err != nil {
			metrics.IncFetchFailure(metrics.ReasonInvalidData)
			c.logger.Warn("skipping catalog number", "catnr", catNr, "error", err)
			continue
		}

		if epoch, err := EpochOf(rec.Line1); err == nil {
			c.logger.Info("fetched TLE", "catnr", catNr, "name", rec.Name, "epoch", epoch.Format(time.RFC3339))
		} else {
			c.logger.Info("fetched TLE", "catnr", catNr, "name", rec.Name)
		}
		records = append(records, rec)
	}

	return records
}
