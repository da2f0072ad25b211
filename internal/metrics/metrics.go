// Package metrics tracks fetch outcomes for one satfetch run and exports
// them in Prometheus text exposition format. A run-once job cannot host a
// pull endpoint, so the final values are written to a file for a
// node_exporter textfile collector to pick up.
package metrics

import (
	"bytes"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Failure reasons for the fetch failure counter.
const (
	ReasonTransport   = "transport"
	ReasonStatus      = "status"
	ReasonInvalidData = "invalid_data"
)

var (
	registry = prometheus.NewRegistry()

	fetchAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "satfetch_fetch_attempts_total",
			Help: "Total catalog fetch attempts.",
		},
	)

	fetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satfetch_fetch_failures_total",
			Help: "Fetch attempts that produced no record.",
		},
		[]string{"reason"},
	)

	recordsWritten = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "satfetch_records_written",
			Help: "Records written to the output document by the last run.",
		},
	)
)

func init() {
	registry.MustRegister(fetchAttemptsTotal)
	registry.MustRegister(fetchFailuresTotal)
	registry.MustRegister(recordsWritten)
}

// IncFetchAttempt records one catalog fetch attempt.
func IncFetchAttempt() {
	fetchAttemptsTotal.Inc()
}

// IncFetchFailure records a fetch attempt that produced no record.
func IncFetchFailure(reason string) {
	fetchFailuresTotal.WithLabelValues(reason).Inc()
}

// SetRecordsWritten records the size of the written output document.
func SetRecordsWritten(n int) {
	recordsWritten.Set(float64(n))
}

// WriteTextfile writes the current values to path in Prometheus text
// exposition format. The file is written to a temp name and renamed so a
// collector never reads a partial file.
func WriteTextfile(path string) error {
	mfs, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming metrics file: %w", err)
	}
	return nil
}
