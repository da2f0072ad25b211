package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/manolides/satellite-tracker/internal/config"
	"github.com/manolides/satellite-tracker/internal/metrics"
	"github.com/manolides/satellite-tracker/internal/output"
	"github.com/manolides/satellite-tracker/internal/snapshot"
	"github.com/manolides/satellite-tracker/internal/tle"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	configPath := flag.String("config", "", "optional TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("fetch config",
		"satellites", cfg.Satellites,
		"base_url", cfg.BaseURL,
		"output", cfg.OutputFile,
		"timeout_seconds", cfg.TimeoutSeconds,
		"snapshot_dir", cfg.Snapshot.Dir,
		"metrics_file", cfg.MetricsFile,
	)
	if cfg.InsecureTLS {
		logger.Warn("TLS certificate verification is disabled; fetched data is not authenticated")
	}

	var archiver tle.Archiver
	if cfg.Snapshot.Dir != "" {
		archiver = snapshot.New(cfg.Snapshot.Dir, cfg.Snapshot.MaxFiles)
	}

	fetcher := tle.NewFetcher(cfg.BaseURL, cfg.Timeout(), cfg.InsecureTLS)
	collector := tle.NewCollector(fetcher, archiver, logger)

	// In-flight requests abort on SIGINT/SIGTERM; whatever was collected
	// up to that point is still written out.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records := collector.Collect(ctx, cfg.Satellites)
	metrics.SetRecordsWritten(len(records))

	if err := output.Write(cfg.OutputFile, records); err != nil {
		logger.Error("writing output document", "path", cfg.OutputFile, "error", err)
		os.Exit(1)
	}
	logger.Info("saved satellite document", "path", cfg.OutputFile, "count", len(records))

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("writing metrics textfile", "path", cfg.MetricsFile, "error", err)
		}
	}
}
