// Package config builds the effective satfetch configuration from embedded
// defaults, an optional TOML file, and SATTRACK_* environment overrides,
// in that precedence order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/midbel/toml"
)

// Defaults mirror the original job setup: two catalog numbers, the
// CelesTrak GP endpoint, and a document the front-end reads in place.
const (
	DefaultBaseURL          = "https://celestrak.org/NORAD/elements/gp.php"
	DefaultOutputFile       = "satellites.json"
	DefaultTimeoutSeconds   = 30
	DefaultSnapshotMaxFiles = 5
)

// DefaultSatellites is the default ordered catalog number list.
var DefaultSatellites = []int{48268, 49070}

// Snapshot configures the optional raw-response archive. An empty Dir
// disables archiving.
type Snapshot struct {
	Dir      string `toml:"dir"`
	MaxFiles int    `toml:"max_files"`
}

// Config is the full satfetch configuration.
type Config struct {
	Satellites     []int    `toml:"satellites"`
	BaseURL        string   `toml:"base_url"`
	OutputFile     string   `toml:"output"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	InsecureTLS    bool     `toml:"insecure_tls"`
	MetricsFile    string   `toml:"metrics_file"`
	Snapshot       Snapshot `toml:"snapshot"`
}

// Default returns the embedded default configuration.
func Default() Config {
	return Config{
		Satellites:     append([]int(nil), DefaultSatellites...),
		BaseURL:        DefaultBaseURL,
		OutputFile:     DefaultOutputFile,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Snapshot: Snapshot{
			MaxFiles: DefaultSnapshotMaxFiles,
		},
	}
}

// Load builds the effective configuration. path may be empty to skip the
// file step. Invalid environment values log a warning and keep the
// previously configured value.
func Load(path string, logger *slog.Logger) (Config, error) {
	cfg := Default()

	if path != "" {
		// The TOML decoder appends decoded array values to a pre-filled
		// slice, so the default list must not be in place during the
		// decode. Scalars are only touched when the key is present.
		cfg.Satellites = nil
		if err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		if cfg.Satellites == nil {
			cfg.Satellites = append([]int(nil), DefaultSatellites...)
		}
	}

	cfg.applyEnv(logger)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Timeout returns the HTTP client timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) applyEnv(logger *slog.Logger) {
	if v := os.Getenv("SATTRACK_SATELLITES"); v != "" {
		ids, err := parseSatelliteList(v)
		if err != nil {
			logger.Warn("invalid SATTRACK_SATELLITES value, keeping configured list", "value", v, "error", err)
		} else {
			c.Satellites = ids
		}
	}

	if v := os.Getenv("SATTRACK_BASE_URL"); v != "" {
		c.BaseURL = v
	}

	if v := os.Getenv("SATTRACK_OUTPUT"); v != "" {
		c.OutputFile = v
	}

	if v := os.Getenv("SATTRACK_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid SATTRACK_TIMEOUT value, keeping configured timeout", "value", v)
		} else {
			c.TimeoutSeconds = n
		}
	}

	if v := os.Getenv("SATTRACK_INSECURE_TLS"); v != "" {
		insecure, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid SATTRACK_INSECURE_TLS value, keeping configured setting", "value", v)
		} else {
			c.InsecureTLS = insecure
		}
	}

	if v := os.Getenv("SATTRACK_SNAPSHOT_DIR"); v != "" {
		c.Snapshot.Dir = v
	}

	if v := os.Getenv("SATTRACK_METRICS_FILE"); v != "" {
		c.MetricsFile = v
	}
}

func (c Config) validate() error {
	if len(c.Satellites) == 0 {
		return errors.New("no satellites configured")
	}
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	if c.OutputFile == "" {
		return errors.New("output must not be empty")
	}
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

func parseSatelliteList(s string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog number %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("empty satellite list")
	}
	return ids, nil
}
