// Package config parses tfcache's ambient configuration: the retention
// window, frame-ID prefix, and backfill tuning knobs that don't belong on
// every call site. It follows 12-Factor precedence: CLI flags override
// environment variables, which override built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// EnvPrefix is prepended to every environment variable config reads.
const EnvPrefix = "TFCACHE_"

// Default configuration values.
const (
	// DefaultRetention is the Δ window (spec.md §3) each TimeCache keeps
	// behind its newest sample.
	DefaultRetention = 10 * time.Second

	// DefaultFramePrefix is applied to a raw frame ID lacking a leading "/".
	DefaultFramePrefix = ""

	// DefaultBackfillWindow is the lookback a Backfill query searches.
	DefaultBackfillWindow = 5 * time.Second

	// DefaultStoreTimeout bounds one Backfill call, retries included.
	DefaultStoreTimeout = 2 * time.Second

	// DefaultMaxElapsedRetry bounds the total time spent retrying a
	// transient store failure before it is surfaced as StoreUnavailable.
	DefaultMaxElapsedRetry = 2 * time.Second
)

// Config aggregates tfcache's runtime configuration.
type Config struct {
	// Retention is Δ: how much history each TimeCache keeps.
	Retention time.Duration

	// FramePrefix is applied to raw frame IDs lacking a leading "/".
	FramePrefix string

	// BackfillWindow is the lookback a Backfill query searches.
	BackfillWindow time.Duration

	// StoreTimeout bounds one Backfill call, retries included.
	StoreTimeout time.Duration

	// MaxElapsedRetry bounds total retry time for a transient store error.
	MaxElapsedRetry time.Duration
}

// Validate checks the semantic consistency of the configuration.
func (c Config) Validate() error {
	if c.Retention <= 0 {
		return fmt.Errorf("config: retention must be strictly positive, got %s", c.Retention)
	}
	if c.BackfillWindow <= 0 {
		return fmt.Errorf("config: backfill window must be strictly positive, got %s", c.BackfillWindow)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("config: store timeout must be strictly positive, got %s", c.StoreTimeout)
	}
	if c.MaxElapsedRetry <= 0 {
		return fmt.Errorf("config: max elapsed retry must be strictly positive, got %s", c.MaxElapsedRetry)
	}

	return nil
}

// Parse parses command-line arguments into a Config, then applies
// environment variable overrides for any flag not explicitly set, then
// validates the result. programName and errorWriter feed the flag.FlagSet's
// usage output.
func Parse(programName string, args []string, errorWriter io.Writer) (Config, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	cfg := Config{}
	fs.DurationVar(&cfg.Retention, "retention", DefaultRetention, "Duration of history each transform edge retains (Δ).")
	fs.StringVar(&cfg.FramePrefix, "frame-prefix", DefaultFramePrefix, "Prefix applied to raw frame IDs lacking a leading slash.")
	fs.DurationVar(&cfg.BackfillWindow, "backfill-window", DefaultBackfillWindow, "Lookback window a backfill query searches behind the requested time.")
	fs.DurationVar(&cfg.StoreTimeout, "store-timeout", DefaultStoreTimeout, "Timeout for one backfill call against the document store, retries included.")
	fs.DurationVar(&cfg.MaxElapsedRetry, "max-elapsed-retry", DefaultMaxElapsedRetry, "Total time budget for retrying a transient store failure.")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "configuration error:", err)
		fs.Usage()

		return Config{}, err
	}

	return cfg, nil
}
