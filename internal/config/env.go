package config

import (
	"flag"
	"os"
	"time"
)

// Supported environment variables:
//   - TFCACHE_RETENTION: Δ retention window (duration: "10s")
//   - TFCACHE_FRAME_PREFIX: raw frame ID prefix (string)
//   - TFCACHE_BACKFILL_WINDOW: backfill lookback window (duration)
//   - TFCACHE_STORE_TIMEOUT: timeout for one backfill call, retries included (duration)
//   - TFCACHE_MAX_ELAPSED_RETRY: transient-failure retry budget (duration)
func applyEnvOverrides(cfg *Config, fs *flag.FlagSet) {
	if !isFlagSet(fs, "retention") {
		cfg.Retention = getEnvDuration("RETENTION", cfg.Retention)
	}
	if !isFlagSet(fs, "frame-prefix") {
		cfg.FramePrefix = getEnvString("FRAME_PREFIX", cfg.FramePrefix)
	}
	if !isFlagSet(fs, "backfill-window") {
		cfg.BackfillWindow = getEnvDuration("BACKFILL_WINDOW", cfg.BackfillWindow)
	}
	if !isFlagSet(fs, "store-timeout") {
		cfg.StoreTimeout = getEnvDuration("STORE_TIMEOUT", cfg.StoreTimeout)
	}
	if !isFlagSet(fs, "max-elapsed-retry") {
		cfg.MaxElapsedRetry = getEnvDuration("MAX_ELAPSED_RETRY", cfg.MaxElapsedRetry)
	}
}

// isFlagSet reports whether name was explicitly set on the command line, so
// an environment override never clobbers an explicit flag.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})

	return found
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(EnvPrefix + key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

