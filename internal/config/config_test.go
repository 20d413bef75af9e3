package config

import (
	"io"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		cfg, err := Parse("tfcache", nil, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Retention != DefaultRetention {
			t.Errorf("expected default retention %s, got %s", DefaultRetention, cfg.Retention)
		}
		if cfg.FramePrefix != DefaultFramePrefix {
			t.Errorf("expected default frame prefix %q, got %q", DefaultFramePrefix, cfg.FramePrefix)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		args := []string{"-retention", "30s", "-frame-prefix", "robot1/", "-backfill-window", "10s"}
		cfg, err := Parse("tfcache", args, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Retention != 30*time.Second {
			t.Errorf("expected retention 30s, got %s", cfg.Retention)
		}
		if cfg.FramePrefix != "robot1/" {
			t.Errorf("expected frame prefix %q, got %q", "robot1/", cfg.FramePrefix)
		}
		if cfg.BackfillWindow != 10*time.Second {
			t.Errorf("expected backfill window 10s, got %s", cfg.BackfillWindow)
		}
	})

	t.Run("InvalidRetentionRejected", func(t *testing.T) {
		args := []string{"-retention", "0s"}
		if _, err := Parse("tfcache", args, io.Discard); err == nil {
			t.Fatal("expected an error for zero retention")
		}
	})
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvPrefix+"RETENTION", "1m")
	cfg, err := Parse("tfcache", nil, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Retention != time.Minute {
		t.Errorf("expected env-overridden retention 1m, got %s", cfg.Retention)
	}
}

func TestEnvDoesNotOverrideExplicitFlag(t *testing.T) {
	t.Setenv(EnvPrefix+"RETENTION", "1m")
	cfg, err := Parse("tfcache", []string{"-retention", "5s"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Retention != 5*time.Second {
		t.Errorf("expected flag to win over env, got %s", cfg.Retention)
	}
}

