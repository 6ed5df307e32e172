package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TOKEN_TTL_MINUTES", "")
	t.Setenv("RATE_PAIRS_FILE", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.TokenTTL.Minutes() != 60 {
		t.Fatalf("expected 60m ttl, got %s", cfg.TokenTTL)
	}
	if len(cfg.RatePairs) != 2 || cfg.RatePairs[0] != "BTCUSDT" {
		t.Fatalf("expected default pairs, got %v", cfg.RatePairs)
	}
}

func TestLoadRatePairsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.yaml")
	if err := os.WriteFile(path, []byte("pairs:\n  - SOLUSDT\n  - BTCUSDT\n"), 0644); err != nil {
		t.Fatalf("write pairs file: %v", err)
	}
	pairs := loadRatePairs(path)
	if len(pairs) != 2 || pairs[0] != "SOLUSDT" {
		t.Fatalf("unexpected pairs: %v", pairs)
	}
}

func TestLoadRatePairsBadFileFallsBack(t *testing.T) {
	pairs := loadRatePairs(filepath.Join(t.TempDir(), "missing.yaml"))
	if len(pairs) != 2 || pairs[0] != "BTCUSDT" {
		t.Fatalf("expected default pairs, got %v", pairs)
	}
}

func TestGetDurationRejectsGarbage(t *testing.T) {
	t.Setenv("TOKEN_TTL_MINUTES", "soon")
	if got := getDuration("TOKEN_TTL_MINUTES", 15); got.Minutes() != 15 {
		t.Fatalf("expected fallback, got %s", got)
	}
}
