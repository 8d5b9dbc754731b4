package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
listen: "127.0.0.1:9000"
tick_interval_ms: 250
data_dir: /var/lib/idleforge
rate_limit:
  per_second: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" || cfg.TickInterval() != 250*time.Millisecond {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.SaveSlot != "main" || cfg.PulseEveryTicks != 10 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.RateLimit.PerSecond != 0 {
		t.Fatalf("rate limit should be disabled, got %v", cfg.RateLimit.PerSecond)
	}
	if got := cfg.DatabasePath(); got != filepath.Join("/var/lib/idleforge", "idleforge.db") {
		t.Fatalf("DatabasePath = %q", got)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"zero tick":      "tick_interval_ms: 0",
		"negative pulse": "pulse_every_ticks: -1",
		"zero autosave":  "autosave_every_seconds: 0",
		"empty slot":     `save_slot: ""`,
		"no burst":       "rate_limit: {per_second: 5, burst: 0}",
		"bad yaml":       "listen: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, body)); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}
