package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Address() != "0.0.0.0:4000" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
	if !cfg.Journal.Enabled {
		t.Fatalf("journal must default to enabled")
	}
	if cfg.WS.KeepAlive != 9*time.Second {
		t.Fatalf("unexpected keepalive %v", cfg.WS.KeepAlive)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("JOURNAL_ENABLED", "false")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("WS_KEEPALIVE", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.HTTP.Port)
	}
	if cfg.Journal.Enabled {
		t.Fatalf("journal override not applied")
	}
	// Bare integers are treated as seconds.
	if cfg.Context.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected request timeout %v", cfg.Context.RequestTimeout)
	}
	if cfg.WS.KeepAlive != 15*time.Second {
		t.Fatalf("unexpected keepalive %v", cfg.WS.KeepAlive)
	}
}
