package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PreviewURL != "http://127.0.0.1:10000" {
		t.Fatalf("unexpected preview url %q", cfg.PreviewURL)
	}
	if cfg.RequestTimeout != 30*time.Second || cfg.ProbeInterval != 15*time.Second {
		t.Fatalf("unexpected durations %v %v", cfg.RequestTimeout, cfg.ProbeInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PREVIEW_URL", "https://preview.example:8443/")
	t.Setenv("OWNER_ID", "owner-42")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PreviewURL != "https://preview.example:8443" {
		t.Fatalf("expected trimmed url, got %q", cfg.PreviewURL)
	}
	if cfg.OwnerID != "owner-42" {
		t.Fatalf("unexpected owner %q", cfg.OwnerID)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PREVIEW_URL":             "not a url",
		"REQUEST_TIMEOUT_SECONDS": "0",
		"PROBE_INTERVAL_SECONDS":  "-3",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := load(viper.New()); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
