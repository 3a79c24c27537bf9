package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Cities) != 8 || cfg.Cities[0] != "Delhi" {
		t.Errorf("cities = %v", cfg.Cities)
	}
	if cfg.DefaultCity != "Delhi" {
		t.Errorf("default city = %q, want Delhi", cfg.DefaultCity)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("http timeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.CollectInterval != 2*time.Hour {
		t.Errorf("collect interval = %v, want 2h", cfg.CollectInterval)
	}
	if cfg.DatasetFile != filepath.Join("data", "weather_data.csv") {
		t.Errorf("dataset file = %q", cfg.DatasetFile)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CITIES", "Jaipur, Lucknow")
	t.Setenv("DEFAULT_CITY", "Lucknow")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("OPENWEATHER_RPS", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Cities) != 2 || cfg.Cities[1] != "Lucknow" {
		t.Errorf("cities = %v, want trimmed [Jaipur Lucknow]", cfg.Cities)
	}
	if cfg.DefaultCity != "Lucknow" {
		t.Errorf("default city = %q, want Lucknow", cfg.DefaultCity)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("http timeout = %v, want 3s", cfg.HTTPTimeout)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Errorf("rps = %v, want 2.5", cfg.RequestsPerSecond)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("COLLECT_INTERVAL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable COLLECT_INTERVAL")
	}
}

func TestArtifactPaths(t *testing.T) {
	cfg := &AppConfig{ModelDir: "models"}
	paths := cfg.ArtifactPaths()

	if paths.Temperature != filepath.Join("models", "temperature_model.gob") {
		t.Errorf("temperature path = %q", paths.Temperature)
	}
	if paths.Scaler != filepath.Join("models", "scaler.gob") {
		t.Errorf("scaler path = %q", paths.Scaler)
	}
}
