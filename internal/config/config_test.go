package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Provider.BaseURL == "" {
		t.Error("expected default provider base URL")
	}
	if cfg.Provider.LookbackDays != 365 {
		t.Errorf("expected 365 lookback days, got %d", cfg.Provider.LookbackDays)
	}
	if cfg.News.PrimaryLimit < 5 || cfg.News.PrimaryLimit > 7 {
		t.Errorf("primary news limit outside 5–7: %d", cfg.News.PrimaryLimit)
	}
	if cfg.News.MinPrimary != 2 {
		t.Errorf("expected fallback threshold 2, got %d", cfg.News.MinPrimary)
	}
	if cfg.Analysis.SentimentThreshold != 0.1 {
		t.Errorf("expected sentiment threshold 0.1, got %v", cfg.Analysis.SentimentThreshold)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.API.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
api:
  port: 9191
news:
  primary_limit: 5
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.API.Port != 9191 {
		t.Errorf("expected port 9191, got %d", cfg.API.Port)
	}
	if cfg.News.PrimaryLimit != 5 {
		t.Errorf("expected primary limit 5, got %d", cfg.News.PrimaryLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	// Unset keys keep their defaults.
	if cfg.Provider.LookbackDays != 365 {
		t.Errorf("expected default lookback, got %d", cfg.Provider.LookbackDays)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("COINSIGHT_API_PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.Port != 7070 {
		t.Errorf("expected env override port 7070, got %d", cfg.API.Port)
	}
}
