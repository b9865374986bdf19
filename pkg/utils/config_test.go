package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Matcher.SimilarityThreshold != 0.3 {
		t.Errorf("threshold = %v", cfg.Matcher.SimilarityThreshold)
	}
	if len(cfg.Merge.Priority) == 0 || cfg.Merge.Priority[0] != "anilist" {
		t.Errorf("priority = %v", cfg.Merge.Priority)
	}
	if filepath.Base(cfg.Database.Path) != "catalog.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
}

func TestLoadConfigYAMLOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".mangacat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "server:\n  addr: \":9999\"\nmatcher:\n  similarity_threshold: 0.5\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Matcher.SimilarityThreshold != 0.5 {
		t.Errorf("threshold = %v", cfg.Matcher.SimilarityThreshold)
	}
	// untouched sections keep their defaults
	if cfg.Scraper.MinDelayMS != 1500 {
		t.Errorf("min delay = %d", cfg.Scraper.MinDelayMS)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MANGACAT_ADDR", ":7777")
	t.Setenv("MANGACAT_PRIORITY", "jikan, anilist")
	t.Setenv("MANGACAT_SIMILARITY_THRESHOLD", "0.45")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Merge.Priority) != 2 || cfg.Merge.Priority[0] != "jikan" || cfg.Merge.Priority[1] != "anilist" {
		t.Errorf("priority = %v", cfg.Merge.Priority)
	}
	if cfg.Matcher.SimilarityThreshold != 0.45 {
		t.Errorf("threshold = %v", cfg.Matcher.SimilarityThreshold)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".mangacat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("malformed config accepted")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.Addr = ":6060"
	if err := SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got.Server.Addr != ":6060" {
		t.Errorf("addr = %q", got.Server.Addr)
	}
}
