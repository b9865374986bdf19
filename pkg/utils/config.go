// Package utils holds the application configuration: defaults, the optional
// ~/.mangacat/config.yaml overlay, and MANGACAT_* environment overrides, in
// that order.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Matcher struct {
		SimilarityThreshold float64 `yaml:"similarity_threshold"`
	} `yaml:"matcher"`

	Merge struct {
		// Priority orders sources for scalar conflict resolution.
		Priority []string `yaml:"priority"`
	} `yaml:"merge"`

	Scraper struct {
		MinDelayMS  int `yaml:"min_delay_ms"`
		CacheTTLSec int `yaml:"cache_ttl_sec"`
		MaxAttempts int `yaml:"max_attempts"`
	} `yaml:"scraper"`

	Reconcile struct {
		MaxConcurrent int `yaml:"max_concurrent"`
		SearchLimit   int `yaml:"search_limit"`
	} `yaml:"reconcile"`
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mangacat"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func DefaultConfig() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Matcher.SimilarityThreshold = 0.3
	cfg.Merge.Priority = []string{"anilist", "nautiljon", "jikan", "googlebooks", "openlibrary", "manganews"}
	cfg.Scraper.MinDelayMS = 1500
	cfg.Scraper.CacheTTLSec = 300
	cfg.Scraper.MaxAttempts = 3
	cfg.Reconcile.MaxConcurrent = 4
	cfg.Reconcile.SearchLimit = 5
	if dir, err := ConfigDir(); err == nil {
		cfg.Database.Path = filepath.Join(dir, "catalog.db")
	}
	return cfg
}

// LoadConfig builds the effective configuration. A missing config file is
// not an error; a malformed one is.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MANGACAT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("MANGACAT_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("MANGACAT_SIMILARITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Matcher.SimilarityThreshold = f
		}
	}
	if v := os.Getenv("MANGACAT_PRIORITY"); v != "" {
		var order []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				order = append(order, s)
			}
		}
		if len(order) > 0 {
			cfg.Merge.Priority = order
		}
	}
}

// SaveConfig writes cfg to ~/.mangacat/config.yaml, creating the directory.
func SaveConfig(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
