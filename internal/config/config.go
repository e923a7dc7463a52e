package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataPath         string   `yaml:"data_path"`
	DataURL          string   `yaml:"data_url"`
	ListenAddr       string   `yaml:"listen_addr"`
	DefaultSubreddit string   `yaml:"default_subreddit"`
	DebounceMS       int      `yaml:"debounce_ms"`
	LogLevel         string   `yaml:"log_level"`
	LogFile          string   `yaml:"log_file"`
	AllowedOrigins   []string `yaml:"allowed_origins"`
}

// Load reads configuration from a YAML file and applies defaults. A missing
// file is not an error: the defaults and environment are used instead.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadEnv reads a .env file into the process environment if one exists.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// GetConfigPath returns the config file path from environment or default.
func GetConfigPath() string {
	if path := os.Getenv("REDDITVIZ_CONFIG"); path != "" {
		return path
	}
	return "./config.yaml"
}

func applyDefaults(cfg *Config) {
	if cfg.DataPath == "" {
		cfg.DataPath = "data/reddit_posts.csv"
	}
	if cfg.DataURL == "" {
		cfg.DataURL = "/data/posts.csv"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DefaultSubreddit == "" {
		cfg.DefaultSubreddit = "technology"
	}
	if cfg.DebounceMS == 0 {
		cfg.DebounceMS = 250
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "redditviz.log"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("REDDITVIZ_DATA"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("REDDITVIZ_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("REDDITVIZ_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REDDITVIZ_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.DebounceMS = ms
		}
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMS)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return errors.New("data_path is required")
	}
	return nil
}

// Debounce is the resize quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Level is the configured slog level.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}
