// Package config loads training-journal settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/training-journal/internal/model"
)

// Config holds training-journal settings.
type Config struct {
	DataFile   string   `yaml:"data_file"`
	CSVFile    string   `yaml:"csv_file"`
	CSVLang    string   `yaml:"csv_lang"`
	LedgerFile string   `yaml:"ledger_file"`
	LogLevel   string   `yaml:"log_level"`
	Exercises  []string `yaml:"exercises"`
}

// DefaultDir is the directory holding the store, ledger and config by default.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".training-journal")
}

// DefaultPath returns the config path used when none is given:
// $TRAINING_JOURNAL_CONFIG or ~/.training-journal/config.yaml.
func DefaultPath() string {
	if v := os.Getenv("TRAINING_JOURNAL_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error. Env vars:
//
//	TRAINING_JOURNAL_FILE, TRAINING_JOURNAL_CSV_FILE, TRAINING_JOURNAL_CSV_LANG,
//	TRAINING_JOURNAL_LEDGER, TRAINING_JOURNAL_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRAINING_JOURNAL_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TRAINING_JOURNAL_CSV_FILE"); v != "" {
		cfg.CSVFile = v
	}
	if v := os.Getenv("TRAINING_JOURNAL_CSV_LANG"); v != "" {
		cfg.CSVLang = v
	}
	if v := os.Getenv("TRAINING_JOURNAL_LEDGER"); v != "" {
		cfg.LedgerFile = v
	}
	if v := os.Getenv("TRAINING_JOURNAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func (c *Config) applyDefaults() {
	if c.DataFile == "" {
		c.DataFile = filepath.Join(DefaultDir(), "training_log.json")
	}
	if c.CSVFile == "" {
		c.CSVFile = "training_log.csv"
	}
	if c.CSVLang == "" {
		c.CSVLang = "ru"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Exercises) == 0 {
		c.Exercises = append([]string(nil), model.DefaultExercises...)
	}
}

// LedgerPath returns the configured ledger path, or imports.db beside dataFile.
func (c *Config) LedgerPath(dataFile string) string {
	if c.LedgerFile != "" {
		return c.LedgerFile
	}
	return filepath.Join(filepath.Dir(dataFile), "imports.db")
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validate() error {
	switch c.CSVLang {
	case "ru", "en":
	default:
		return fmt.Errorf("csv_lang must be ru or en, got %q", c.CSVLang)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	for i, ex := range c.Exercises {
		if strings.TrimSpace(ex) == "" {
			return fmt.Errorf("exercises[%d] is empty", i)
		}
	}
	return nil
}
