package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // report time zone must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Zepp       ZeppConfig       `json:"zepp"`
	Athlete    AthleteConfig    `json:"athlete"`
	Output     OutputConfig     `json:"output"`
	Processing ProcessingConfig `json:"processing"`
	Store      StoreConfig      `json:"store"`
	Metrics    MetricsConfig    `json:"metrics"`
}

// ZeppConfig holds API access settings
type ZeppConfig struct {
	AppToken string `json:"app_token"`
	Endpoint string `json:"endpoint"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	MaxHR float64 `json:"max_hr"` // theoretical max, e.g. 220 - age
}

// OutputConfig controls where and how reports are written
type OutputConfig struct {
	Dir      string   `json:"dir"`
	Formats  []string `json:"formats"`  // csv, xlsx, parquet
	Timezone string   `json:"timezone"` // IANA name used for report times
}

// ProcessingConfig controls the batch
type ProcessingConfig struct {
	Concurrency int `json:"concurrency"`
}

// StoreConfig configures the optional sqlite report ledger
type StoreConfig struct {
	Path string `json:"path"` // empty disables the ledger
}

// MetricsConfig configures the optional Prometheus textfile export
type MetricsConfig struct {
	TextfilePath string `json:"textfile_path"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// Supported report formats
var Formats = []string{"csv", "xlsx", "parquet"}

const tokenPlaceholder = "YOUR_APP_TOKEN"

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Zepp: ZeppConfig{
			Endpoint: "https://api-mifit.huami.com",
		},
		Athlete: AthleteConfig{
			MaxHR: 196,
		},
		Output: OutputConfig{
			Dir:      "workouts",
			Formats:  []string{"csv"},
			Timezone: "America/Montreal",
		},
		Processing: ProcessingConfig{
			Concurrency: 1,
		},
	}
}

// Load reads the configuration from path (the default location when empty),
// then applies .env and environment overrides. A missing file is not an
// error: defaults and the environment are used instead.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := LoadFile(path)
	if errors.Is(err, ErrNoConfig) {
		d := DefaultConfig()
		cfg = &d
	} else if err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a config file and fills in defaults for missing values
func LoadFile(path string) (*Config, error) {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Zepp.Endpoint == "" {
		cfg.Zepp.Endpoint = defaults.Zepp.Endpoint
	}
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaults.Output.Dir
	}
	if len(cfg.Output.Formats) == 0 {
		cfg.Output.Formats = defaults.Output.Formats
	}
	if cfg.Output.Timezone == "" {
		cfg.Output.Timezone = defaults.Output.Timezone
	}
	if cfg.Processing.Concurrency == 0 {
		cfg.Processing.Concurrency = defaults.Processing.Concurrency
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ZEPP_TOKEN"); v != "" {
		cfg.Zepp.AppToken = v
	}
	if v := os.Getenv("ZEPP_API_ENDPOINT"); v != "" {
		cfg.Zepp.Endpoint = v
	}
	if v := os.Getenv("SWIMREPORT_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SWIMREPORT_TIMEZONE"); v != "" {
		cfg.Output.Timezone = v
	}
	if v := os.Getenv("SWIMREPORT_MAX_HR"); v != "" {
		hr, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing SWIMREPORT_MAX_HR: %w", err)
		}
		cfg.Athlete.MaxHR = hr
	}
	return nil
}

// Save writes the configuration to path (the default location when empty)
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample(path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Zepp.AppToken = tokenPlaceholder
	example.Store.Path = filepath.Join(filepath.Dir(path), "reports.db")

	return Save(&example, path)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.Zepp.AppToken == "" || c.Zepp.AppToken == tokenPlaceholder {
		return errors.New("zepp.app_token is required - set it in the config file or ZEPP_TOKEN")
	}

	if c.Athlete.MaxHR <= 0 || c.Athlete.MaxHR > 250 {
		return fmt.Errorf("athlete.max_hr must be between 1 and 250, got %v", c.Athlete.MaxHR)
	}

	if c.Output.Dir == "" {
		return errors.New("output.dir is required")
	}
	for _, f := range c.Output.Formats {
		if !isKnownFormat(f) {
			return fmt.Errorf("output.formats: unknown format %q (expected one of %s)", f, strings.Join(Formats, ", "))
		}
	}

	if _, err := time.LoadLocation(c.Output.Timezone); err != nil {
		return fmt.Errorf("output.timezone %q: %w", c.Output.Timezone, err)
	}

	if c.Processing.Concurrency < 1 {
		return fmt.Errorf("processing.concurrency must be at least 1, got %d", c.Processing.Concurrency)
	}

	return nil
}

// Location returns the configured report time zone, UTC if it can't be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Output.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func isKnownFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".swimreport"), nil
}
