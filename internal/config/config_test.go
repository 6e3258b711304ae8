package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Athlete.MaxHR != 196 {
		t.Errorf("Athlete.MaxHR = %v, want 196", cfg.Athlete.MaxHR)
	}
	if cfg.Output.Dir != "workouts" {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "workouts")
	}
	if cfg.Output.Timezone != "America/Montreal" {
		t.Errorf("Output.Timezone = %q, want %q", cfg.Output.Timezone, "America/Montreal")
	}
	if len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "csv" {
		t.Errorf("Output.Formats = %v, want [csv]", cfg.Output.Formats)
	}
	if cfg.Processing.Concurrency != 1 {
		t.Errorf("Processing.Concurrency = %d, want 1", cfg.Processing.Concurrency)
	}

	// Token should be empty by default
	if cfg.Zepp.AppToken != "" {
		t.Errorf("Zepp.AppToken should be empty, got %q", cfg.Zepp.AppToken)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Zepp.AppToken = "token"
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		errContains string
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "empty token", mutate: func(c *Config) { c.Zepp.AppToken = "" }, errContains: "app_token"},
		{name: "placeholder token", mutate: func(c *Config) { c.Zepp.AppToken = tokenPlaceholder }, errContains: "app_token"},
		{name: "zero max hr", mutate: func(c *Config) { c.Athlete.MaxHR = 0 }, errContains: "max_hr"},
		{name: "absurd max hr", mutate: func(c *Config) { c.Athlete.MaxHR = 400 }, errContains: "max_hr"},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Formats = []string{"csv", "pdf"} }, errContains: "pdf"},
		{name: "all formats", mutate: func(c *Config) { c.Output.Formats = Formats }},
		{name: "bad timezone", mutate: func(c *Config) { c.Output.Timezone = "Mars/Olympus" }, errContains: "timezone"},
		{name: "no output dir", mutate: func(c *Config) { c.Output.Dir = "" }, errContains: "output.dir"},
		{name: "zero concurrency", mutate: func(c *Config) { c.Processing.Concurrency = 0 }, errContains: "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"zepp":{"app_token":"abc"},"athlete":{"max_hr":185}}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Zepp.AppToken != "abc" {
		t.Errorf("Zepp.AppToken = %q, want abc", cfg.Zepp.AppToken)
	}
	if cfg.Athlete.MaxHR != 185 {
		t.Errorf("Athlete.MaxHR = %v, want 185", cfg.Athlete.MaxHR)
	}
	if cfg.Zepp.Endpoint != DefaultConfig().Zepp.Endpoint {
		t.Errorf("Zepp.Endpoint = %q, want default", cfg.Zepp.Endpoint)
	}
	if cfg.Output.Dir != "workouts" || cfg.Processing.Concurrency != 1 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("LoadFile() error = %v, want ErrNoConfig", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZEPP_TOKEN", "from-env")
	t.Setenv("SWIMREPORT_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("SWIMREPORT_MAX_HR", "180")
	t.Setenv("SWIMREPORT_TIMEZONE", "UTC")
	t.Setenv("ZEPP_API_ENDPOINT", "http://localhost:9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Zepp.AppToken != "from-env" {
		t.Errorf("Zepp.AppToken = %q, want from-env", cfg.Zepp.AppToken)
	}
	if cfg.Output.Dir != "/tmp/reports" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Athlete.MaxHR != 180 {
		t.Errorf("Athlete.MaxHR = %v, want 180", cfg.Athlete.MaxHR)
	}
	if cfg.Location().String() != "UTC" {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
	if cfg.Zepp.Endpoint != "http://localhost:9999" {
		t.Errorf("Zepp.Endpoint = %q", cfg.Zepp.Endpoint)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadBadMaxHREnv(t *testing.T) {
	t.Setenv("SWIMREPORT_MAX_HR", "high")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for non-numeric SWIMREPORT_MAX_HR")
	}
}

func TestCreateExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	if err := CreateExample(path); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Zepp.AppToken != tokenPlaceholder {
		t.Errorf("Zepp.AppToken = %q, want placeholder", cfg.Zepp.AppToken)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("example config should not validate until the token is set")
	}

	// A second call must not overwrite edits
	cfg.Zepp.AppToken = "edited"
	if err := Save(cfg, path); err != nil {
		t.Fatal(err)
	}
	if err := CreateExample(path); err != nil {
		t.Fatal(err)
	}
	again, _ := LoadFile(path)
	if again.Zepp.AppToken != "edited" {
		t.Errorf("CreateExample overwrote existing config")
	}
}
