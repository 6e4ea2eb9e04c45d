package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"calorieburn/internal/analysis"
	"calorieburn/internal/input"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model.Path != "calories_model.json" {
		t.Errorf("Model.Path = %q, want %q", cfg.Model.Path, "calories_model.json")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}

	// Defaults should match the input field table
	for key, v := range cfg.Defaults.Map() {
		f, ok := input.Lookup(key)
		if !ok {
			t.Fatalf("unknown field %q", key)
		}
		if v != f.Default {
			t.Errorf("Defaults[%s] = %v, want %v", key, v, f.Default)
		}
	}
	if cfg.Defaults.GenderValue() != analysis.Male {
		t.Errorf("default gender = %v, want Male", cfg.Defaults.GenderValue())
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "empty model path",
			mutate:      func(c *Config) { c.Model.Path = "" },
			expectError: true,
			errContains: "model.path",
		},
		{
			name:        "age below range",
			mutate:      func(c *Config) { c.Defaults.Age = 5 },
			expectError: true,
			errContains: "defaults.age",
		},
		{
			name:        "body temp above range",
			mutate:      func(c *Config) { c.Defaults.BodyTemp = 43.5 },
			expectError: true,
			errContains: "defaults.body_temp",
		},
		{
			name:        "calorie goal below range",
			mutate:      func(c *Config) { c.Defaults.CalorieGoal = 50 },
			expectError: true,
			errContains: "defaults.calorie_goal",
		},
		{
			name:        "unknown gender",
			mutate:      func(c *Config) { c.Defaults.Gender = "robot" },
			expectError: true,
			errContains: "defaults.gender",
		},
		{
			name:        "empty server address",
			mutate:      func(c *Config) { c.Server.Addr = "" },
			expectError: true,
			errContains: "server.addr",
		},
		{
			name:        "negative verbosity",
			mutate:      func(c *Config) { c.Log.Verbosity = -1 },
			expectError: true,
			errContains: "log.verbosity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
model:
  path: /opt/models/calories.yaml
defaults:
  age: 41
  gender: Female
  body_temp: 36.8
server:
  addr: 127.0.0.1:9000
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model.Path != "/opt/models/calories.yaml" {
		t.Errorf("Model.Path = %q", cfg.Model.Path)
	}
	if cfg.Defaults.Age != 41 {
		t.Errorf("Defaults.Age = %d, want 41", cfg.Defaults.Age)
	}
	if cfg.Defaults.GenderValue() != analysis.Female {
		t.Errorf("Defaults.Gender = %q, want Female", cfg.Defaults.Gender)
	}
	if cfg.Defaults.BodyTemp != 36.8 {
		t.Errorf("Defaults.BodyTemp = %v, want 36.8", cfg.Defaults.BodyTemp)
	}
	// Missing values fall back to defaults
	if cfg.Defaults.Height != 170 {
		t.Errorf("Defaults.Height = %d, want 170", cfg.Defaults.Height)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("Server.AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("Load() error = %v, want ErrNoConfig", err)
	}
}

func TestLoadOrDefaultWithEnv(t *testing.T) {
	t.Setenv("CALORIEBURN_DEFAULTS_CALORIE_GOAL", "750")
	t.Setenv("CALORIEBURN_MODEL_PATH", "models/alt.json")
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Defaults.CalorieGoal != 750 {
		t.Errorf("Defaults.CalorieGoal = %d, want 750", cfg.Defaults.CalorieGoal)
	}
	if cfg.Model.Path != "models/alt.json" {
		t.Errorf("Model.Path = %q, want models/alt.json", cfg.Model.Path)
	}
	if cfg.Defaults.Age != 25 {
		t.Errorf("Defaults.Age = %d, want 25", cfg.Defaults.Age)
	}
}

func TestLoadOrDefaultExplicitMissingPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("LoadOrDefault() error = %v, want ErrNoConfig", err)
	}
	if cfg != nil {
		t.Errorf("LoadOrDefault() = %+v, want nil", cfg)
	}
}

func TestCreateExample(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := CreateExample()
	if err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	if want := filepath.Join(home, ".calorieburn", "config.yaml"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("example config should validate: %v", err)
	}

	// A second call must not overwrite edits
	if err := os.WriteFile(path, []byte("defaults:\n  age: 60\n"), 0600); err != nil {
		t.Fatalf("editing config: %v", err)
	}
	if _, err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Age != 60 {
		t.Errorf("Defaults.Age = %d, want 60 (file was overwritten)", cfg.Defaults.Age)
	}
}
