package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"calorieburn/internal/analysis"
	"calorieburn/internal/input"
)

// Config represents the application configuration
type Config struct {
	Model    ModelConfig    `mapstructure:"model" yaml:"model"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// ModelConfig locates the calorie model artifact
type ModelConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// DefaultsConfig holds the initial value of every input
type DefaultsConfig struct {
	Age         int     `mapstructure:"age" yaml:"age"`
	Gender      string  `mapstructure:"gender" yaml:"gender"`
	Height      int     `mapstructure:"height" yaml:"height"`
	Weight      int     `mapstructure:"weight" yaml:"weight"`
	Duration    int     `mapstructure:"duration" yaml:"duration"`
	HeartRate   int     `mapstructure:"heart_rate" yaml:"heart_rate"`
	BodyTemp    float64 `mapstructure:"body_temp" yaml:"body_temp"`
	CalorieGoal int     `mapstructure:"calorie_goal" yaml:"calorie_goal"`
}

// ReportConfig holds report export settings
type ReportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr           string   `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// LogConfig holds logging settings
type LogConfig struct {
	File      string `mapstructure:"file" yaml:"file"`
	Verbosity int    `mapstructure:"verbosity" yaml:"verbosity"`
}

// EnvPrefix namespaces environment overrides, e.g. CALORIEBURN_DEFAULTS_AGE
const EnvPrefix = "CALORIEBURN"

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Model: ModelConfig{
			Path: "calories_model.json",
		},
		Defaults: DefaultsConfig{
			Age:         25,
			Gender:      analysis.Male.String(),
			Height:      170,
			Weight:      70,
			Duration:    30,
			HeartRate:   120,
			BodyTemp:    37.0,
			CalorieGoal: 500,
		},
		Report: ReportConfig{
			Dir: ".",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads the configuration from path, or ~/.calorieburn/config.yaml when
// path is empty. Environment variables override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrNoConfig
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return decode(v)
}

// LoadOrDefault behaves like Load but falls back to the defaults, still
// honouring environment overrides, when the default config file is missing.
// An explicit path that doesn't exist is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if path == "" && errors.Is(err, ErrNoConfig) {
		return decode(newViper())
	}
	return cfg, err
}

// CreateExample writes an example config file if none exists and returns its path
func CreateExample() (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return path, nil // Config exists, don't overwrite
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if _, err := analysis.ParseGender(c.Defaults.Gender); err != nil {
		return fmt.Errorf("defaults.gender: %w", err)
	}

	defaults := c.Defaults.Map()
	for _, f := range input.Fields {
		if v := defaults[f.Key]; !f.Contains(v) {
			return fmt.Errorf("defaults.%s must be between %v and %v, got %v", f.Key, f.Min, f.Max, v)
		}
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	return nil
}

// Map returns the numeric defaults keyed by input field
func (d DefaultsConfig) Map() map[string]float64 {
	return map[string]float64{
		input.KeyAge:         float64(d.Age),
		input.KeyHeight:      float64(d.Height),
		input.KeyWeight:      float64(d.Weight),
		input.KeyDuration:    float64(d.Duration),
		input.KeyHeartRate:   float64(d.HeartRate),
		input.KeyBodyTemp:    d.BodyTemp,
		input.KeyCalorieGoal: float64(d.CalorieGoal),
	}
}

// GenderValue returns the default gender, falling back to Male
func (d DefaultsConfig) GenderValue() analysis.Gender {
	g, err := analysis.ParseGender(d.Gender)
	if err != nil {
		return analysis.Male
	}
	return g
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".calorieburn"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	// defaults.age -> CALORIEBURN_DEFAULTS_AGE
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers every key so env overrides reach Unmarshal
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("model.path", d.Model.Path)
	v.SetDefault("defaults.age", d.Defaults.Age)
	v.SetDefault("defaults.gender", d.Defaults.Gender)
	v.SetDefault("defaults.height", d.Defaults.Height)
	v.SetDefault("defaults.weight", d.Defaults.Weight)
	v.SetDefault("defaults.duration", d.Defaults.Duration)
	v.SetDefault("defaults.heart_rate", d.Defaults.HeartRate)
	v.SetDefault("defaults.body_temp", d.Defaults.BodyTemp)
	v.SetDefault("defaults.calorie_goal", d.Defaults.CalorieGoal)
	v.SetDefault("report.dir", d.Report.Dir)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.verbosity", d.Log.Verbosity)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}
