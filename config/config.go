// Package config loads demo settings from flags, environment and an
// optional YAML file through viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/ownership/demo"
	"github.com/wippyai/ownership/errors"
)

// EnvPrefix is prepended to environment overrides, e.g. SMARTPTR_DEMO_MANY.
const EnvPrefix = "SMARTPTR"

// Config represents the complete smartptr configuration
type Config struct {
	Demo    DemoConfig    `mapstructure:"demo"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DemoConfig controls which scenarios run and how
type DemoConfig struct {
	// Scenarios limits the run to these names; empty runs all of them
	Scenarios []string `mapstructure:"scenarios"`
	// Order picks the shared release order: auto, clock, random, or a branch number
	Order string `mapstructure:"order"`
	// Seed seeds the random order
	Seed uint64 `mapstructure:"seed"`
	// Many is how many owners the vector factory builds
	Many int `mapstructure:"many"`
	// Hazard aliases two exclusive pointers and lets them double release
	Hazard bool `mapstructure:"hazard"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	// Format is one of text, yaml, json
	Format string `mapstructure:"format"`
	// Color is one of auto, always, never
	Color string `mapstructure:"color"`
	// Events includes the per-scenario event trace in text output
	Events bool `mapstructure:"events"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Development switches to zap's human-readable development encoder
	Development bool `mapstructure:"development"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Demo: DemoConfig{
			Order: "auto",
			Many:  demo.DefaultMany,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
			Events: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// SetDefaults registers Default() with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("demo.scenarios", defaults.Demo.Scenarios)
	v.SetDefault("demo.order", defaults.Demo.Order)
	v.SetDefault("demo.seed", defaults.Demo.Seed)
	v.SetDefault("demo.many", defaults.Demo.Many)
	v.SetDefault("demo.hazard", defaults.Demo.Hazard)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.color", defaults.Output.Color)
	v.SetDefault("output.events", defaults.Output.Events)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.development", defaults.Logging.Development)
}

// Load unmarshals v into a validated Config
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "unmarshal config")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smartptr")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "smartptr")
}

// Selector builds the release-order selector described by the config
func (c *DemoConfig) Selector() (demo.Selector, error) {
	return demo.ParseSelector(c.Order, c.Seed)
}

// Options converts the config into runner options
func (c *DemoConfig) Options() (demo.Options, error) {
	sel, err := c.Selector()
	if err != nil {
		return demo.Options{}, err
	}
	return demo.Options{
		Selector: sel,
		Many:     c.Many,
		Hazard:   c.Hazard,
	}, nil
}

// Build creates the zap logger described by the config
func (c *LoggingConfig) Build() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "logging level")
	}

	zcfg := zap.NewProductionConfig()
	if c.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
