package config

import (
	"os"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSystem      = "binary"
	DefaultNumeric     = "f64"
	DefaultIntegrator  = "euler"
	DefaultDt          = 0.01
	DefaultSteps       = 1000
	DefaultCycles      = 64
	DefaultWorkers     = 1
	DefaultSampleEvery = 10
	DefaultTrail       = 16
	DefaultDataDir     = "./data"
	DefaultLogLevel    = "info"
)

var ErrInvalidConfig = errorsmod.Register("config", 2, "invalid run configuration")

// Config describes one simulation run. System is a preset name or a
// definition file path.
type Config struct {
	System      string  `yaml:"system" mapstructure:"system"`
	Numeric     string  `yaml:"numeric" mapstructure:"numeric"`
	Integrator  string  `yaml:"integrator" mapstructure:"integrator"`
	Dt          float64 `yaml:"dt" mapstructure:"dt"`
	Steps       int     `yaml:"steps" mapstructure:"steps"`
	Cycles      int     `yaml:"cycles" mapstructure:"cycles"`
	Workers     int     `yaml:"workers" mapstructure:"workers"`
	SampleEvery int     `yaml:"sample_every" mapstructure:"sample_every"`
	Trail       int     `yaml:"trail" mapstructure:"trail"`
	DataDir     string  `yaml:"data_dir" mapstructure:"data_dir"`
	LogLevel    string  `yaml:"log_level" mapstructure:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		System:      DefaultSystem,
		Numeric:     DefaultNumeric,
		Integrator:  DefaultIntegrator,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		Cycles:      DefaultCycles,
		Workers:     DefaultWorkers,
		SampleEvery: DefaultSampleEvery,
		Trail:       DefaultTrail,
		DataDir:     DefaultDataDir,
		LogLevel:    DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetDefaults registers every key with its default so that environment
// variables are seen by Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("system", d.System)
	v.SetDefault("numeric", d.Numeric)
	v.SetDefault("integrator", d.Integrator)
	v.SetDefault("dt", d.Dt)
	v.SetDefault("steps", d.Steps)
	v.SetDefault("cycles", d.Cycles)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("sample_every", d.SampleEvery)
	v.SetDefault("trail", d.Trail)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_level", d.LogLevel)
}

// FromViper decodes v over the defaults and validates the result.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.System == "":
		return errorsmod.Wrap(ErrInvalidConfig, "system is empty")
	case !(c.Dt > 0):
		return errorsmod.Wrapf(ErrInvalidConfig, "dt must be positive, got %v", c.Dt)
	case c.Steps < 0:
		return errorsmod.Wrapf(ErrInvalidConfig, "steps must not be negative, got %d", c.Steps)
	case c.Cycles < 1:
		return errorsmod.Wrapf(ErrInvalidConfig, "cycles must be at least 1, got %d", c.Cycles)
	case c.Workers < 1:
		return errorsmod.Wrapf(ErrInvalidConfig, "workers must be at least 1, got %d", c.Workers)
	case c.SampleEvery < 1:
		return errorsmod.Wrapf(ErrInvalidConfig, "sample_every must be at least 1, got %d", c.SampleEvery)
	case c.Trail < 0:
		return errorsmod.Wrapf(ErrInvalidConfig, "trail must not be negative, got %d", c.Trail)
	}
	return nil
}
