package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// defaultDimensions yields a 32-node cube.
	defaultDimensions    = 5
	defaultMaxDimensions = 20
	defaultDBPath        = ".hypercube/store"
)

type DBConfig struct {
	Path string `yaml:"path"`
}

// WithDefaults returns a copy of the DBConfig with any missing fields
// set to their default values.
func (c DBConfig) WithDefaults() DBConfig {
	cpy := c
	if cpy.Path == "" {
		cpy.Path = defaultDBPath
	}
	return cpy
}

type Config struct {
	// Dimensions is the cube dimension used when a command does not
	// specify one.
	Dimensions int `yaml:"dimensions"`
	// MaxDimensions bounds cube construction; 2^MaxDimensions nodes.
	MaxDimensions int      `yaml:"maxDimensions"`
	DB            DBConfig `yaml:"db"`
	// LogFile, when set, directs structured logs to a file instead of
	// stderr.
	LogFile string `yaml:"logFile"`
}

// WithDefaults returns a copy of the Config with any missing fields set
// to their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	if cpy.Dimensions == 0 {
		cpy.Dimensions = defaultDimensions
	}
	if cpy.MaxDimensions == 0 {
		cpy.MaxDimensions = defaultMaxDimensions
	}
	cpy.DB = cpy.DB.WithDefaults()
	return cpy
}

// LoadConfig reads a yaml config file and applies defaults. An empty
// path yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "load config")
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "load config")
		}
	}

	cfg = cfg.WithDefaults()
	return &cfg, nil
}

// SaveConfig writes the config as yaml, creating parent directories as
// needed.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "save config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "save config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "save config")
	}

	return nil
}
