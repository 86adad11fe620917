package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/fourchimps/crudgen/internal/module"
	"github.com/fourchimps/crudgen/internal/types"
)

// DefaultFile is read when no config file is given. It is optional.
const DefaultFile = "crudgen.yaml"

// EnvPrefix prefixes the environment overrides, e.g. CRUDGEN_LOG_LEVEL.
const EnvPrefix = "CRUDGEN"

type Config struct {
	SkeletonDir string                  `yaml:"skeleton_dir"`
	Modules     map[string]module.Entry `yaml:"modules"`
	Defaults    DefaultsConfig          `yaml:"defaults"`
	Log         LogConfig               `yaml:"log"`
}

// DefaultsConfig seeds the generation options not given on the command line.
type DefaultsConfig struct {
	Format    string `yaml:"format"`
	WithWrite bool   `yaml:"with_write"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// env lists the variables overriding the file.
type env struct {
	SkeletonDir string `envconfig:"SKELETON_DIR"`
	Format      string `envconfig:"FORMAT"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	LogEnv      string `envconfig:"LOG_ENV"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{Format: string(types.FormatAnnotation)},
		Log:      LogConfig{Level: "info", Env: "development"},
	}
}

// Load reads path, or DefaultFile when path is empty, then applies .env and
// environment overrides. Only an explicitly named file must exist.
func Load(path string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := Default()
	file, required := path, true
	if file == "" {
		file, required = DefaultFile, false
	}
	if err := cfg.readFile(file); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	cfg.apply(e)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) apply(e env) {
	if e.SkeletonDir != "" {
		c.SkeletonDir = e.SkeletonDir
	}
	if e.Format != "" {
		c.Defaults.Format = e.Format
	}
	if e.LogLevel != "" {
		c.Log.Level = e.LogLevel
	}
	if e.LogEnv != "" {
		c.Log.Env = e.LogEnv
	}
}

// Validate checks the default format and the module names.
func (c *Config) Validate() error {
	if c.Defaults.Format != "" {
		f, err := types.ParseFormat(c.Defaults.Format)
		if err != nil {
			return err
		}
		c.Defaults.Format = string(f)
	}
	for name, m := range c.Modules {
		if !types.ValidIdentifier(name) {
			return &types.InvalidInputError{Field: "modules", Value: name, Reason: "module names must be identifiers"}
		}
		if m.Dir == "" {
			return &types.InvalidInputError{Field: "modules." + name + ".dir", Reason: "must not be empty"}
		}
	}
	return nil
}
