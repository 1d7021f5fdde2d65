// Package config provides configuration management for the corpus exporter.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingInputRoot  = errors.New("input.root is required")
	ErrMissingOutputRoot = errors.New("output.root is required")
	ErrInvalidFormat     = errors.New("output.format must be one of: csv, tsv, json")
	ErrInvalidWorkers    = errors.New("engine.workers must be at least 1")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
)

// fieldErrors maps validator struct namespaces to the sentinel for that field.
var fieldErrors = map[string]error{
	"Config.Exporter.Input.Root":     ErrMissingInputRoot,
	"Config.Exporter.Output.Root":    ErrMissingOutputRoot,
	"Config.Exporter.Output.Format":  ErrInvalidFormat,
	"Config.Exporter.Engine.Workers": ErrInvalidWorkers,
	"Config.Exporter.Logging.Level":  ErrInvalidLogLevel,
}

var validate = validator.New()

// Config represents the complete exporter configuration.
type Config struct {
	Exporter ExporterConfig `yaml:"exporter"`
}

// ExporterConfig contains exporter-specific settings.
type ExporterConfig struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig locates the per-user archive tree.
type InputConfig struct {
	Root string `yaml:"root" validate:"required"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	Root         string `yaml:"root" validate:"required"`
	Format       string `yaml:"format" validate:"oneof=csv tsv json"`
	DocumentMode bool   `yaml:"document_mode"`
	Parallelized bool   `yaml:"parallelized"`
}

// EngineConfig sizes the execution engine.
type EngineConfig struct {
	Workers int `yaml:"workers" validate:"min=1"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Exporter: ExporterConfig{
			Input:   InputConfig{Root: "data"},
			Output:  OutputConfig{Root: "cleaned", Format: "tsv"},
			Engine:  EngineConfig{Workers: 4},
			Logging: LoggingConfig{Level: "info"},
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration against its struct tags. The first
// violation is mapped to its sentinel error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if sentinel, ok := fieldErrors[fe.StructNamespace()]; ok {
				return sentinel
			}
		}
	}

	return fmt.Errorf("invalid configuration: %w", err)
}

// GetOutputPath follows structure: {output.root}/{user}/{user}.{format}.
func (c *Config) GetOutputPath(user string) string {
	return fmt.Sprintf("%s/%s/%s.%s",
		c.Exporter.Output.Root,
		user,
		user,
		c.Exporter.Output.Format,
	)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, Format: %s, Workers: %d}",
		c.Exporter.Input.Root,
		c.Exporter.Output.Root,
		c.Exporter.Output.Format,
		c.Exporter.Engine.Workers,
	)
}
