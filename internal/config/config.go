package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete tool configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/msrcli.log"`
}

// PathsConfig contains the directory layout.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs" validate:"required"`
}

// ProcessingConfig contains defaults for the shock-event pipeline.
type ProcessingConfig struct {
	// SkipInvalidSheets selects skip-and-warn over abort-on-error when a
	// sheet fails validation. Command-line flags override it.
	SkipInvalidSheets bool `yaml:"skip_invalid_sheets" envconfig:"SKIP_INVALID_SHEETS" default:"false"`
}

const (
	// EnvPrefix is the prefix for configuration environment variables,
	// e.g. MSR_LOGGING_LEVEL.
	EnvPrefix = "MSR"

	// DefaultConfigFile is the optional YAML configuration file looked up
	// in the working directory.
	DefaultConfigFile = "msrcli.yaml"
)

// Load reads configuration from the optional YAML file and then from
// environment variables, which take precedence.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom behaves like Load with an explicit config file path.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", configFile, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	return validator.New().Struct(c)
}
