package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Parse   ParseConfig   `yaml:"parse" envconfig:"PARSE"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ParseConfig contains extraction engine tuning.
type ParseConfig struct {
	// OverlapThreshold is the minimum span-overlap ratio used to align
	// multi-row headers. Source layouts vary by report-generator version,
	// so this stays tunable.
	OverlapThreshold float64 `yaml:"overlap_threshold" envconfig:"OVERLAP_THRESHOLD" validate:"gt=0,lte=1"`
	// MaxHeaderRows caps the physical header rows considered per block.
	MaxHeaderRows int `yaml:"max_header_rows" envconfig:"MAX_HEADER_ROWS" validate:"gte=1,lte=3"`
	// Catalogue is an optional YAML file of report-code entries that
	// overrides the built-in registry catalogue.
	Catalogue string `yaml:"catalogue" envconfig:"CATALOGUE"`
	// Placeholders are extra tokens treated as the missing marker.
	Placeholders []string `yaml:"placeholders" envconfig:"PLACEHOLDERS"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/simparse.log",
		},
		Parse: ParseConfig{
			OverlapThreshold: 0.3,
			MaxHeaderRows:    3,
		},
		Paths: PathsConfig{
			InputDir:  ".",
			OutputDir: "output",
			LogsDir:   "logs",
		},
	}
}

// Load builds the configuration: built-in defaults, overlaid by the YAML
// file when it exists, overlaid by SIMPARSE_* environment variables.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process("SIMPARSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays configuration from a YAML file. Keys absent from
// the file keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks the assembled configuration.
func (c *Config) validate() error {
	return validator.New().Struct(c)
}
