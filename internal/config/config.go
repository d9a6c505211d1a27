package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" envconfig:"DATASET"`
	Reports ReportsConfig `yaml:"reports" envconfig:"REPORTS"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// DatasetConfig describes the sales dataset source
type DatasetConfig struct {
	Path     string `yaml:"path" envconfig:"PATH" default:"data/superstore.csv" validate:"required"`
	Encoding string `yaml:"encoding" envconfig:"ENCODING" default:"latin1" validate:"oneof=latin1 windows1252 utf8"`
}

// ReportsConfig controls where generated reports are written
type ReportsConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR" default:"reports" validate:"required"`
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK" default:"sales_analysis.xlsx"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/salescope.log"`
}

// Load loads configuration from environment variables and an optional
// config file. Environment variables win over file values; struct tag
// defaults fill anything left unset. The result is validated before
// being returned, so a non-nil Config is always usable.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SALES", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		mergeFileConfig(&cfg, *fileCfg)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks a configuration against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// configFilePath returns the config file location, overridable via env
func configFilePath() string {
	if path := os.Getenv("SALES_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// loadFromFile reads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// mergeFileConfig overlays file values onto the env-processed config.
// A file value applies only when the corresponding environment variable
// is unset, so precedence stays env > file > struct tag defaults.
func mergeFileConfig(cfg *Config, file Config) {
	envSet := func(key string) bool {
		_, ok := os.LookupEnv("SALES_" + key)
		return ok
	}

	if file.Dataset.Path != "" && !envSet("DATASET_PATH") {
		cfg.Dataset.Path = file.Dataset.Path
	}
	if file.Dataset.Encoding != "" && !envSet("DATASET_ENCODING") {
		cfg.Dataset.Encoding = file.Dataset.Encoding
	}
	if file.Reports.Dir != "" && !envSet("REPORTS_DIR") {
		cfg.Reports.Dir = file.Reports.Dir
	}
	if file.Reports.Workbook != "" && !envSet("REPORTS_WORKBOOK") {
		cfg.Reports.Workbook = file.Reports.Workbook
	}
	if file.Server.Port != 0 && !envSet("SERVER_PORT") {
		cfg.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 && !envSet("SERVER_READ_TIMEOUT") {
		cfg.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 && !envSet("SERVER_WRITE_TIMEOUT") {
		cfg.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.IdleTimeout != 0 && !envSet("SERVER_IDLE_TIMEOUT") {
		cfg.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if file.Server.ShutdownTimeout != 0 && !envSet("SERVER_SHUTDOWN_TIMEOUT") {
		cfg.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if file.Server.RateLimitRPS != 0 && !envSet("SERVER_RATE_LIMIT_RPS") {
		cfg.Server.RateLimitRPS = file.Server.RateLimitRPS
	}
	if file.Server.RateLimitBurst != 0 && !envSet("SERVER_RATE_LIMIT_BURST") {
		cfg.Server.RateLimitBurst = file.Server.RateLimitBurst
	}
	if file.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		cfg.Logging.Level = file.Logging.Level
	}
	if file.Logging.Output != "" && !envSet("LOGGING_OUTPUT") {
		cfg.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" && !envSet("LOGGING_FILE_PATH") {
		cfg.Logging.FilePath = file.Logging.FilePath
	}
}
