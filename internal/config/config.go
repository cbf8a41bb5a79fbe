// Package config loads application configuration from environment variables
// (prefix SALES) merged over an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/salespulse.log"`
}

// EngineConfig tunes the aggregation engine.
type EngineConfig struct {
	TopCustomers int `yaml:"top_customers" envconfig:"TOP_CUSTOMERS" default:"10"`
	TopProducts  int `yaml:"top_products" envconfig:"TOP_PRODUCTS" default:"10"`
	TopReps      int `yaml:"top_reps" envconfig:"TOP_REPS" default:"10"`
	TopPairs     int `yaml:"top_pairs" envconfig:"TOP_PAIRS" default:"20"`
	Concurrency  int `yaml:"concurrency" envconfig:"CONCURRENCY" default:"1"`

	// Today overrides the recency reference date (YYYY-MM-DD); empty means
	// wall clock.
	Today string `yaml:"today" envconfig:"TODAY"`
}

// PathsConfig contains the file system paths used by the report CLI.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
}

// Load reads the optional YAML config file and applies SALES_* environment
// variables on top.
func Load() (*Config, error) {
	return LoadFrom(configFilePath())
}

// LoadFrom loads configuration with an explicit config file path. A missing
// file is not an error. Precedence is environment over file over defaults:
// envconfig fills defaults and explicit SALES_* variables first, then file
// values replace anything the environment did not set.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SALES", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
			cfg.mergeFile(fileCfg)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile overlays file-provided values onto the env-derived config. A
// field is taken from the file when it is set there and its environment
// variable is absent. Boolean flags can only be overridden through the
// environment.
func (c *Config) mergeFile(file Config) {
	envSet := func(key string) bool {
		_, ok := os.LookupEnv("SALES_" + key)
		return ok
	}

	if file.Server.Port != 0 && !envSet("SERVER_PORT") {
		c.Server.Port = file.Server.Port
	}
	if file.Server.ReadTimeout != 0 && !envSet("SERVER_READ_TIMEOUT") {
		c.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 && !envSet("SERVER_WRITE_TIMEOUT") {
		c.Server.WriteTimeout = file.Server.WriteTimeout
	}
	if file.Server.IdleTimeout != 0 && !envSet("SERVER_IDLE_TIMEOUT") {
		c.Server.IdleTimeout = file.Server.IdleTimeout
	}
	if file.Server.ShutdownTimeout != 0 && !envSet("SERVER_SHUTDOWN_TIMEOUT") {
		c.Server.ShutdownTimeout = file.Server.ShutdownTimeout
	}
	if file.Server.RateLimit.RPS != 0 && !envSet("SERVER_RATE_LIMIT_RPS") {
		c.Server.RateLimit.RPS = file.Server.RateLimit.RPS
	}
	if file.Server.RateLimit.Burst != 0 && !envSet("SERVER_RATE_LIMIT_BURST") {
		c.Server.RateLimit.Burst = file.Server.RateLimit.Burst
	}

	if file.Logging.Level != "" && !envSet("LOGGING_LEVEL") {
		c.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" && !envSet("LOGGING_FORMAT") {
		c.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" && !envSet("LOGGING_OUTPUT") {
		c.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" && !envSet("LOGGING_FILE_PATH") {
		c.Logging.FilePath = file.Logging.FilePath
	}

	if file.Engine.TopCustomers != 0 && !envSet("ENGINE_TOP_CUSTOMERS") {
		c.Engine.TopCustomers = file.Engine.TopCustomers
	}
	if file.Engine.TopProducts != 0 && !envSet("ENGINE_TOP_PRODUCTS") {
		c.Engine.TopProducts = file.Engine.TopProducts
	}
	if file.Engine.TopReps != 0 && !envSet("ENGINE_TOP_REPS") {
		c.Engine.TopReps = file.Engine.TopReps
	}
	if file.Engine.TopPairs != 0 && !envSet("ENGINE_TOP_PAIRS") {
		c.Engine.TopPairs = file.Engine.TopPairs
	}
	if file.Engine.Concurrency != 0 && !envSet("ENGINE_CONCURRENCY") {
		c.Engine.Concurrency = file.Engine.Concurrency
	}
	if file.Engine.Today != "" && !envSet("ENGINE_TODAY") {
		c.Engine.Today = file.Engine.Today
	}

	if file.Paths.DataDir != "" && !envSet("PATHS_DATA_DIR") {
		c.Paths.DataDir = file.Paths.DataDir
	}
	if file.Paths.ReportsDir != "" && !envSet("PATHS_REPORTS_DIR") {
		c.Paths.ReportsDir = file.Paths.ReportsDir
	}
}

// Validate checks cross-field constraints not expressible as struct tags.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Engine.Concurrency < 0 {
		return fmt.Errorf("invalid engine concurrency: %d", c.Engine.Concurrency)
	}
	if c.Engine.Today != "" {
		if _, err := time.Parse("2006-01-02", c.Engine.Today); err != nil {
			return fmt.Errorf("invalid engine today override %q: %w", c.Engine.Today, err)
		}
	}
	return nil
}

func configFilePath() string {
	if p := os.Getenv("SALES_CONFIG_FILE"); p != "" {
		return p
	}
	return "salespulse.yaml"
}
