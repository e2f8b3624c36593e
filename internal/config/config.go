// Package config loads application settings from defaults, an optional YAML
// file, a .env file and FORKIFY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvAPIURL         = "FORKIFY_API_URL"
	EnvAPIKey         = "FORKIFY_API_KEY"
	EnvTimeout        = "FORKIFY_TIMEOUT"
	EnvResultsPerPage = "FORKIFY_RESULTS_PER_PAGE"
	EnvDBPath         = "FORKIFY_DB"
	EnvOrigin         = "FORKIFY_ORIGIN"
	EnvOffline        = "FORKIFY_OFFLINE"
	EnvLogLevel       = "FORKIFY_LOG_LEVEL"
)

// DefaultAPIURL is the hosted recipe API.
const DefaultAPIURL = "https://forkify-api.herokuapp.com/api/v2/recipes/"

// Config holds every tunable setting.
type Config struct {
	APIURL         string        `yaml:"api_url"`
	APIKey         string        `yaml:"api_key"`
	Timeout        time.Duration `yaml:"timeout"`
	ResultsPerPage int           `yaml:"results_per_page"`
	ModalClose     time.Duration `yaml:"modal_close"`
	DBPath         string        `yaml:"db_path"`
	Origin         string        `yaml:"origin"`
	Offline        bool          `yaml:"offline"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		Timeout:        10 * time.Second,
		ResultsPerPage: 10,
		ModalClose:     2500 * time.Millisecond,
		DBPath:         ".forkify/storage.db",
		Origin:         "forkify.local",
		LogLevel:       "normal",
		LogFile:        ".forkify/forkify.log",
	}
}

// Load builds a Config. path may be empty; a missing file is not an error.
// A .env file in the working directory is loaded first if present.
func Load(path string) (Config, error) {
	cfg := Default()

	_ = godotenv.Load()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvResultsPerPage); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvResultsPerPage, err)
		}
		c.ResultsPerPage = n
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvOrigin); v != "" {
		c.Origin = v
	}
	if v := os.Getenv(EnvOffline); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvOffline, err)
		}
		c.Offline = b
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	if c.ResultsPerPage <= 0 {
		return fmt.Errorf("config: results_per_page must be positive, got %d", c.ResultsPerPage)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if !c.Offline && c.APIURL == "" {
		return errors.New("config: api_url is required unless offline")
	}
	return nil
}
