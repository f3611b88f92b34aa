// Package config loads jobboard settings from an optional YAML file,
// .env files and environment variables.
//
// Precedence, highest first: environment (including values from .env),
// the YAML file, then the defaults below.
//
// Example config.yml:
//
//	api:
//	  base_url: https://www.arbeitnow.com/api/job-board-api
//	  timeout: 15s
//	storage:
//	  backend: redis
//	  redis_url: redis://localhost:6379/0
//	log:
//	  level: debug
//
// Browsing a single company's Greenhouse or Lever board instead:
//
//	api:
//	  provider: greenhouse
//	  board: gitlab
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/source"
	"github.com/fr4nk3nst1ner/jobboard/internal/storage"
	"github.com/fr4nk3nst1ner/jobboard/internal/utils"
)

// Defaults.
const (
	DefaultTimeout     = 15 * time.Second
	DefaultLogLevel    = "warn"
	DefaultStorage     = storage.BackendFile
	DefaultDataDirName = "jobboard"
)

// Config represents the application configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Display DisplayConfig `yaml:"display"`
	Log     logger.Config `yaml:"log"`
}

type APIConfig struct {
	Provider       string        `yaml:"provider" env:"JOBBOARD_PROVIDER"`
	Board          string        `yaml:"board" env:"JOBBOARD_BOARD"`
	BoardURL       string        `yaml:"board_url" env:"JOBBOARD_BOARD_URL"`
	BaseURL        string        `yaml:"base_url" env:"JOBBOARD_API_BASE_URL"`
	Timeout        time.Duration `yaml:"timeout" env:"JOBBOARD_API_TIMEOUT"`
	ProxyURL       string        `yaml:"proxy" env:"JOBBOARD_PROXY"`
	PageSize       int           `yaml:"page_size"`
	LookupPageSize int           `yaml:"lookup_page_size"`
}

type StorageConfig struct {
	Backend  string `yaml:"backend" env:"JOBBOARD_STORAGE"`
	DataDir  string `yaml:"data_dir" env:"JOBBOARD_DATA_DIR"`
	RedisURL string `yaml:"redis_url" env:"JOBBOARD_REDIS_URL"`
}

type DisplayConfig struct {
	TruncateLength int  `yaml:"truncate_length"`
	NoColor        bool `yaml:"no_color" env:"NO_COLOR"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Provider:       source.ProviderArbeitnow,
			BaseURL:        source.DefaultBaseURL,
			Timeout:        DefaultTimeout,
			PageSize:       source.DefaultPageSize,
			LookupPageSize: source.LookupPageSize,
		},
		Storage: StorageConfig{
			Backend: DefaultStorage,
			DataDir: defaultDataDir(),
		},
		Display: DisplayConfig{
			TruncateLength: utils.DefaultTruncateLength,
		},
		Log: logger.Config{
			Level: DefaultLogLevel,
		},
	}
}

// StorageOptions converts the storage section for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:  c.Storage.Backend,
		DataDir:  c.Storage.DataDir,
		RedisURL: c.Storage.RedisURL,
	}
}

// setDefaults fills zero values left by a partial YAML file.
func (c *Config) setDefaults() {
	d := Default()
	if c.API.Provider == "" {
		c.API.Provider = d.API.Provider
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.API.PageSize <= 0 {
		c.API.PageSize = d.API.PageSize
	}
	if c.API.LookupPageSize <= 0 {
		c.API.LookupPageSize = d.API.LookupPageSize
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = d.Storage.DataDir
	}
	if c.Display.TruncateLength <= 0 {
		c.Display.TruncateLength = d.Display.TruncateLength
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, DefaultDataDirName)
	}
	return "." + DefaultDataDirName
}
