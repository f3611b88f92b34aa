package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/fr4nk3nst1ner/jobboard/internal/source"
	"github.com/fr4nk3nst1ner/jobboard/internal/storage"
)

// ValidationError reports one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Message)
}

// Validate checks the values Load cannot repair with a default.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, &ValidationError{Field: "api.base_url", Message: "must be an absolute URL"})
	}
	if c.API.ProxyURL != "" {
		if _, err := url.Parse(c.API.ProxyURL); err != nil {
			errs = append(errs, &ValidationError{Field: "api.proxy", Message: "must be a URL"})
		}
	}

	switch c.API.Provider {
	case source.ProviderArbeitnow:
	case source.ProviderGreenhouse, source.ProviderLever:
		if c.API.Board == "" {
			errs = append(errs, &ValidationError{Field: "api.board", Message: "is required for the " + c.API.Provider + " provider"})
		}
	default:
		errs = append(errs, &ValidationError{Field: "api.provider", Message: "must be one of: arbeitnow, greenhouse, lever"})
	}
	if c.API.BoardURL != "" {
		if u, err := url.Parse(c.API.BoardURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, &ValidationError{Field: "api.board_url", Message: "must be an absolute URL"})
		}
	}

	switch c.Storage.Backend {
	case storage.BackendFile, storage.BackendMemory:
	case storage.BackendRedis:
		if c.Storage.RedisURL == "" {
			errs = append(errs, &ValidationError{Field: "storage.redis_url", Message: "is required for the redis backend"})
		}
	default:
		errs = append(errs, &ValidationError{Field: "storage.backend", Message: "must be one of: file, redis, memory"})
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Field: "log.level", Message: "must be one of: debug, info, warn, error"})
	}

	return errors.Join(errs...)
}
