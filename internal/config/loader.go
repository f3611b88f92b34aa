package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PathEnv names the variable that points at the YAML file.
const PathEnv = "JOBBOARD_CONFIG"

// loadEnvFiles loads .env files in priority order:
// 1. ENV_FILE (if set, only this file)
// 2. .env.local
// 3. .env
// Missing files are ignored. godotenv never overrides variables already set.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load builds the configuration. path may be empty, in which case
// JOBBOARD_CONFIG is consulted; a missing file means defaults only.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	if path == "" {
		path = os.Getenv(PathEnv)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		default:
			cfg = &Config{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.setDefaults()
	if err := applyEnvOverrides(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// applyEnvOverrides walks the config structs and replaces every field tagged
// `env:"NAME"` whose variable is set and non-empty. Unparsable values are
// reported, not skipped.
func applyEnvOverrides(v reflect.Value) error {
	var errs []error
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		name := t.Field(i).Tag.Get("env")
		val := os.Getenv(name)
		if name == "" || val == "" {
			continue
		}
		if err := setFromEnv(field, val); err != nil {
			errs = append(errs, &ValidationError{Field: name, Message: err.Error()})
		}
	}
	return errors.Join(errs...)
}

// setFromEnv handles the kinds Config uses. Booleans follow the NO_COLOR
// convention: any value other than false, 0 or no turns them on.
func setFromEnv(field reflect.Value, val string) error {
	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("is not a duration: %q", val)
		}
		field.SetInt(int64(d))
	case field.Kind() == reflect.String:
		field.SetString(val)
	case field.Kind() == reflect.Int:
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("is not an integer: %q", val)
		}
		field.SetInt(int64(n))
	case field.Kind() == reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "false", "0", "no":
			field.SetBool(false)
		default:
			field.SetBool(true)
		}
	default:
		return fmt.Errorf("has unsupported type %s", field.Type())
	}
	return nil
}
