package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/jobboard/internal/source"
	"github.com/fr4nk3nst1ner/jobboard/internal/storage"
)

// isolate runs the test from an empty directory so no stray .env is loaded.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, name := range []string{
		"ENV_FILE", PathEnv, "JOBBOARD_API_BASE_URL", "JOBBOARD_API_TIMEOUT", "JOBBOARD_PROXY",
		"JOBBOARD_PROVIDER", "JOBBOARD_BOARD", "JOBBOARD_BOARD_URL",
		"JOBBOARD_STORAGE", "JOBBOARD_DATA_DIR", "JOBBOARD_REDIS_URL", "LOG_LEVEL", "NO_COLOR",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, source.ProviderArbeitnow, cfg.API.Provider)
	assert.Equal(t, source.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.API.PageSize)
	assert.Equal(t, 1000, cfg.API.LookupPageSize)
	assert.Equal(t, storage.BackendFile, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.DataDir)
	assert.Equal(t, 150, cfg.Display.TruncateLength)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, source.DefaultBaseURL, cfg.API.BaseURL)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yml")
	writeFile(t, path, `
api:
  base_url: http://localhost:9000/jobs
  timeout: 3s
storage:
  backend: memory
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/jobs", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20, cfg.API.PageSize)
	assert.Equal(t, storage.BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 150, cfg.Display.TruncateLength)
}

func TestLoad_PathFromEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "other.yml")
	writeFile(t, path, "log:\n  level: error\n")
	t.Setenv(PathEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yml")
	writeFile(t, path, "storage:\n  backend: file\n")

	t.Setenv("JOBBOARD_STORAGE", "redis")
	t.Setenv("JOBBOARD_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("JOBBOARD_API_TIMEOUT", "750ms")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("NO_COLOR", "yes")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, storage.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Storage.RedisURL)
	assert.Equal(t, 750*time.Millisecond, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Display.NoColor)

	opts := cfg.StorageOptions()
	assert.Equal(t, storage.BackendRedis, opts.Backend)
	assert.Equal(t, "redis://localhost:6379/1", opts.RedisURL)
}

func TestLoad_EnvValueErrors(t *testing.T) {
	isolate(t)
	t.Setenv("JOBBOARD_API_TIMEOUT", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorContains(t, err, "JOBBOARD_API_TIMEOUT")

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoad_EnvBool(t *testing.T) {
	for value, want := range map[string]bool{"1": true, "yes": true, "anything": true, "false": false, "0": false, "NO": false} {
		t.Run(value, func(t *testing.T) {
			isolate(t)
			t.Setenv("NO_COLOR", value)

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, want, cfg.Display.NoColor)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "JOBBOARD_DATA_DIR="+filepath.Join(dir, "state")+"\n")
	// godotenv leaves variables that are already present alone, even empty ones.
	require.NoError(t, os.Unsetenv("JOBBOARD_DATA_DIR"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "state"), cfg.Storage.DataDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yml")
	writeFile(t, path, "api: [")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		field   string
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "/jobs" },
			field:   "api.base_url",
			wantErr: true,
		},
		{
			name: "greenhouse board",
			mutate: func(c *Config) {
				c.API.Provider = source.ProviderGreenhouse
				c.API.Board = "gitlab"
			},
		},
		{
			name:    "lever without board",
			mutate:  func(c *Config) { c.API.Provider = source.ProviderLever },
			field:   "api.board",
			wantErr: true,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.API.Provider = "workday" },
			field:   "api.provider",
			wantErr: true,
		},
		{
			name:    "relative board url",
			mutate:  func(c *Config) { c.API.BoardURL = "boards" },
			field:   "api.board_url",
			wantErr: true,
		},
		{
			name:    "redis without url",
			mutate:  func(c *Config) { c.Storage.Backend = storage.BackendRedis },
			field:   "storage.redis_url",
			wantErr: true,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "sqlite" },
			field:   "storage.backend",
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			field:   "log.level",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
