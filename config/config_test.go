package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr bool
		verify  func(t *testing.T, cfg *Config)
	}{
		{
			name: "file only",
			yaml: `
postgres:
  dsn: postgres://file/db
jwt:
  secret: file-secret
redis:
  addr: localhost:6379
scheduler:
  sweep_interval: 1m
`,
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres://file/db", cfg.Postgres.DSN)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, time.Minute, cfg.Scheduler.SweepInterval)
				assert.Equal(t, ":8080", cfg.HTTP.Addr)
				assert.True(t, cfg.Scheduler.Enabled)
			},
		},
		{
			name: "env overrides file",
			yaml: `
postgres:
  dsn: postgres://file/db
jwt:
  secret: file-secret
`,
			env: map[string]string{
				"DATABASE_URL":         "postgres://env/db",
				"HTTP_ALLOWED_ORIGINS": "https://a.example,https://b.example",
				"SCHEDULER_ENABLED":    "false",
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres://env/db", cfg.Postgres.DSN)
				assert.Equal(t, "file-secret", cfg.JWT.Secret)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
				assert.False(t, cfg.Scheduler.Enabled)
			},
		},
		{
			name: "missing file falls back to env",
			env: map[string]string{
				"DATABASE_URL": "postgres://env/db",
				"JWT_SECRET":   "env-secret",
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env-secret", cfg.JWT.Secret)
				assert.Equal(t, "info", cfg.Observability.LogLevel)
			},
		},
		{
			name:    "missing required settings",
			yaml:    "http:\n  addr: :9000\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "postgres: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "absent.yaml")
			if tt.yaml != "" {
				path = writeConfig(t, tt.yaml)
			}

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestToObsConfig(t *testing.T) {
	cfg := Default()
	cfg.Observability.LogLevel = "debug"

	obs := ToObsConfig(&cfg)
	assert.Equal(t, "matchup", obs.ServiceName)
	assert.Equal(t, "debug", obs.LogLevel)
	assert.True(t, obs.MetricsEnabled)
}

func TestLoadSkipsValidation(t *testing.T) {
	path := writeConfig(t, "postgres:\n  dsn: postgres://file/db\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://file/db", cfg.Postgres.DSN)
	assert.Empty(t, cfg.JWT.Secret)
}
