package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	path := writeConfigFile(t, `
server {
  addr            = "0.0.0.0:9000"
  base_url        = "https://rolodex.example.com"
  allowed_origins = ["https://app.example.com"]
}

postgres {
  host   = "db.internal"
  user   = "rolodex"
  dbname = "rolodex"
}

redis {
  addr = "redis.internal:6379"
}

smtp {
  host         = "smtp.example.com"
  username     = "mailer"
  from_address = "noreply@example.com"
  from_name    = "Rolodex"
  use_tls      = true
}

auth {
  jwt_secret               = "file-secret"
  access_token_ttl_seconds = 900
}

log_level = "debug"
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "https://rolodex.example.com", cfg.Server.BaseURL)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.UseTLS)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 900, cfg.Auth.AccessTokenTTLSeconds)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNewConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
postgres {
  user   = "rolodex"
  dbname = "rolodex"
}

smtp {
  host         = "smtp.example.com"
  from_address = "noreply@example.com"
}

auth {
  jwt_secret = "secret"
}
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Server.BaseURL)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3600, cfg.Auth.AccessTokenTTLSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("ROLODEX_JWT_SECRET", "env-secret")
	t.Setenv("ROLODEX_POSTGRES_PASSWORD", "env-pg-pass")
	t.Setenv("ROLODEX_SMTP_PASSWORD", "env-smtp-pass")
	t.Setenv("ROLODEX_REDIS_PASSWORD", "env-redis-pass")

	path := writeConfigFile(t, `
postgres {
  user     = "rolodex"
  password = "file-pg-pass"
  dbname   = "rolodex"
}

smtp {
  host         = "smtp.example.com"
  from_address = "noreply@example.com"
}

auth {
  jwt_secret = "file-secret"
}
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-pg-pass", cfg.Postgres.Password)
	assert.Equal(t, "env-smtp-pass", cfg.SMTP.Password)
	assert.Equal(t, "env-redis-pass", cfg.Redis.Password)
}

func TestNewConfigValidation(t *testing.T) {
	t.Setenv("ROLODEX_JWT_SECRET", "")

	path := writeConfigFile(t, ``)

	_, err := NewConfig(path)
	require.Error(t, err)

	// Every missing field is reported at once.
	assert.Contains(t, err.Error(), "auth.jwt_secret")
	assert.Contains(t, err.Error(), "postgres.user")
	assert.Contains(t, err.Error(), "postgres.dbname")
	assert.Contains(t, err.Error(), "smtp.host")
	assert.Contains(t, err.Error(), "smtp.from_address")
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
