package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
database:
  host: db.internal
  dbname: gongu_prod
jwt:
  secret: file-secret
  access_token_expiration: 30m
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "gongu_prod", cfg.Database.DBName)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "30m", cfg.JWT.AccessTokenExpiration)

	// Untouched fields keep their defaults
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: from-file
jwt:
  secret: file-secret
`)
	t.Setenv("DB_HOST", "from-env")
	t.Setenv("SERVER_PORT", "3000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("missing JWT secret", func(t *testing.T) {
		path := writeConfigFile(t, `
database:
  host: localhost
`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("bad expiration format", func(t *testing.T) {
		path := writeConfigFile(t, `
jwt:
  secret: s3cret
  access_token_expiration: soon
`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestGetPostgresConnectionString(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: db.internal
  port: "5433"
  user: gongu
  password: pw
  dbname: gongu
  sslmode: require
jwt:
  secret: s3cret
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t,
		"postgres://gongu:pw@db.internal:5433/gongu?sslmode=require",
		cfg.GetPostgresConnectionString())
}
