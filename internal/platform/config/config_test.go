package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad(t *testing.T) {
	t.Run("defaults with required key", func(t *testing.T) {
		cfg, err := load(envOf(map[string]string{"CIVREG_JWT_SIGNING_KEY": "k"}))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, "5432", cfg.DB.Port)
		assert.Equal(t, "civreg", cfg.DB.Name)
		assert.Equal(t, "postgres", cfg.DB.User)
		assert.Empty(t, cfg.DB.Password)
		assert.Equal(t, 30, cfg.RateLimit.AuthPerMinute)
		assert.Empty(t, cfg.Redis.URL)
	})

	t.Run("missing signing key", func(t *testing.T) {
		_, err := load(envOf(nil))
		require.ErrorContains(t, err, "CIVREG_JWT_SIGNING_KEY")
	})

	t.Run("env overrides", func(t *testing.T) {
		cfg, err := load(envOf(map[string]string{
			"CIVREG_JWT_SIGNING_KEY": "k",
			"DB_HOST":                "db.internal",
			"DB_PASSWORD":            "s3cret",
			"AUTH_RATE_LIMIT":        "5",
			"REDIS_URL":              "redis://cache:6379/0",
		}))
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.DB.Host)
		assert.Equal(t, "s3cret", cfg.DB.Password)
		assert.Equal(t, 5, cfg.RateLimit.AuthPerMinute)
		assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URL)
	})

	t.Run("bad rate limit", func(t *testing.T) {
		_, err := load(envOf(map[string]string{
			"CIVREG_JWT_SIGNING_KEY": "k",
			"AUTH_RATE_LIMIT":        "many",
		}))
		require.ErrorContains(t, err, "AUTH_RATE_LIMIT")
	})

	t.Run("yaml file then env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "civreg.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  request_timeout: 5s
database:
  host: yaml-host
  name: registry
auth:
  jwt_signing_key: from-file
`), 0o600))

		cfg, err := load(envOf(map[string]string{
			"CIVREG_CONFIG_FILE": path,
			"DB_HOST":            "env-host",
		}))
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, "env-host", cfg.DB.Host)
		assert.Equal(t, "registry", cfg.DB.Name)
		assert.Equal(t, "from-file", cfg.Auth.JWTSigningKey)
		assert.Equal(t, "5432", cfg.DB.Port, "unset keys keep defaults")
	})
}

func TestDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", Name: "civreg", User: "u", Password: "p@ss", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@h:5432/civreg?sslmode=disable", c.DSN())
}
