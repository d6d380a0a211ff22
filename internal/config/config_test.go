package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRAVEL_AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data/travel.db", cfg.Database.Path)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)

	tol, err := cfg.Settlement.ToleranceDecimal()
	require.NoError(t, err)
	assert.Equal(t, "0.1", tol.String())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
redis:
  addr: localhost:6379
  db: 2
cache:
  ttl: 30s
auth:
  jwt_secret: from-file
settlement:
  tolerance: "0.01"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("TRAVEL_SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port, "environment overrides the file")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, "0.01", cfg.Settlement.Tolerance)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"bad tolerance", map[string]string{"TRAVEL_AUTH_JWT_SECRET": "s", "TRAVEL_SETTLEMENT_TOLERANCE": "abc"}},
		{"negative tolerance", map[string]string{"TRAVEL_AUTH_JWT_SECRET": "s", "TRAVEL_SETTLEMENT_TOLERANCE": "-1"}},
		{"bad port", map[string]string{"TRAVEL_AUTH_JWT_SECRET": "s", "TRAVEL_SERVER_PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRAVEL_AUTH_JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		t.Setenv("TRAVEL_AUTH_JWT_SECRET", "s")
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
