package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FORMBUILDER_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3001, cfg.Server.Port)
	require.Equal(t, int64(10<<20), cfg.Server.BodyLimit)
	require.Equal(t, "formbuilder.db", cfg.DB.Path)
	require.True(t, cfg.Responses.CountIgnoresFilters)
	require.Equal(t, "0.0.0.0:3001", cfg.Server.Addr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
server:
  port: 9000
  cors_origins: ["https://app.example.com"]
  request_timeout: 5s
db:
  path: /var/lib/forms.db
  conn_max_lifetime: 5m
questions:
  types: []
responses:
  count_ignores_filters: false
`), 0o600)
	require.NoError(t, err)

	t.Setenv("FORMBUILDER_CONFIG_PATH", path)
	t.Setenv("FORMBUILDER_SERVER_PORT", "9100")
	t.Setenv("FORMBUILDER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	require.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, "/var/lib/forms.db", cfg.DB.Path)
	require.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Empty(t, cfg.Questions.Types)
	require.False(t, cfg.Responses.CountIgnoresFilters)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("FORMBUILDER_SERVER_PORT", "http")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("FORMBUILDER_SERVER_PORT", "70000")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_QuestionTypesFromEnv(t *testing.T) {
	t.Setenv("FORMBUILDER_QUESTION_TYPES", "rating, ,free-text")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"rating", "free-text"}, cfg.Questions.Types)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("FORMBUILDER_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_LogPath(t *testing.T) {
	t.Setenv("FORMBUILDER_CONFIG_PATH", "")
	t.Setenv("FORMBUILDER_LOG_PATH", "/var/log/formbuilder.log")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/var/log/formbuilder.log", cfg.Log.Path)
}
