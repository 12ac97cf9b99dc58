package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/roster-import/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.False(t, cfg.Ingest.RowTransaction)
	assert.Equal(t, time.Hour, cfg.ConnMaxLifetime())
	assert.Error(t, cfg.RequireDatabase())
}

func TestLoadFileThenEnvironment(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
database:
  url: postgres://file
  max_conns: 4
ingest:
  row_transaction: true
logging:
  level: debug
`), 0o600))

	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("PORT", "")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres://env", cfg.Database.URL)
	assert.Equal(t, 4, cfg.Database.MaxConns)
	assert.True(t, cfg.Ingest.RowTransaction)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.NoError(t, cfg.RequireDatabase())
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INGEST_ROW_TRANSACTION", "maybe")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidPool(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_MIN_CONNS", "20")
	t.Setenv("DB_MAX_CONNS", "5")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidBodyLimit(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BODY_LIMIT", "ten")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "body_limit")
}

func TestLoadAcceptsBodyLimitSizes(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BODY_LIMIT", "512K")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "512K", cfg.Server.BodyLimit)
}
