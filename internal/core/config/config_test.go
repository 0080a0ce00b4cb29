package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "socialnet", c.App.Name)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, "social_media.db", c.DB.DSN)
	assert.True(t, c.DB.AutoMigrate)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
app:
  http:
    port: 9090
    max_body_mb: 4
log:
  level: warn
  file:
    enable: true
    max_backups: 3
db:
  driver: postgres
  dsn: host=localhost dbname=social
`), 0o600))
	t.Setenv("APP_DB_DRIVER", "mysql")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9090, c.App.HTTP.Port)
	assert.EqualValues(t, 4, c.App.HTTP.MaxBodyMB)
	assert.Equal(t, "warn", c.Log.Level)
	assert.True(t, c.Log.File.Enable)
	assert.Equal(t, 3, c.Log.File.MaxBackups)
	assert.Equal(t, "logs", c.Log.File.Dir)
	assert.Equal(t, "mysql", c.DB.Driver)
	assert.Equal(t, "host=localhost dbname=social", c.DB.DSN)
}

func TestLoadMalformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("app: [unclosed\n"), 0o600))
	_, err := Load(p)
	assert.Error(t, err)
}
