package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty temp dir so no stray config.yaml is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "./guardrail_quote.db", cfg.Database.Path)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, 256, cfg.Activity.BufferSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := chdir(t)
	yaml := `
server:
  port: 9090
  mode: release
database:
  path: /tmp/quotes.db
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("DB_PATH", "/var/lib/gq/quotes.db")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "/var/lib/gq/quotes.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_BadFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInsecureDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"session.secret", "auth.admin_password"}, cfg.InsecureDefaults())

	t.Setenv("SESSION_SECRET", "s3cret")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"auth.admin_password"}, cfg.InsecureDefaults())

	t.Setenv("ADMIN_PASSWORD", "Str0ng!pass")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.InsecureDefaults())
}
