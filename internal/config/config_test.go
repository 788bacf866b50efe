package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wryneck/token"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
dialect = "emoji"
indent = 2
color = false
strict = true

[check]
warnings = false
debounce = "250ms"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "emoji", cfg.Dialect)
	assert.Equal(t, 2, cfg.Indent)
	assert.False(t, cfg.Color)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.Check.Warnings)
	assert.Equal(t, 250*time.Millisecond, cfg.Check.Debounce.Duration)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, t.TempDir(), `strict = true`))
	require.NoError(t, err)

	assert.Equal(t, DialectAuto, cfg.Dialect)
	assert.Equal(t, 4, cfg.Indent)
	assert.True(t, cfg.Color)
	assert.True(t, cfg.Check.Warnings)
	assert.Equal(t, 100*time.Millisecond, cfg.Check.Debounce.Duration)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "config file not found")

	_, err = Load(writeConfig(t, dir, `dialect = `))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, dir, `dialect = "latin"`))
	assert.ErrorContains(t, err, "unknown dialect")

	_, err = Load(writeConfig(t, dir, `indent = 40`))
	assert.ErrorContains(t, err, "indent must be between")

	_, err = Load(writeConfig(t, dir, `colour = true`))
	assert.ErrorContains(t, err, "unknown config key")
}

func TestFindWalksParents(t *testing.T) {
	t.Setenv(EnvVar, "")

	root := t.TempDir()
	writeConfig(t, root, `indent = 8`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Indent)
}

func TestFindPrefersEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `indent = 8`)

	other := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(other, []byte(`indent = 3`), 0o644))
	t.Setenv(EnvVar, other)

	cfg, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Indent)
}

func TestDialectFor(t *testing.T) {
	cfg := Default()

	d, err := cfg.DialectFor("🥚 f() 1")
	require.NoError(t, err)
	assert.Same(t, token.Emoji, d)

	d, err = cfg.DialectFor("fn f() 1")
	require.NoError(t, err)
	assert.Same(t, token.Classic, d)

	cfg.Dialect = "classic"
	d, err = cfg.DialectFor("🥚 f() 1")
	require.NoError(t, err)
	assert.Same(t, token.Classic, d)
}
