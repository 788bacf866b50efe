package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wryneck/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color"}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParsePrintsTree(t *testing.T) {
	path := writeFile(t, t.TempDir(), "add.wry", "fn add(x, y) { *)> x + y; } [add(1, 2) = 3]")

	stdout, stderr, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Equal(t, "fn add(x, y) { return (x + y); } [add(1, 2) = 3]\n", stdout)
	assert.Contains(t, stderr, "Successfully parsed")
}

func TestParseDumpsTree(t *testing.T) {
	path := writeFile(t, t.TempDir(), "one.wry", "fn one() 1")

	stdout, _, err := execute(t, "parse", "--ast", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Function one (0 tests) @1:1")
}

func TestParseReportsAllErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.wry", "fn f() { @ *)> 1 + #; }")

	stdout, stderr, err := execute(t, "parse", path)
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "fn f() { error; return (1 + error); }\n", stdout)
	assert.Contains(t, stderr, "unexpected `@`, expected statement")
	assert.Contains(t, stderr, "unexpected `#`, expected expression")
	assert.Contains(t, stderr, "2 errors generated")
	assert.Contains(t, stderr, "Parsing failed")
}

func TestParseStrictStopsAtFirstError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.wry", "fn f() { *)> 1 }")

	stdout, stderr, err := execute(t, "parse", "--strict", path)
	assert.ErrorIs(t, err, errFailed)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Syntax error in")
}

func TestParseMissingFile(t *testing.T) {
	_, _, err := execute(t, "parse", filepath.Join(t.TempDir(), "missing.wry"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFailed)
}

func TestDialectFlag(t *testing.T) {
	path := writeFile(t, t.TempDir(), "egg.wry", "🥚 f() 1")

	_, _, err := execute(t, "parse", path)
	require.NoError(t, err)

	_, stderr, err := execute(t, "--dialect", "classic", "parse", path)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "unexpected `🥚`")

	_, _, err = execute(t, "--dialect", "latin", "parse", path)
	assert.ErrorContains(t, err, "unknown dialect")
}

func TestFmtPrintsCanonicalLayout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "add.wry", "fn add(x,y){*)> x+y;}")

	stdout, _, err := execute(t, "fmt", "--indent", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "fn add(x, y) {\n  *)> (x + y);\n}\n", stdout)
}

func TestFmtTranslatesDialect(t *testing.T) {
	path := writeFile(t, t.TempDir(), "add.wry", "fn hatch() { *)> 1; }")

	stdout, _, err := execute(t, "fmt", "--to", "emoji", path)
	require.NoError(t, err)
	assert.Equal(t, "🥚 🐣() {\n    🐔 1;\n}\n", stdout)
}

func TestFmtRefusesKeywordNames(t *testing.T) {
	path := writeFile(t, t.TempDir(), "egg.wry", "🥚 f(egg) { let fn = egg; 🐔 fn; }")

	stdout, stderr, err := execute(t, "fmt", "--to", "classic", path)
	assert.ErrorIs(t, err, errFailed)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "'egg' at")
	assert.Contains(t, stderr, "'fn' at")
}

func TestFmtWriteAndList(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "add.wry", "fn add(x,y) x+y")

	stdout, _, err := execute(t, "fmt", "-l", path)
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, path+"\n", stdout)

	_, _, err = execute(t, "fmt", "-w", path)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fn add(x, y) (x + y)\n", string(content))

	stdout, _, err = execute(t, "fmt", "-l", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestFmtLeavesBrokenFilesAlone(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.wry", "fn f() { *)> 1 }")

	_, stderr, err := execute(t, "fmt", "-w", path)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "expected ';'")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fn f() { *)> 1 }", string(content))
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.wry", "fn add(x, y) x + y\nfn main() add(1, 2)")
	warn := writeFile(t, dir, "warn.wry", "fn main() ad(1, 2)")
	bad := writeFile(t, dir, "bad.wry", "fn (x) 1")

	stdout, stderr, err := execute(t, "check", good, warn)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok "+good+" (2 functions)")
	assert.Contains(t, stdout, "ok "+warn+" (1 functions)")
	assert.Contains(t, stderr, "call to unknown function 'ad'")

	_, stderr, err = execute(t, "check", "--no-warnings", warn, bad)
	assert.ErrorIs(t, err, errFailed)
	assert.NotContains(t, stderr, "unknown function")
	assert.Contains(t, stderr, "expected identifier, found `(`")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, config.FileName, "indent = 8\n")
	path := writeFile(t, dir, "f.wry", "fn f() { *)> 1; }")

	stdout, _, err := execute(t, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "fn f() {\n        *)> 1;\n}\n", stdout)

	other := writeFile(t, t.TempDir(), "other.toml", "indent = 1\n")
	stdout, _, err = execute(t, "--config", other, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, "fn f() {\n *)> 1;\n}\n", stdout)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wryneck v"+Version)
	assert.Contains(t, stdout, "[classic emoji]")
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "w.wry", "fn f() 1")
	writeFile(t, dir, "other.wry", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, []string{path}, 20*time.Millisecond, func(p string) { changed <- p })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.wry"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("fn f() 2"), 0o644))

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
	case <-ctx.Done():
		t.Fatal("no change reported")
	}

	cancel()
	require.NoError(t, <-done)
}
