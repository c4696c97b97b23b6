package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_MigratesDirectory(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "tool.toml")
	err := os.WriteFile(path, []byte("[[backends]]\nfull = \"ubi:o/t[exe=t]\"\n"), 0o600)
	require.NoError(t, err, "failed to set up test file")
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, &bytes.Buffer{}, []string{dir})

	// --- Assert ---
	require.NoError(t, runErr)
	require.Contains(t, out.String(), "Modified: tool.toml")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[[backends]]\nfull = \"ubi:o/t\"\n\n[backends.options]\nexe = \"t\"\n", string(data))
}

func TestRun_UnparsableDocumentFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	invalid := "backends = [\"ubi:o/t[exe=t]\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.toml"), []byte(invalid), 0o600))
	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, logs, []string{dir})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 1 documents failed")
	require.Contains(t, logs.String(), "not valid TOML")

	data, readErr := os.ReadFile(filepath.Join(dir, "broken.toml"))
	require.NoError(t, readErr)
	require.Equal(t, invalid, string(data))
}
