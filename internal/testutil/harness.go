// Package testutil runs the migration end to end against a temporary
// registry directory for integration tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/optsmigrate/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of one migration run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Summary   *app.Summary
	Err       error
}

// WriteRegistry creates a temporary directory holding files.
func WriteRegistry(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// RunMigration runs the app once over dir with cfg. cfg.Dir is overwritten.
func RunMigration(t *testing.T, dir string, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.Dir = dir
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	summary, runErr := app.NewApp(out, logs, config, nil).Run(context.Background())

	return &HarnessResult{
		Dir:       dir,
		Output:    out.String(),
		LogOutput: logs.String(),
		Summary:   summary,
		Err:       runErr,
	}
}

// ReadFile returns the current content of a registry document.
func (r *HarnessResult) ReadFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.Dir, name))
	require.NoError(t, err)
	return string(data)
}
