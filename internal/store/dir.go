package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/creachadair/atomicfile"
	"github.com/specialistvlad/optsmigrate/internal/ctxlog"
	"github.com/specialistvlad/optsmigrate/internal/fsutil"
)

// defaultMode is used when the target file does not exist yet.
const defaultMode fs.FileMode = 0o644

// Dir stores documents as files with a common extension in one directory.
type Dir struct {
	root string
	ext  string
}

// NewDir returns a Dir over root holding files that end with ext.
func NewDir(root, ext string) *Dir {
	return &Dir{root: root, ext: ext}
}

// List implements Store.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	names, err := fsutil.ListFilesByExtension(d.root, d.ext)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.root, err)
	}
	ctxlog.FromContext(ctx).Debug("Documents discovered.", "dir", d.root, "count", len(names))
	return names, nil
}

// Load implements Store.
func (d *Dir) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(d.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Save implements Store. The content goes to a temporary file that is
// renamed over the target on success, keeping the target's permissions.
func (d *Dir) Save(ctx context.Context, name string, data []byte) error {
	target := d.path(name)
	mode := defaultMode
	if fi, err := os.Stat(target); err == nil {
		mode = fi.Mode().Perm()
	}

	f, err := atomicfile.New(target, mode)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", name, err)
	}
	defer f.Cancel()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", name, err)
	}
	ctxlog.FromContext(ctx).Debug("Document saved.", "path", target, "bytes", len(data))
	return nil
}

func (d *Dir) path(name string) string {
	return filepath.Join(d.root, filepath.Base(name))
}
