// Package store is the load/persist boundary for registry documents.
//
// # Why Store Exists
//
// The rewrite package works on strings and never touches the file system.
// The batch runner reads and writes documents only through Store, which
// keeps file I/O in one place and lets the whole migration run against
// in-memory fixtures in tests.
//
// # Implementations
//
//   - Dir: a flat directory on disk. Saves are atomic: a document is either
//     fully replaced or left as it was.
//   - Memory: a map guarded by a mutex, for tests and dry runs.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load for an unknown document name.
var ErrNotFound = errors.New("document not found")

// Store lists, loads and persists documents by name.
type Store interface {
	// List returns every document name in lexicographic order.
	List(ctx context.Context) ([]string, error)
	// Load returns the raw content of a document.
	Load(ctx context.Context, name string) ([]byte, error)
	// Save replaces the content of a document. It either writes all of data
	// or leaves the previous content in place.
	Save(ctx context.Context, name string, data []byte) error
}
