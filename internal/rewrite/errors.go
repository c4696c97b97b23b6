package rewrite

import "errors"

var (
	// ErrUnparsable is returned for input that is not valid TOML.
	ErrUnparsable = errors.New("document is not valid TOML")
	// ErrInvalidOutput is returned when a rewrite would produce invalid TOML.
	ErrInvalidOutput = errors.New("rewritten document is not valid TOML")
	// ErrOptionConflict is returned when an annotation option is already
	// defined in its destination and the policy does not allow resolving it.
	ErrOptionConflict = errors.New("option already defined")
	// ErrUnsupportedEntry is returned for backend entries that cannot be
	// migrated without losing content.
	ErrUnsupportedEntry = errors.New("unsupported backend entry")
	// ErrNotAtRoot is returned when the inline backend list is not a root key.
	ErrNotAtRoot = errors.New("backend list is not declared at the document root")
)
