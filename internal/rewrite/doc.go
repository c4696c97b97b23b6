// Package rewrite migrates registry documents from bracketed backend
// annotations to explicit options tables.
//
// # Approach
//
// Documents are treated as lines of opaque text. Only the backend
// declaration is recognized (see package layout); edits are queued against
// line indexes and applied in one pass, so any line not named by an edit is
// carried through byte for byte. The decoded TOML view is used to
// parse-check input, to read the entries of an inline list, and to verify
// that the output still parses.
//
// # Variants
//
//   - inline-list: the `backends = [...]` assignment is removed and every
//     entry is re-emitted as a [[backends]] block at the end of the document.
//   - table-array: each annotated `full` line is cleaned in place and its
//     options land in a [backends.options] table, merging with an existing one.
//   - inline-mixed: an inline `{ full = "..." }` mapping gets an inline
//     `options = { ... }` entry.
//
// # Collisions
//
// When an option already exists in the destination table, Policy decides
// between rejecting the document, keeping the existing value and replacing it.
// Duplicate keys are never written.
package rewrite
