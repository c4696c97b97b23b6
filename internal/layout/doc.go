// Package layout recognizes the handful of TOML line shapes the migration
// needs to reason about (table headers, key assignments, the backend list
// declaration) and classifies a document into the layout variant that
// decides which rewrite applies.
//
// Everything else in a document is opaque text.
package layout
