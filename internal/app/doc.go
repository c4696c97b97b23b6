// Package app contains the batch runner. It wires configuration, logging,
// document storage and the rewriter together and drives one migration run
// over a directory, decoupled from the CLI entrypoint.
package app
