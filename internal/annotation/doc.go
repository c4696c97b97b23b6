// Package annotation recognizes the deprecated bracketed option syntax that
// registry backends embed in their identifiers, for example
// "ubi:owner/repo[exe=tool,matching=musl]", and renders extracted options
// back into TOML text.
//
// The grammar is a fixed contract shared with producers outside this
// repository: a single bracketed, comma separated list of key=value pairs,
// no escaping, no nested brackets, values taken verbatim.
package annotation
