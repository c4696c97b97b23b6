package rewrite

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/optsmigrate/internal/ctxlog"
	"github.com/specialistvlad/optsmigrate/internal/layout"
)

// DefaultKey is the reserved key that declares a tool's backends.
const DefaultKey = "backends"

// Rewriter migrates documents for one reserved key under one collision
// policy. It holds no per-document state and may be reused.
type Rewriter struct {
	markers *layout.Markers
	policy  Policy
}

// New returns a Rewriter for key. An empty key means DefaultKey.
func New(key string, policy Policy) *Rewriter {
	if key == "" {
		key = DefaultKey
	}
	return &Rewriter{markers: layout.NewMarkers(key), policy: policy}
}

// Result describes the outcome for one document.
type Result struct {
	Name    string
	Layout  layout.Variant
	Changed bool
	// Output is the rewritten text, or the input when nothing changed.
	Output string
}

// Rewrite parse-checks src, classifies it and applies the matching rewrite.
// An error means the document must be left untouched.
func (r *Rewriter) Rewrite(ctx context.Context, name, src string) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("document", name)

	var data map[string]any
	if _, err := toml.Decode(src, &data); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrUnparsable, err)
	}

	variant := r.markers.Classify(src)
	res := &Result{Name: name, Layout: variant, Output: src}
	logger.Debug("Document classified.", "layout", variant)

	var (
		out string
		err error
	)
	switch variant {
	case layout.InlineList:
		out, err = r.rewriteInlineList(ctx, src, data)
	case layout.TableArray, layout.InlineMixed:
		out, err = r.rewriteTableBlocks(ctx, src)
	default:
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if out == src {
		logger.Debug("Document unchanged.")
		return res, nil
	}

	var check map[string]any
	if _, err := toml.Decode(out, &check); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrInvalidOutput, err)
	}
	res.Output = out
	res.Changed = true
	logger.Debug("Document rewritten.", "bytes_before", len(src), "bytes_after", len(out))
	return res, nil
}

var blankRun = regexp.MustCompile(`\n{3,}`)

// NormalizeBlankLines collapses every run of two or more empty lines into a
// single empty line.
func NormalizeBlankLines(s string) string {
	return blankRun.ReplaceAllString(s, "\n\n")
}

// finish applies the trailing normalization shared by all variants.
func finish(lines []string) string {
	out := NormalizeBlankLines(strings.Join(lines, "\n"))
	return strings.TrimRight(out, "\n") + "\n"
}
