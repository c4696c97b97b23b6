package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/optsmigrate/internal/annotation"
	"github.com/specialistvlad/optsmigrate/internal/ctxlog"
	"github.com/specialistvlad/optsmigrate/internal/layout"
)

// rewriteInlineList removes the `<key> = [...]` assignment and appends one
// [[<key>]] block per entry at the end of the document, since array-of-table
// blocks must follow every root assignment.
func (r *Rewriter) rewriteInlineList(ctx context.Context, src string, data map[string]any) (string, error) {
	lines := strings.Split(src, "\n")
	start, end, ok := r.findInlineList(lines)
	if !ok {
		return src, nil
	}
	for _, line := range lines[:start] {
		if _, ok := layout.ParseHeader(line); ok {
			return "", ErrNotAtRoot
		}
	}

	entries, err := listEntries(data[r.markers.Key()])
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return src, nil
	}

	out := make([]string, 0, len(lines)+4*len(entries))
	out = append(out, lines[:start]...)
	out = append(out, lines[end+1:]...)
	for len(out) > 0 && layout.IsBlank(out[len(out)-1]) {
		out = out[:len(out)-1]
	}

	for i, entry := range entries {
		block, err := r.expandEntry(ctx, entry)
		if err != nil {
			return "", fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, "")
		out = append(out, block...)
	}
	ctxlog.FromContext(ctx).Debug("Inline backend list expanded.", "entries", len(entries), "first_line", start+1, "last_line", end+1)

	return strings.TrimLeft(finish(out), "\n"), nil
}

// findInlineList returns the first and last line of the assignment. Bracket
// depth is tracked per line; annotation brackets open and close on the same
// line, so they never disturb the count.
func (r *Rewriter) findInlineList(lines []string) (start, end int, ok bool) {
	depth := 0
	start = -1
	for i, line := range lines {
		if start < 0 {
			if !r.markers.IsInlineListStart(line) {
				continue
			}
			start = i
		}
		depth += strings.Count(line, "[") - strings.Count(line, "]")
		if depth <= 0 {
			return start, i, true
		}
	}
	return -1, -1, false
}

func listEntries(v any) ([]any, error) {
	switch x := v.(type) {
	case []any:
		return x, nil
	case []map[string]any:
		entries := make([]any, len(x))
		for i, m := range x {
			entries[i] = m
		}
		return entries, nil
	}
	return nil, fmt.Errorf("%w: declaration decodes to %T, not an array", ErrUnsupportedEntry, v)
}

// expandEntry renders one [[<key>]] block, followed by its options table
// when the entry carried an annotation.
func (r *Rewriter) expandEntry(ctx context.Context, entry any) ([]string, error) {
	header := "[[" + r.markers.Key() + "]]"

	switch e := entry.(type) {
	case string:
		full, opts, _ := annotation.Extract(e)
		block := []string{header, "full = " + annotation.Quote(full)}
		return append(block, r.optionsTable(opts)...), nil

	case map[string]any:
		raw, ok := e["full"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: table without a string full field", ErrUnsupportedEntry)
		}
		full, opts, _ := annotation.Extract(raw)
		block := []string{header, "full = " + annotation.Quote(full)}

		for _, k := range extraKeys(e) {
			s, err := formatValue(e[k])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			block = append(block, annotation.FormatKey(k)+" = "+s)
		}

		existing, ok := e["options"].(map[string]any)
		if !ok {
			if _, present := e["options"]; present {
				return nil, fmt.Errorf("%w: options is not a table", ErrUnsupportedEntry)
			}
			return append(block, r.optionsTable(opts)...), nil
		}
		merged, err := r.mergeDecodedOptions(ctx, existing, opts)
		if err != nil {
			return nil, err
		}
		return append(block, merged...), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedEntry, entry)
}

// extraKeys orders the fields copied next to full: platforms first, then the
// rest by name. options is handled separately.
func extraKeys(e map[string]any) []string {
	var keys []string
	if _, ok := e["platforms"]; ok {
		keys = append(keys, "platforms")
	}
	for _, k := range sortedKeys(e) {
		switch k {
		case "full", "platforms", "options":
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

func (r *Rewriter) optionsTable(opts annotation.Options) []string {
	if len(opts) == 0 {
		return nil
	}
	lines := []string{"", "[" + r.markers.OptionsTable() + "]"}
	return append(lines, opts.Lines("")...)
}

// mergeDecodedOptions renders an entry's inline options mapping as a table,
// merging the annotation options into it.
func (r *Rewriter) mergeDecodedOptions(ctx context.Context, existing map[string]any, opts annotation.Options) ([]string, error) {
	keys := sortedKeys(existing)
	defined := make(map[string]int, len(keys))
	for i, k := range keys {
		if _, isTable := existing[k].(map[string]any); isTable {
			defined[k] = subTable
			continue
		}
		defined[k] = i
	}
	fresh, replaced, err := r.merge(ctx, defined, opts)
	if err != nil {
		return nil, err
	}

	lines := []string{"", "[" + r.markers.OptionsTable() + "]"}
	for _, k := range keys {
		if v, ok := replaced.Get(k); ok {
			lines = append(lines, annotation.Option{Key: k, Value: v}.Assignment())
			continue
		}
		s, err := formatValue(existing[k])
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", k, err)
		}
		lines = append(lines, annotation.FormatKey(k)+" = "+s)
	}
	return append(lines, fresh.Lines("")...), nil
}
