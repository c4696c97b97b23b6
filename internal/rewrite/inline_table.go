package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/optsmigrate/internal/annotation"
	"github.com/specialistvlad/optsmigrate/internal/layout"
)

// rewriteInlineTable cleans the full value of the inline mapping at span and
// adds the options as an inline mapping inside it, merging into an existing
// options entry.
func (r *Rewriter) rewriteInlineTable(ctx context.Context, buf *lineBuffer, i int, span layout.Span) error {
	line := buf.Line(i)
	cleaned, opts, ok := annotation.Extract(line[span.Start:span.End])
	if !ok {
		return nil
	}
	opts, err := unescapeOptions(opts)
	if err != nil {
		return err
	}
	line = line[:span.Start] + cleaned + line[span.End:]

	closeAt := matchBrace(line, span.Open)
	if closeAt < 0 {
		return fmt.Errorf("%w: inline table does not close on its line", ErrUnsupportedEntry)
	}

	parts := splitTopLevel(line[span.Open+1 : closeAt])
	for n, part := range parts {
		k, v, found := strings.Cut(part, "=")
		if !found || strings.Trim(strings.TrimSpace(k), `"`) != "options" {
			continue
		}
		merged, err := r.mergeInlineOptions(ctx, strings.TrimSpace(v), opts)
		if err != nil {
			return err
		}
		lead := part[:len(part)-len(strings.TrimLeft(part, " \t"))]
		trail := part[len(strings.TrimRight(part, " \t")):]
		parts[n] = lead + "options = " + merged + trail
		buf.Replace(i, line[:span.Open+1]+strings.Join(parts, ",")+line[closeAt:])
		return nil
	}

	before := strings.TrimRight(line[:closeAt], " \t")
	buf.Replace(i, before+", options = "+opts.Inline()+" "+line[closeAt:])
	return nil
}

// mergeInlineOptions merges opts into the text of an inline options mapping.
func (r *Rewriter) mergeInlineOptions(ctx context.Context, value string, opts annotation.Options) (string, error) {
	if !strings.HasPrefix(value, "{") || !strings.HasSuffix(value, "}") {
		return "", fmt.Errorf("%w: options is not an inline table", ErrUnsupportedEntry)
	}
	entries := splitTopLevel(value[1 : len(value)-1])
	defined := make(map[string]int, len(entries))
	for n, entry := range entries {
		k, v, _ := strings.Cut(entry, "=")
		k = strings.Trim(strings.TrimSpace(k), `"`)
		if strings.HasPrefix(strings.TrimSpace(v), "{") {
			defined[k] = subTable
			continue
		}
		defined[k] = n
	}

	fresh, replaced, err := r.merge(ctx, defined, opts)
	if err != nil {
		return "", err
	}
	for _, opt := range replaced {
		entries[defined[opt.Key]] = opt.Assignment()
	}
	for _, opt := range fresh {
		entries = append(entries, opt.Assignment())
	}
	for n := range entries {
		entries[n] = strings.TrimSpace(entries[n])
	}
	if len(entries) == 0 {
		return "{}", nil
	}
	return "{ " + strings.Join(entries, ", ") + " }", nil
}

// matchBrace returns the index of the brace closing the one at open, or -1.
// Quoted strings are skipped.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			i = skipString(s, i)
			if i < 0 {
				return -1
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// skipString returns the index of the quote closing the string that starts
// at i, or -1.
func skipString(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		if q == '"' && s[j] == '\\' {
			j++
			continue
		}
		if s[j] == q {
			return j
		}
	}
	return -1
}

// splitTopLevel splits s on commas outside strings, arrays and inline tables.
// The pieces keep their surrounding whitespace so they can be joined back.
func splitTopLevel(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\'':
			if j := skipString(s, i); j >= 0 {
				i = j
			}
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}
