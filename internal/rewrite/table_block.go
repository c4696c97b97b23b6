package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/optsmigrate/internal/annotation"
	"github.com/specialistvlad/optsmigrate/internal/layout"
)

// rewriteTableBlocks edits [[<key>]] blocks in place: each annotated full
// line is cleaned and its options move into the block's options table.
// Inline mappings with an annotated full value are handled on the way.
func (r *Rewriter) rewriteTableBlocks(ctx context.Context, src string) (string, error) {
	lines := strings.Split(src, "\n")
	buf := newLineBuffer(lines)
	key := r.markers.Key()

	block := -1
	inRoot := false
	for i, line := range lines {
		if h, ok := layout.ParseHeader(line); ok {
			inRoot = h.Array && h.Name == key
			if inRoot {
				block = i
			}
			continue
		}
		if inRoot {
			if start, end, ok := layout.FindFull(line); ok {
				if err := r.rewriteFull(ctx, buf, block, i, start, end); err != nil {
					return "", fmt.Errorf("line %d: %w", i+1, err)
				}
				continue
			}
		}
		// Right to left, so each edit leaves the offsets of earlier
		// mappings valid.
		spans := layout.FindAllInlineMixed(line)
		for n := len(spans) - 1; n >= 0; n-- {
			if err := r.rewriteInlineTable(ctx, buf, i, spans[n]); err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
		}
	}

	if !buf.Modified() {
		return src, nil
	}
	return finish(buf.Lines()), nil
}

// rewriteFull cleans the full value on line i of the block starting at
// line header and queues its options.
func (r *Rewriter) rewriteFull(ctx context.Context, buf *lineBuffer, header, i, start, end int) error {
	line := buf.lines[i]
	cleaned, opts, ok := annotation.Extract(line[start:end])
	if !ok {
		return nil
	}
	opts, err := unescapeOptions(opts)
	if err != nil {
		return err
	}

	info := r.scanBlock(buf.lines, header)
	if info.inlineOptions {
		return fmt.Errorf("%w: options is already assigned inside the block", ErrOptionConflict)
	}
	fresh, replaced, err := r.merge(ctx, info.optionKeys, opts)
	if err != nil {
		return err
	}

	buf.Replace(i, line[:start]+cleaned+line[end:])

	if info.optionsHeader >= 0 {
		for _, opt := range replaced {
			at := info.optionKeys[opt.Key]
			kl, _ := layout.ParseKeyLine(buf.lines[at])
			buf.Replace(at, kl.Indent+annotation.FormatKey(kl.Key)+kl.Sep+annotation.FormatValue(opt.Value))
		}
		if len(fresh) > 0 {
			buf.InsertAfter(info.optionsHeader, fresh.Lines(info.optionIndent)...)
		}
		return nil
	}

	if len(fresh) == 0 {
		return nil
	}
	table := []string{"", info.headerIndent + "[" + r.markers.OptionsTable() + "]"}
	table = append(table, fresh.Lines(layout.Indent(line))...)
	buf.InsertAfter(info.lastKey, table...)
	return nil
}

type section int

const (
	sectionRoot section = iota
	sectionOptions
	sectionOther
)

// blockInfo is what the options placement needs to know about one
// [[<key>]] block.
type blockInfo struct {
	headerIndent string
	// lastKey is the last line holding a key (or a continuation of one)
	// directly in the block's own table.
	lastKey int
	// optionsHeader is the line of the block's [<key>.options] header, or -1.
	optionsHeader int
	optionIndent  string
	// optionKeys maps defined option keys to their line; keys that are
	// defined by a child table map to subTable.
	optionKeys map[string]int
	// inlineOptions is set when the block assigns options directly.
	inlineOptions bool
}

// scanBlock walks the block from its header to the next header that does
// not belong to it.
func (r *Rewriter) scanBlock(lines []string, header int) blockInfo {
	key := r.markers.Key()
	optionsTable := r.markers.OptionsTable()
	info := blockInfo{
		headerIndent:  layout.Indent(lines[header]),
		lastKey:       header,
		optionsHeader: -1,
		optionKeys:    make(map[string]int),
	}

	sec := sectionRoot
	indentSet := false
	for j := header + 1; j < len(lines); j++ {
		line := lines[j]
		if h, ok := layout.ParseHeader(line); ok {
			if h.Array || !strings.HasPrefix(h.Name, key+".") {
				break
			}
			switch {
			case h.Name == optionsTable:
				sec = sectionOptions
				info.optionsHeader = j
				if !indentSet {
					info.optionIndent = layout.Indent(line)
				}
			case strings.HasPrefix(h.Name, optionsTable+"."):
				sec = sectionOther
				child, _, _ := strings.Cut(strings.TrimPrefix(h.Name, optionsTable+"."), ".")
				if _, ok := info.optionKeys[child]; !ok {
					info.optionKeys[child] = subTable
				}
			default:
				sec = sectionOther
			}
			continue
		}
		if layout.IsBlank(line) || layout.IsComment(line) {
			continue
		}

		switch sec {
		case sectionRoot:
			info.lastKey = j
			if kl, ok := layout.ParseKeyLine(line); ok && kl.Key == "options" {
				info.inlineOptions = true
			}
			if strings.HasPrefix(strings.TrimSpace(line), "options.") {
				info.inlineOptions = true
			}
		case sectionOptions:
			if kl, ok := layout.ParseKeyLine(line); ok {
				if !indentSet {
					info.optionIndent = kl.Indent
					indentSet = true
				}
				info.optionKeys[kl.Key] = j
			}
		}
	}
	return info
}
