package rewrite

// lineBuffer queues edits against the original line indexes of a document.
// Edits never shift indexes, so they can be recorded in any order.
type lineBuffer struct {
	lines    []string
	replaced map[int]string
	after    map[int][]string
}

func newLineBuffer(lines []string) *lineBuffer {
	return &lineBuffer{
		lines:    lines,
		replaced: make(map[int]string),
		after:    make(map[int][]string),
	}
}

// Replace sets the text of line i.
func (b *lineBuffer) Replace(i int, text string) {
	b.replaced[i] = text
}

// Line returns the current text of line i, including a pending replacement.
func (b *lineBuffer) Line(i int) string {
	if text, ok := b.replaced[i]; ok {
		return text
	}
	return b.lines[i]
}

// InsertAfter queues lines to follow line i. Repeated calls for the same
// index keep their call order.
func (b *lineBuffer) InsertAfter(i int, lines ...string) {
	b.after[i] = append(b.after[i], lines...)
}

// Modified reports whether any edit was queued.
func (b *lineBuffer) Modified() bool {
	return len(b.replaced) > 0 || len(b.after) > 0
}

// Lines applies the queued edits and returns the resulting lines.
func (b *lineBuffer) Lines() []string {
	out := make([]string, 0, len(b.lines))
	for i := range b.lines {
		out = append(out, b.Line(i))
		out = append(out, b.after[i]...)
	}
	return out
}
