package layout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/specialistvlad/optsmigrate/internal/annotation"
)

// Variant identifies how a document declares its backend list.
type Variant int

const (
	// None means there is nothing to migrate, or no known shape was found.
	None Variant = iota
	// InlineList is a root assignment: backends = ["...", { full = "..." }].
	InlineList
	// TableArray is a sequence of [[backends]] blocks.
	TableArray
	// InlineMixed is an inline mapping { full = "..." } outside both shapes.
	InlineMixed
)

func (v Variant) String() string {
	switch v {
	case None:
		return "none"
	case InlineList:
		return "inline-list"
	case TableArray:
		return "table-array"
	case InlineMixed:
		return "inline-mixed"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// inlineFull captures the raw value of a full key that opens an inline
// mapping. Escaped quotes stay inside the value.
var inlineFull = regexp.MustCompile(`\{\s*full\s*=\s*"((?:[^"\\]|\\.)*)"`)

// Markers holds the line recognizers for one reserved key.
type Markers struct {
	key        string
	tableArray *regexp.Regexp
	inlineList *regexp.Regexp
}

// NewMarkers builds the recognizers for the reserved declaration key.
func NewMarkers(key string) *Markers {
	q := regexp.QuoteMeta(key)
	return &Markers{
		key:        key,
		tableArray: regexp.MustCompile(`(?m)^[ \t]*\[\[[ \t]*` + q + `[ \t]*\]\]`),
		inlineList: regexp.MustCompile(`^` + q + `\s*=\s*\[`),
	}
}

// Key returns the reserved declaration key.
func (m *Markers) Key() string { return m.key }

// OptionsTable returns the dotted name of the options sub-table.
func (m *Markers) OptionsTable() string { return m.key + ".options" }

// Classify decides which rewrite applies to text. A table-array header wins
// over an inline list if both are present.
func (m *Markers) Classify(text string) Variant {
	if !annotation.Contains(text) {
		return None
	}
	if m.tableArray.MatchString(text) {
		return TableArray
	}
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if m.IsInlineListStart(line) {
			return InlineList
		}
	}
	for _, line := range lines {
		if _, ok := FindInlineMixed(line); ok {
			return InlineMixed
		}
	}
	return None
}

// Classify is a convenience wrapper around NewMarkers(key).Classify(text).
func Classify(text, key string) Variant {
	return NewMarkers(key).Classify(text)
}

// IsInlineListStart reports whether line opens "<key> = [".
func (m *Markers) IsInlineListStart(line string) bool {
	return m.inlineList.MatchString(line)
}

// FindInlineMixed locates the first inline mapping on line whose full value
// carries an annotation.
func FindInlineMixed(line string) (Span, bool) {
	spans := FindAllInlineMixed(line)
	if len(spans) == 0 {
		return Span{}, false
	}
	return spans[0], true
}

// FindAllInlineMixed locates every inline mapping on line whose full value
// carries an annotation, in order. Each span holds the byte offsets of the
// opening brace and of the value between the quotes.
func FindAllInlineMixed(line string) []Span {
	var spans []Span
	for _, loc := range inlineFull.FindAllStringSubmatchIndex(line, -1) {
		if !annotation.Contains(line[loc[2]:loc[3]]) {
			continue
		}
		spans = append(spans, Span{Open: loc[0], Start: loc[2], End: loc[3]})
	}
	return spans
}

// Span locates a quoted value inside an inline mapping.
type Span struct {
	Open  int // index of '{'
	Start int // first byte of the value
	End   int // one past the last byte of the value
}
