package layout

import (
	"regexp"
	"strings"
)

// Header is a parsed [table] or [[array]] header line.
type Header struct {
	Name  string // dotted name with surrounding spaces removed
	Array bool
}

var (
	headerLine = regexp.MustCompile(`^[ \t]*(\[\[?)[ \t]*([A-Za-z0-9_.\- \t]+?)[ \t]*(\]\]?)[ \t]*(#.*)?$`)
	keyLine    = regexp.MustCompile(`^([ \t]*)([A-Za-z0-9_-]+|"[^"]*")([ \t]*=[ \t]*)(.*)$`)
	fullLine   = regexp.MustCompile(`^[ \t]*full[ \t]*=[ \t]*"((?:[^"\\]|\\.)*)"`)
)

// ParseHeader recognizes a table header line.
func ParseHeader(line string) (Header, bool) {
	m := headerLine.FindStringSubmatch(line)
	if m == nil || len(m[1]) != len(m[3]) {
		return Header{}, false
	}
	parts := strings.Split(m[2], ".")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return Header{Name: strings.Join(parts, "."), Array: len(m[1]) == 2}, true
}

// KeyLine is a "key = value" assignment line split into its pieces, so the
// value can be replaced without touching the rest.
type KeyLine struct {
	Indent string
	Key    string // unquoted
	Sep    string // "=" with its surrounding whitespace
	Value  string // raw value text including any trailing comment
}

// ParseKeyLine recognizes a simple key assignment.
func ParseKeyLine(line string) (KeyLine, bool) {
	m := keyLine.FindStringSubmatch(line)
	if m == nil {
		return KeyLine{}, false
	}
	return KeyLine{Indent: m[1], Key: strings.Trim(m[2], `"`), Sep: m[3], Value: m[4]}, true
}

// FindFull locates the quoted value of a `full = "..."` line. Start and End
// are byte offsets of the value between the quotes.
func FindFull(line string) (start, end int, ok bool) {
	m := fullLine.FindStringSubmatchIndex(line)
	if m == nil {
		return 0, 0, false
	}
	return m[2], m[3], true
}

// IsBlank reports whether line is empty or only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment reports whether line holds only a comment.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// Indent returns the leading whitespace of line.
func Indent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
