package annotation

import (
	"fmt"
	"regexp"
	"strings"
)

// pattern matches the first "[key=value,...]" group. The lazy value match
// stops at the first closing bracket, so an unclosed group never matches.
var pattern = regexp.MustCompile(`\[([a-z_]+=.*?)\]`)

// Option is a single key/value pair taken from an annotation.
type Option struct {
	Key   string
	Value string
}

// Options holds annotation pairs in order of appearance.
type Options []Option

// Extract removes the first annotation from s. It returns the cleaned string
// and the parsed options, or s unchanged and ok=false when no annotation is
// present.
func Extract(s string) (cleaned string, opts Options, ok bool) {
	m := pattern.FindStringSubmatchIndex(s)
	if m == nil {
		return s, nil, false
	}
	return s[:m[0]] + s[m[1]:], parse(s[m[2]:m[3]]), true
}

// Contains reports whether s carries an annotation anywhere.
func Contains(s string) bool {
	return pattern.MatchString(s)
}

// parse splits "k1=v1,k2=v2". A pair without "=" yields an empty value; a
// repeated key keeps its first position and takes the last value.
func parse(body string) Options {
	var opts Options
	for _, pair := range strings.Split(body, ",") {
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if i := opts.Index(key); i >= 0 {
			opts[i].Value = value
			continue
		}
		opts = append(opts, Option{Key: key, Value: value})
	}
	return opts
}

// Index returns the position of key in o, or -1.
func (o Options) Index(key string) int {
	for i, opt := range o {
		if opt.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the value stored for key.
func (o Options) Get(key string) (string, bool) {
	if i := o.Index(key); i >= 0 {
		return o[i].Value, true
	}
	return "", false
}

// Lines renders one "key = value" assignment per option.
func (o Options) Lines(indent string) []string {
	lines := make([]string, 0, len(o))
	for _, opt := range o {
		lines = append(lines, indent+opt.Assignment())
	}
	return lines
}

// Inline renders o as a TOML inline table: { a = "1", b = true }.
func (o Options) Inline() string {
	parts := make([]string, 0, len(o))
	for _, opt := range o {
		parts = append(parts, opt.Assignment())
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Assignment renders the option as "key = value".
func (opt Option) Assignment() string {
	return FormatKey(opt.Key) + " = " + FormatValue(opt.Value)
}

// FormatValue renders an annotation value for TOML: the literals true and
// false stay booleans, everything else becomes a basic string.
func FormatValue(v string) string {
	if v == "true" || v == "false" {
		return v
	}
	return Quote(v)
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FormatKey returns k as a bare key when possible, quoted otherwise.
func FormatKey(k string) string {
	if bareKey.MatchString(k) {
		return k
	}
	return Quote(k)
}

// Quote renders s as a TOML basic string.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
