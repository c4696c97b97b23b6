package rewrite

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/optsmigrate/internal/annotation"
)

// unescapeOptions decodes option values that were cut from the raw body of
// a basic string, so they can be quoted again without doubling escapes.
func unescapeOptions(opts annotation.Options) (annotation.Options, error) {
	out := make(annotation.Options, len(opts))
	for n, opt := range opts {
		v, err := unescape(opt.Value)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", opt.Key, err)
		}
		out[n] = annotation.Option{Key: opt.Key, Value: v}
	}
	return out, nil
}

// unescape decodes the body of a TOML basic string.
func unescape(raw string) (string, error) {
	if !strings.Contains(raw, `\`) {
		return raw, nil
	}
	var doc struct {
		V string `toml:"v"`
	}
	if _, err := toml.Decode(`v = "`+raw+`"`, &doc); err != nil {
		return "", fmt.Errorf("%w: cannot decode %q: %w", ErrUnsupportedEntry, raw, err)
	}
	return doc.V, nil
}
