package rewrite

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/optsmigrate/internal/annotation"
)

// formatValue renders a decoded TOML value as inline TOML text.
func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return annotation.Quote(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return formatFloat(x), nil
	case time.Time:
		return formatTime(x)
	case []any:
		return formatArray(len(x), func(i int) any { return x[i] })
	case []map[string]any:
		return formatArray(len(x), func(i int) any { return x[i] })
	case map[string]any:
		return formatTable(x)
	}
	return "", fmt.Errorf("%w: value of type %T", ErrUnsupportedEntry, v)
}

func formatArray(n int, at func(int) any) (string, error) {
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := formatValue(at(i))
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func formatTable(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		s, err := formatValue(m[k])
		if err != nil {
			return "", err
		}
		parts = append(parts, annotation.FormatKey(k)+" = "+s)
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

// formatTime goes through the toml encoder, which knows the local date, time
// and datetime zones the decoder attaches.
func formatTime(t time.Time) (string, error) {
	var b bytes.Buffer
	if err := toml.NewEncoder(&b).Encode(map[string]time.Time{"v": t}); err != nil {
		return "", fmt.Errorf("encoding datetime: %w", err)
	}
	return strings.TrimSpace(strings.TrimPrefix(b.String(), "v = ")), nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
