package annotation

import (
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		wantCleaned string
		wantOpts    Options
		wantOK      bool
	}{
		{
			name:        "single option",
			input:       "ubi:owner/tool[exe=tool]",
			wantCleaned: "ubi:owner/tool",
			wantOpts:    Options{{Key: "exe", Value: "tool"}},
			wantOK:      true,
		},
		{
			name:        "several options keep their order",
			input:       "ubi:owner/tool[matching=musl,exe=tool,extract_all=true]",
			wantCleaned: "ubi:owner/tool",
			wantOpts: Options{
				{Key: "matching", Value: "musl"},
				{Key: "exe", Value: "tool"},
				{Key: "extract_all", Value: "true"},
			},
			wantOK: true,
		},
		{
			name:        "annotation in the middle",
			input:       "aqua:owner/tool[x=1]@latest",
			wantCleaned: "aqua:owner/tool@latest",
			wantOpts:    Options{{Key: "x", Value: "1"}},
			wantOK:      true,
		},
		{
			name:        "spaces around later pairs are trimmed",
			input:       "cargo:tool[features= a , bin = b ]",
			wantCleaned: "cargo:tool",
			wantOpts:    Options{{Key: "features", Value: "a"}, {Key: "bin", Value: "b"}},
			wantOK:      true,
		},
		{
			name:        "leading space is not an annotation",
			input:       "cargo:tool[ features=a]",
			wantCleaned: "cargo:tool[ features=a]",
			wantOK:      false,
		},
		{
			name:        "pair without value",
			input:       "ubi:o/t[exe=t,flag]",
			wantCleaned: "ubi:o/t",
			wantOpts:    Options{{Key: "exe", Value: "t"}, {Key: "flag", Value: ""}},
			wantOK:      true,
		},
		{
			name:        "only the first annotation is removed",
			input:       "ubi:o/t[a=1][b=2]",
			wantCleaned: "ubi:o/t[b=2]",
			wantOpts:    Options{{Key: "a", Value: "1"}},
			wantOK:      true,
		},
		{
			name:        "repeated key keeps first position",
			input:       "ubi:o/t[a=1,b=2,a=3]",
			wantCleaned: "ubi:o/t",
			wantOpts:    Options{{Key: "a", Value: "3"}, {Key: "b", Value: "2"}},
			wantOK:      true,
		},
		{
			name:        "no annotation",
			input:       "core:node",
			wantCleaned: "core:node",
			wantOK:      false,
		},
		{
			name:        "unclosed bracket passes through",
			input:       "ubi:o/t[exe=t",
			wantCleaned: "ubi:o/t[exe=t",
			wantOK:      false,
		},
		{
			name:        "brackets without assignment are not an annotation",
			input:       "asdf:plugin[stable]",
			wantCleaned: "asdf:plugin[stable]",
			wantOK:      false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cleaned, opts, ok := Extract(tc.input)

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantCleaned, cleaned)
			assert.Equal(t, tc.wantOpts, opts)
			assert.Equal(t, tc.wantOK, Contains(tc.input))
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "true", FormatValue("true"))
	assert.Equal(t, "false", FormatValue("false"))
	assert.Equal(t, `"True"`, FormatValue("True"))
	assert.Equal(t, `"1"`, FormatValue("1"))
	assert.Equal(t, `"a\"b\\c"`, FormatValue(`a"b\c`))
	assert.Equal(t, `"tab\there"`, FormatValue("tab\there"))
}

func TestFormatKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bin_path", FormatKey("bin_path"))
	assert.Equal(t, `"a.b"`, FormatKey("a.b"))
}

// TestRoundTrip checks that options extracted from an annotation and
// rendered as a table decode back to the same key/value pairs.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	base, opts, ok := Extract("github:owner/repo[asset_pattern=tool-*.tar.gz,no_app=true,version_prefix=v]")
	require.True(t, ok)
	require.Equal(t, "github:owner/repo", base)

	var table map[string]any
	_, err := toml.Decode(strings.Join(opts.Lines(""), "\n"), &table)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"asset_pattern":  "tool-*.tar.gz",
		"no_app":         true,
		"version_prefix": "v",
	}, table)

	var inline map[string]map[string]any
	_, err = toml.Decode("options = "+opts.Inline(), &inline)
	require.NoError(t, err)
	assert.Equal(t, table, inline["options"])
}
