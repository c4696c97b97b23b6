package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/optsmigrate/internal/app"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"-dir", "/registry",
				"--ext=.tml",
				"--key=sources",
				"--on-conflict=keep",
				"--check",
				"--log-level=debug",
				"--log-format=json",
			},
			expectedConfig: &app.Config{
				Dir:        "/registry",
				Ext:        ".tml",
				Key:        "sources",
				OnConflict: "keep",
				Check:      true,
				LogLevel:   "debug",
				LogFormat:  "json",
			},
		},
		{
			name: "Shorthand flag and defaults",
			args: []string{"-d", "/short"},
			expectedConfig: &app.Config{
				Dir:        "/short",
				Ext:        ".toml",
				Key:        "backends",
				OnConflict: "fail",
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name: "Positional argument for directory",
			args: []string{"/positional"},
			expectedConfig: &app.Config{
				Dir:        "/positional",
				Ext:        ".toml",
				Key:        "backends",
				OnConflict: "fail",
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:      "Invalid log format",
			args:      []string{"--log-format=xml", "/registry"},
			expectErr: true,
		},
		{
			name:      "Invalid log level",
			args:      []string{"--log-level=trace", "/registry"},
			expectErr: true,
		},
		{
			name:      "Invalid conflict policy",
			args:      []string{"--on-conflict=overwrite", "/registry"},
			expectErr: true,
		},
		{
			name:      "Empty key",
			args:      []string{"--key=", "/registry"},
			expectErr: true,
		},
		{
			name:      "Unknown flag",
			args:      []string{"--nope"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer

			cfg, shouldExit, err := Parse(tc.args, &out)

			require.Equal(t, tc.expectExit, shouldExit)
			if tc.expectErr {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
					t.Errorf("config mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

// TestParse_DirFromEnvironment cannot run in parallel because it sets an
// environment variable.
func TestParse_DirFromEnvironment(t *testing.T) {
	t.Setenv(DirEnv, "/from/env")

	cfg, shouldExit, err := Parse(nil, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "/from/env", cfg.Dir)
}

func TestParse_NoDirectoryPrintsUsage(t *testing.T) {
	t.Setenv(DirEnv, "")
	var out bytes.Buffer

	cfg, shouldExit, err := Parse(nil, &out)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "REGISTRY_DIR")
}
