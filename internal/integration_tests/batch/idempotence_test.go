package integration_tests

import (
	"testing"

	"github.com/specialistvlad/optsmigrate/internal/app"
	"github.com/specialistvlad/optsmigrate/internal/testutil"
	"github.com/stretchr/testify/require"
)

var registry = map[string]string{
	"zoxide.toml": `description = "smarter cd"
backends = ["aqua:ajeetdsouza/zoxide", "ubi:ajeetdsouza/zoxide[exe=zoxide]"]
`,
	"act.toml": `description = "run actions locally"

[[backends]]
full = "aqua:nektos/act"

[[backends]]
full = "ubi:nektos/act[exe=act,matching=linux]"
platforms = ["linux"]
`,
	"bat.toml": `backends = [
  { full = "ubi:sharkdp/bat[exe=bat]", platforms = ["linux", "macos"] },
  "cargo:bat",
]
description = "cat clone"
`,
	"jq.toml": `backends = ["aqua:jqlang/jq"]
description = "json processor"
`,
}

func TestMigration_SecondRunIsNoop(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteRegistry(t, registry)

	// --- Act ---
	first := testutil.RunMigration(t, dir, app.Config{})
	second := testutil.RunMigration(t, dir, app.Config{})

	// --- Assert ---
	require.NoError(t, first.Err)
	testutil.AssertModified(t, first, "act.toml", "bat.toml", "zoxide.toml")

	require.NoError(t, second.Err)
	testutil.AssertModified(t, second)

	require.Equal(t, registry["jq.toml"], second.ReadFile(t, "jq.toml"))
	require.Equal(t, `description = "run actions locally"

[[backends]]
full = "aqua:nektos/act"

[[backends]]
full = "ubi:nektos/act"
platforms = ["linux"]

[backends.options]
exe = "act"
matching = "linux"
`, second.ReadFile(t, "act.toml"))
	require.Equal(t, `description = "cat clone"

[[backends]]
full = "ubi:sharkdp/bat"
platforms = ["linux", "macos"]

[backends.options]
exe = "bat"

[[backends]]
full = "cargo:bat"
`, second.ReadFile(t, "bat.toml"))
}

func TestMigration_CheckMode(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteRegistry(t, registry)

	result := testutil.RunMigration(t, dir, app.Config{Check: true})

	require.ErrorIs(t, result.Err, app.ErrPendingChanges)
	require.Equal(t, []string{"act.toml", "bat.toml", "zoxide.toml"}, result.Summary.Modified)
	for name, content := range registry {
		require.Equal(t, content, result.ReadFile(t, name), "check mode must not write %s", name)
	}
}
