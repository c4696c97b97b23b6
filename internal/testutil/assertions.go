package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertModified checks that the run reported exactly the given documents as
// modified, in order, along with the matching summary line.
func AssertModified(t *testing.T, result *HarnessResult, names ...string) {
	t.Helper()

	var want []string
	for _, name := range names {
		want = append(want, "  Modified: "+name)
	}
	var got []string
	for _, line := range strings.Split(result.Output, "\n") {
		if strings.HasPrefix(line, "  Modified: ") {
			got = append(got, line)
		}
	}
	require.Equal(t, want, got, "reported documents")
	require.Contains(t, result.Output, fmt.Sprintf("Done. Modified %d files.", len(names)))
}
