// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"sort"
	"strings"
)

// ListFilesByExtension returns the names of the regular files directly inside
// dir that end with extension, in lexicographic order. Subdirectories are not
// descended into.
func ListFilesByExtension(dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), extension) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}
