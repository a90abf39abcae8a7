// Package pathutil normalizes user-supplied paths from flags and config files.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath converts a user-supplied path to a clean absolute path.
// A leading "~" or "~/" expands to the home directory. Symlinks are left
// as they are so reported log paths stay under the directory the user named.
// An empty path stays empty.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	return filepath.Abs(path)
}
