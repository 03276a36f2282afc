package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome resolves a leading '~' against the current user's home
// directory. Anything without the prefix passes through untouched, so
// absolute model paths from config files are never rewritten.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// PathExists reports whether path names a file or directory that can be
// stat'd. A path that exists but cannot be read counts as missing, which is
// what readiness probing on a model file wants.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
