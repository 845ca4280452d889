package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizePath returns path as an absolute, forward-slash delimited string.
// Backslashes are treated as separators on every platform.
func NormalizePath(path string) (string, error) {
	path = strings.ReplaceAll(path, `\`, "/")
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		path = abs
	} else {
		path = filepath.Clean(path)
	}
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/"), nil
}

// CombinePath joins name onto base. Leading separators on name are dropped so
// an absolute name is treated as relative to base.
func CombinePath(base, name string) string {
	return filepath.Join(base, strings.TrimLeft(name, `/\`))
}

// DestinationPath builds the normalized destination for name under base.
// Names that resolve to base itself or above it are rejected.
func DestinationPath(base, name string) (string, error) {
	normBase, err := NormalizePath(base)
	if err != nil {
		return "", err
	}
	dest, err := NormalizePath(CombinePath(base, name))
	if err != nil {
		return "", err
	}
	if !IsWithin(dest, normBase) {
		return "", fmt.Errorf("%w: %s -> %s", ErrEscapesBase, name, dest)
	}
	return dest, nil
}

// IsWithin reports whether path lies strictly below dir. Both must already be
// normalized.
func IsWithin(path, dir string) bool {
	dir = strings.TrimSuffix(dir, "/")
	return strings.HasPrefix(path, dir+"/") && len(path) > len(dir)+1
}
