package assets

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SafeRelPath validates a slash-separated request path relative to the asset
// root and returns its cleaned form. It rejects empty paths, NUL bytes, and
// anything that would resolve outside the root.
func SafeRelPath(raw string) (string, bool) {
	if raw == "" || strings.IndexByte(raw, 0) >= 0 {
		return "", false
	}
	cleaned := path.Clean(raw)
	if cleaned == "." || cleaned == ".." ||
		strings.HasPrefix(cleaned, "../") || strings.HasPrefix(cleaned, "/") {
		return "", false
	}
	return cleaned, true
}

// ResolveFile resolves rel (already cleaned by SafeRelPath) against root and
// reports the absolute path of the regular file it names. Paths that land
// outside root, do not exist, or name something other than a regular file
// resolve to false.
func ResolveFile(root, rel string) (string, bool) {
	abs, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	if abs != root && !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", false
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return abs, true
}
