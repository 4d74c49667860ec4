// Package assets locates the built web UI on disk and resolves request paths
// to files inside it.
package assets

import (
	"os"
	"path/filepath"
)

// DefaultDistDir is the build directory probed when no root is configured.
const DefaultDistDir = "webui/dist"

// RootStatus describes whether a usable asset root was found.
type RootStatus int

const (
	// RootResolved means Path points at an existing directory.
	RootResolved RootStatus = iota
	// RootInvalid means an explicitly configured path does not name a
	// directory.
	RootInvalid
	// RootMissing means no root was configured and none of the default
	// locations exist.
	RootMissing
)

// RootState is the outcome of locating the web UI build directory.
type RootState struct {
	Status RootStatus
	// Path is the absolute asset root (RootResolved) or the rejected
	// configured path (RootInvalid). Empty for RootMissing.
	Path string
}

// ResolveRoot locates the web UI build directory. A configured path that does
// not name a directory yields RootInvalid. With no configured path the
// executable-adjacent webui/dist is probed first, then webui/dist under the
// working directory; RootMissing is returned when neither exists.
func ResolveRoot(configured string) RootState {
	if configured != "" {
		abs, err := filepath.Abs(configured)
		if err != nil {
			return RootState{Status: RootInvalid, Path: configured}
		}
		if !isDir(abs) {
			return RootState{Status: RootInvalid, Path: abs}
		}
		return RootState{Status: RootResolved, Path: abs}
	}
	for _, candidate := range defaultRoots() {
		if isDir(candidate) {
			return RootState{Status: RootResolved, Path: candidate}
		}
	}
	return RootState{Status: RootMissing}
}

func defaultRoots() []string {
	var roots []string
	if exe, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Join(filepath.Dir(exe), filepath.FromSlash(DefaultDistDir)))
	}
	if abs, err := filepath.Abs(filepath.FromSlash(DefaultDistDir)); err == nil {
		roots = append(roots, abs)
	}
	return roots
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
