// Package history renders the session-history viewer: an HTML shell plus a
// generated script that embeds the on-disk session logs base64-encoded.
package history

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bhandras/clawdeck/pkg/logger"
)

const (
	// Marker identifies session log files: any file name containing it is
	// part of the history.
	Marker = ".jsonl"
	// LockSuffix marks in-flight writer locks, which are excluded.
	LockSuffix = ".lock"
)

// SessionFile is one session log on disk.
type SessionFile struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Session is one session log prepared for embedding into the generated
// viewer script.
type Session struct {
	Name          string `json:"name"`
	Base64Content string `json:"base64Content"`
}

// ListSessionFiles returns the session log files under dir, most recently
// modified first. A missing directory yields an empty list.
func ListSessionFiles(dir string) ([]SessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list session directory: %w", err)
	}

	var files []SessionFile
	for _, entry := range entries {
		if entry.IsDir() || !isSessionLog(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, SessionFile{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// LoadSessions reads and base64-encodes every session log under dir, newest
// first. Files that cannot be read are skipped.
func LoadSessions(dir string) ([]Session, error) {
	files, err := ListSessionFiles(dir)
	if err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file.Path)
		if err != nil {
			logger.Warnf("skipping unreadable session log %s: %v", file.Path, err)
			continue
		}
		sessions = append(sessions, Session{
			Name:          file.Name,
			Base64Content: base64.StdEncoding.EncodeToString(data),
		})
	}
	return sessions, nil
}

// isSessionLog applies the directory-local naming convention: the name must
// contain the session-log marker and must not be a lock file.
func isSessionLog(name string) bool {
	return strings.Contains(name, Marker) && !strings.HasSuffix(name, LockSuffix)
}
