package history

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeSessionFile(t *testing.T, dir, name, content string, mod time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestListSessionFilesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	writeSessionFile(t, dir, "old.jsonl", "{}", base)
	writeSessionFile(t, dir, "new.jsonl", "{}", base.Add(2*time.Hour))
	writeSessionFile(t, dir, "mid.deleted.170.jsonl", "{}", base.Add(time.Hour))
	writeSessionFile(t, dir, "busy.jsonl.lock", "{}", base.Add(3*time.Hour))
	writeSessionFile(t, dir, "notes.txt", "not a log", base.Add(4*time.Hour))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.jsonl"), 0o755))

	files, err := ListSessionFiles(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{"new.jsonl", "mid.deleted.170.jsonl", "old.jsonl"}, names)
}

func TestListSessionFilesMissingDir(t *testing.T) {
	files, err := ListSessionFiles(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestLoadSessions(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lineA := `{"type":"message","role":"user","content":"hi","timestamp":"2024-01-01T00:00:00Z"}` + "\n"
	writeSessionFile(t, dir, "a.jsonl", lineA, base.Add(time.Hour))
	writeSessionFile(t, dir, "b.jsonl", "{}\n", base)

	sessions, err := LoadSessions(dir)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.Equal(t, "a.jsonl", sessions[0].Name)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte(lineA)), sessions[0].Base64Content)
	require.Equal(t, "b.jsonl", sessions[1].Name)
}

func TestRenderScript(t *testing.T) {
	sessions := []Session{
		{Name: "a.jsonl", Base64Content: base64.StdEncoding.EncodeToString([]byte("{}"))},
		{Name: "b.reset.2.jsonl", Base64Content: base64.StdEncoding.EncodeToString([]byte("{}"))},
	}

	script := RenderScript(sessions)
	require.True(t, strings.HasPrefix(script, "var SESSIONS = ["), "script prefix")
	require.Contains(t, script, `"name":"a.jsonl"`)
	require.Contains(t, script, `"base64Content"`)

	// The embedded order must match the input order.
	require.Less(t, strings.Index(script, "a.jsonl"), strings.Index(script, "b.reset.2.jsonl"))

	// The vendored client code rides along unchanged.
	require.Contains(t, script, "function parseSession(")
	require.Contains(t, script, "type !== 'message'")
	require.Contains(t, script, "NO_REPLY")
	require.Contains(t, script, "HEARTBEAT_OK")
	require.Contains(t, script, ".reset.")
	require.Contains(t, script, ".deleted.")

	// Pure function: identical input, identical output.
	require.Equal(t, script, RenderScript(sessions))
}

func TestRenderScriptEmpty(t *testing.T) {
	for _, sessions := range [][]Session{nil, {}} {
		script := RenderScript(sessions)
		require.True(t, strings.HasPrefix(script, "var SESSIONS = [];"), "empty payload")
	}
}

func TestShellHTML(t *testing.T) {
	rooted := ShellHTML("")
	require.Contains(t, rooted, `<script src="/history.js"></script>`)
	require.Contains(t, rooted, `id="session-list"`)
	require.Contains(t, rooted, `id="chat-pane"`)

	mounted := ShellHTML("/panel")
	require.Contains(t, mounted, `<script src="/panel/history.js"></script>`)
}

func TestRenderScriptEmbedsReadableBase64(t *testing.T) {
	content := fmt.Sprintf(
		"%s\n%s\n",
		`{"type":"message","role":"user","content":"hello","timestamp":"2024-01-01T10:00:00Z"}`,
		`{"type":"message","role":"assistant","content":[{"type":"text","text":"hi there"}],"timestamp":"2024-01-01T10:00:05Z","model":"claw-1"}`,
	)
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	script := RenderScript([]Session{{Name: "s.jsonl", Base64Content: encoded}})

	require.Contains(t, script, encoded)

	// Round-trip what a browser would decode.
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, content, string(decoded))
}
