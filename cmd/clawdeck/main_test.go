package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/bhandras/clawdeck/internal/config"
	"github.com/bhandras/clawdeck/internal/version"
)

// resetClawdeckEnv blanks every config-relevant environment variable so tests
// do not pick up values from the host environment.
func resetClawdeckEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CLAWDECK_HOME",
		"CLAWDECK_CONFIG",
		"CLAWDECK_ADDR",
		"CLAWDECK_BASE_PATH",
		"CLAWDECK_ALLOWED_ORIGINS",
		"CLAWDECK_CSP",
		"CLAWDECK_WEBUI_DIST",
		"CLAWDECK_SESSIONS_DIR",
		"CLAWDECK_ASSISTANT_NAME",
		"CLAWDECK_ASSISTANT_AGENT_ID",
		"CLAWDECK_ASSISTANT_AVATAR",
		"CLAWDECK_DEBUG",
		"DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestDisplayHost(t *testing.T) {
	cases := map[string]string{
		":18789":         "localhost:18789",
		"0.0.0.0:8080":   "localhost:8080",
		"[::]:8080":      "localhost:8080",
		"127.0.0.1:9999": "127.0.0.1:9999",
		"example.com:80": "example.com:80",
		"not-an-addr":    "not-an-addr",
	}
	for addr, want := range cases {
		require.Equal(t, want, displayHost(addr), "addr %q", addr)
	}
}

func TestPanelURL(t *testing.T) {
	cfg := &config.Config{Addr: ":18789"}
	require.Equal(t, "http://localhost:18789/", panelURL(cfg))

	cfg.BasePath = "/panel"
	require.Equal(t, "http://localhost:18789/panel/", panelURL(cfg))
}

func TestOverridesFromViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	o := overridesFromViper()
	require.Nil(t, o.ConfigFile)
	require.Nil(t, o.Addr)
	require.Nil(t, o.BasePath)
	require.Nil(t, o.WebUIDist)
	require.Nil(t, o.SessionsDir)
	require.Nil(t, o.Debug)

	viper.Set("addr", "  :9000 ")
	viper.Set("base_path", "panel")
	viper.Set("debug", true)

	o = overridesFromViper()
	require.NotNil(t, o.Addr)
	require.Equal(t, ":9000", *o.Addr)
	require.NotNil(t, o.BasePath)
	require.Equal(t, "panel", *o.BasePath)
	require.NotNil(t, o.Debug)
	require.True(t, *o.Debug)
	require.Nil(t, o.WebUIDist)
	require.Nil(t, o.SessionsDir)
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	require.Equal(t, fmt.Sprintf("clawdeck version %s\n", version.RichVersion()), buf.String())
}

func TestDoctorCmd(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetClawdeckEnv(t)
	t.Setenv("HOME", t.TempDir())

	dist := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte("<!doctype html>"), 0o644))
	sessions := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sessions, "chat.jsonl"), []byte("{}\n"), 0o644))

	t.Setenv("CLAWDECK_WEBUI_DIST", dist)
	t.Setenv("CLAWDECK_SESSIONS_DIR", sessions)

	var buf bytes.Buffer
	cmd := newDoctorCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	require.Contains(t, out, "web ui:    ok ("+dist+")")
	require.Contains(t, out, "sessions:  1 logs, newest chat.jsonl")
	require.Contains(t, out, "assistant: Claw (agent id main)")
	require.Contains(t, out, "panel:     http://localhost:18789/")
}
