package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// BasePath is the URL prefix the control panel is mounted under.
	// Normalized: either empty or starting with "/" and not ending with "/".
	BasePath string
	// AllowedOrigins configures CORS for browser clients.
	AllowedOrigins []string
	// CSP optionally replaces the built-in Content-Security-Policy value.
	CSP string
	// WebUIDist is the directory holding the built web UI. Empty means probe
	// the default locations (executable-adjacent webui/dist, then ./webui/dist).
	WebUIDist string
	// SessionsDir is the directory scanned for session logs.
	SessionsDir string

	// AssistantName is the display name of the configured agent.
	AssistantName string
	// AssistantAgentID identifies the agent whose sessions the panel shows.
	AssistantAgentID string
	// AssistantAvatar locates the agent avatar: a file path, an http(s) URL,
	// or a data: URI. Empty means no avatar.
	AssistantAvatar string
	// Agents maps additional agent ids to avatar locations, same syntax as
	// AssistantAvatar.
	Agents map[string]string

	// ClawdeckHome is the directory where clawdeck stores local state.
	ClawdeckHome string
	// Debug enables verbose logging.
	Debug bool
}

// Overrides optionally overrides values from the config file and environment.
//
// A nil pointer means "use the file/environment/default value".
type Overrides struct {
	Addr        *string
	BasePath    *string
	WebUIDist   *string
	SessionsDir *string
	// ConfigFile points at an explicit YAML config file. When set, a missing
	// or unreadable file is an error instead of being skipped.
	ConfigFile *string
	Debug      *bool
}

// fileConfig mirrors the YAML layout of ~/.clawdeck/config.yaml.
type fileConfig struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		BasePath       string   `yaml:"base_path"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		CSP            string   `yaml:"csp"`
	} `yaml:"server"`
	WebUI struct {
		Dist string `yaml:"dist"`
	} `yaml:"webui"`
	Sessions struct {
		Dir string `yaml:"dir"`
	} `yaml:"sessions"`
	Assistant struct {
		Name    string `yaml:"name"`
		AgentID string `yaml:"agent_id"`
		Avatar  string `yaml:"avatar"`
	} `yaml:"assistant"`
	Agents map[string]string `yaml:"agents"`
	Debug  *bool             `yaml:"debug"`
}

// Load loads server configuration. Precedence, lowest to highest: defaults,
// the YAML config file, CLAWDECK_* environment variables, explicit overrides.
func Load(overrides Overrides) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	clawdeckHome := os.Getenv("CLAWDECK_HOME")
	if clawdeckHome == "" {
		clawdeckHome = filepath.Join(homeDir, ".clawdeck")
	}

	cfg := &Config{
		Addr:             ":18789",
		AllowedOrigins:   []string{"*"}, // For self-hosted, allow all origins
		SessionsDir:      filepath.Join(clawdeckHome, "sessions"),
		AssistantName:    "Claw",
		AssistantAgentID: "main",
		ClawdeckHome:     clawdeckHome,
	}

	if err := applyFile(cfg, clawdeckHome, overrides.ConfigFile); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if overrides.Addr != nil {
		cfg.Addr = *overrides.Addr
	}
	if overrides.BasePath != nil {
		cfg.BasePath = *overrides.BasePath
	}
	if overrides.WebUIDist != nil {
		cfg.WebUIDist = *overrides.WebUIDist
	}
	if overrides.SessionsDir != nil {
		cfg.SessionsDir = *overrides.SessionsDir
	}
	if overrides.Debug != nil {
		cfg.Debug = *overrides.Debug
	}

	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	return cfg, nil
}

// applyFile merges the YAML config file into cfg. The file is located via the
// explicit override, then CLAWDECK_CONFIG, then ~/.clawdeck/config.yaml; only
// an explicitly named file is required to exist.
func applyFile(cfg *Config, clawdeckHome string, explicit *string) error {
	path := ""
	required := false
	switch {
	case explicit != nil && *explicit != "":
		path = *explicit
		required = true
	case os.Getenv("CLAWDECK_CONFIG") != "":
		path = os.Getenv("CLAWDECK_CONFIG")
		required = true
	default:
		path = filepath.Join(clawdeckHome, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Server.Addr != "" {
		cfg.Addr = fc.Server.Addr
	}
	if fc.Server.BasePath != "" {
		cfg.BasePath = fc.Server.BasePath
	}
	if len(fc.Server.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = fc.Server.AllowedOrigins
	}
	if fc.Server.CSP != "" {
		cfg.CSP = fc.Server.CSP
	}
	if fc.WebUI.Dist != "" {
		cfg.WebUIDist = fc.WebUI.Dist
	}
	if fc.Sessions.Dir != "" {
		cfg.SessionsDir = fc.Sessions.Dir
	}
	if fc.Assistant.Name != "" {
		cfg.AssistantName = fc.Assistant.Name
	}
	if fc.Assistant.AgentID != "" {
		cfg.AssistantAgentID = fc.Assistant.AgentID
	}
	if fc.Assistant.Avatar != "" {
		cfg.AssistantAvatar = fc.Assistant.Avatar
	}
	if len(fc.Agents) > 0 {
		cfg.Agents = fc.Agents
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	return nil
}

// applyEnv merges CLAWDECK_* environment variables into cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CLAWDECK_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CLAWDECK_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("CLAWDECK_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("CLAWDECK_CSP"); v != "" {
		cfg.CSP = v
	}
	if v := os.Getenv("CLAWDECK_WEBUI_DIST"); v != "" {
		cfg.WebUIDist = v
	}
	if v := os.Getenv("CLAWDECK_SESSIONS_DIR"); v != "" {
		cfg.SessionsDir = v
	}
	if v := os.Getenv("CLAWDECK_ASSISTANT_NAME"); v != "" {
		cfg.AssistantName = v
	}
	if v := os.Getenv("CLAWDECK_ASSISTANT_AGENT_ID"); v != "" {
		cfg.AssistantAgentID = v
	}
	if v := os.Getenv("CLAWDECK_ASSISTANT_AVATAR"); v != "" {
		cfg.AssistantAvatar = v
	}
	if v := getenvFirst("CLAWDECK_DEBUG", "DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}
}

// NormalizeBasePath brings a raw base path into canonical form: either the
// empty string (panel mounted at the origin root) or a path starting with "/"
// and not ending with "/".
func NormalizeBasePath(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvFirst(primary, fallback string) string {
	if val := os.Getenv(primary); val != "" {
		return val
	}
	return os.Getenv(fallback)
}
