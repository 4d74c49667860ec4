// Package identity resolves the configured assistant identity and maps agent
// ids to avatar sources.
package identity

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bhandras/clawdeck/internal/config"
)

// agentIDPattern constrains ids accepted on the avatar endpoint. Matching is
// case-insensitive.
var agentIDPattern = regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9_-]{0,63}$`)

// ValidAgentID reports whether id is acceptable on the avatar endpoint.
func ValidAgentID(id string) bool {
	return agentIDPattern.MatchString(id)
}

// Identity describes the agent the panel fronts.
type Identity struct {
	// Name is the display name shown by the web UI.
	Name string
	// AgentID identifies the agent on the avatar endpoint.
	AgentID string
	// Avatar is the raw avatar location from configuration. Empty means the
	// agent has no avatar.
	Avatar string
}

// Default returns the identity used when no configuration is available.
func Default() Identity {
	return Identity{Name: "Claw", AgentID: "main"}
}

// AvatarKind discriminates the outcomes of avatar resolution.
type AvatarKind int

const (
	// AvatarNone means the agent has no usable avatar.
	AvatarNone AvatarKind = iota
	// AvatarLocal means the avatar is a file on disk, servable by this
	// process.
	AvatarLocal
	// AvatarRemote means the avatar lives at an http(s) URL.
	AvatarRemote
	// AvatarData means the avatar is an inline data: URI.
	AvatarData
)

// AvatarResolution is the outcome of resolving an agent id to an avatar
// source. Exactly the fields implied by Kind are set.
type AvatarResolution struct {
	Kind AvatarKind
	// Path is the absolute local file path (AvatarLocal only).
	Path string
	// URL is the remote URL or data: URI (AvatarRemote, AvatarData).
	URL string
	// Reason explains AvatarNone outcomes, for logging.
	Reason string
}

// NoAvatar returns an AvatarNone resolution with the given reason.
func NoAvatar(reason string) AvatarResolution {
	return AvatarResolution{Kind: AvatarNone, Reason: reason}
}

// LocalAvatar returns an AvatarLocal resolution for an absolute file path.
func LocalAvatar(path string) AvatarResolution {
	return AvatarResolution{Kind: AvatarLocal, Path: path}
}

// RemoteAvatar returns an AvatarRemote resolution.
func RemoteAvatar(url string) AvatarResolution {
	return AvatarResolution{Kind: AvatarRemote, URL: url}
}

// DataAvatar returns an AvatarData resolution.
func DataAvatar(uri string) AvatarResolution {
	return AvatarResolution{Kind: AvatarData, URL: uri}
}

// Resolver maps agent ids to avatar sources using the server configuration.
type Resolver struct {
	assistant Identity
	agents    map[string]string
	baseDir   string
}

// NewResolver builds a Resolver from cfg. A nil cfg yields a resolver that
// serves the default identity with no avatars.
func NewResolver(cfg *config.Config) *Resolver {
	if cfg == nil {
		return &Resolver{assistant: Default()}
	}
	assistant := Identity{
		Name:    cfg.AssistantName,
		AgentID: cfg.AssistantAgentID,
		Avatar:  cfg.AssistantAvatar,
	}
	if assistant.Name == "" {
		assistant.Name = Default().Name
	}
	if assistant.AgentID == "" {
		assistant.AgentID = Default().AgentID
	}
	agents := make(map[string]string, len(cfg.Agents))
	for id, loc := range cfg.Agents {
		agents[strings.ToLower(id)] = loc
	}
	return &Resolver{
		assistant: assistant,
		agents:    agents,
		baseDir:   cfg.ClawdeckHome,
	}
}

// Assistant returns the configured primary identity.
func (r *Resolver) Assistant() Identity {
	return r.assistant
}

// ResolveAvatar resolves an agent id to an avatar source. Unknown and invalid
// ids resolve to AvatarNone; this never fails.
func (r *Resolver) ResolveAvatar(agentID string) AvatarResolution {
	if !ValidAgentID(agentID) {
		return NoAvatar("invalid agent id")
	}
	if strings.EqualFold(agentID, r.assistant.AgentID) {
		return r.classify(r.assistant.Avatar)
	}
	if loc, ok := r.agents[strings.ToLower(agentID)]; ok {
		return r.classify(loc)
	}
	return NoAvatar("unknown agent id")
}

// classify turns a raw avatar location into a resolution. Relative file paths
// are anchored at the clawdeck home directory, where the config file lives.
func (r *Resolver) classify(loc string) AvatarResolution {
	switch {
	case loc == "":
		return NoAvatar("no avatar configured")
	case strings.HasPrefix(loc, "data:"):
		return DataAvatar(loc)
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return RemoteAvatar(loc)
	}
	path := loc
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return NoAvatar("unresolvable avatar path")
	}
	return LocalAvatar(abs)
}

// AvatarURL returns the URL the web UI should load the assistant avatar from,
// given the panel base path. Nil means no avatar. Local avatars synthesize an
// avatar-endpoint URL, which requires a routable agent id; remote and data
// avatars pass through unchanged.
func (r *Resolver) AvatarURL(basePath string) *string {
	res := r.classify(r.assistant.Avatar)
	switch res.Kind {
	case AvatarLocal:
		if !ValidAgentID(r.assistant.AgentID) {
			return nil
		}
		url := basePath + "/avatar/" + r.assistant.AgentID
		return &url
	case AvatarRemote, AvatarData:
		url := res.URL
		return &url
	default:
		return nil
	}
}
