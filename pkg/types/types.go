// Package types defines the JSON documents the panel serves to the web UI.
package types

// BootstrapConfig is the JSON document served to the web UI before any other
// request. The UI reads it synchronously on startup, so every field must be
// present even when the server runs with defaults.
type BootstrapConfig struct {
	// BasePath is the normalized URL prefix the panel is mounted under.
	// Empty when the panel is served from the origin root.
	BasePath string `json:"basePath"`

	// AssistantName is the display name of the configured agent.
	AssistantName string `json:"assistantName"`

	// AssistantAvatar is the URL the UI should load the agent avatar from,
	// or null when no avatar is configured.
	AssistantAvatar *string `json:"assistantAvatar"`

	// AssistantAgentID identifies the agent whose sessions the panel shows.
	AssistantAgentID string `json:"assistantAgentId"`
}

// AvatarMeta is the response body for avatar metadata queries
// (GET {base}/avatar/{id}?meta=1).
type AvatarMeta struct {
	// AvatarURL is where the avatar can be fetched, or null when the agent
	// has no usable avatar.
	AvatarURL *string `json:"avatarUrl"`
}

// VersionInfo reports build information for the running binary.
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
}
