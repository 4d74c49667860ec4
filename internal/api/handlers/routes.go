package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bhandras/clawdeck/internal/assets"
	"github.com/bhandras/clawdeck/internal/config"
	"github.com/bhandras/clawdeck/internal/identity"
)

// MountOptions carries the collaborators the panel needs beyond
// configuration.
type MountOptions struct {
	// Root optionally injects a pre-resolved asset root. Nil resolves the
	// root fresh on every request.
	Root *assets.RootState
	// ResolveAvatar overrides avatar resolution. Nil uses the identity
	// resolver built from the configuration.
	ResolveAvatar ResolveAvatarFunc
}

// Mount registers the control panel on the engine: explicit avatar routes
// plus the panel router in the NoRoute slot. Explicit routes registered by
// the host (health checks, version) keep priority over the panel.
func Mount(r *gin.Engine, cfg *config.Config, opts MountOptions) {
	resolver := identity.NewResolver(cfg)

	resolve := opts.ResolveAvatar
	if resolve == nil {
		resolve = resolver.ResolveAvatar
	}

	avatar := NewAvatarHandler(cfg.BasePath, cfg.CSP, resolve)
	avatar.Register(r)

	panel := NewPanelHandler(
		cfg.BasePath,
		cfg.CSP,
		NewHistoryHandler(cfg.SessionsDir, cfg.BasePath),
		NewBootstrapHandler(cfg.BasePath, resolver),
		NewAssetHandler(cfg.WebUIDist, cfg.BasePath, opts.Root),
	)
	r.NoRoute(panel.NoRoute())
}
