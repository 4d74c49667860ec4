package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bhandras/clawdeck/internal/api/middleware"
)

// PanelHandler is the top-level router for the control panel. It owns
// base-path handling and dispatches to the history, bootstrap, and asset
// handlers in fixed priority order. History goes first because its URL space
// could otherwise collide with static asset paths.
type PanelHandler struct {
	basePath  string
	csp       string
	history   *HistoryHandler
	bootstrap *BootstrapHandler
	assets    *AssetHandler
}

// NewPanelHandler creates a new panel router over the given sub-handlers.
func NewPanelHandler(basePath, csp string, history *HistoryHandler, bootstrap *BootstrapHandler, assets *AssetHandler) *PanelHandler {
	return &PanelHandler{
		basePath:  basePath,
		csp:       csp,
		history:   history,
		bootstrap: bootstrap,
		assets:    assets,
	}
}

// Handle answers a panel request. It reports false without writing anything
// when the request falls outside the configured base path, leaving it to
// other routers in the host process.
func (h *PanelHandler) Handle(c *gin.Context) bool {
	path := c.Request.URL.Path

	// Claim check. With a configured base path this router owns the exact
	// base (redirected below) and everything under it.
	redirect := false
	sub := path
	if h.basePath != "" {
		switch {
		case path == h.basePath:
			redirect = true
		case strings.HasPrefix(path, h.basePath+"/"):
			sub = strings.TrimPrefix(path, h.basePath)
		default:
			return false
		}
	}

	// Every claimed request gets the hardening headers, including 404s,
	// 405s, and redirects.
	middleware.ApplySecurityHeaders(c.Writer.Header(), h.csp)

	if method := c.Request.Method; method != http.MethodGet && method != http.MethodHead {
		respondMethodNotAllowed(c)
		return true
	}

	if redirect {
		location := h.basePath + "/"
		if raw := c.Request.URL.RawQuery; raw != "" {
			location += "?" + raw
		}
		c.Redirect(http.StatusFound, location)
		return true
	}

	// With no base path configured the /ui namespace stays reserved.
	if h.basePath == "" && (path == "/ui" || strings.HasPrefix(path, "/ui/")) {
		respondNotFound(c)
		return true
	}

	if h.history.TryServe(c, sub) {
		return true
	}
	if h.bootstrap.TryServe(c, sub) {
		return true
	}
	h.assets.Serve(c, sub)
	return true
}

// NoRoute adapts the panel router to gin's fallback slot. Requests the panel
// declines get a plain 404, since the standalone server owns the whole host.
func (h *PanelHandler) NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.Handle(c) {
			respondNotFound(c)
		}
	}
}
