package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bhandras/clawdeck/internal/assets"
)

// rebuildInstructions is appended to every asset-root 503 so an operator can
// fix the deployment without reading source.
const rebuildInstructions = "Build the web UI:\n\n  cd webui && npm install && npm run build\n\n" +
	"or set webui.dist in ~/.clawdeck/config.yaml to the build directory.\n"

// AssetHandler serves the built web UI with an SPA fallback. It terminates
// the panel chain: every request reaching it gets a definitive response.
type AssetHandler struct {
	distDir  string
	basePath string
	root     *assets.RootState
}

// NewAssetHandler creates a new asset handler. distDir is the configured
// asset root (empty probes default locations). A non-nil root bypasses
// per-request resolution.
func NewAssetHandler(distDir, basePath string, root *assets.RootState) *AssetHandler {
	return &AssetHandler{
		distDir:  distDir,
		basePath: basePath,
		root:     root,
	}
}

// Serve resolves sub (the request path with the base path stripped) against
// the asset root and responds with the file, the SPA entry document, or an
// error.
func (h *AssetHandler) Serve(c *gin.Context, sub string) {
	state := h.rootState()
	switch state.Status {
	case assets.RootInvalid:
		c.String(http.StatusServiceUnavailable,
			"Web UI build directory %s is not usable.\n\n%s", state.Path, rebuildInstructions)
		return
	case assets.RootMissing:
		c.String(http.StatusServiceUnavailable,
			"Web UI build not found.\n\n%s", rebuildInstructions)
		return
	}

	rel, ok := assets.SafeRelPath(relAssetPath(sub))
	if !ok {
		respondNotFound(c)
		return
	}

	if abs, ok := assets.ResolveFile(state.Path, rel); ok {
		h.serveAsset(c, abs)
		return
	}

	// SPA fallback: unmatched paths get the entry document so client-side
	// routing can take over.
	if abs, ok := assets.ResolveFile(state.Path, "index.html"); ok {
		h.serveAsset(c, abs)
		return
	}

	respondNotFound(c)
}

func (h *AssetHandler) serveAsset(c *gin.Context, abs string) {
	if !serveFile(c, abs, assets.ContentTypeByExt(abs), "no-cache") {
		respondNotFound(c)
	}
}

// rootState returns the injected root when one was supplied, otherwise
// resolves it fresh so configuration changes take effect without a restart.
func (h *AssetHandler) rootState() assets.RootState {
	if h.root != nil {
		return *h.root
	}
	return assets.ResolveRoot(h.distDir)
}

// relAssetPath maps a stripped request path to a path relative to the asset
// root. "/" and directory-style paths target index.html under that subpath.
// A literal "/assets/" segment anchors hashed bundle lookups even when the
// UI is viewed from a nested client-side route.
func relAssetPath(sub string) string {
	if sub == "/" {
		return "index.html"
	}
	if strings.HasSuffix(sub, "/") {
		return strings.TrimPrefix(sub, "/") + "index.html"
	}
	if idx := strings.Index(sub, "/assets/"); idx >= 0 {
		return sub[idx+1:]
	}
	return strings.TrimPrefix(sub, "/")
}
