package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bhandras/clawdeck/internal/api/middleware"
	"github.com/bhandras/clawdeck/internal/assets"
	"github.com/bhandras/clawdeck/internal/identity"
	"github.com/bhandras/clawdeck/pkg/types"
)

// AvatarPrefix is the URL prefix avatars are served under, below the panel
// base path.
const AvatarPrefix = "/avatar"

// ResolveAvatarFunc maps an agent id to an avatar source.
type ResolveAvatarFunc func(agentID string) identity.AvatarResolution

// AvatarHandler serves agent avatar images and their metadata. It is mounted
// on its own routes, independent of the panel router, so it applies the
// security headers itself.
type AvatarHandler struct {
	basePath string
	csp      string
	resolve  ResolveAvatarFunc
}

// NewAvatarHandler creates a new avatar handler using the injected
// resolution function.
func NewAvatarHandler(basePath, csp string, resolve ResolveAvatarFunc) *AvatarHandler {
	return &AvatarHandler{
		basePath: basePath,
		csp:      csp,
		resolve:  resolve,
	}
}

// Register mounts the avatar routes on the engine. Only GET and HEAD are
// registered; other methods fall through to the panel router's 405.
func (h *AvatarHandler) Register(r gin.IRoutes) {
	pattern := h.basePath + AvatarPrefix + "/*agentid"
	r.GET(pattern, h.Handle)
	r.HEAD(pattern, h.Handle)
}

// Handle serves one avatar request: the image bytes for locally stored
// avatars, or a JSON metadata document when meta=1 is given.
func (h *AvatarHandler) Handle(c *gin.Context) {
	middleware.ApplySecurityHeaders(c.Writer.Header(), h.csp)

	// The wildcard param carries a leading slash; the id must be the sole
	// segment after the prefix.
	agentID := strings.TrimPrefix(c.Param("agentid"), "/")
	if !identity.ValidAgentID(agentID) {
		respondNotFound(c)
		return
	}

	res := h.resolve(agentID)

	if c.Query("meta") == "1" {
		h.serveMeta(c, agentID, res)
		return
	}

	// Only locally stored avatars are servable as bytes; remote and data
	// URLs are the client's job to fetch.
	if res.Kind != identity.AvatarLocal {
		respondNotFound(c)
		return
	}
	if !serveFile(c, res.Path, assets.ContentTypeByExt(res.Path), "no-cache") {
		respondNotFound(c)
	}
}

// serveMeta answers a metadata query. Well-formed meta requests are always
// 200; an unusable avatar is reported as a null URL rather than an error.
func (h *AvatarHandler) serveMeta(c *gin.Context, agentID string, res identity.AvatarResolution) {
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.Status(http.StatusOK)
		return
	}

	var url *string
	switch res.Kind {
	case identity.AvatarLocal:
		u := h.basePath + AvatarPrefix + "/" + agentID
		url = &u
	case identity.AvatarRemote, identity.AvatarData:
		u := res.URL
		url = &u
	}
	c.JSON(http.StatusOK, types.AvatarMeta{AvatarURL: url})
}
