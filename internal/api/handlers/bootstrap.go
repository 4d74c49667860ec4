package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bhandras/clawdeck/internal/identity"
	"github.com/bhandras/clawdeck/pkg/types"
)

// BootstrapConfigPath is where the web UI fetches its startup document,
// below the panel base path.
const BootstrapConfigPath = "/clawdeck.config.json"

// BootstrapHandler serves the bootstrap configuration document the web UI
// loads before anything else.
type BootstrapHandler struct {
	basePath string
	resolver *identity.Resolver
}

// NewBootstrapHandler creates a new bootstrap handler. A nil resolver serves
// the default identity.
func NewBootstrapHandler(basePath string, resolver *identity.Resolver) *BootstrapHandler {
	return &BootstrapHandler{
		basePath: basePath,
		resolver: resolver,
	}
}

// TryServe claims exactly the bootstrap config path. This never fails: any
// identity problem degrades to the default identity rather than an error
// response.
func (h *BootstrapHandler) TryServe(c *gin.Context, sub string) bool {
	if sub != BootstrapConfigPath {
		return false
	}

	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.Status(http.StatusOK)
		return true
	}

	resolver := h.resolver
	if resolver == nil {
		resolver = identity.NewResolver(nil)
	}
	assistant := resolver.Assistant()

	c.JSON(http.StatusOK, types.BootstrapConfig{
		BasePath:         h.basePath,
		AssistantName:    assistant.Name,
		AssistantAvatar:  resolver.AvatarURL(h.basePath),
		AssistantAgentID: assistant.AgentID,
	})
	return true
}
