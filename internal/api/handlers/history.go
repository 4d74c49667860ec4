package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bhandras/clawdeck/internal/history"
	"github.com/bhandras/clawdeck/pkg/logger"
)

// historyCacheControl keeps browsers from caching the viewer: the session
// list changes whenever the gateway writes a log.
const historyCacheControl = "no-store, no-cache, must-revalidate"

// HistoryHandler serves the session-history viewer: the HTML shell and the
// generated script embedding the session logs.
type HistoryHandler struct {
	sessionsDir string
	basePath    string
}

// NewHistoryHandler creates a new history handler reading logs from
// sessionsDir.
func NewHistoryHandler(sessionsDir, basePath string) *HistoryHandler {
	return &HistoryHandler{
		sessionsDir: sessionsDir,
		basePath:    basePath,
	}
}

// TryServe claims the history sub-routes. sub is the request path with the
// base path stripped (always starting with "/"). Returns false when the
// request is not a history route so the caller can try the next handler.
func (h *HistoryHandler) TryServe(c *gin.Context, sub string) bool {
	switch sub {
	case "/history", "/history/":
		h.serveShell(c)
		return true
	case "/" + history.ScriptName:
		h.serveScript(c)
		return true
	}
	return false
}

// serveShell answers with the static viewer page. The shell is identical for
// the trailing-slash and no-slash forms of the route.
func (h *HistoryHandler) serveShell(c *gin.Context) {
	c.Header("Cache-Control", historyCacheControl)
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(history.ShellHTML(h.basePath)))
}

// serveScript answers with the generated viewer script. A missing session
// directory yields an empty session list, and listing failures degrade to an
// empty list instead of an error page.
func (h *HistoryHandler) serveScript(c *gin.Context) {
	c.Header("Cache-Control", historyCacheControl)
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", "application/javascript; charset=utf-8")
		c.Status(http.StatusOK)
		return
	}

	sessions, err := history.LoadSessions(h.sessionsDir)
	if err != nil {
		logger.Warnf("session history listing failed: %v", err)
		sessions = nil
	}
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", []byte(history.RenderScript(sessions)))
}
