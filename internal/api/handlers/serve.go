// Package handlers implements the HTTP surface of the control panel: the
// top-level panel router, its history/bootstrap/asset sub-handlers, and the
// avatar endpoint.
package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// serveFile streams a file with an explicit content type and cache policy.
// http.ServeContent handles HEAD and conditional requests; it respects the
// pre-set Content-Type instead of sniffing. Returns false when the file
// cannot be opened, so callers can fall through to their 404 path.
func serveFile(c *gin.Context, path, contentType, cacheControl string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", cacheControl)
	http.ServeContent(c.Writer, c.Request, "", info.ModTime(), f)
	return true
}

func respondNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "not found")
}

func respondMethodNotAllowed(c *gin.Context) {
	c.Header("Allow", "GET, HEAD")
	c.String(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}
