package assets

import (
	"path/filepath"
	"strings"
)

// contentTypes maps recognized asset extensions to their Content-Type. A
// fixed table keeps responses identical across hosts; mime.TypeByExtension
// consults OS-level registries and varies between systems.
var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".map":  "application/json; charset=utf-8",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".ico":  "image/x-icon",
	".txt":  "text/plain; charset=utf-8",
}

// ContentTypeByExt returns the Content-Type for a file name based on its
// extension alone. Unrecognized extensions fall back to a generic binary
// type.
func ContentTypeByExt(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
