package http

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// serveClient serves the static web client. Unknown API paths stay JSON 404s.
func serveClient(client fs.FS) gin.HandlerFunc {
	files := http.FileServer(http.FS(client))
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || p == "/api" {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Not found"})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Not found"})
			return
		}

		name := strings.TrimPrefix(path.Clean(p), "/")
		if name != "" {
			if _, err := fs.Stat(client, name); err != nil {
				c.Request.URL.Path = "/"
			}
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
