package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"notekeeper/utils"

	"github.com/gin-gonic/gin"
)

const helloPage = "<h1>Hello world</h1>"

// FallbackHandler answers requests no route matched: files from the static
// directory when one is configured, otherwise the Unknown endpoint error.
type FallbackHandler struct {
	staticDir string
}

func NewFallbackHandler(staticDir string) *FallbackHandler {
	return &FallbackHandler{staticDir: staticDir}
}

// Root serves the front page, or a plain greeting when there is no frontend
func (h *FallbackHandler) Root(c *gin.Context) {
	if file, ok := h.lookup("/index.html"); ok {
		c.File(file)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(helloPage))
}

func (h *FallbackHandler) NoRoute(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		if file, ok := h.lookup(c.Request.URL.Path); ok {
			c.File(file)
			return
		}
	}
	utils.NotFound(c, "Unknown endpoint")
}

// lookup maps a URL path to a regular file inside the static directory
func (h *FallbackHandler) lookup(urlPath string) (string, bool) {
	if h.staticDir == "" || strings.HasPrefix(urlPath, "/api/") {
		return "", false
	}

	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		clean = "/index.html"
	}
	file := filepath.Join(h.staticDir, filepath.FromSlash(clean))

	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}
