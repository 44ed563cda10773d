// Package static hosts the built frontend bundle and the runtime
// configuration document the bundle fetches at boot.
package static

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type Host struct {
	// Dir holds the built bundle (index.html at its root).
	Dir string
	// ConfigPath is the URL path the frontend fetches, ConfigFile the
	// document's location on disk.
	ConfigPath string
	ConfigFile string
}

func (h *Host) Register(r *gin.Engine) {
	r.GET(h.ConfigPath, h.serveConfig)
	r.NoRoute(h.serveBundle)
}

// serveConfig serves the document straight from disk. no-store keeps a
// redeployed document from being masked by browser caches; the file itself
// only changes when an operator redeploys.
func (h *Host) serveConfig(c *gin.Context) {
	if _, err := os.Stat(h.ConfigFile); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "configuration not deployed"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Type", "application/json")
	c.File(h.ConfigFile)
}

// serveBundle serves files from the bundle, falling back to index.html for
// extensionless paths so history-API routes resolve after a hard refresh.
func (h *Host) serveBundle(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	reqPath := path.Clean("/" + c.Request.URL.Path)
	if strings.Contains(reqPath, "..") {
		c.Status(http.StatusBadRequest)
		return
	}

	file := filepath.Join(h.Dir, filepath.FromSlash(reqPath))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}

	// Asset requests that miss are real 404s; only client routes fall back.
	if path.Ext(reqPath) != "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	index := filepath.Join(h.Dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "bundle not deployed"})
		return
	}
	c.File(index)
}
