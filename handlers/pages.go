package handlers

import (
	"net/http"
	"strings"

	"cibnlibrary/models"
	"cibnlibrary/services/content"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the CMS-driven static pages.
type PageHandler struct {
	Reader *content.Reader
	Debug  *DebugHandler
	// ShowDebug adds the auth debug panel to every page.
	ShowDebug bool
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(reader *content.Reader, debug *DebugHandler, showDebug bool) *PageHandler {
	return &PageHandler{Reader: reader, Debug: debug, ShowDebug: showDebug}
}

// Render returns the handler for one page.
func (h *PageHandler) Render(key models.PageKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := gin.H{"Page": h.Reader.View(c.Request.Context(), key)}
		if h.ShowDebug && h.Debug != nil {
			data["Debug"] = h.Debug.View(c)
		}
		c.HTML(http.StatusOK, "page.tmpl", data)
	}
}

// NotFoundHandler renders the 404 page for browsers and JSON for API paths.
func NotFoundHandler(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, "not_found.tmpl", nil)
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
