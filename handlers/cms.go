// File: handlers/cms.go
package handlers

import (
	"net/http"
	"time"

	"cibnlibrary/models"
	"cibnlibrary/services/content"
	"cibnlibrary/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CMSHandler exposes the page content for editors and client-side consumers.
type CMSHandler struct {
	Store content.Store
}

// NewCMSHandler creates a CMSHandler.
func NewCMSHandler(store content.Store) *CMSHandler {
	return &CMSHandler{Store: store}
}

// GetPagesHandler returns every stored page, keyed by page name.
func (h *CMSHandler) GetPagesHandler(c *gin.Context) {
	pages, err := h.Store.Pages(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to fetch cms pages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pages"})
		return
	}
	c.JSON(http.StatusOK, pages)
}

// SavePageHandler replaces the content of one page.
func (h *CMSHandler) SavePageHandler(c *gin.Context) {
	key := models.PageKey(c.Param("page"))
	if !key.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown page"})
		return
	}

	var page models.PageContent
	if err := c.ShouldBindJSON(&page); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid page content", err.Error())
		return
	}
	page.UpdatedAt = time.Now().UTC()

	if err := h.Store.SavePage(c.Request.Context(), key, page); err != nil {
		getLogger(c).Error("Failed to save cms page", zap.String("page", string(key)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save page"})
		return
	}
	c.JSON(http.StatusOK, page)
}
