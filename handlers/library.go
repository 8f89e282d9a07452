package handlers

import (
	"errors"
	"net/http"

	"cibnlibrary/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LibraryHandler serves the library API. It checks the session and performs
// no persistence: GET lists nothing and POST echoes the item back.
type LibraryHandler struct {
	Sessions session.Provider
}

// NewLibraryHandler creates a LibraryHandler.
func NewLibraryHandler(sessions session.Provider) *LibraryHandler {
	return &LibraryHandler{Sessions: sessions}
}

// recoverAs writes status/message if the handler panics before responding.
func recoverAs(c *gin.Context, message string) {
	if r := recover(); r != nil {
		getLogger(c).Error(message, zap.Any("panic", r))
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
		}
	}
}

// authorize reports whether the request has a session. On false the
// response has been written.
func (h *LibraryHandler) authorize(c *gin.Context, failure string) bool {
	_, err := h.Sessions.FromRequest(c.Request)
	switch {
	case err == nil:
		return true
	case errors.Is(err, session.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		getLogger(c).Error(failure, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
	return false
}

// ListHandler handles GET /api/library.
func (h *LibraryHandler) ListHandler(c *gin.Context) {
	const failure = "Failed to fetch library data"
	defer recoverAs(c, failure)

	if !h.authorize(c, failure) {
		return
	}
	c.JSON(http.StatusOK, []any{})
}

// CreateHandler handles POST /api/library.
func (h *LibraryHandler) CreateHandler(c *gin.Context) {
	const failure = "Failed to save library item"
	defer recoverAs(c, failure)

	if !h.authorize(c, failure) {
		return
	}

	var item any
	if err := c.ShouldBindJSON(&item); err != nil {
		getLogger(c).Error("Invalid library item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
		return
	}
	c.JSON(http.StatusCreated, item)
}
