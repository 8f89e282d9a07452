package handlers

import (
	"encoding/json"
	"net/http"

	"cibnlibrary/middleware"
	"cibnlibrary/models"

	"github.com/gin-gonic/gin"
)

// DebugView is what the auth debug panel shows.
type DebugView struct {
	APIBaseURL      string       `json:"apiBaseUrl"`
	IsLoading       bool         `json:"isLoading"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	TokenPresent    bool         `json:"tokenPresent"`
	User            *models.User `json:"user"`
	UserJSON        string       `json:"-"`
	LastError       string       `json:"lastError,omitempty"`
}

// DebugHandler exposes the resolved auth state read-only.
type DebugHandler struct {
	APIBaseURL string
}

// NewDebugHandler creates a DebugHandler.
func NewDebugHandler(apiBaseURL string) *DebugHandler {
	return &DebugHandler{APIBaseURL: apiBaseURL}
}

// View samples the auth state set by middleware.SessionMiddleware.
func (h *DebugHandler) View(c *gin.Context) DebugView {
	state := middleware.GetAuthState(c)
	view := DebugView{
		APIBaseURL:      h.APIBaseURL,
		IsLoading:       state.IsLoading,
		IsAuthenticated: state.IsAuthenticated,
		TokenPresent:    state.TokenPresent,
		User:            state.User,
		UserJSON:        "null",
		LastError:       state.LastError,
	}
	if state.User != nil {
		if b, err := json.Marshal(state.User); err == nil {
			view.UserJSON = string(b)
		}
	}
	return view
}

// PageHandler handles GET /debug/auth.
func (h *DebugHandler) PageHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "debug_auth.tmpl", h.View(c))
}

// JSONHandler handles GET /api/debug/auth.
func (h *DebugHandler) JSONHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.View(c))
}
