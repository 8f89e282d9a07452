package handlers

import (
	"context"
	"errors"
	"net/http"

	"cibnlibrary/models"
	"cibnlibrary/services/apierror"
	"cibnlibrary/services/backend"
	"cibnlibrary/services/session"
	"cibnlibrary/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator checks credentials against the upstream library API.
type Authenticator interface {
	Login(ctx context.Context, req backend.LoginRequest) (*backend.TokenResponse, error)
	CIBNLogin(ctx context.Context, req backend.CIBNLoginRequest) (*backend.TokenResponse, error)
	Me(ctx context.Context, accessToken string) (*models.User, error)
}

// AuthHandler turns upstream logins into local sessions.
type AuthHandler struct {
	Upstream     Authenticator
	Sessions     *session.Service
	SecureCookie bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(upstream Authenticator, sessions *session.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{Upstream: upstream, Sessions: sessions, SecureCookie: secureCookie}
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req backend.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}
	resp, err := h.Upstream.Login(c.Request.Context(), req)
	h.finishLogin(c, resp, err, "Login failed. Please check your credentials and try again.")
}

// CIBNLoginHandler handles POST /api/auth/cibn-login.
func (h *AuthHandler) CIBNLoginHandler(c *gin.Context) {
	var req backend.CIBNLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Employee ID and password are required"})
		return
	}
	resp, err := h.Upstream.CIBNLogin(c.Request.Context(), req)
	h.finishLogin(c, resp, err, "CIBN login failed. Please check your employee ID and password.")
}

func (h *AuthHandler) finishLogin(c *gin.Context, resp *backend.TokenResponse, err error, fallback string) {
	logger := getLogger(c)

	if err != nil {
		network := apierror.IsNetworkError(err)
		status := http.StatusServiceUnavailable
		var re *apierror.RemoteError
		if !network && errors.As(err, &re) && re.Status() >= 400 {
			status = re.Status()
		} else if !network {
			status = http.StatusBadGateway
		}
		logger.Warn("Upstream login failed", zap.Int("status", status), zap.Bool("network", network), zap.Error(err))
		c.JSON(status, gin.H{"error": apierror.Message(err, fallback), "network": network})
		return
	}

	// Some upstream deployments return only the token.
	if resp.User.ID == 0 && resp.User.Email == "" {
		user, err := h.Upstream.Me(c.Request.Context(), resp.AccessToken)
		if err != nil {
			logger.Warn("Upstream profile fetch failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": apierror.Message(err, fallback), "network": apierror.IsNetworkError(err)})
			return
		}
		resp.User = *user
	}

	token, sess, err := h.Sessions.Create(c.Request.Context(), resp.User, resp.AccessToken)
	if err != nil {
		logger.Error("Failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookieName, token, int(h.Sessions.TTL().Seconds()), "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         sess.User,
	})
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	sess, err := h.Sessions.FromRequest(c.Request)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		getLogger(c).Error("Session lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}
	c.JSON(http.StatusOK, sess.User)
}

// LogoutHandler handles POST /api/auth/logout. It always succeeds.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if token, ok := session.TokenFromRequest(c.Request); ok {
		if err := h.Sessions.Revoke(c.Request.Context(), token); err != nil {
			getLogger(c).Warn("Failed to revoke session", zap.Error(err))
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookieName, "", -1, "/", "", h.SecureCookie, true)
	c.Status(http.StatusNoContent)
}
