package middleware

import (
	"errors"

	"cibnlibrary/models"
	"cibnlibrary/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const authStateKey = "authState"

// SessionMiddleware resolves the request's session into an AuthState. It never
// aborts: pages render for anonymous visitors too.
func SessionMiddleware(provider session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := &models.AuthState{}
		_, state.TokenPresent = session.TokenFromRequest(c.Request)

		sess, err := provider.FromRequest(c.Request)
		switch {
		case err == nil:
			user := sess.User
			state.User = &user
			state.IsAuthenticated = true
			c.Set("userID", user.ID)
		case errors.Is(err, session.ErrNoSession):
			if state.TokenPresent {
				state.LastError = err.Error()
			}
		default:
			zap.L().Warn("Session lookup failed", zap.Error(err))
			state.LastError = err.Error()
		}

		c.Set(authStateKey, state)
		c.Next()
	}
}

// GetAuthState returns the state set by SessionMiddleware, or an anonymous state.
func GetAuthState(c *gin.Context) *models.AuthState {
	if v, ok := c.Get(authStateKey); ok {
		if state, ok := v.(*models.AuthState); ok {
			return state
		}
	}
	return &models.AuthState{}
}
