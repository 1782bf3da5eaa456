package authkit

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/authkit/store"
	"github.com/kbukum/authkit/token"
)

// Auth is the per-request authentication result. IsConnected is true
// exactly when ConnectedUser is set.
type Auth = token.Auth

// contextKey is the Gin context key under which the Auth result is stored.
const contextKey = "authkit/auth"

// setAuth stores the authentication result in the Gin context.
func setAuth(c *gin.Context, auth *Auth) {
	c.Set(contextKey, auth)
}

// CurrentAuth returns the authentication result attached by the middleware.
// It never returns nil: a request the middleware did not see, or one that
// proceeded unauthenticated, yields a disconnected Auth.
func CurrentAuth(c *gin.Context) *Auth {
	if v, ok := c.Get(contextKey); ok {
		if auth, ok := v.(*Auth); ok && auth != nil {
			return auth
		}
	}
	return &Auth{}
}

// CurrentUser returns the connected user, if any.
func CurrentUser(c *gin.Context) (*store.User, bool) {
	auth := CurrentAuth(c)
	if !auth.IsConnected || auth.ConnectedUser == nil {
		return nil, false
	}
	return auth.ConnectedUser, true
}
