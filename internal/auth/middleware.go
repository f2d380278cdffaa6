package auth

import (
	"net/http"
	"strings"

	"bcms/backend/internal/policy"
	"bcms/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// principalKey is the gin context key under which the middleware stores
// the resolved principal.
const principalKey = "principal"

// Middleware validates the bearer token and resolves the acting
// principal. The role comes from the role store on every request, so a
// promotion or demotion takes effect immediately, not at token renewal.
func Middleware(secret []byte, store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		userID, err := ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		principal, err := store.PrincipalFor(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "could not resolve role"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Middleware. The second
// return is false on routes that skipped the middleware.
func PrincipalFrom(c *gin.Context) (policy.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return policy.Principal{}, false
	}
	p, ok := v.(policy.Principal)
	return p, ok
}
