package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// LookupFunc resolves a principal id to the principal record, with the
// password hash already excluded. It returns an error when no such
// principal exists.
type LookupFunc func(ctx context.Context, id string) (any, error)

// Context keys the guards attach the resolved principal under.
const (
	ContextUserKey  = "user"
	ContextAdminKey = "admin"
)

// TokenGuard returns middleware enforcing a bearer JWT of the given kind.
// A request with no Authorization header is rejected with a distinct
// message from one carrying a bad token; clients rely on the difference.
func TokenGuard(kind, signingKey, issuer, contextKey string, lookup LookupFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])

		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil || claims.Kind != kind {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		principal, err := lookup(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		c.Set(contextKey, principal)
		c.Set("principalID", claims.Subject)
		c.Next()
	}
}

// RequireUser guards user-scoped routes.
func RequireUser(signingKey, issuer string, lookup LookupFunc) gin.HandlerFunc {
	return TokenGuard(KindUser, signingKey, issuer, ContextUserKey, lookup)
}

// RequireAdmin guards admin-scoped routes.
func RequireAdmin(signingKey, issuer string, lookup LookupFunc) gin.HandlerFunc {
	return TokenGuard(KindAdmin, signingKey, issuer, ContextAdminKey, lookup)
}
