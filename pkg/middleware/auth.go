package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prdforge/prdforge/backend/go-services/internal/tokens"
	"github.com/prdforge/prdforge/backend/go-services/pkg/logger"
)

const (
	claimsKey = "claims"
	ownerKey  = "owner"
	rawKey    = "rawToken"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using
// the provided verifier. Revoked tokens and tokens without a subject are
// rejected. On success the claims, the subject and the raw token are stored
// in the context.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			abortUnauthorized(c, "missing Authorization header")
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			abortUnauthorized(c, "invalid Authorization header")
			return
		}

		revoked, err := tokens.IsRevoked(c.Request.Context(), token)
		if err != nil {
			logger.Warnf("blacklist lookup failed: %v", err)
		}
		if revoked {
			abortUnauthorized(c, "token revoked")
			return
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			abortUnauthorized(c, "failed to parse claims")
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			abortUnauthorized(c, "token has no subject")
			return
		}

		c.Set(claimsKey, claims)
		c.Set(ownerKey, sub)
		c.Set(rawKey, token)
		c.Next()
	}
}

// Owner returns the authenticated subject, or "" outside AuthMiddleware.
func Owner(c *gin.Context) string {
	return c.GetString(ownerKey)
}

// Claims returns the verified claims stored by AuthMiddleware.
func Claims(c *gin.Context) map[string]interface{} {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]interface{})
	return m
}

// RawToken returns the bearer token of the current request.
func RawToken(c *gin.Context) string {
	return c.GetString(rawKey)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "requestSucceeded": false})
}
