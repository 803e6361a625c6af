// README: Bearer-token auth middleware backed by a TokenVerifier.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cabsync/internal/infra"
)

const callerKey = "caller"

// Auth rejects requests without a verifiable "Authorization: Bearer" token.
// A nil verifier disables the check.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerKey, token)
		c.Next()
	}
}

// CallerUID returns the verified caller's UID, empty when auth is off.
func CallerUID(c *gin.Context) string {
	if t, ok := c.Get(callerKey); ok {
		if tok, ok := t.(*infra.CallerToken); ok {
			return tok.UID
		}
	}
	return ""
}

// CallerPlan returns the verified caller's plan claim.
func CallerPlan(c *gin.Context) string {
	if t, ok := c.Get(callerKey); ok {
		if tok, ok := t.(*infra.CallerToken); ok {
			return tok.Plan()
		}
	}
	return ""
}
