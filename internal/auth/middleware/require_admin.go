package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/auth"
	"github.com/srbeng/srb-site/internal/auth/domain"
)

// SessionVerifier re-validates a session token.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (domain.Session, error)
}

// RequireAdmin accepts "Authorization: Bearer <token>" for a live admin
// session and stores the session in the gin context.
func RequireAdmin(v SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		s, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "session expired or invalid"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"ok": false, "error": "failed to verify session"})
			return
		}

		c.Set(auth.CtxSession, s)
		c.Set(auth.CtxSessionToken, token)
		c.Next()
	}
}

// ExtractToken extracts the Bearer token from the Authorization header.
func ExtractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
