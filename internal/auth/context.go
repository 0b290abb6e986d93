package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/auth/domain"
)

const (
	CtxSession      = "admin_session"
	CtxSessionToken = "admin_session_token"
)

// SessionFrom returns the session placed in the context by RequireAdmin.
func SessionFrom(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return domain.Session{}, false
	}
	s, ok := v.(domain.Session)
	return s, ok
}

// SessionToken returns the bearer token RequireAdmin accepted.
func SessionToken(c *gin.Context) string {
	return c.GetString(CtxSessionToken)
}
