package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/api/http/middleware"
	authhttp "github.com/srbeng/srb-site/internal/auth/http"
	authmw "github.com/srbeng/srb-site/internal/auth/middleware"
	contacthttp "github.com/srbeng/srb-site/internal/contact/http"
	contenthttp "github.com/srbeng/srb-site/internal/content/http"
	iconhttp "github.com/srbeng/srb-site/internal/icon/http"
	uploadshttp "github.com/srbeng/srb-site/internal/uploads/http"
)

type V1Deps struct {
	Content  *contenthttp.Handler
	Auth     *authhttp.Handler
	Sessions authmw.SessionVerifier
	Icons    *iconhttp.Handler
	Contact  *contacthttp.Handler
	Uploads  *uploadshttp.Handler

	// Limiters; nil disables the corresponding limit.
	ProxyLimiter   *middleware.ClientLimiter
	SignInLimiter  *middleware.ClientLimiter
	ContactLimiter *middleware.ClientLimiter
}

func guards(l *middleware.ClientLimiter) []gin.HandlerFunc {
	if l == nil {
		return nil
	}
	return []gin.HandlerFunc{middleware.RateLimit(l)}
}

// RegisterV1 mounts the icon proxy at /api/proxy-icon on r and everything
// else on api (the /api/v1 group).
func RegisterV1(r *gin.Engine, api *gin.RouterGroup, dep V1Deps) {
	dep.Icons.RegisterProxy(r, guards(dep.ProxyLimiter)...)

	// preflight target so group middleware (CORS) sees OPTIONS requests
	api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	dep.Content.RegisterPublic(api)
	dep.Icons.Register(api)
	dep.Contact.Register(api, guards(dep.ContactLimiter)...)

	requireAdmin := authmw.RequireAdmin(dep.Sessions)

	admin := api.Group("/admin")
	dep.Auth.Register(admin, requireAdmin, guards(dep.SignInLimiter)...)
	if dep.Uploads != nil {
		dep.Uploads.Register(admin, requireAdmin)
	}

	protected := admin.Group("")
	protected.Use(requireAdmin)
	dep.Content.RegisterAdmin(protected)
}
