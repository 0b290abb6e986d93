package http

import "github.com/gin-gonic/gin"

// RegisterProxy mounts the icon proxy on r at /api/proxy-icon. guards run
// before the proxy (rate limiting).
func (h *Handler) RegisterProxy(r gin.IRoutes, guards ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, guards...), h.Proxy)
	r.Any("/api/proxy-icon", handlers...)
}

// Register mounts the icon catalogue under the versioned API group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/icons", h.ListIcons)
	rg.GET("/icons/resolve", h.ResolveIcon)
}
