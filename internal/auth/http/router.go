package http

import "github.com/gin-gonic/gin"

// Register mounts the admin session routes. signInGuards run before sign-in
// (rate limiting).
func (h *Handler) Register(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc, signInGuards ...gin.HandlerFunc) {
	signIn := append(append([]gin.HandlerFunc{}, signInGuards...), h.SignIn)
	rg.POST("/session", signIn...)
	rg.GET("/session", h.CurrentSession)
	rg.DELETE("/session", h.SignOut)
	rg.PUT("/password", requireAdmin, h.ChangePassword)
}
