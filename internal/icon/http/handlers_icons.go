package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/icon"
)

// Env derives the render environment from the request host.
func (h *Handler) Env(c *gin.Context) icon.Env {
	return icon.Env{Host: c.Request.Host, Development: h.development}
}

func (h *Handler) ListIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"tokens":  icon.Tokens(),
		"glyphs":  icon.Glyphs(),
		"default": icon.Default,
	})
}

func (h *Handler) ResolveIcon(c *gin.Context) {
	raw := c.Query("icon")
	c.JSON(http.StatusOK, gin.H{"ok": true, "icon": raw, "ref": icon.Resolve(raw, h.Env(c))})
}
