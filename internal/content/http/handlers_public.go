package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/icon"
)

func (h *Handler) env(c *gin.Context) icon.Env {
	return icon.Env{Host: c.Request.Host, Development: h.development}
}

// Site returns everything the marketing page renders in one response.
func (h *Handler) Site(c *gin.Context) {
	snap := h.facade.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"loading":  snap.Loading,
		"version":  snap.Version,
		"company":  domain.Company,
		"mission":  domain.Mission,
		"projects": snap.Projects,
		"services": servicesView(snap.Services, h.env(c)),
		"stats":    h.facade.Statistics(),
	})
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects := h.facade.Projects()
	if cat := c.Query("category"); cat != "" && cat != "All" {
		filtered := projects[:0]
		for _, p := range projects {
			if string(p.Category) == cat {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": projects, "loading": h.facade.Loading()})
}

func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.facade.Project(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"services": servicesView(h.facade.Services(), h.env(c)),
		"loading":  h.facade.Loading(),
	})
}

func (h *Handler) GetService(c *gin.Context) {
	s, err := h.facade.Service(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": serviceView{Service: s, IconRef: h.iconRef(c, s)}})
}

func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": h.facade.Statistics()})
}

func (h *Handler) iconRef(c *gin.Context, s domain.Service) icon.Ref {
	return icon.ResolvePtr(s.Icon, h.env(c))
}
