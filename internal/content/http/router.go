package http

import "github.com/gin-gonic/gin"

// RegisterPublic mounts the read-only site endpoints.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/site", h.Site)
	rg.GET("/projects", h.ListProjects)
	rg.GET("/projects/:id", h.GetProject)
	rg.GET("/services", h.ListServices)
	rg.GET("/services/:id", h.GetService)
	rg.GET("/stats", h.Stats)
	rg.GET("/events", h.StreamEvents)
}

// RegisterAdmin mounts the write endpoints. rg must already require an admin
// session.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/projects", h.CreateProject)
	rg.PATCH("/projects/:id", h.UpdateProject)
	rg.DELETE("/projects/:id", h.DeleteProject)

	rg.POST("/services", h.CreateService)
	rg.PATCH("/services/:id", h.UpdateService)
	rg.DELETE("/services/:id", h.DeleteService)
}
