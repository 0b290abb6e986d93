package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/internal/auth"
	"github.com/srbeng/srb-site/internal/content/domain"
)

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

func (h *Handler) audit(c *gin.Context, msg, id string) {
	s, _ := auth.SessionFrom(c)
	h.log.Info(msg, zap.String("id", id), zap.String("admin", s.Email))
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	p := req.project(h.now().In(h.loc))
	if err := domain.ValidateProject(p); err != nil {
		writeError(c, "add project", err)
		return
	}

	created, err := h.facade.CreateProject(c.Request.Context(), p)
	if err != nil {
		writeError(c, "add project", err)
		return
	}
	h.audit(c, "project created", created.ID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": created, "message": "Project added successfully!"})
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var patch domain.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	if err := domain.ValidateProjectPatch(patch); err != nil {
		writeError(c, "update project", err)
		return
	}

	updated, err := h.facade.UpdateProject(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, "update project", err)
		return
	}
	h.audit(c, "project updated", updated.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": updated, "message": "Project updated successfully!"})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.facade.DeleteProject(c.Request.Context(), id, confirmed(c)); err != nil {
		writeError(c, "delete project", err)
		return
	}
	h.audit(c, "project deleted", id)
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	s := req.service()
	if err := domain.ValidateService(s); err != nil {
		writeError(c, "add service", err)
		return
	}

	created, err := h.facade.CreateService(c.Request.Context(), s)
	if err != nil {
		writeError(c, "add service", err)
		return
	}
	h.audit(c, "service created", created.ID)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "service": serviceView{Service: created, IconRef: h.iconRef(c, created)}, "message": "Service added successfully!"})
}

func (h *Handler) UpdateService(c *gin.Context) {
	var patch domain.ServicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	if err := domain.ValidateServicePatch(patch); err != nil {
		writeError(c, "update service", err)
		return
	}

	updated, err := h.facade.UpdateService(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, "update service", err)
		return
	}
	h.audit(c, "service updated", updated.ID)
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": serviceView{Service: updated, IconRef: h.iconRef(c, updated)}, "message": "Service updated successfully!"})
}

func (h *Handler) DeleteService(c *gin.Context) {
	id := c.Param("id")
	if err := h.facade.DeleteService(c.Request.Context(), id, confirmed(c)); err != nil {
		writeError(c, "delete service", err)
		return
	}
	h.audit(c, "service deleted", id)
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
