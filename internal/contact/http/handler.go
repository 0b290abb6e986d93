package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/contact/domain"
)

type Submitter interface {
	Submit(ctx context.Context, m domain.Message) error
}

// TitleSource lists service titles for the "interested service" dropdown.
type TitleSource interface {
	ServiceTitles(ctx context.Context) []string
}

type Handler struct {
	contact Submitter
	titles  TitleSource
}

func New(contact Submitter, titles TitleSource) *Handler {
	return &Handler{contact: contact, titles: titles}
}

func (h *Handler) Register(rg *gin.RouterGroup, submitGuards ...gin.HandlerFunc) {
	submit := append(append([]gin.HandlerFunc{}, submitGuards...), h.Submit)
	rg.POST("/contact", submit...)
	rg.GET("/contact/services", h.ServiceTitles)
}

func (h *Handler) Submit(c *gin.Context) {
	var m domain.Message
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	if err := h.contact.Submit(c.Request.Context(), m); err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Thank you! Your message has been sent."})
}

func (h *Handler) ServiceTitles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "services": h.titles.ServiceTitles(c.Request.Context())})
}

func statusFor(err error) int {
	var (
		save *domain.SaveError
		send *domain.SendError
	)
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &save), errors.As(err, &send):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
