package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/content/service"
)

// StreamEvents pushes a snapshot of the site content whenever it changes
// (Server-Sent Events). The first event is "initial".
func (h *Handler) StreamEvents(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	updates, cancel := h.facade.Subscribe()
	defer cancel()

	env := h.env(c)
	write := func(event string, snap service.Snapshot) {
		data, _ := json.Marshal(gin.H{
			"version":  snap.Version,
			"loading":  snap.Loading,
			"projects": snap.Projects,
			"services": servicesView(snap.Services, env),
			"stats":    h.facade.Statistics(),
		})
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	write("initial", h.facade.Snapshot())

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case snap, ok := <-updates:
			if !ok {
				// facade closed: server is shutting down
				return
			}
			write("update", snap)
		}
	}
}
