package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/storage"
)

// writeError renders a facade failure. action reads like "add project".
func writeError(c *gin.Context, action string, err error) {
	var (
		ve *domain.ValidationError
		re *storage.RemoteError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": ve.Message})
	case errors.Is(err, domain.ErrNotConfirmed):
		c.JSON(http.StatusPreconditionRequired, gin.H{"ok": false, "error": "Delete requires confirmation (confirm=true)"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Failed to " + action + ": record not found"})
	case errors.As(err, &re):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "Failed to " + action + ": " + re.Message()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to " + action + ". Please try again."})
	}
}
