package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/uploads"
)

type Handler struct {
	uploader *uploads.Uploader
}

func New(uploader *uploads.Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// Register mounts POST /uploads; the caller supplies the admin guard.
func (h *Handler) Register(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, guards...), h.Upload)
	rg.POST("/uploads", handlers...)
}

// Upload accepts a multipart "image" field.
func (h *Handler) Upload(c *gin.Context) {
	limit := h.uploader.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": uploads.ErrTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": uploads.ErrNoFile.Error()})
		return
	}
	if fh.Size > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": uploads.ErrTooLarge.Error()})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": uploads.ErrNoFile.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Failed to read image file. Please try again."})
		return
	}

	res, err := h.uploader.Upload(c.Request.Context(), fh.Filename, data)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": message(err)})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "upload": res})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, uploads.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, uploads.ErrInvalidType), errors.Is(err, uploads.ErrInvalidExt):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, uploads.ErrNoFile):
		return http.StatusBadRequest
	case errors.Is(err, uploads.ErrStoreFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// message hides driver detail behind the sentinel text.
func message(err error) string {
	for _, s := range []error{uploads.ErrTooLarge, uploads.ErrInvalidType, uploads.ErrInvalidExt, uploads.ErrNoFile, uploads.ErrStoreFailed} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "Failed to process image. Please try again."
}
