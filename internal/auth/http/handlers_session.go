package http

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/srbeng/srb-site/internal/auth"
	"github.com/srbeng/srb-site/internal/auth/domain"
	"github.com/srbeng/srb-site/internal/auth/middleware"
)

// SignIn exchanges email and password for a session token.
func (h *Handler) SignIn(c *gin.Context) {
	var body signInRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	res, err := h.sessions.SignIn(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, domain.ErrMissingCredentials) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"ok": false, "error": domain.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"token":      res.Token,
		"session":    res.Session,
		"expires_at": res.ExpiresAt,
	})
}

// CurrentSession returns the stored session without re-checking the admin row.
func (h *Handler) CurrentSession(c *gin.Context) {
	s, err := h.sessions.Current(c.Request.Context(), middleware.ExtractToken(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": domain.UserMessage(domain.ErrSessionNotFound)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}

func (h *Handler) SignOut(c *gin.Context) {
	h.sessions.SignOut(c.Request.Context(), middleware.ExtractToken(c))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ChangePassword changes the signed-in admin's pw_code.
func (h *Handler) ChangePassword(c *gin.Context) {
	s, ok := auth.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": domain.UserMessage(domain.ErrSessionNotFound)})
		return
	}

	var body changePasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	if body.CurrentPassword == "" || body.NewPassword == "" || body.ConfirmPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Please fill in all fields"})
		return
	}
	if utf8.RuneCountInString(body.NewPassword) < domain.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": domain.UserMessage(domain.ErrPasswordTooShort)})
		return
	}
	if body.NewPassword != body.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "New passwords do not match"})
		return
	}

	err := h.sessions.ChangePassword(c.Request.Context(), domain.ChangePasswordRequest{
		Email:           s.Email,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	if err != nil {
		c.JSON(passwordStatus(err), gin.H{"ok": false, "error": domain.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Password updated successfully"})
}

func passwordStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrAdminNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPasswordMismatch), errors.Is(err, domain.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPasswordUpdate):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
