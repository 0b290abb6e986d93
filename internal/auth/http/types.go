package http

import (
	"context"

	"github.com/srbeng/srb-site/internal/auth/domain"
)

// SessionManager is the part of the session manager the handlers use.
type SessionManager interface {
	SignIn(ctx context.Context, email, password string) (domain.SignInResult, error)
	Current(ctx context.Context, token string) (domain.Session, error)
	SignOut(ctx context.Context, token string)
	ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) error
}

type Handler struct {
	sessions SessionManager
}

func New(sessions SessionManager) *Handler {
	return &Handler{sessions: sessions}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
