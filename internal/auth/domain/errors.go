package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrPasswordTooShort   = errors.New("new password is too short")
	ErrPasswordUpdate     = errors.New("password update failed")
	ErrSessionNotFound    = errors.New("session not found")
	ErrMissingCredentials = errors.New("email and password are required")
)

// UserMessage maps an auth error to the text shown to the admin. Unknown errors
// collapse into the generic sign-in failure.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "Please enter email and password"
	case errors.Is(err, ErrAdminNotFound):
		return "Admin not found"
	case errors.Is(err, ErrPasswordMismatch):
		return "Current password is incorrect"
	case errors.Is(err, ErrPasswordTooShort):
		return "New password must be at least 6 characters"
	case errors.Is(err, ErrPasswordUpdate):
		return "Failed to update password"
	case errors.Is(err, ErrSessionNotFound):
		return "Not signed in"
	default:
		return "Invalid email or password"
	}
}
