package domain

import "time"

// DefaultRole is assigned to admin rows that carry no role.
const DefaultRole = "admin"

// MinPasswordLength is the shortest accepted pw_code.
const MinPasswordLength = 6

// AdminUser is a row of the admin_users table. PWCode is never serialized.
type AdminUser struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	PWCode    string    `json:"-" db:"pw_code"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RoleOrDefault returns the user's role, falling back to DefaultRole.
func (u AdminUser) RoleOrDefault() string {
	if u.Role == "" {
		return DefaultRole
	}
	return u.Role
}

// Session is the proof of a successful credential check.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SignInResult is handed to the client after SignIn. Token is the bearer value
// for subsequent admin requests.
type SignInResult struct {
	Token     string    `json:"token"`
	Session   Session   `json:"session"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChangePasswordRequest carries the inputs of a password change.
type ChangePasswordRequest struct {
	Email           string
	CurrentPassword string
	NewPassword     string
}
