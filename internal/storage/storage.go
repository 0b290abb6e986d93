// Package storage defines the table backends behind the content facade, the
// admin session manager and the contact form. A backend is selected once at
// startup; call sites never branch on which one is in use.
package storage

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/srbeng/srb-site/internal/auth/domain"
	contactdomain "github.com/srbeng/srb-site/internal/contact/domain"
	"github.com/srbeng/srb-site/internal/content/domain"
)

// Backend persists projects and services.
//
// Remote reports whether identity is assigned by the backend. Inserts on a
// remote backend ignore the caller-supplied id.
type Backend interface {
	Name() string
	Remote() bool

	ListProjects(ctx context.Context) ([]domain.Project, error)
	InsertProject(ctx context.Context, p domain.Project) (domain.Project, error)
	UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListServices(ctx context.Context) ([]domain.Service, error)
	InsertService(ctx context.Context, s domain.Service) (domain.Service, error)
	UpdateService(ctx context.Context, id string, patch domain.ServicePatch) (domain.Service, error)
	DeleteService(ctx context.Context, id string) error

	// ServiceTitles returns service titles oldest first.
	ServiceTitles(ctx context.Context) ([]string, error)

	// ReplaceProjects and ReplaceServices wipe a table and insert rows verbatim,
	// ids included. Used by the restore command.
	ReplaceProjects(ctx context.Context, rows []domain.Project) (int, error)
	ReplaceServices(ctx context.Context, rows []domain.Service) (int, error)

	Ping(ctx context.Context) error
	Close() error
}

// AdminUsers is the admin_users table.
type AdminUsers interface {
	// FindByEmail matches email case-insensitively and expects a single row.
	FindByEmail(ctx context.Context, email string) (authdomain.AdminUser, error)
	GetByID(ctx context.Context, id string) (authdomain.AdminUser, error)
	UpdatePassword(ctx context.Context, id, pwCode string) error
	Upsert(ctx context.Context, email, pwCode, role string) (authdomain.AdminUser, error)
}

// ContactMessages is the contact_messages table.
type ContactMessages interface {
	InsertContact(ctx context.Context, m contactdomain.Message) error
}

// Tables groups everything a single driver provides.
type Tables struct {
	Content  Backend
	Admins   AdminUsers
	Contacts ContactMessages
}

// Store is implemented by every driver in this tree.
type Store interface {
	Backend
	AdminUsers
	ContactMessages
}

// TablesOf exposes a driver through the Tables view.
func TablesOf(s Store) Tables {
	return Tables{Content: s, Admins: s, Contacts: s}
}

// RemoteError is a failure reported by a remote backend. Message is safe to show
// to an admin ("Failed to add project: <message>").
type RemoteError struct {
	Backend string
	Op      string
	Err     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Message() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// Wrap returns err as a *RemoteError unless it is nil or one of the domain
// sentinels that callers match on directly.
func Wrap(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, authdomain.ErrAdminNotFound) {
		return err
	}
	return &RemoteError{Backend: backend, Op: op, Err: err}
}
