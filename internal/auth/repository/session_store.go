package repository

import (
	"context"
	"time"

	"github.com/srbeng/srb-site/internal/auth/domain"
)

// SessionKeyPrefix namespaces session keys: srb_admin_session:{token}.
const SessionKeyPrefix = "srb_admin_session:"

// SessionStore persists admin sessions by opaque token.
type SessionStore interface {
	Save(ctx context.Context, token string, s domain.Session, ttl time.Duration) error
	// Get returns domain.ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (domain.Session, error)
	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error
	// List returns every live session keyed by token.
	List(ctx context.Context) (map[string]domain.Session, error)
	Close() error
}
