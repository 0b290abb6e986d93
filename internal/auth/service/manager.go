package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/internal/auth/domain"
	"github.com/srbeng/srb-site/internal/auth/repository"
	"github.com/srbeng/srb-site/internal/logging"
	"github.com/srbeng/srb-site/internal/metrics"
	"github.com/srbeng/srb-site/internal/storage"
)

// DefaultSessionTTL applies when ManagerOptions.TTL is zero.
const DefaultSessionTTL = 7 * 24 * time.Hour

type ManagerOptions struct {
	TTL     time.Duration
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
	// NewToken defaults to a random UUID.
	NewToken func() string
}

// Manager checks admin credentials against the admin_users table and keeps
// the resulting sessions in a SessionStore.
type Manager struct {
	users    storage.AdminUsers
	sessions repository.SessionStore
	ttl      time.Duration
	log      *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	newToken func() string
}

func NewManager(users storage.AdminUsers, sessions repository.SessionStore, opts ManagerOptions) *Manager {
	m := &Manager{
		users:    users,
		sessions: sessions,
		ttl:      opts.TTL,
		log:      logging.OrNop(opts.Logger).Named("auth"),
		metrics:  opts.Metrics,
		now:      opts.Now,
		newToken: opts.NewToken,
	}
	if m.ttl <= 0 {
		m.ttl = DefaultSessionTTL
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newToken == nil {
		m.newToken = uuid.NewString
	}
	return m
}

func passwordsEqual(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// SignIn returns a new session token for a matching email and pw_code. Every
// failure other than missing input is reported as ErrInvalidCredentials.
func (m *Manager) SignIn(ctx context.Context, email, password string) (res domain.SignInResult, err error) {
	defer func() { m.metrics.RecordSignIn(err) }()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.SignInResult{}, domain.ErrMissingCredentials
	}

	u, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrAdminNotFound) {
			m.log.Warn("admin lookup failed", zap.Error(err))
		}
		return domain.SignInResult{}, domain.ErrInvalidCredentials
	}
	if !passwordsEqual(u.PWCode, password) {
		return domain.SignInResult{}, domain.ErrInvalidCredentials
	}

	session := domain.Session{ID: u.ID, Email: u.Email, Role: u.RoleOrDefault()}
	token := m.newToken()
	if err := m.sessions.Save(ctx, token, session, m.ttl); err != nil {
		m.log.Error("save session failed", zap.Error(err))
		return domain.SignInResult{}, domain.ErrInvalidCredentials
	}

	m.log.Info("admin signed in", zap.String("admin_id", u.ID))
	return domain.SignInResult{
		Token:     token,
		Session:   session,
		ExpiresAt: m.now().Add(m.ttl).UTC(),
	}, nil
}

// Current returns the stored session for token without consulting the
// admin_users table.
func (m *Manager) Current(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return m.sessions.Get(ctx, token)
}

// Verify re-checks that the session's admin still exists. A session whose admin
// is gone is destroyed. Backend errors leave the session in place.
func (m *Manager) Verify(ctx context.Context, token string) (domain.Session, error) {
	s, err := m.Current(ctx, token)
	if err != nil {
		return domain.Session{}, err
	}

	if _, err := m.users.GetByID(ctx, s.ID); err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			if derr := m.sessions.Delete(ctx, token); derr != nil {
				m.log.Warn("delete stale session failed", zap.Error(derr))
			}
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("verify session: %w", err)
	}
	return s, nil
}

// SignOut drops the session. It never fails from the caller's point of view.
func (m *Manager) SignOut(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := m.sessions.Delete(ctx, token); err != nil {
		m.log.Warn("delete session failed", zap.Error(err))
	}
}

// ChangePassword replaces the admin's pw_code after checking the current one.
// A short new password is rejected before the table is touched.
func (m *Manager) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) error {
	if utf8.RuneCountInString(req.NewPassword) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	u, err := m.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrAdminNotFound) {
			m.log.Warn("admin lookup failed", zap.Error(err))
		}
		return domain.ErrAdminNotFound
	}
	if !passwordsEqual(u.PWCode, req.CurrentPassword) {
		return domain.ErrPasswordMismatch
	}
	if err := m.users.UpdatePassword(ctx, u.ID, req.NewPassword); err != nil {
		m.log.Error("update password failed", zap.String("admin_id", u.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrPasswordUpdate, err)
	}

	m.log.Info("admin password changed", zap.String("admin_id", u.ID))
	return nil
}

// Sweep verifies every stored session and returns how many were destroyed.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	all, err := m.sessions.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for token := range all {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if _, err := m.Verify(ctx, token); errors.Is(err, domain.ErrSessionNotFound) {
			removed++
		} else if err != nil {
			m.log.Warn("session verify failed during sweep", zap.Error(err))
		}
	}
	return removed, nil
}

// Close releases the session store.
func (m *Manager) Close() error {
	return m.sessions.Close()
}
