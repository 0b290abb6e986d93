package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srbeng/srb-site/internal/auth/domain"
	"github.com/srbeng/srb-site/internal/auth/repository"
	"github.com/srbeng/srb-site/internal/storage"
	"github.com/srbeng/srb-site/internal/storage/memory"
)

// countingUsers records calls and can fail every lookup.
type countingUsers struct {
	storage.AdminUsers
	calls int
	err   error
}

func (c *countingUsers) FindByEmail(ctx context.Context, email string) (domain.AdminUser, error) {
	c.calls++
	if c.err != nil {
		return domain.AdminUser{}, c.err
	}
	return c.AdminUsers.FindByEmail(ctx, email)
}

func (c *countingUsers) GetByID(ctx context.Context, id string) (domain.AdminUser, error) {
	c.calls++
	if c.err != nil {
		return domain.AdminUser{}, c.err
	}
	return c.AdminUsers.GetByID(ctx, id)
}

func (c *countingUsers) UpdatePassword(ctx context.Context, id, pw string) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	return c.AdminUsers.UpdatePassword(ctx, id, pw)
}

type fixture struct {
	tables   *memory.Store
	users    *countingUsers
	sessions *repository.MemorySessionStore
	mgr      *Manager
	admin    domain.AdminUser
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tables := memory.New()
	admin, err := tables.Upsert(context.Background(), "Admin@SRBeng.com", "secret1", "")
	require.NoError(t, err)

	users := &countingUsers{AdminUsers: tables}
	sessions := repository.NewMemorySessionStore(nil)
	n := 0
	mgr := NewManager(users, sessions, ManagerOptions{
		TTL: time.Hour,
		NewToken: func() string {
			n++
			return "token-" + string(rune('0'+n))
		},
	})
	return &fixture{tables: tables, users: users, sessions: sessions, mgr: mgr, admin: admin}
}

func TestSignInSuccess(t *testing.T) {
	f := newFixture(t)

	res, err := f.mgr.SignIn(context.Background(), "  admin@srbeng.COM ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", res.Token)
	assert.Equal(t, domain.Session{ID: f.admin.ID, Email: "Admin@SRBeng.com", Role: "admin"}, res.Session)

	got, err := f.mgr.Current(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Session, got)
}

func TestSignInFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, wrongPassword := f.mgr.SignIn(ctx, "admin@srbeng.com", "nope")
	_, unknownEmail := f.mgr.SignIn(ctx, "ghost@srbeng.com", "secret1")

	f.users.err = errors.New("connection reset")
	_, backendDown := f.mgr.SignIn(ctx, "admin@srbeng.com", "secret1")

	for _, err := range []error{wrongPassword, unknownEmail, backendDown} {
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Equal(t, "Invalid email or password", domain.UserMessage(err))
	}
	all, _ := f.sessions.List(ctx)
	assert.Empty(t, all)
}

func TestSignInMissingInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.mgr.SignIn(context.Background(), " ", "x")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	assert.Equal(t, 0, f.users.calls)
}

func TestCurrentDoesNotRevalidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.mgr.SignIn(ctx, "admin@srbeng.com", "secret1")
	require.NoError(t, err)

	f.tables.DeleteAdmin(f.admin.ID)
	f.users.calls = 0

	_, err = f.mgr.Current(ctx, res.Token)
	assert.NoError(t, err)
	assert.Equal(t, 0, f.users.calls)

	_, err = f.mgr.Verify(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = f.mgr.Current(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestVerifyKeepsSessionOnBackendError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.mgr.SignIn(ctx, "admin@srbeng.com", "secret1")
	require.NoError(t, err)

	f.users.err = errors.New("timeout")
	_, err = f.mgr.Verify(ctx, res.Token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = f.mgr.Current(ctx, res.Token)
	assert.NoError(t, err)
}

func TestSignOutAlwaysSucceeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.mgr.SignIn(ctx, "admin@srbeng.com", "secret1")
	require.NoError(t, err)

	f.mgr.SignOut(ctx, res.Token)
	f.mgr.SignOut(ctx, res.Token)
	f.mgr.SignOut(ctx, "")

	_, err = f.mgr.Current(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestChangePasswordRejectsShortBeforeLookup(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"ascii", "12345"},
		{"multibyte counts characters", "ééé"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.mgr.ChangePassword(context.Background(), domain.ChangePasswordRequest{
				Email: "admin@srbeng.com", CurrentPassword: "secret1", NewPassword: tt.password,
			})
			assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
			assert.Equal(t, 0, f.users.calls)
		})
	}
}

func TestChangePasswordAcceptsSixMultibyteCharacters(t *testing.T) {
	f := newFixture(t)
	err := f.mgr.ChangePassword(context.Background(), domain.ChangePasswordRequest{
		Email: "admin@srbeng.com", CurrentPassword: "secret1", NewPassword: "éééééé",
	})
	require.NoError(t, err)
}

func TestChangePasswordFailureModes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.mgr.ChangePassword(ctx, domain.ChangePasswordRequest{Email: "ghost@srbeng.com", CurrentPassword: "x", NewPassword: "newpass"})
	assert.Equal(t, "Admin not found", domain.UserMessage(err))

	err = f.mgr.ChangePassword(ctx, domain.ChangePasswordRequest{Email: "admin@srbeng.com", CurrentPassword: "wrong", NewPassword: "newpass"})
	assert.Equal(t, "Current password is incorrect", domain.UserMessage(err))

	failing := &failingUpdate{AdminUsers: f.tables}
	mgr := NewManager(failing, f.sessions, ManagerOptions{})
	err = mgr.ChangePassword(ctx, domain.ChangePasswordRequest{Email: "admin@srbeng.com", CurrentPassword: "secret1", NewPassword: "newpass"})
	assert.Equal(t, "Failed to update password", domain.UserMessage(err))
}

type failingUpdate struct{ storage.AdminUsers }

func (failingUpdate) UpdatePassword(context.Context, string, string) error {
	return errors.New("permission denied")
}

func TestChangePasswordSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.mgr.ChangePassword(ctx, domain.ChangePasswordRequest{
		Email: "ADMIN@srbeng.com", CurrentPassword: "secret1", NewPassword: "secret2",
	}))

	_, err := f.mgr.SignIn(ctx, "admin@srbeng.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.mgr.SignIn(ctx, "admin@srbeng.com", "secret2")
	assert.NoError(t, err)
}

func TestSweepWithRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	tables := memory.New()
	ctx := context.Background()
	keep, err := tables.Upsert(ctx, "keep@srbeng.com", "secret1", "")
	require.NoError(t, err)
	gone, err := tables.Upsert(ctx, "gone@srbeng.com", "secret1", "")
	require.NoError(t, err)

	mgr := NewManager(tables, repository.NewRedisSessionStore(client), ManagerOptions{TTL: time.Hour})
	a, err := mgr.SignIn(ctx, keep.Email, "secret1")
	require.NoError(t, err)
	b, err := mgr.SignIn(ctx, gone.Email, "secret1")
	require.NoError(t, err)

	tables.DeleteAdmin(gone.ID)

	removed, err := mgr.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.True(t, mr.Exists(repository.SessionKeyPrefix+a.Token))
	assert.False(t, mr.Exists(repository.SessionKeyPrefix+b.Token))
}
