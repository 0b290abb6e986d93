package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
	authdomain "github.com/srbeng/srb-site/internal/auth/domain"
	"github.com/srbeng/srb-site/internal/auth/repository"
	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/storage"
	"github.com/srbeng/srb-site/internal/storage/memory"
)

func useStore(t *testing.T, cfg *config.Config) *memory.Store {
	t.Helper()
	store := memory.New()

	prevLoad, prevOpen := loadConfig, openStore
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	openStore = func(context.Context, *config.Config, *zap.Logger, bool) (storage.Store, error) {
		return store, nil
	}
	t.Cleanup(func() { loadConfig, openStore = prevLoad, prevOpen })
	return store
}

func memoryConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Environment: "test"},
		Remote:  config.RemoteConfig{Driver: config.DriverMemory},
		Session: config.SessionConfig{TTL: time.Hour},
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"restore", "admin", "sweep-sessions", "migrate"} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestRestore(t *testing.T) {
	store := useStore(t, memoryConfig())
	ctx := context.Background()
	_, err := store.InsertProject(ctx, domain.Project{Title: "stray"})
	require.NoError(t, err)

	t.Run("requires --yes", func(t *testing.T) {
		restoreYes = false
		_, err := execute(t, "restore")
		assert.Error(t, err)
	})

	t.Run("replaces both tables", func(t *testing.T) {
		out, err := execute(t, "restore", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "projects: 7")
		assert.Contains(t, out, "services: 7")

		projects, err := store.ListProjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.CanonicalProjects(), projects)

		services, err := store.ListServices(ctx)
		require.NoError(t, err)
		assert.Len(t, services, len(domain.CanonicalServices()))
	})
}

func TestAdminSetPassword(t *testing.T) {
	store := useStore(t, memoryConfig())
	ctx := context.Background()

	out, err := execute(t, "admin", "set-password", "--email", " owner@srbeng.com ", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "owner@srbeng.com")

	u, err := store.FindByEmail(ctx, "OWNER@srbeng.com")
	require.NoError(t, err)
	assert.Equal(t, "secret1", u.PWCode)
	assert.Equal(t, authdomain.DefaultRole, u.RoleOrDefault())

	_, err = execute(t, "admin", "set-password", "--email", "owner@srbeng.com", "--password", "123")
	assert.ErrorContains(t, err, "at least")
}

func TestSweepSessions(t *testing.T) {
	t.Run("without redis", func(t *testing.T) {
		useStore(t, memoryConfig())
		out, err := execute(t, "sweep-sessions")
		require.NoError(t, err)
		assert.Contains(t, out, "nothing to sweep")
	})

	t.Run("removes sessions of deleted admins", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := memoryConfig()
		cfg.Redis.Addr = mr.Addr()
		store := useStore(t, cfg)

		ctx := context.Background()
		admin, err := store.Upsert(ctx, "admin@srbeng.com", "secret1", "")
		require.NoError(t, err)

		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		sessions := repository.NewRedisSessionStore(client)
		require.NoError(t, sessions.Save(ctx, "live", authdomain.Session{ID: admin.ID, Email: admin.Email}, time.Hour))
		require.NoError(t, sessions.Save(ctx, "stale", authdomain.Session{ID: "gone", Email: "old@srbeng.com"}, time.Hour))

		out, err := execute(t, "sweep-sessions")
		require.NoError(t, err)
		assert.Contains(t, out, "Removed 1 session(s)")

		_, err = sessions.Get(ctx, "live")
		assert.NoError(t, err)
		_, err = sessions.Get(ctx, "stale")
		assert.ErrorIs(t, err, authdomain.ErrSessionNotFound)
	})
}

func TestMigrateMemoryIsNoop(t *testing.T) {
	useStore(t, memoryConfig())
	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to migrate for memory backend")
}
