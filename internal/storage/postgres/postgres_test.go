package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/srbeng/srb-site/internal/auth/domain"
	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/storage"
)

var _ storage.Store = (*Store)(nil)

func TestUpdateSQL(t *testing.T) {
	title := "New"
	icon := ""
	q, args := updateSQL("services", serviceCols, "abc", domain.ServicePatch{Title: &title, Icon: &icon}.Columns())

	assert.Equal(t, "update services set title = $1, icon = $2 where id::text = $3 returning "+serviceCols, q)
	require.Len(t, args, 3)
	assert.Equal(t, "New", args[0])
	assert.Nil(t, args[1])
	assert.Equal(t, "abc", args[2])
}

func TestWrap(t *testing.T) {
	assert.NoError(t, wrap("op", nil))
	assert.ErrorIs(t, wrap("op", pgx.ErrNoRows), domain.ErrNotFound)

	err := wrap("insert project", &pgconn.PgError{Code: "23502", Message: `null value in column "title"`})
	var re *storage.RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, `null value in column "title"`, re.Message())
	assert.Equal(t, "postgres", re.Backend)
}

// setupTestStore connects to TEST_DB_DSN and skips when it is not set.
func setupTestStore(t *testing.T) *Store {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}
	ctx := context.Background()
	pool, err := Open(ctx, dsn, PoolOptions{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s := New(pool)
	require.NoError(t, s.Migrate(ctx))
	_, err = pool.Exec(ctx, `truncate projects, services, admin_users, contact_messages`)
	require.NoError(t, err)
	return s
}

func TestStoreIntegration(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	n, err := s.ReplaceProjects(ctx, domain.CanonicalProjects())
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	list, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 7)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440001", list[0].ID)

	in := domain.Project{ID: "ignored", Title: "Hall", Year: "2025", Category: domain.CategoryOther, Image: "data:x"}
	created, err := s.InsertProject(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", created.ID)
	assert.Equal(t, in.Title, created.Title)

	require.NoError(t, s.DeleteProject(ctx, created.ID))
	assert.ErrorIs(t, s.DeleteProject(ctx, created.ID), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteProject(ctx, "p1"), domain.ErrNotFound)

	u, err := s.Upsert(ctx, "Admin@Example.com", "secret1", "")
	require.NoError(t, err)
	found, err := s.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = s.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, authdomain.ErrAdminNotFound)
}
