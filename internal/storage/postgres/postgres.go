// Package postgres is the table backend for a directly reachable Postgres
// database (the same schema the hosted backend exposes over REST).
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authdomain "github.com/srbeng/srb-site/internal/auth/domain"
	contactdomain "github.com/srbeng/srb-site/internal/contact/domain"
	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/storage"
)

const name = "postgres"

type PoolOptions struct {
	MaxConns int32
	MinConns int32
}

// Open connects a pool and fails fast when the database is unreachable.
func Open(ctx context.Context, dsn string, opts PoolOptions) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}

// Store implements storage.Store on a pgx pool.
type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store { return &Store{db: db} }

func (s *Store) Name() string { return name }

func (s *Store) Remote() bool { return true }

func (s *Store) Ping(ctx context.Context) error { return s.db.Ping(ctx) }

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

// wrap turns driver errors into storage.RemoteError, keeping only the server
// message of a Postgres error.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		err = errors.New(pgErr.Message)
	}
	return storage.Wrap(name, op, err)
}

const projectCols = `id::text, title, year, category, location, image, description`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	var cat string
	err := row.Scan(&p.ID, &p.Title, &p.Year, &cat, &p.Location, &p.Image, &p.Description)
	p.Category = domain.Category(cat)
	return p, err
}

func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	const q = `select ` + projectCols + ` from projects order by created_at desc`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, wrap("list projects", err)
	}
	defer rows.Close()

	out := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, wrap("list projects", err)
		}
		out = append(out, p)
	}
	return out, wrap("list projects", rows.Err())
}

func (s *Store) InsertProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	const q = `
insert into projects (title, year, category, location, image, description)
values ($1, $2, $3, $4, $5, $6)
returning ` + projectCols
	got, err := scanProject(s.db.QueryRow(ctx, q, p.Title, p.Year, string(p.Category), p.Location, p.Image, p.Description))
	if err != nil {
		return domain.Project{}, wrap("insert project", err)
	}
	return got, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	q, args := updateSQL("projects", projectCols, id, patch.Columns())
	got, err := scanProject(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.Project{}, wrap("update project", err)
	}
	return got, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "projects", "delete project", id)
}

const serviceCols = `id::text, title, description, icon`

func scanService(row pgx.Row) (domain.Service, error) {
	var v domain.Service
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.Icon)
	return v, err
}

func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	const q = `select ` + serviceCols + ` from services order by created_at desc`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, wrap("list services", err)
	}
	defer rows.Close()

	out := []domain.Service{}
	for rows.Next() {
		v, err := scanService(rows)
		if err != nil {
			return nil, wrap("list services", err)
		}
		out = append(out, v)
	}
	return out, wrap("list services", rows.Err())
}

func (s *Store) InsertService(ctx context.Context, v domain.Service) (domain.Service, error) {
	const q = `
insert into services (title, description, icon)
values ($1, $2, $3)
returning ` + serviceCols
	got, err := scanService(s.db.QueryRow(ctx, q, v.Title, v.Description, v.Icon))
	if err != nil {
		return domain.Service{}, wrap("insert service", err)
	}
	return got, nil
}

func (s *Store) UpdateService(ctx context.Context, id string, patch domain.ServicePatch) (domain.Service, error) {
	q, args := updateSQL("services", serviceCols, id, patch.Columns())
	got, err := scanService(s.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.Service{}, wrap("update service", err)
	}
	return got, nil
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "services", "delete service", id)
}

func (s *Store) ServiceTitles(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `select title from services order by created_at asc`)
	if err != nil {
		return nil, wrap("service titles", err)
	}
	titles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrap("service titles", err)
	}
	return titles, nil
}

// ReplaceProjects rewrites the projects table in one transaction. Rows keep
// their order: the first row gets the newest created_at.
func (s *Store) ReplaceProjects(ctx context.Context, rows []domain.Project) (int, error) {
	base := time.Now().UTC()
	batch := &pgx.Batch{}
	for i, p := range rows {
		batch.Queue(`
insert into projects (id, title, year, category, location, image, description, created_at)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8)`,
			p.ID, p.Title, p.Year, string(p.Category), p.Location, p.Image, p.Description,
			base.Add(-time.Duration(i)*time.Second))
	}
	return s.replace(ctx, "projects", batch)
}

func (s *Store) ReplaceServices(ctx context.Context, rows []domain.Service) (int, error) {
	base := time.Now().UTC()
	batch := &pgx.Batch{}
	for i, v := range rows {
		batch.Queue(`
insert into services (id, title, description, icon, created_at)
values ($1::uuid, $2, $3, $4, $5)`,
			v.ID, v.Title, v.Description, v.Icon,
			base.Add(-time.Duration(i)*time.Second))
	}
	return s.replace(ctx, "services", batch)
}

func (s *Store) replace(ctx context.Context, table string, batch *pgx.Batch) (int, error) {
	op := "replace " + table
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, wrap(op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `delete from `+table); err != nil {
		return 0, wrap(op, err)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, wrap(op, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, wrap(op, err)
	}
	return batch.Len(), nil
}

func (s *Store) deleteByID(ctx context.Context, table, op, id string) error {
	tag, err := s.db.Exec(ctx, `delete from `+table+` where id::text = $1`, id)
	if err != nil {
		return wrap(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// updateSQL builds "update <table> set a=$1, b=$2 where id::text=$3 returning
// <cols>" from a patch's columns.
func updateSQL(table, returning, id string, cols []domain.Column) (string, []any) {
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c.Name, i+1))
		args = append(args, c.Value)
	}
	args = append(args, id)
	q := fmt.Sprintf("update %s set %s where id::text = $%d returning %s",
		table, strings.Join(sets, ", "), len(args), returning)
	return q, args
}

const adminCols = `id::text, email, pw_code, coalesce(role, ''), created_at`

func scanAdmin(row pgx.Row) (authdomain.AdminUser, error) {
	var u authdomain.AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.PWCode, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, authdomain.ErrAdminNotFound
	}
	return u, err
}

func (s *Store) FindByEmail(ctx context.Context, email string) (authdomain.AdminUser, error) {
	const q = `select ` + adminCols + ` from admin_users where lower(email) = lower($1) limit 1`
	u, err := scanAdmin(s.db.QueryRow(ctx, q, strings.TrimSpace(email)))
	return u, wrap("find admin", err)
}

func (s *Store) GetByID(ctx context.Context, id string) (authdomain.AdminUser, error) {
	const q = `select ` + adminCols + ` from admin_users where id::text = $1`
	u, err := scanAdmin(s.db.QueryRow(ctx, q, id))
	return u, wrap("get admin", err)
}

func (s *Store) UpdatePassword(ctx context.Context, id, pwCode string) error {
	tag, err := s.db.Exec(ctx, `update admin_users set pw_code = $2 where id::text = $1`, id, pwCode)
	if err != nil {
		return wrap("update password", err)
	}
	if tag.RowsAffected() == 0 {
		return authdomain.ErrAdminNotFound
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, email, pwCode, role string) (authdomain.AdminUser, error) {
	const q = `
insert into admin_users (email, pw_code, role)
values ($1, $2, nullif($3, ''))
on conflict ((lower(email))) do update
set pw_code = excluded.pw_code,
    role = coalesce(excluded.role, admin_users.role)
returning ` + adminCols
	u, err := scanAdmin(s.db.QueryRow(ctx, q, strings.TrimSpace(email), pwCode, role))
	return u, wrap("upsert admin", err)
}

func (s *Store) InsertContact(ctx context.Context, m contactdomain.Message) error {
	const q = `
insert into contact_messages (full_name, phone_number, email_address, interested_service, message)
values ($1, $2, $3, $4, $5)`
	_, err := s.db.Exec(ctx, q, m.FullName, m.PhoneNumber, m.EmailAddress, m.InterestedService, m.Message)
	return wrap("insert contact message", err)
}
