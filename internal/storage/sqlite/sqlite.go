// Package sqlite keeps the site tables in a single SQLite file. It shares the
// hosted schema, so it behaves like a remote backend: ids are assigned on
// insert and survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	authdomain "github.com/srbeng/srb-site/internal/auth/domain"
	contactdomain "github.com/srbeng/srb-site/internal/contact/domain"
	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/storage"
)

const name = "sqlite"

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	year TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS services (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	icon TEXT,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS admin_users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE COLLATE NOCASE,
	pw_code TEXT NOT NULL,
	role TEXT,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS contact_messages (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL,
	phone_number TEXT NOT NULL,
	email_address TEXT NOT NULL,
	interested_service TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL,
	created_at TEXT NOT NULL
);`

// Store implements storage.Store on database/sql with the modernc driver.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the file (and parent directories) when needed and migrates the
// schema. ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Name() string { return name }

func (s *Store) Remote() bool { return true }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) stamp(offset time.Duration) string {
	return s.now().UTC().Add(offset).Format(timeLayout)
}

func wrap(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return storage.Wrap(name, op, err)
}

type scanner interface {
	Scan(dest ...any) error
}

const projectCols = `id, title, year, category, location, image, description`

func scanProject(row scanner) (domain.Project, error) {
	var p domain.Project
	var cat string
	err := row.Scan(&p.ID, &p.Title, &p.Year, &cat, &p.Location, &p.Image, &p.Description)
	p.Category = domain.Category(cat)
	return p, err
}

func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectCols+` FROM projects ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, wrap("list projects", err)
	}
	defer func() { _ = rows.Close() }()

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

func (s *Store) insertProject(ctx context.Context, ex execer, p domain.Project, createdAt string) error {
	_, err := ex.ExecContext(ctx, `
INSERT INTO projects (id, title, year, category, location, image, description, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Year, string(p.Category), p.Location, p.Image, p.Description, createdAt)
	return err
}

func (s *Store) InsertProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.ID = uuid.NewString()
	if err := s.insertProject(ctx, s.db, p, s.stamp(0)); err != nil {
		return domain.Project{}, wrap("insert project", err)
	}
	return p, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	if err := s.update(ctx, "projects", id, patch.Columns()); err != nil {
		return domain.Project{}, wrap("update project", err)
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+projectCols+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return domain.Project{}, wrap("update project", err)
	}
	return p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "projects", "delete project", id)
}

const serviceCols = `id, title, description, icon`

func scanService(row scanner) (domain.Service, error) {
	var v domain.Service
	var icon sql.NullString
	err := row.Scan(&v.ID, &v.Title, &v.Description, &icon)
	if icon.Valid {
		v.Icon = &icon.String
	}
	return v, err
}

func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+serviceCols+` FROM services ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, wrap("list services", err)
	}
	defer func() { _ = rows.Close() }()

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

func (s *Store) insertService(ctx context.Context, ex execer, v domain.Service, createdAt string) error {
	_, err := ex.ExecContext(ctx, `
INSERT INTO services (id, title, description, icon, created_at)
VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.Title, v.Description, nullable(v.Icon), createdAt)
	return err
}

func (s *Store) InsertService(ctx context.Context, v domain.Service) (domain.Service, error) {
	v = v.Clone()
	v.ID = uuid.NewString()
	if err := s.insertService(ctx, s.db, v, s.stamp(0)); err != nil {
		return domain.Service{}, wrap("insert service", err)
	}
	return v, nil
}

func (s *Store) UpdateService(ctx context.Context, id string, patch domain.ServicePatch) (domain.Service, error) {
	if err := s.update(ctx, "services", id, patch.Columns()); err != nil {
		return domain.Service{}, wrap("update service", err)
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+serviceCols+` FROM services WHERE id = ?`, id)
	v, err := scanService(row)
	if err != nil {
		return domain.Service{}, wrap("update service", err)
	}
	return v, nil
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "services", "delete service", id)
}

func (s *Store) ServiceTitles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title FROM services ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, wrap("service titles", err)
	}
	defer func() { _ = rows.Close() }()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, wrap("service titles", err)
		}
		titles = append(titles, t)
	}
	return titles, wrap("service titles", rows.Err())
}

func (s *Store) ReplaceProjects(ctx context.Context, rows []domain.Project) (int, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
			return err
		}
		for i, p := range rows {
			if err := s.insertProject(ctx, tx, p, s.stamp(-time.Duration(i)*time.Second)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, wrap("replace projects", err)
	}
	return len(rows), nil
}

func (s *Store) ReplaceServices(ctx context.Context, rows []domain.Service) (int, error) {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM services`); err != nil {
			return err
		}
		for i, v := range rows {
			if err := s.insertService(ctx, tx, v, s.stamp(-time.Duration(i)*time.Second)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, wrap("replace services", err)
	}
	return len(rows), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) update(ctx context.Context, table, id string, cols []domain.Column) error {
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c.Name+" = ?")
		args = append(args, c.Value)
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", ")), args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) deleteByID(ctx context.Context, table, op, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return wrap(op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

const adminCols = `id, email, pw_code, COALESCE(role, ''), created_at`

func scanAdmin(row scanner) (authdomain.AdminUser, error) {
	var u authdomain.AdminUser
	var created string
	err := row.Scan(&u.ID, &u.Email, &u.PWCode, &u.Role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return u, authdomain.ErrAdminNotFound
	}
	if err != nil {
		return u, err
	}
	u.CreatedAt, _ = time.Parse(timeLayout, created)
	return u, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (authdomain.AdminUser, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminCols+` FROM admin_users WHERE email = ? COLLATE NOCASE LIMIT 1`, strings.TrimSpace(email))
	u, err := scanAdmin(row)
	return u, wrap("find admin", err)
}

func (s *Store) GetByID(ctx context.Context, id string) (authdomain.AdminUser, error) {
	u, err := scanAdmin(s.db.QueryRowContext(ctx, `SELECT `+adminCols+` FROM admin_users WHERE id = ?`, id))
	return u, wrap("get admin", err)
}

func (s *Store) UpdatePassword(ctx context.Context, id, pwCode string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE admin_users SET pw_code = ? WHERE id = ?`, pwCode, id)
	if err != nil {
		return wrap("update password", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return authdomain.ErrAdminNotFound
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, email, pwCode, role string) (authdomain.AdminUser, error) {
	email = strings.TrimSpace(email)
	_, err := s.db.ExecContext(ctx, `
INSERT INTO admin_users (id, email, pw_code, role, created_at)
VALUES (?, ?, ?, NULLIF(?, ''), ?)
ON CONFLICT(email) DO UPDATE SET
	pw_code = excluded.pw_code,
	role = COALESCE(excluded.role, admin_users.role)`,
		uuid.NewString(), email, pwCode, role, s.stamp(0))
	if err != nil {
		return authdomain.AdminUser{}, wrap("upsert admin", err)
	}
	return s.FindByEmail(ctx, email)
}

func (s *Store) InsertContact(ctx context.Context, m contactdomain.Message) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO contact_messages (id, full_name, phone_number, email_address, interested_service, message, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), m.FullName, m.PhoneNumber, m.EmailAddress, m.InterestedService, m.Message, s.stamp(0))
	return wrap("insert contact message", err)
}
