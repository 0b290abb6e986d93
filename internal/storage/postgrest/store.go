package postgrest

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	authdomain "github.com/srbeng/srb-site/internal/auth/domain"
	contactdomain "github.com/srbeng/srb-site/internal/contact/domain"
	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/storage"
)

const (
	name = "postgrest"

	preferRepresentation = "return=representation"
	preferMinimal        = "return=minimal"

	// nilUUID never matches a real row; "id=neq.<nilUUID>" selects the whole table.
	nilUUID = "00000000-0000-0000-0000-000000000000"
)

// Store implements storage.Store over the REST client.
type Store struct {
	c *Client
}

func New(baseURL, anonKey string, httpClient *http.Client) *Store {
	return &Store{c: NewClient(baseURL, anonKey, httpClient)}
}

func (s *Store) Name() string { return name }

func (s *Store) Remote() bool { return true }

func (s *Store) Close() error { return nil }

func (s *Store) Ping(ctx context.Context) error {
	q := url.Values{"select": {"id"}, "limit": {"1"}}
	var rows []struct{}
	return wrap("ping", s.c.do(ctx, http.MethodGet, "projects", q, "", nil, &rows))
}

func wrap(op string, err error) error { return storage.Wrap(name, op, err) }

// projectRow is the insert payload; the backend assigns id and created_at.
type projectRow struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Year        string    `json:"year"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

type serviceRow struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        *string   `json:"icon"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

func toProjectRow(p domain.Project) projectRow {
	return projectRow{
		Title:       p.Title,
		Year:        p.Year,
		Category:    string(p.Category),
		Location:    p.Location,
		Image:       p.Image,
		Description: p.Description,
	}
}

func toServiceRow(v domain.Service) serviceRow {
	return serviceRow{Title: v.Title, Description: v.Description, Icon: v.Icon}
}

func listQuery(order string) url.Values {
	return url.Values{"select": {"*"}, "order": {order}}
}

func byID(id string) url.Values {
	return url.Values{"id": {eq(id)}}
}

// patchBody turns patch columns into a JSON object; nil values become null.
func patchBody(cols []domain.Column) map[string]any {
	body := make(map[string]any, len(cols))
	for _, c := range cols {
		body[c.Name] = c.Value
	}
	return body
}

func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	if err := s.c.do(ctx, http.MethodGet, "projects", listQuery("created_at.desc"), "", nil, &out); err != nil {
		return nil, wrap("list projects", err)
	}
	return out, nil
}

func (s *Store) InsertProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	var out []domain.Project
	if err := s.c.do(ctx, http.MethodPost, "projects", nil, preferRepresentation, toProjectRow(p), &out); err != nil {
		return domain.Project{}, wrap("insert project", err)
	}
	if len(out) == 0 {
		return domain.Project{}, wrap("insert project", errEmptyResponse)
	}
	return out[0], nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	var out []domain.Project
	if err := s.c.do(ctx, http.MethodPatch, "projects", byID(id), preferRepresentation, patchBody(patch.Columns()), &out); err != nil {
		return domain.Project{}, wrap("update project", err)
	}
	if len(out) == 0 {
		return domain.Project{}, domain.ErrNotFound
	}
	return out[0], nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "projects", "delete project", id)
}

func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := s.c.do(ctx, http.MethodGet, "services", listQuery("created_at.desc"), "", nil, &out); err != nil {
		return nil, wrap("list services", err)
	}
	return out, nil
}

func (s *Store) InsertService(ctx context.Context, v domain.Service) (domain.Service, error) {
	var out []domain.Service
	if err := s.c.do(ctx, http.MethodPost, "services", nil, preferRepresentation, toServiceRow(v), &out); err != nil {
		return domain.Service{}, wrap("insert service", err)
	}
	if len(out) == 0 {
		return domain.Service{}, wrap("insert service", errEmptyResponse)
	}
	return out[0], nil
}

func (s *Store) UpdateService(ctx context.Context, id string, patch domain.ServicePatch) (domain.Service, error) {
	var out []domain.Service
	if err := s.c.do(ctx, http.MethodPatch, "services", byID(id), preferRepresentation, patchBody(patch.Columns()), &out); err != nil {
		return domain.Service{}, wrap("update service", err)
	}
	if len(out) == 0 {
		return domain.Service{}, domain.ErrNotFound
	}
	return out[0], nil
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "services", "delete service", id)
}

func (s *Store) deleteByID(ctx context.Context, table, op, id string) error {
	var out []struct {
		ID string `json:"id"`
	}
	if err := s.c.do(ctx, http.MethodDelete, table, byID(id), preferRepresentation, nil, &out); err != nil {
		return wrap(op, err)
	}
	if len(out) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) ServiceTitles(ctx context.Context) ([]string, error) {
	var rows []struct {
		Title string `json:"title"`
	}
	q := url.Values{"select": {"title"}, "order": {"created_at.asc"}}
	if err := s.c.do(ctx, http.MethodGet, "services", q, "", nil, &rows); err != nil {
		return nil, wrap("service titles", err)
	}
	titles := make([]string, 0, len(rows))
	for _, r := range rows {
		titles = append(titles, r.Title)
	}
	return titles, nil
}

func (s *Store) wipe(ctx context.Context, table string) error {
	q := url.Values{"id": {"neq." + nilUUID}}
	return s.c.do(ctx, http.MethodDelete, table, q, preferMinimal, nil, nil)
}

// ReplaceProjects is not atomic over REST: the wipe and the bulk insert are two
// requests.
func (s *Store) ReplaceProjects(ctx context.Context, rows []domain.Project) (int, error) {
	if err := s.wipe(ctx, "projects"); err != nil {
		return 0, wrap("clear projects", err)
	}
	base := time.Now().UTC()
	payload := make([]projectRow, len(rows))
	for i, p := range rows {
		payload[i] = toProjectRow(p)
		payload[i].ID = p.ID
		payload[i].CreatedAt = base.Add(-time.Duration(i) * time.Second)
	}
	var out []domain.Project
	if err := s.c.do(ctx, http.MethodPost, "projects", nil, preferRepresentation, payload, &out); err != nil {
		return 0, wrap("insert projects", err)
	}
	return len(out), nil
}

func (s *Store) ReplaceServices(ctx context.Context, rows []domain.Service) (int, error) {
	if err := s.wipe(ctx, "services"); err != nil {
		return 0, wrap("clear services", err)
	}
	base := time.Now().UTC()
	payload := make([]serviceRow, len(rows))
	for i, v := range rows {
		payload[i] = toServiceRow(v)
		payload[i].ID = v.ID
		payload[i].CreatedAt = base.Add(-time.Duration(i) * time.Second)
	}
	var out []domain.Service
	if err := s.c.do(ctx, http.MethodPost, "services", nil, preferRepresentation, payload, &out); err != nil {
		return 0, wrap("insert services", err)
	}
	return len(out), nil
}

type adminRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PWCode    string    `json:"pw_code"`
	Role      *string   `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (r adminRow) user() authdomain.AdminUser {
	u := authdomain.AdminUser{ID: r.ID, Email: r.Email, PWCode: r.PWCode, CreatedAt: r.CreatedAt}
	if r.Role != nil {
		u.Role = *r.Role
	}
	return u
}

// FindByEmail matches case-insensitively and requires exactly one row.
func (s *Store) FindByEmail(ctx context.Context, email string) (authdomain.AdminUser, error) {
	email = strings.TrimSpace(email)
	var rows []adminRow
	q := url.Values{"select": {"*"}, "email": {ilikeExact(email)}}
	if err := s.c.do(ctx, http.MethodGet, "admin_users", q, "", nil, &rows); err != nil {
		return authdomain.AdminUser{}, wrap("find admin", err)
	}
	var match []adminRow
	for _, r := range rows {
		if strings.EqualFold(r.Email, email) {
			match = append(match, r)
		}
	}
	if len(match) != 1 {
		return authdomain.AdminUser{}, authdomain.ErrAdminNotFound
	}
	return match[0].user(), nil
}

func (s *Store) GetByID(ctx context.Context, id string) (authdomain.AdminUser, error) {
	var rows []adminRow
	q := url.Values{"select": {"*"}, "id": {eq(id)}}
	if err := s.c.do(ctx, http.MethodGet, "admin_users", q, "", nil, &rows); err != nil {
		return authdomain.AdminUser{}, wrap("get admin", err)
	}
	if len(rows) == 0 {
		return authdomain.AdminUser{}, authdomain.ErrAdminNotFound
	}
	return rows[0].user(), nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, pwCode string) error {
	var rows []adminRow
	body := map[string]string{"pw_code": pwCode}
	if err := s.c.do(ctx, http.MethodPatch, "admin_users", byID(id), preferRepresentation, body, &rows); err != nil {
		return wrap("update password", err)
	}
	if len(rows) == 0 {
		return authdomain.ErrAdminNotFound
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, email, pwCode, role string) (authdomain.AdminUser, error) {
	existing, err := s.FindByEmail(ctx, email)
	switch {
	case err == nil:
		body := map[string]string{"pw_code": pwCode}
		if role != "" {
			body["role"] = role
		}
		var rows []adminRow
		if err := s.c.do(ctx, http.MethodPatch, "admin_users", byID(existing.ID), preferRepresentation, body, &rows); err != nil {
			return authdomain.AdminUser{}, wrap("upsert admin", err)
		}
		if len(rows) == 0 {
			return authdomain.AdminUser{}, authdomain.ErrAdminNotFound
		}
		return rows[0].user(), nil
	case !errors.Is(err, authdomain.ErrAdminNotFound):
		return authdomain.AdminUser{}, err
	}

	body := map[string]any{"email": strings.TrimSpace(email), "pw_code": pwCode}
	if role != "" {
		body["role"] = role
	}
	var rows []adminRow
	if err := s.c.do(ctx, http.MethodPost, "admin_users", nil, preferRepresentation, body, &rows); err != nil {
		return authdomain.AdminUser{}, wrap("upsert admin", err)
	}
	if len(rows) == 0 {
		return authdomain.AdminUser{}, wrap("upsert admin", errEmptyResponse)
	}
	return rows[0].user(), nil
}

func (s *Store) InsertContact(ctx context.Context, m contactdomain.Message) error {
	body := map[string]string{
		"full_name":          m.FullName,
		"phone_number":       m.PhoneNumber,
		"email_address":      m.EmailAddress,
		"interested_service": m.InterestedService,
		"message":            m.Message,
	}
	return wrap("insert contact message", s.c.do(ctx, http.MethodPost, "contact_messages", nil, preferMinimal, body, nil))
}
