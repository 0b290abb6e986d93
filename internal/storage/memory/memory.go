// Package memory is the local-only table backend. Records live in process
// memory, start from the seed collections and are lost on restart.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/srbeng/srb-site/internal/auth/domain"
	contactdomain "github.com/srbeng/srb-site/internal/contact/domain"
	"github.com/srbeng/srb-site/internal/content/domain"
)

// Store is an in-memory, concurrency-safe implementation of storage.Store.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	projects []domain.Project
	services []domain.Service
	admins   map[string]authdomain.AdminUser // keyed by id
	contacts []contactdomain.Message
}

type Option func(*Store)

// WithClock overrides the clock used for timestamp-derived ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithProjects replaces the seeded projects.
func WithProjects(p []domain.Project) Option {
	return func(s *Store) { s.projects = append([]domain.Project(nil), p...) }
}

// WithServices replaces the seeded services.
func WithServices(v []domain.Service) Option {
	return func(s *Store) {
		s.services = make([]domain.Service, len(v))
		for i := range v {
			s.services[i] = v[i].Clone()
		}
	}
}

// New returns a store holding the default seed collections.
func New(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		projects: domain.SeedProjects(),
		services: domain.SeedServices(),
		admins:   make(map[string]authdomain.AdminUser),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Name() string { return "memory" }

func (s *Store) Remote() bool { return false }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// localID keeps the caller id when given, otherwise derives one from the clock.
// Must be called with s.mu held.
func (s *Store) localID(id string, taken func(string) bool) string {
	id = strings.TrimSpace(id)
	if id != "" && !taken(id) {
		return id
	}
	ts := s.now()
	id = domain.NewLocalID(ts)
	for taken(id) {
		ts = ts.Add(time.Millisecond)
		id = domain.NewLocalID(ts)
	}
	return id
}

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) serviceIndex(id string) int {
	for i := range s.services {
		if s.services[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) ListProjects(context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Project(nil), s.projects...), nil
}

func (s *Store) InsertProject(_ context.Context, p domain.Project) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.localID(p.ID, func(id string) bool { return s.projectIndex(id) >= 0 })
	s.projects = append(s.projects, p)
	return p, nil
}

func (s *Store) UpdateProject(_ context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i < 0 {
		return domain.Project{}, domain.ErrNotFound
	}
	s.projects[i] = patch.Apply(s.projects[i])
	return s.projects[i], nil
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	return nil
}

func (s *Store) ListServices(context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Service, len(s.services))
	for i := range s.services {
		out[i] = s.services[i].Clone()
	}
	return out, nil
}

func (s *Store) InsertService(_ context.Context, v domain.Service) (domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v = v.Clone()
	v.ID = s.localID(v.ID, func(id string) bool { return s.serviceIndex(id) >= 0 })
	s.services = append(s.services, v)
	return v.Clone(), nil
}

func (s *Store) UpdateService(_ context.Context, id string, patch domain.ServicePatch) (domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.serviceIndex(id)
	if i < 0 {
		return domain.Service{}, domain.ErrNotFound
	}
	s.services[i] = patch.Apply(s.services[i])
	return s.services[i].Clone(), nil
}

func (s *Store) DeleteService(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.serviceIndex(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.services = append(s.services[:i], s.services[i+1:]...)
	return nil
}

func (s *Store) ServiceTitles(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]string, 0, len(s.services))
	for _, v := range s.services {
		titles = append(titles, v.Title)
	}
	return titles, nil
}

func (s *Store) ReplaceProjects(_ context.Context, rows []domain.Project) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]domain.Project(nil), rows...)
	return len(rows), nil
}

func (s *Store) ReplaceServices(_ context.Context, rows []domain.Service) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = make([]domain.Service, len(rows))
	for i := range rows {
		s.services[i] = rows[i].Clone()
	}
	return len(rows), nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (authdomain.AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.admins {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return authdomain.AdminUser{}, authdomain.ErrAdminNotFound
}

func (s *Store) GetByID(_ context.Context, id string) (authdomain.AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.admins[id]
	if !ok {
		return authdomain.AdminUser{}, authdomain.ErrAdminNotFound
	}
	return u, nil
}

func (s *Store) UpdatePassword(_ context.Context, id, pwCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.admins[id]
	if !ok {
		return authdomain.ErrAdminNotFound
	}
	u.PWCode = pwCode
	s.admins[id] = u
	return nil
}

func (s *Store) Upsert(_ context.Context, email, pwCode, role string) (authdomain.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)
	for id, u := range s.admins {
		if strings.EqualFold(u.Email, email) {
			u.PWCode = pwCode
			if role != "" {
				u.Role = role
			}
			s.admins[id] = u
			return u, nil
		}
	}
	u := authdomain.AdminUser{
		ID:        uuid.NewString(),
		Email:     email,
		PWCode:    pwCode,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	s.admins[u.ID] = u
	return u, nil
}

// DeleteAdmin removes an admin row. Sessions that reference it fail their next
// verification.
func (s *Store) DeleteAdmin(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.admins, id)
}

func (s *Store) InsertContact(_ context.Context, m contactdomain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now().UTC()
	}
	s.contacts = append(s.contacts, m)
	return nil
}

// Contacts returns the stored contact messages, oldest first.
func (s *Store) Contacts() []contactdomain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]contactdomain.Message(nil), s.contacts...)
}
