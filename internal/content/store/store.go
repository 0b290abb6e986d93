// Package store holds the in-memory project and service collections the site
// renders from. Only the content facade writes to it.
package store

import (
	"sync"

	"github.com/srbeng/srb-site/internal/content/domain"
)

// Records is the in-memory record store. Reads hand out copies.
type Records struct {
	mu       sync.RWMutex
	projects []domain.Project
	services []domain.Service
}

// New returns a store seeded with the given collections.
func New(projects []domain.Project, services []domain.Service) *Records {
	r := &Records{}
	r.Reset(projects, services)
	return r
}

// Reset replaces both collections.
func (r *Records) Reset(projects []domain.Project, services []domain.Service) {
	p := append([]domain.Project(nil), projects...)
	s := cloneServices(services)

	r.mu.Lock()
	r.projects, r.services = p, s
	r.mu.Unlock()
}

func (r *Records) Projects() []domain.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Project(nil), r.projects...)
}

func (r *Records) Services() []domain.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneServices(r.services)
}

func (r *Records) Project(id string) (domain.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

func (r *Records) Service(id string) (domain.Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.services {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return domain.Service{}, false
}

func (r *Records) AppendProject(p domain.Project) {
	r.mu.Lock()
	r.projects = append(r.projects, p)
	r.mu.Unlock()
}

func (r *Records) PrependProject(p domain.Project) {
	r.mu.Lock()
	r.projects = append([]domain.Project{p}, r.projects...)
	r.mu.Unlock()
}

// ReplaceProject swaps the record with p.ID. It reports false when absent.
func (r *Records) ReplaceProject(p domain.Project) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].ID == p.ID {
			r.projects[i] = p
			return true
		}
	}
	return false
}

func (r *Records) RemoveProject(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.projects {
		if r.projects[i].ID == id {
			r.projects = append(r.projects[:i:i], r.projects[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Records) AppendService(s domain.Service) {
	r.mu.Lock()
	r.services = append(r.services, s.Clone())
	r.mu.Unlock()
}

func (r *Records) PrependService(s domain.Service) {
	r.mu.Lock()
	r.services = append([]domain.Service{s.Clone()}, r.services...)
	r.mu.Unlock()
}

func (r *Records) ReplaceService(s domain.Service) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.services {
		if r.services[i].ID == s.ID {
			r.services[i] = s.Clone()
			return true
		}
	}
	return false
}

func (r *Records) RemoveService(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.services {
		if r.services[i].ID == id {
			r.services = append(r.services[:i:i], r.services[i+1:]...)
			return true
		}
	}
	return false
}

func cloneServices(in []domain.Service) []domain.Service {
	out := make([]domain.Service, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
