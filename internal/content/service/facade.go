// Package service holds the content facade: the single entry point for reading
// and writing projects and services and for deriving the site statistics.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/content/stats"
	"github.com/srbeng/srb-site/internal/content/store"
	"github.com/srbeng/srb-site/internal/logging"
	"github.com/srbeng/srb-site/internal/metrics"
	"github.com/srbeng/srb-site/internal/storage"
)

const (
	entityProject = "project"
	entityService = "service"
)

// Options configures a Facade. Zero values are usable.
type Options struct {
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Publisher Publisher
	// Now defaults to time.Now.
	Now func() time.Time
	// Location is where the anniversary date is evaluated. Defaults to UTC.
	Location *time.Location
}

// Facade owns the in-memory record store and mirrors every write to the
// configured backend. Local state changes only after the backend accepts the
// write.
type Facade struct {
	backend   storage.Backend
	records   *store.Records
	log       *zap.Logger
	metrics   *metrics.Metrics
	publisher Publisher
	now       func() time.Time
	loc       *time.Location

	loading  atomic.Bool
	version  atomic.Uint64
	notifyMu sync.Mutex // orders version bumps with their published snapshots
	initOnce sync.Once
	done     chan struct{}
	bc       *broadcaster
}

// NewFacade returns a facade whose records start from the seed collections.
// Call Init to load the backend's rows.
func NewFacade(backend storage.Backend, opts Options) *Facade {
	f := &Facade{
		backend:   backend,
		records:   store.New(domain.SeedProjects(), domain.SeedServices()),
		log:       logging.OrNop(opts.Logger).Named("content"),
		metrics:   opts.Metrics,
		publisher: opts.Publisher,
		now:       opts.Now,
		loc:       opts.Location,
		done:      make(chan struct{}),
		bc:        newBroadcaster(),
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.loc == nil {
		f.loc = time.UTC
	}
	f.loading.Store(true)
	return f
}

// Init loads both collections from a remote backend. A failed load keeps the
// seed collection for that table and is only logged. Loading is cleared on
// every path. Only the first call does any work.
func (f *Facade) Init(ctx context.Context) {
	f.initOnce.Do(func() {
		defer func() {
			f.loading.Store(false)
			close(f.done)
			f.notify(ctx, "all", "init", "")
		}()

		if !f.backend.Remote() {
			f.log.Info("remote backend not configured, using local data")
			return
		}

		projects, services := f.records.Projects(), f.records.Services()

		if rows, err := f.backend.ListProjects(ctx); err != nil {
			f.log.Warn("fetch projects failed, keeping local data", zap.String("backend", f.backend.Name()), zap.Error(err))
		} else {
			projects = rows
		}
		if rows, err := f.backend.ListServices(ctx); err != nil {
			f.log.Warn("fetch services failed, keeping local data", zap.String("backend", f.backend.Name()), zap.Error(err))
		} else {
			services = rows
		}

		f.records.Reset(projects, services)
		f.log.Info("content loaded",
			zap.String("backend", f.backend.Name()),
			zap.Int("projects", len(projects)),
			zap.Int("services", len(services)))
	})
}

// Loading reports whether Init has not finished yet.
func (f *Facade) Loading() bool { return f.loading.Load() }

// Ready is closed once Init has finished.
func (f *Facade) Ready() <-chan struct{} { return f.done }

// Backend returns the backend the facade writes to.
func (f *Facade) Backend() storage.Backend { return f.backend }

func (f *Facade) Projects() []domain.Project { return f.records.Projects() }

func (f *Facade) Services() []domain.Service { return f.records.Services() }

func (f *Facade) Project(id string) (domain.Project, error) {
	p, ok := f.records.Project(id)
	if !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *Facade) Service(id string) (domain.Service, error) {
	s, ok := f.records.Service(id)
	if !ok {
		return domain.Service{}, domain.ErrNotFound
	}
	return s, nil
}

// CreateProject stores p. A remote backend assigns the id and the new row is
// placed first; locally the caller id is kept and the row is appended.
func (f *Facade) CreateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	remote := f.backend.Remote()
	if remote {
		p.ID = ""
	}
	created, err := f.backend.InsertProject(ctx, p)
	f.recordWrite(entityProject, "create", err)
	if err != nil {
		return domain.Project{}, err
	}

	if remote {
		f.records.PrependProject(created)
	} else {
		f.records.AppendProject(created)
	}
	f.notify(ctx, entityProject, "create", created.ID)
	return created, nil
}

// UpdateProject merges patch into the record with id. The backend's returned
// row replaces the local one.
func (f *Facade) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	updated, err := f.backend.UpdateProject(ctx, id, patch)
	f.recordWrite(entityProject, "update", err)
	if err != nil {
		return domain.Project{}, err
	}

	f.records.ReplaceProject(updated)
	f.notify(ctx, entityProject, "update", id)
	return updated, nil
}

// DeleteProject removes the record with id once confirmed. A row the backend
// no longer has is dropped locally as well and reported as ErrNotFound.
func (f *Facade) DeleteProject(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	err := f.backend.DeleteProject(ctx, id)
	f.recordWrite(entityProject, "delete", err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if f.records.RemoveProject(id) {
			f.notify(ctx, entityProject, "delete", id)
		}
		return err
	case err != nil:
		return err
	}

	f.records.RemoveProject(id)
	f.notify(ctx, entityProject, "delete", id)
	return nil
}

func (f *Facade) CreateService(ctx context.Context, s domain.Service) (domain.Service, error) {
	remote := f.backend.Remote()
	if remote {
		s.ID = ""
	}
	created, err := f.backend.InsertService(ctx, s)
	f.recordWrite(entityService, "create", err)
	if err != nil {
		return domain.Service{}, err
	}

	if remote {
		f.records.PrependService(created)
	} else {
		f.records.AppendService(created)
	}
	f.notify(ctx, entityService, "create", created.ID)
	return created, nil
}

func (f *Facade) UpdateService(ctx context.Context, id string, patch domain.ServicePatch) (domain.Service, error) {
	updated, err := f.backend.UpdateService(ctx, id, patch)
	f.recordWrite(entityService, "update", err)
	if err != nil {
		return domain.Service{}, err
	}

	f.records.ReplaceService(updated)
	f.notify(ctx, entityService, "update", id)
	return updated, nil
}

func (f *Facade) DeleteService(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrNotConfirmed
	}
	err := f.backend.DeleteService(ctx, id)
	f.recordWrite(entityService, "delete", err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if f.records.RemoveService(id) {
			f.notify(ctx, entityService, "delete", id)
		}
		return err
	case err != nil:
		return err
	}

	f.records.RemoveService(id)
	f.notify(ctx, entityService, "delete", id)
	return nil
}

// Statistics derives the display counters from the current projects.
func (f *Facade) Statistics() stats.Summary {
	return stats.Compute(f.records.Projects(), f.now().In(f.loc))
}

// ServiceTitles feeds the contact-form dropdown: backend titles oldest first,
// or the fallback list when there is no remote backend or it has none.
func (f *Facade) ServiceTitles(ctx context.Context) []string {
	if !f.backend.Remote() {
		return domain.FallbackServiceTitles()
	}
	rows, err := f.backend.ServiceTitles(ctx)
	if err != nil {
		f.log.Warn("fetch service titles failed", zap.Error(err))
		return domain.FallbackServiceTitles()
	}
	titles := make([]string, 0, len(rows))
	for _, t := range rows {
		if strings.TrimSpace(t) != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		return domain.FallbackServiceTitles()
	}
	return titles
}

// Snapshot returns the current state.
func (f *Facade) Snapshot() Snapshot {
	return Snapshot{
		Version:  f.version.Load(),
		Loading:  f.Loading(),
		Projects: f.records.Projects(),
		Services: f.records.Services(),
	}
}

// Subscribe returns a channel that receives a Snapshot after every change.
// A slow reader only sees the latest one. cancel releases the subscription and
// closes the channel.
func (f *Facade) Subscribe() (<-chan Snapshot, func()) {
	return f.bc.subscribe()
}

// Close ends all subscriptions.
func (f *Facade) Close() {
	f.bc.close()
}

func (f *Facade) notify(ctx context.Context, entity, op, id string) {
	f.notifyMu.Lock()
	v := f.version.Add(1)
	f.bc.publish(f.Snapshot())
	f.notifyMu.Unlock()

	if f.publisher == nil {
		return
	}
	ev := ChangeEvent{Entity: entity, Op: op, ID: id, Version: v, At: f.now().UTC()}
	if err := f.publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
		f.log.Warn("publish change event failed", zap.String("entity", entity), zap.String("op", op), zap.Error(err))
	}
}

func (f *Facade) recordWrite(entity, op string, err error) {
	f.metrics.RecordWrite(entity, op, err)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		f.log.Error("write failed",
			zap.String("entity", entity),
			zap.String("op", op),
			zap.String("backend", f.backend.Name()),
			zap.Error(err))
	}
}
