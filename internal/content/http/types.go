package http

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/content/service"
	"github.com/srbeng/srb-site/internal/icon"
	"github.com/srbeng/srb-site/internal/logging"
)

// DefaultLocation is used for new projects that name none.
const DefaultLocation = "Kathmandu"

type Options struct {
	// Development disables icon proxy rewriting for every request.
	Development bool
	Location    *time.Location
	Now         func() time.Time
	// KeepAlive is the SSE comment interval. Defaults to 15s.
	KeepAlive time.Duration
	Logger    *zap.Logger
}

type Handler struct {
	facade      *service.Facade
	development bool
	loc         *time.Location
	now         func() time.Time
	keepAlive   time.Duration
	log         *zap.Logger
}

func New(facade *service.Facade, opts Options) *Handler {
	h := &Handler{
		facade:      facade,
		development: opts.Development,
		loc:         opts.Location,
		now:         opts.Now,
		keepAlive:   opts.KeepAlive,
		log:         logging.OrNop(opts.Logger).Named("content"),
	}
	if h.loc == nil {
		h.loc = time.UTC
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.keepAlive <= 0 {
		h.keepAlive = 15 * time.Second
	}
	return h
}

// serviceView is a service plus its resolved icon.
type serviceView struct {
	domain.Service
	IconRef icon.Ref `json:"icon_ref"`
}

func servicesView(list []domain.Service, env icon.Env) []serviceView {
	out := make([]serviceView, 0, len(list))
	for _, s := range list {
		out = append(out, serviceView{Service: s, IconRef: icon.ResolvePtr(s.Icon, env)})
	}
	return out
}

type projectRequest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Year        string          `json:"year"`
	Category    domain.Category `json:"category"`
	Location    string          `json:"location"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// project applies the admin form defaults: current year and Kathmandu.
func (r projectRequest) project(now time.Time) domain.Project {
	p := domain.Project{
		ID:          strings.TrimSpace(r.ID),
		Title:       strings.TrimSpace(r.Title),
		Year:        strings.TrimSpace(r.Year),
		Category:    domain.Category(strings.TrimSpace(string(r.Category))),
		Location:    strings.TrimSpace(r.Location),
		Image:       strings.TrimSpace(r.Image),
		Description: strings.TrimSpace(r.Description),
	}
	if p.Year == "" {
		p.Year = now.Format("2006")
	}
	if p.Location == "" {
		p.Location = DefaultLocation
	}
	return p
}

type serviceRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (r serviceRequest) service() domain.Service {
	return domain.Service{
		ID:          strings.TrimSpace(r.ID),
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Icon:        domain.NormalizeIcon(r.Icon),
	}
}
