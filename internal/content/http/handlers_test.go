package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/content/service"
	"github.com/srbeng/srb-site/internal/storage"
	"github.com/srbeng/srb-site/internal/storage/memory"
)

var fixedNow = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

// flakyBackend is a remote-looking backend whose inserts can be made to fail.
type flakyBackend struct {
	*memory.Store
	insertErr error
}

func (b *flakyBackend) Remote() bool { return true }

func (b *flakyBackend) InsertProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	if b.insertErr != nil {
		return domain.Project{}, b.insertErr
	}
	return b.Store.InsertProject(ctx, p)
}

func setup(t *testing.T, backend storage.Backend) (*gin.Engine, *service.Facade) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	facade := service.NewFacade(backend, service.Options{Now: func() time.Time { return fixedNow }})
	t.Cleanup(facade.Close)

	h := New(facade, Options{Now: func() time.Time { return fixedNow }, KeepAlive: time.Hour})
	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterPublic(api)
	h.RegisterAdmin(api.Group("/admin"))
	return r, facade
}

func do(r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestPublicEndpoints(t *testing.T) {
	r, _ := setup(t, memory.New())

	w, body := do(r, http.MethodGet, "/api/v1/site", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.Company.Name, body["company"].(map[string]any)["name"])
	assert.Len(t, body["projects"], len(domain.SeedProjects()))

	services := body["services"].([]any)
	require.NotEmpty(t, services)
	first := services[0].(map[string]any)
	assert.Contains(t, first, "icon_ref")
	assert.Contains(t, first, "title")

	w, body = do(r, http.MethodGet, "/api/v1/projects?category=Residential", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, p := range body["projects"].([]any) {
		assert.Equal(t, "Residential", p.(map[string]any)["category"])
	}

	w, _ = do(r, http.MethodGet, "/api/v1/projects/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = do(r, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 7, body["stats"].(map[string]any)["years_of_experience"])
}

func TestAdminProjectLifecycle(t *testing.T) {
	r, facade := setup(t, memory.New())

	w, body := do(r, http.MethodPost, "/api/v1/admin/projects", projectRequest{
		Title:    "Riverside Villa",
		Category: domain.CategoryResidential,
		Image:    "https://img.example.com/villa.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := body["project"].(map[string]any)
	assert.Equal(t, "2025", created["year"])
	assert.Equal(t, "Kathmandu", created["location"])
	id := created["id"].(string)
	require.NotEmpty(t, id)

	w, body = do(r, http.MethodPatch, "/api/v1/admin/projects/"+id, map[string]any{"year": "2025-Ongoing"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-Ongoing", body["project"].(map[string]any)["year"])

	w, _ = do(r, http.MethodDelete, "/api/v1/admin/projects/"+id, nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	_, err := facade.Project(id)
	require.NoError(t, err)

	w, _ = do(r, http.MethodDelete, "/api/v1/admin/projects/"+id+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = facade.Project(id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	w, _ = do(r, http.MethodPatch, "/api/v1/admin/projects/"+id, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminValidation(t *testing.T) {
	r, _ := setup(t, memory.New())

	tests := []struct {
		name string
		path string
		body any
		want string
	}{
		{"project title", "/api/v1/admin/projects", projectRequest{Image: "x", Category: "Residential"}, "Please enter a project title"},
		{"project image", "/api/v1/admin/projects", projectRequest{Title: "A", Category: "Residential"}, "Please upload or enter an image URL"},
		{"project category", "/api/v1/admin/projects", projectRequest{Title: "A", Image: "x"}, "Please select a category"},
		{"unknown category", "/api/v1/admin/projects", projectRequest{Title: "A", Image: "x", Category: "Bridges"}, "Unknown project category: Bridges"},
		{"service title", "/api/v1/admin/services", serviceRequest{Description: "d"}, "Please enter a service title"},
		{"service description", "/api/v1/admin/services", serviceRequest{Title: "t"}, "Please enter a service description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, body["error"])
		})
	}

	w, body := do(r, http.MethodPatch, "/api/v1/admin/services/s1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nothing to update", body["error"])
}

func TestAdminServiceBlankIcon(t *testing.T) {
	r, _ := setup(t, memory.New())

	w, body := do(r, http.MethodPost, "/api/v1/admin/services", serviceRequest{Title: "Piling", Description: "Deep foundations", Icon: "   "})
	require.Equal(t, http.StatusCreated, w.Code)
	svc := body["service"].(map[string]any)
	assert.Nil(t, svc["icon"])
	assert.Equal(t, "Wrench", svc["icon_ref"].(map[string]any)["glyph"])

	path := "/api/v1/admin/services/" + svc["id"].(string)
	w, body = do(r, http.MethodPatch, path, map[string]any{"icon": "zap"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "zap", body["service"].(map[string]any)["icon"])

	w, body = do(r, http.MethodPatch, path, map[string]any{"icon": nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["service"].(map[string]any)["icon"])
}

func TestAdminRemoteFailure(t *testing.T) {
	backend := &flakyBackend{
		Store:     memory.New(),
		insertErr: storage.Wrap("postgrest", "insert projects", errors.New("duplicate key value violates unique constraint")),
	}
	r, facade := setup(t, backend)
	before := len(facade.Projects())

	w, body := do(r, http.MethodPost, "/api/v1/admin/projects", projectRequest{Title: "A", Image: "x", Category: "Commercial"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to add project: duplicate key value violates unique constraint", body["error"])
	assert.Len(t, facade.Projects(), before)
}

func TestStreamEvents(t *testing.T) {
	r, facade := setup(t, memory.New())
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan string, 8)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			if line := sc.Text(); strings.HasPrefix(line, "event: ") {
				events <- strings.TrimPrefix(line, "event: ")
			}
		}
		close(events)
	}()

	require.Equal(t, "initial", <-events)

	_, err = facade.CreateService(ctx, domain.Service{Title: "Piling", Description: "Deep foundations"})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "update", ev)
	case <-ctx.Done():
		t.Fatal("no update event")
	}
}
