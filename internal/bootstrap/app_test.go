package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: "0", AllowedOrigins: []string{"https://srbeng.com"}},
		App:     config.AppConfig{Environment: "test", Version: "test", Timezone: "Asia/Kathmandu"},
		Remote:  config.RemoteConfig{Driver: config.DriverMemory},
		Upload:  config.UploadConfig{Driver: config.UploadInline},
		Admin:   config.AdminConfig{Email: "admin@srbeng.com", PWCode: "secret1"},
		Proxy:   config.ProxyConfig{RatePerSecond: 100, Burst: 100, Timeout: time.Second},
		Session: config.SessionConfig{TTL: time.Hour, SweepCron: "0 */5 * * * *"},
	}
}

func build(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	require.Eventually(t, func() bool { return !app.Facade.Loading() }, time.Second, 5*time.Millisecond)
	return app
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildLocalMode(t *testing.T) {
	app := build(t, testConfig())
	r := app.Router

	w := do(t, r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "memory", health["backend"])
	assert.Equal(t, "disabled", health["redis"])

	w = do(t, r, http.MethodGet, "/api/v1/site", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"projects"`)

	w = do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "srb_site_http_requests_total")

	t.Run("admin writes require a session", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/admin/projects", "", map[string]string{"title": "X"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("seeded admin can sign in and write", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/v1/admin/session", "", map[string]string{
			"email": "ADMIN@srbeng.com", "password": "secret1",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var signIn struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signIn))
		require.NotEmpty(t, signIn.Token)

		w = do(t, r, http.MethodPost, "/api/v1/admin/projects", signIn.Token, map[string]string{
			"title": "Bridge", "category": "Commercial", "image": "https://x/b.jpg",
			"description": "River crossing",
		})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Len(t, app.Facade.Snapshot().Projects, 8)
	})

	t.Run("cors preflight honours allowed origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/contact", nil)
		req.Header.Set("Origin", "https://srbeng.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://srbeng.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestBuildWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis.Addr = mr.Addr()

	app := build(t, cfg)
	require.NotNil(t, app.Redis)

	w := do(t, app.Router, http.MethodPost, "/api/v1/admin/session", "", map[string]string{
		"email": "admin@srbeng.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, mr.Keys())

	w = do(t, app.Router, http.MethodGet, "/health", "", nil)
	assert.Contains(t, w.Body.String(), `"redis":"up"`)
}

func TestBuildRejectsBadSweepSpec(t *testing.T) {
	cfg := testConfig()
	cfg.Session.SweepCron = "not a cron"
	_, err := Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
