package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srbeng/srb-site/internal/auth/middleware"
	"github.com/srbeng/srb-site/internal/auth/repository"
	"github.com/srbeng/srb-site/internal/auth/service"
	"github.com/srbeng/srb-site/internal/storage/memory"
)

func setupRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tables := memory.New()
	_, err := tables.Upsert(context.Background(), "admin@srbeng.com", "secret1", "")
	require.NoError(t, err)

	mgr := service.NewManager(tables, repository.NewMemorySessionStore(nil), service.ManagerOptions{})
	t.Cleanup(func() { _ = mgr.Close() })

	r := gin.New()
	New(mgr).Register(r.Group("/api/v1/admin"), middleware.RequireAdmin(mgr))
	return r, tables
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
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

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func signIn(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/v1/admin/session", "", signInRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignIn(t *testing.T) {
	r, _ := setupRouter(t)

	t.Run("success returns token and session", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/v1/admin/session", "", signInRequest{Email: "ADMIN@srbeng.com", Password: "secret1"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["ok"])
		session := body["session"].(map[string]any)
		assert.Equal(t, "admin@srbeng.com", session["email"])
		assert.Equal(t, "admin", session["role"])
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/v1/admin/session", "", signInRequest{Email: "admin@srbeng.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please enter email and password", decode(t, w)["error"])
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := doJSON(r, http.MethodPost, "/api/v1/admin/session", "", signInRequest{Email: "admin@srbeng.com", Password: "nope"})
		unknown := doJSON(r, http.MethodPost, "/api/v1/admin/session", "", signInRequest{Email: "ghost@srbeng.com", Password: "secret1"})
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, wrong.Code, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
		assert.Equal(t, "Invalid email or password", decode(t, wrong)["error"])
	})
}

func TestCurrentSessionAndSignOut(t *testing.T) {
	r, _ := setupRouter(t)
	token := signIn(t, r, "admin@srbeng.com", "secret1")

	w := doJSON(r, http.MethodGet, "/api/v1/admin/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/admin/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/admin/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not signed in", decode(t, w)["error"])

	// signing out twice is fine
	w = doJSON(r, http.MethodDelete, "/api/v1/admin/session", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePassword(t *testing.T) {
	r, _ := setupRouter(t)
	token := signIn(t, r, "admin@srbeng.com", "secret1")
	path := "/api/v1/admin/password"

	tests := []struct {
		name    string
		body    changePasswordRequest
		status  int
		message string
	}{
		{"empty field", changePasswordRequest{CurrentPassword: "secret1", NewPassword: "abcdef"}, http.StatusBadRequest, "Please fill in all fields"},
		{"too short", changePasswordRequest{CurrentPassword: "secret1", NewPassword: "abc", ConfirmPassword: "abc"}, http.StatusBadRequest, "New password must be at least 6 characters"},
		{"too short multibyte", changePasswordRequest{CurrentPassword: "secret1", NewPassword: "ééé", ConfirmPassword: "ééé"}, http.StatusBadRequest, "New password must be at least 6 characters"},
		{"confirm differs", changePasswordRequest{CurrentPassword: "secret1", NewPassword: "abcdef", ConfirmPassword: "abcdeg"}, http.StatusBadRequest, "New passwords do not match"},
		{"wrong current", changePasswordRequest{CurrentPassword: "nope", NewPassword: "abcdef", ConfirmPassword: "abcdef"}, http.StatusBadRequest, "Current password is incorrect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPut, path, token, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode(t, w)["error"])
		})
	}

	t.Run("requires a session", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, path, "", changePasswordRequest{CurrentPassword: "secret1", NewPassword: "abcdef", ConfirmPassword: "abcdef"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success rotates the password", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, path, token, changePasswordRequest{CurrentPassword: "secret1", NewPassword: "abcdef", ConfirmPassword: "abcdef"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		signIn(t, r, "admin@srbeng.com", "abcdef")
	})
}
