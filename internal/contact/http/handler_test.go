package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srbeng/srb-site/internal/contact/domain"
)

type stubSubmitter struct {
	err  error
	last domain.Message
}

func (s *stubSubmitter) Submit(_ context.Context, m domain.Message) error {
	s.last = m
	return s.err
}

type staticTitles []string

func (t staticTitles) ServiceTitles(context.Context) []string { return t }

func setupRouter(sub *stubSubmitter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(sub, staticTitles{"Design & Build", "Other"}).Register(r.Group("/api/v1"))
	return r
}

func post(r *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestSubmitHandler(t *testing.T) {
	const body = `{"full_name":"Ram","phone_number":"98","email_address":"r@x.com","interested_service":"Other","message":"hi"}`

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"validation", &domain.ValidationError{Message: "Please enter your full name"}, http.StatusBadRequest},
		{"not configured", domain.ErrEmailNotConfigured, http.StatusServiceUnavailable},
		{"save failed", &domain.SaveError{Reason: "boom", Err: errors.New("boom")}, http.StatusBadGateway},
		{"send failed", &domain.SendError{Err: errors.New("x")}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &stubSubmitter{err: tt.err}
			w, out := post(setupRouter(sub), body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.err == nil, out["ok"])
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), out["error"])
			}
			assert.Equal(t, "Ram", sub.last.FullName)
		})
	}

	t.Run("bad json", func(t *testing.T) {
		w, _ := post(setupRouter(&stubSubmitter{}), `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServiceTitlesHandler(t *testing.T) {
	r := setupRouter(&stubSubmitter{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contact/services", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Services []string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, []string{"Design & Build", "Other"}, out.Services)
}
