package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srbeng/srb-site/internal/uploads"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func setupRouter(limit int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(uploads.NewUploader(uploads.InlineStore{}, uploads.Options{MaxBytes: limit})).Register(r.Group("/api/v1/admin"))
	return r
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		data     []byte
		limit    int64
		status   int
		message  string
	}{
		{"ok", "image", "site.png", pngBytes, 0, http.StatusCreated, ""},
		{"wrong field", "file", "site.png", pngBytes, 0, http.StatusBadRequest, "No file uploaded"},
		{"too large", "image", "site.png", pngBytes, 16, http.StatusRequestEntityTooLarge, "File size exceeds 5MB limit"},
		{"not an image", "image", "notes.png", []byte("just some text here"), 0, http.StatusUnsupportedMediaType, "Invalid file type. Only images are allowed"},
		{"bad extension", "image", "site.bmp", pngBytes, 0, http.StatusUnsupportedMediaType, "Invalid file extension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			setupRouter(tt.limit).ServeHTTP(w, multipartRequest(t, tt.field, tt.filename, tt.data))
			assert.Equal(t, tt.status, w.Code, w.Body.String())

			var body struct {
				OK     bool           `json:"ok"`
				Error  string         `json:"error"`
				Upload uploads.Result `json:"upload"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Error)
				return
			}
			assert.True(t, body.OK)
			assert.Contains(t, body.Upload.URL, "data:image/png;base64,")
		})
	}
}
