package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/srbeng/srb-site/internal/storage"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Backend   string    `json:"backend"`
	DB        string    `json:"db"`
	Redis     string    `json:"redis"`
	Loading   bool      `json:"loading"`
}

// LoadingReporter reports whether the initial content load is still running.
type LoadingReporter interface {
	Loading() bool
}

type HealthHandler struct {
	serviceName string
	version     string
	backend     storage.Backend
	redis       *redis.Client
	content     LoadingReporter
}

func NewHealthHandler(serviceName, version string, backend storage.Backend, rdb *redis.Client, content LoadingReporter) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		backend:     backend,
		redis:       rdb,
		content:     content,
	}
}

// HealthCheck always answers 200 and reports each dependency separately.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	dbStatus := "local"
	backendName := "memory"
	if h.backend != nil {
		backendName = h.backend.Name()
		if h.backend.Remote() {
			dbStatus = "up"
			if err := h.backend.Ping(pingCtx); err != nil {
				dbStatus = "down"
			}
		}
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "up"
		if err := h.redis.Ping(pingCtx).Err(); err != nil {
			redisStatus = "down"
		}
	}

	status := "healthy"
	if dbStatus == "down" || redisStatus == "down" {
		status = "degraded"
	}

	loading := false
	if h.content != nil {
		loading = h.content.Loading()
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Backend:   backendName,
		DB:        dbStatus,
		Redis:     redisStatus,
		Loading:   loading,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
