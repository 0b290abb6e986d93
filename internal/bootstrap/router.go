package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/srbeng/srb-site/internal/api/http"
	"github.com/srbeng/srb-site/internal/api/http/middleware"
	"github.com/srbeng/srb-site/internal/api/http/routes"
	"github.com/srbeng/srb-site/internal/metrics"
	"github.com/srbeng/srb-site/internal/storage"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Backend        storage.Backend
	Redis          *redis.Client
	Loading        httpapi.LoadingReporter
	// UploadsDir is served at UploadsPath when set (fs upload driver).
	UploadsDir  string
	UploadsPath string
	V1          routes.V1Deps
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(middleware.Metrics(dep.Metrics))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Backend, dep.Redis, dep.Loading)
	healthHandler.RegisterRoutes(r)

	if dep.Metrics != nil {
		r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))
	}
	if dep.UploadsDir != "" {
		path := dep.UploadsPath
		if path == "" {
			path = "/uploads"
		}
		r.Static(path, dep.UploadsDir)
	}

	// the proxy sets its own wildcard CORS headers; the rest of the API is
	// limited to the configured origins
	api := r.Group("/api/v1")
	api.Use(cors.New(corsConfig(dep.AllowedOrigins)))
	routes.RegisterV1(r, api, dep.V1)

	return r
}
