package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
	"github.com/srbeng/srb-site/internal/api/http/middleware"
	"github.com/srbeng/srb-site/internal/api/http/routes"
	authhttp "github.com/srbeng/srb-site/internal/auth/http"
	"github.com/srbeng/srb-site/internal/auth/repository"
	authservice "github.com/srbeng/srb-site/internal/auth/service"
	contacthttp "github.com/srbeng/srb-site/internal/contact/http"
	contactservice "github.com/srbeng/srb-site/internal/contact/service"
	contenthttp "github.com/srbeng/srb-site/internal/content/http"
	contentservice "github.com/srbeng/srb-site/internal/content/service"
	iconhttp "github.com/srbeng/srb-site/internal/icon/http"
	"github.com/srbeng/srb-site/internal/jobs"
	"github.com/srbeng/srb-site/internal/metrics"
	"github.com/srbeng/srb-site/internal/storage"
	"github.com/srbeng/srb-site/internal/uploads"
	uploadshttp "github.com/srbeng/srb-site/internal/uploads/http"
)

const ServiceName = "srb-site"

// App is the fully wired API process.
type App struct {
	Router    *gin.Engine
	Facade    *contentservice.Facade
	Sessions  *authservice.Manager
	Scheduler *jobs.Scheduler
	Store     storage.Store
	Redis     *redis.Client

	log *zap.Logger
}

// SessionStore picks redis when a client is available.
func SessionStore(rdb *redis.Client) repository.SessionStore {
	if rdb != nil {
		return repository.NewRedisSessionStore(rdb)
	}
	return repository.NewMemorySessionStore(nil)
}

// Build opens every dependency named by cfg and wires the HTTP router. The
// content facade starts loading in the background.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	m := metrics.New()

	store, err := OpenStore(ctx, cfg, StoreOptions{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rdb, err := OpenRedis(ctx, cfg.Redis)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	app := &App{Store: store, Redis: rdb, log: log}

	if !store.Remote() {
		seeded, err := SeedAdmin(ctx, store, cfg.Admin)
		if err != nil {
			app.Close()
			return nil, err
		}
		if seeded {
			log.Info("bootstrap admin ready", zap.String("email", cfg.Admin.Email))
		}
	}

	var publisher contentservice.Publisher
	if rdb != nil {
		publisher = contentservice.NewRedisPublisher(rdb, contentservice.DefaultChangeChannel)
	}
	app.Facade = contentservice.NewFacade(store, contentservice.Options{
		Logger:    log,
		Metrics:   m,
		Publisher: publisher,
		Location:  cfg.Location(),
	})
	go app.Facade.Init(context.WithoutCancel(ctx))

	app.Sessions = authservice.NewManager(store, SessionStore(rdb), authservice.ManagerOptions{
		TTL:     cfg.Session.TTL,
		Logger:  log,
		Metrics: m,
	})

	app.Scheduler = jobs.NewScheduler(log)
	if err := app.Scheduler.AddSessionSweep(cfg.Session.SweepCron, app.Sessions, 0); err != nil {
		app.Close()
		return nil, err
	}

	var mailer contactservice.Mailer
	if cfg.EmailEnabled() {
		mailer = contactservice.NewEmailJSClient(contactservice.EmailJSConfig{
			APIURL:         cfg.Email.APIURL,
			ServiceID:      cfg.Email.ServiceID,
			TemplateID:     cfg.Email.TemplateID,
			PublicKey:      cfg.Email.PublicKey,
			PrivateKey:     cfg.Email.PrivateKey,
			FromEmail:      cfg.Email.FromEmail,
			RecipientEmail: cfg.Email.RecipientEmail,
		}, nil)
	} else {
		log.Warn("EmailJS is not configured; contact messages will be stored but not emailed")
	}
	contact := contactservice.New(store, mailer, contactservice.Options{Logger: log, Metrics: m})

	uploadStore, err := uploads.Open(ctx, cfg.Upload)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("open upload store: %w", err)
	}
	uploader := uploads.NewUploader(uploadStore, uploads.Options{MaxBytes: cfg.Upload.MaxSizeBytes, Logger: log})

	var uploadsDir string
	if fs, ok := uploadStore.(*uploads.FSStore); ok {
		uploadsDir = fs.Root()
	}

	dev := cfg.IsDevelopment()
	app.Router = BuildRouter(RouterDeps{
		ServiceName:    ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
		Metrics:        m,
		Backend:        store,
		Redis:          rdb,
		Loading:        app.Facade,
		UploadsDir:     uploadsDir,
		UploadsPath:    cfg.Upload.PublicBase,
		V1: routes.V1Deps{
			Content: contenthttp.New(app.Facade, contenthttp.Options{
				Development: dev,
				Location:    cfg.Location(),
				Logger:      log,
			}),
			Auth:     authhttp.New(app.Sessions),
			Sessions: app.Sessions,
			Icons: iconhttp.New(iconhttp.Options{
				Timeout:              cfg.Proxy.Timeout,
				Development:          dev,
				Logger:               log,
				Metrics:              m,
				AllowPrivateNetworks: cfg.Proxy.AllowPrivate,
			}),
			Contact:        contacthttp.New(contact, app.Facade),
			Uploads:        uploadshttp.New(uploader),
			ProxyLimiter:   middleware.NewClientLimiter(cfg.Proxy.RatePerSecond, cfg.Proxy.Burst),
			SignInLimiter:  middleware.NewClientLimiter(0.2, 5),
			ContactLimiter: middleware.NewClientLimiter(0.1, 3),
		},
	})

	return app, nil
}

// Close releases everything Build opened. Safe to call on a partial App.
func (a *App) Close() error {
	var errs []error
	if a.Facade != nil {
		a.Facade.Close()
	}
	if a.Sessions != nil {
		errs = append(errs, a.Sessions.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
