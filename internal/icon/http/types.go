package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/srbeng/srb-site/internal/logging"
	"github.com/srbeng/srb-site/internal/metrics"
)

const (
	// MaxIconBytes caps how much of an upstream body the proxy will relay.
	MaxIconBytes = 10 << 20

	cacheControl     = "public, max-age=86400, s-maxage=86400"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

type Options struct {
	Timeout     time.Duration
	Development bool
	Logger      *zap.Logger
	Metrics     *metrics.Metrics

	// AllowPrivateNetworks lets the proxy fetch loopback and private addresses.
	AllowPrivateNetworks bool

	// Client overrides the upstream HTTP client.
	Client *http.Client
}

type Handler struct {
	client      *http.Client
	development bool
	log         *zap.Logger
	metrics     *metrics.Metrics
}

func New(opts Options) *Handler {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = newUpstreamClient(timeout, opts.AllowPrivateNetworks)
	}
	return &Handler{
		client:      client,
		development: opts.Development,
		log:         logging.OrNop(opts.Logger).Named("icon"),
		metrics:     opts.Metrics,
	}
}
