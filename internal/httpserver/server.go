package httpserver

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ryven.shop/web/internal/handlers"
	"ryven.shop/web/internal/i18n"
	custommw "ryven.shop/web/internal/middleware"
	"ryven.shop/web/internal/nav"
	"ryven.shop/web/internal/observability"
	"ryven.shop/web/internal/pages"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultMetricsPath  = "/metrics"
)

// ErrInvalidConfig indicates the server was initialised with missing collaborators.
var ErrInvalidConfig = errors.New("httpserver: invalid config")

// Config holds runtime options and collaborators for the storefront HTTP server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Logger *zap.Logger
	// Metrics is optional; nil disables the metrics endpoint.
	Metrics     *observability.Metrics
	MetricsPath string

	Sessions *custommw.SessionStore
	Bundle   *i18n.Bundle
	Renderer *Renderer
	Table    *nav.Table
	Pages    *pages.Registry
	// Public serves assets/ and images/; nil disables static routes.
	Public fs.FS

	Site      handlers.Site
	Analytics handlers.Analytics
}

// New constructs the HTTP server with the middleware stack and the route table mounted.
func New(cfg Config) (*http.Server, error) {
	if cfg.Sessions == nil || cfg.Bundle == nil || cfg.Renderer == nil {
		return nil, fmt.Errorf("%w: sessions, bundle and renderer are required", ErrInvalidConfig)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Table == nil {
		cfg.Table = nav.Storefront()
	}
	if cfg.Pages == nil {
		cfg.Pages = pages.Storefront(nil)
	}
	if err := cfg.Pages.Covers(cfg.Table); err != nil {
		return nil, err
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = defaultMetricsPath
	}
	writeTimeout := durationOr(cfg.WriteTimeout, defaultWriteTimeout)

	s := &shell{
		table:     cfg.Table,
		pages:     cfg.Pages,
		renderer:  cfg.Renderer,
		bundle:    cfg.Bundle,
		metrics:   cfg.Metrics,
		site:      cfg.Site,
		analytics: cfg.Analytics,
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLoggerMiddleware(cfg.Logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(cfg.Logger))
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(handlerTimeout(writeTimeout)))
	// HEAD is answered by the GET handlers
	router.Use(chimw.GetHead)

	router.Get("/healthz", healthz)
	if cfg.Metrics != nil {
		router.Handle(cfg.MetricsPath, cfg.Metrics.Handler())
	}
	if cfg.Public != nil {
		static := custommw.AssetsWithCache(cfg.Public, "")
		router.Handle("/assets/*", static)
		router.Handle("/images/*", static)
	}

	visitor := chi.Chain(
		cfg.Sessions.Middleware,
		custommw.Locale(cfg.Bundle),
		custommw.HTMX,
		custommw.CSRF,
	)

	router.Group(func(r chi.Router) {
		r.Use(visitor...)
		for _, entry := range cfg.Table.Entries() {
			r.Get(entry.Path, s.pageHandler(entry))
		}
		r.Post("/nav/menu/toggle", s.toggleMenu)
		r.Post("/nav/select", s.selectLink)
	})
	router.NotFound(visitor.HandlerFunc(s.notFound).ServeHTTP)

	return &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       durationOr(cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout:      writeTimeout,
		IdleTimeout:       durationOr(cfg.IdleTimeout, defaultIdleTimeout),
		ErrorLog:          zap.NewStdLog(cfg.Logger),
	}, nil
}

// handlerTimeout leaves a tenth of the write timeout, at most one second, to send the
// timeout response before the connection deadline.
func handlerTimeout(write time.Duration) time.Duration {
	margin := write / 10
	if margin > time.Second {
		margin = time.Second
	}
	return write - margin
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
