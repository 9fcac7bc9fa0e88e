package httpserver

import (
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/laher/mergefs"
	"go.uber.org/zap"

	"ryven.shop/web/content"
	"ryven.shop/web/internal/cms"
	"ryven.shop/web/internal/config"
	"ryven.shop/web/internal/handlers"
	"ryven.shop/web/internal/i18n"
	custommw "ryven.shop/web/internal/middleware"
	"ryven.shop/web/internal/nav"
	"ryven.shop/web/internal/observability"
	"ryven.shop/web/internal/pages"
	"ryven.shop/web/locales"
	"ryven.shop/web/public"
	"ryven.shop/web/templates"
)

const contentCacheTTL = 5 * time.Minute

// FromConfig wires every collaborator from the loaded configuration and builds the server.
// Directories configured under Paths overlay the embedded sets file by file.
func FromConfig(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	hashKey := []byte(cfg.Session.HashKey)
	if len(hashKey) == 0 {
		logger.Warn("session: using ephemeral signing key; set RYVEN_WEB_SESSION_HASH_KEY for production")
		hashKey = custommw.EphemeralHashKey()
	}
	sessions, err := custommw.NewSessionStore(custommw.SessionOptions{
		CookieName: cfg.Session.CookieName,
		HashKey:    hashKey,
		BlockKey:   []byte(cfg.Session.BlockKey),
		Secure:     cfg.Session.Secure,
	})
	if err != nil {
		return nil, err
	}

	bundle, err := i18n.Load(overlay(logger, cfg.Paths.LocalesDir, locales.FS), cfg.I18n.DefaultLang, cfg.I18n.Langs)
	if err != nil {
		return nil, err
	}

	ttl := contentCacheTTL
	if cfg.DevMode {
		ttl = 0
	}
	store := cms.NewStore(overlay(logger, cfg.Paths.ContentDir, content.FS), cfg.I18n.DefaultLang, cms.WithCacheTTL(ttl))

	renderer, err := NewRenderer(bundle, cfg.DevMode, overlay(logger, cfg.Paths.TemplatesDir, templates.FS))
	if err != nil {
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	return New(Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Logger:       logger,
		Metrics:      metrics,
		MetricsPath:  cfg.Metrics.Path,
		Sessions:     sessions,
		Bundle:       bundle,
		Renderer:     renderer,
		Table:        nav.Storefront(),
		Pages:        pages.Storefront(store),
		Public:       overlay(logger, cfg.Paths.PublicDir, public.FS),
		Site:         handlers.Site{Name: cfg.Site.Name, LogoPath: cfg.Site.LogoPath},
		Analytics:    handlers.AnalyticsFromConfig(cfg.Analytics),
	})
}

// overlay places dir (when it exists) in front of the embedded filesystem.
func overlay(logger *zap.Logger, dir string, embedded fs.FS) fs.FS {
	if dir == "" {
		return embedded
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("override directory unavailable; using embedded files", zap.String("dir", dir), zap.Error(err))
		return embedded
	}
	return mergefs.Merge(os.DirFS(dir), embedded)
}
