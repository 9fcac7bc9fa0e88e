package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix           = "RYVEN_WEB_"
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultEnvironment  = "local"
	defaultLogLevel     = "info"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultShutdown     = 10 * time.Second
	defaultLang         = "es"
	defaultSiteName     = "RyVen"
	defaultLogoPath     = "/images/logo.png"
	defaultSessionName  = "RYVEN_WEB_SESSION"
	defaultMetricsPath  = "/metrics"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Environment string
	DevMode     bool
	LogLevel    string
	Server      ServerConfig
	Session     SessionConfig
	I18n        I18nConfig
	Paths       PathsConfig
	Site        SiteConfig
	Metrics     MetricsConfig
	Analytics   AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	CookieName string
	HashKey    string
	BlockKey   string
	Secure     bool
}

// I18nConfig lists the languages served.
type I18nConfig struct {
	DefaultLang string
	Langs       []string
}

// PathsConfig points at on-disk directories overriding the bundled assets (development).
type PathsConfig struct {
	TemplatesDir string
	PublicDir    string
	ContentDir   string
	LocalesDir   string
}

// SiteConfig holds branding shown by the layout.
type SiteConfig struct {
	Name     string
	LogoPath string
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// AnalyticsConfig holds client instrumentation identifiers surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
}

// IsProduction reports whether the environment is "prod" or "production".
func (c Config) IsProduction() bool {
	switch c.Environment {
	case "prod", "production":
		return true
	default:
		return false
	}
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides and environment variables.
// Precedence: explicit map > OS environment > .env file > defaults.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}
	prefixed := func(key string) (string, bool) {
		return lookup(envPrefix + key)
	}

	// Port resolution: prefer RYVEN_WEB_ADDR, then Cloud Run's PORT, else 8080
	address := stringWithDefault(prefixed, "ADDR", "")
	if address == "" {
		address = ":" + stringWithDefault(lookup, "PORT", defaultPort)
	}

	environment := strings.ToLower(stringWithDefault(prefixed, "ENV", defaultEnvironment))
	defaultLanguage := strings.ToLower(stringWithDefault(prefixed, "DEFAULT_LANG", defaultLang))
	langs := csvWithDefault(prefixed, "LANGS")
	if len(langs) == 0 {
		langs = []string{defaultLanguage, "en"}
	}

	cfg := Config{
		Environment: environment,
		DevMode:     boolWithDefault(prefixed, "DEV", false),
		LogLevel:    strings.ToLower(stringWithDefault(prefixed, "LOG_LEVEL", defaultLogLevel)),
		Server: ServerConfig{
			Address:         address,
			ReadTimeout:     durationWithDefault(prefixed, "READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(prefixed, "WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(prefixed, "IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(prefixed, "SHUTDOWN_TIMEOUT", defaultShutdown),
		},
		Session: SessionConfig{
			CookieName: stringWithDefault(prefixed, "SESSION_COOKIE", defaultSessionName),
			HashKey:    stringWithDefault(prefixed, "SESSION_HASH_KEY", ""),
			BlockKey:   stringWithDefault(prefixed, "SESSION_BLOCK_KEY", ""),
		},
		I18n: I18nConfig{
			DefaultLang: defaultLanguage,
			Langs:       langs,
		},
		Paths: PathsConfig{
			TemplatesDir: stringWithDefault(prefixed, "TEMPLATES_DIR", ""),
			PublicDir:    stringWithDefault(prefixed, "PUBLIC_DIR", ""),
			ContentDir:   stringWithDefault(prefixed, "CONTENT_DIR", ""),
			LocalesDir:   stringWithDefault(prefixed, "LOCALES_DIR", ""),
		},
		Site: SiteConfig{
			Name:     stringWithDefault(prefixed, "SITE_NAME", defaultSiteName),
			LogoPath: stringWithDefault(prefixed, "LOGO_PATH", defaultLogoPath),
		},
		Metrics: MetricsConfig{
			Enabled: boolWithDefault(prefixed, "METRICS_ENABLED", true),
			Path:    stringWithDefault(prefixed, "METRICS_PATH", defaultMetricsPath),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(prefixed, "GA_MEASUREMENT_ID", ""),
		},
	}
	// mark cookies secure in prod
	cfg.Session.Secure = boolWithDefault(prefixed, "SESSION_SECURE", cfg.IsProduction())

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Address) == "" || cfg.Server.Address == ":" {
		missing = append(missing, "Server.Address")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if cfg.IsProduction() && cfg.Session.HashKey == "" {
		missing = append(missing, "Session.HashKey")
	}
	if n := len(cfg.Session.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		missing = append(missing, "Session.BlockKey")
	}
	if cfg.I18n.DefaultLang == "" {
		missing = append(missing, "I18n.DefaultLang")
	}
	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		missing = append(missing, "Metrics.Path")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
