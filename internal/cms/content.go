package cms

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no page exists for the requested slug in any candidate language.
var ErrNotFound = errors.New("cms: content not found")

// ContentPage represents a localized static page sourced from local markdown.
type ContentPage struct {
	Kind      string
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string
	HTML      template.HTML
	Format    string // "markdown" (default) or "html"
	UpdatedAt time.Time
	Banner    *ContentBanner
	SEO       ContentSEO
}

// ContentSEO holds optional metadata overrides for static pages.
type ContentSEO struct {
	Title       string
	Description string
}

// ContentBanner models an optional banner/alert displayed above the body.
type ContentBanner struct {
	Variant  string
	Title    string
	Message  string
	LinkText string
	LinkURL  string
}

type contentFrontMatter struct {
	Title     string                    `yaml:"title"`
	Summary   string                    `yaml:"summary"`
	Lang      string                    `yaml:"lang"`
	Format    string                    `yaml:"format"`
	UpdatedAt string                    `yaml:"updated_at"`
	SEO       contentFrontMatterSEO     `yaml:"seo"`
	Banner    *contentFrontMatterBanner `yaml:"banner"`
}

type contentFrontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type contentFrontMatterBanner struct {
	Variant  string `yaml:"variant"`
	Title    string `yaml:"title"`
	Message  string `yaml:"message"`
	LinkText string `yaml:"link_text"`
	LinkURL  string `yaml:"link_url"`
}

const (
	defaultContentFormat = "markdown"
	defaultCacheTTL      = 5 * time.Minute
)

// Store reads <kind>/<lang>/<slug>.md files from a filesystem and caches the rendered result.
type Store struct {
	fsys     fs.FS
	fallback string
	ttl      time.Duration
	now      func() time.Time

	mu    sync.RWMutex
	items map[string]contentCacheEntry
}

type contentCacheEntry struct {
	page    ContentPage
	expires time.Time
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithCacheTTL overrides the in-memory cache duration. Non-positive values disable caching.
func WithCacheTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = d
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore builds a content store over fsys. fallback is tried after the requested language.
func NewStore(fsys fs.FS, fallback string, opts ...StoreOption) *Store {
	s := &Store{
		fsys:     fsys,
		fallback: normalizeLang(fallback),
		ttl:      defaultCacheTTL,
		now:      time.Now,
		items:    map[string]contentCacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetContentPage fetches a localized static page, trying lang then the fallback language.
func (s *Store) GetContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	if err := ctx.Err(); err != nil {
		return ContentPage{}, err
	}
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		kind = "pages"
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return ContentPage{}, ErrNotFound
	}
	lang = normalizeLang(lang)

	cacheKey := strings.Join([]string{kind, lang, slug}, "|")
	if page, ok := s.cachedContent(cacheKey); ok {
		return cloneContentPage(page), nil
	}

	page, err := s.readWithFallback(kind, slug, lang)
	if err != nil {
		return ContentPage{}, err
	}
	s.storeContent(cacheKey, page)
	return cloneContentPage(page), nil
}

func (s *Store) readWithFallback(kind, slug, lang string) (ContentPage, error) {
	priority := []string{}
	if lang != "" {
		priority = append(priority, lang)
	}
	if s.fallback != "" && s.fallback != lang {
		priority = append(priority, s.fallback)
	}
	for _, candidate := range priority {
		page, err := s.readContentMarkdown(kind, slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrNotFound) {
			continue
		}
		// For other errors (parse issues), stop early.
		return ContentPage{}, err
	}
	return ContentPage{}, ErrNotFound
}

func (s *Store) readContentMarkdown(kind, slug, lang string) (ContentPage, error) {
	if s.fsys == nil {
		return ContentPage{}, ErrNotFound
	}
	file := path.Join(kind, lang, slug+".md")

	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ContentPage{}, ErrNotFound
		}
		return ContentPage{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	page := ContentPage{
		Kind:    kind,
		Slug:    slug,
		Lang:    firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    body,
		Format:  strings.TrimSpace(front.Format),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
		},
	}
	if page.Format == "" {
		page.Format = defaultContentFormat
	}
	if front.Banner != nil {
		page.Banner = &ContentBanner{
			Variant:  strings.TrimSpace(front.Banner.Variant),
			Title:    strings.TrimSpace(front.Banner.Title),
			Message:  strings.TrimSpace(front.Banner.Message),
			LinkText: strings.TrimSpace(front.Banner.LinkText),
			LinkURL:  strings.TrimSpace(front.Banner.LinkURL),
		}
	}
	page.UpdatedAt = parseContentDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() {
		if info, statErr := fs.Stat(s.fsys, file); statErr == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		// fall back to slug prettified
		page.Title = prettifySlug(slug)
	}
	html, err := Render(page.Format, page.Body)
	if err != nil {
		return ContentPage{}, fmt.Errorf("cms: render %s: %w", file, err)
	}
	page.HTML = html
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

func (s *Store) cachedContent(key string) (ContentPage, bool) {
	if s.ttl <= 0 {
		return ContentPage{}, false
	}
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expires) {
		return ContentPage{}, false
	}
	return entry.page, true
}

func (s *Store) storeContent(key string, page ContentPage) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = contentCacheEntry{
		page:    cloneContentPage(page),
		expires: s.now().Add(s.ttl),
	}
}

func cloneContentPage(src ContentPage) ContentPage {
	cp := src
	if src.Banner != nil {
		b := *src.Banner
		cp.Banner = &b
	}
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
