package pages

import (
	"context"
	"errors"
	"fmt"

	"ryven.shop/web/internal/cms"
	"ryven.shop/web/internal/nav"
)

// PageNotFound identifies the fallback page rendered for unmatched paths.
const PageNotFound nav.PageID = "not-found"

const contentKind = "pages"

// ErrNoRenderer reports a route whose page has no registered renderer.
var ErrNoRenderer = errors.New("pages: no renderer for page")

// Page describes how a page is rendered: its template and content slug.
type Page struct {
	ID          nav.PageID
	Template    string
	ContentSlug string
}

// ContentSource supplies page bodies.
type ContentSource interface {
	GetContentPage(ctx context.Context, kind, slug, lang string) (cms.ContentPage, error)
}

// View is the loaded page handed to templates.
type View struct {
	Page    Page
	Content cms.ContentPage
	// HasContent is false when the content source has nothing for the page.
	HasContent bool
}

// Registry maps page ids to renderers.
type Registry struct {
	pages   map[nav.PageID]Page
	content ContentSource
}

// NewRegistry builds a registry. Later pages with the same id replace earlier ones.
func NewRegistry(content ContentSource, pages ...Page) *Registry {
	r := &Registry{
		pages:   make(map[nav.PageID]Page, len(pages)),
		content: content,
	}
	for _, p := range pages {
		r.pages[p.ID] = p
	}
	return r
}

// Storefront returns the registry for the storefront pages plus the not-found page.
func Storefront(content ContentSource) *Registry {
	return NewRegistry(content,
		Page{ID: nav.PageHome, Template: "page-home", ContentSlug: "home"},
		Page{ID: nav.PageShop, Template: "page-shop", ContentSlug: "shop"},
		Page{ID: nav.PageSupport, Template: "page-support", ContentSlug: "support"},
		Page{ID: nav.PageAdminProducts, Template: "page-admin", ContentSlug: "admin-products"},
		Page{ID: nav.PageAdminOrders, Template: "page-admin", ContentSlug: "admin-orders"},
		Page{ID: PageNotFound, Template: "page-not-found"},
	)
}

// Lookup returns the page registered for id.
func (r *Registry) Lookup(id nav.PageID) (Page, bool) {
	p, ok := r.pages[id]
	return p, ok
}

// Covers verifies every entry of the table has a renderer.
func (r *Registry) Covers(t *nav.Table) error {
	var missing []nav.PageID
	for _, e := range t.Entries() {
		if _, ok := r.pages[e.Page]; !ok {
			missing = append(missing, e.Page)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrNoRenderer, missing)
	}
	return nil
}

// Load resolves the page and its localized content. Missing content is not an error;
// the page renders without a body.
func (r *Registry) Load(ctx context.Context, id nav.PageID, lang string) (View, error) {
	p, ok := r.pages[id]
	if !ok {
		return View{}, fmt.Errorf("%w: %s", ErrNoRenderer, id)
	}
	view := View{Page: p}
	if p.ContentSlug == "" || r.content == nil {
		return view, nil
	}
	c, err := r.content.GetContentPage(ctx, contentKind, p.ContentSlug, lang)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			return view, nil
		}
		return View{}, fmt.Errorf("load content for %s: %w", id, err)
	}
	view.Content = c
	view.HasContent = true
	return view, nil
}
