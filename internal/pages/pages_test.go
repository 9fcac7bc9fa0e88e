package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ryven.shop/web/content"
	"ryven.shop/web/internal/cms"
	"ryven.shop/web/internal/nav"
)

type stubContent struct {
	pages map[string]cms.ContentPage
	err   error
	calls int
}

func (s *stubContent) GetContentPage(_ context.Context, kind, slug, lang string) (cms.ContentPage, error) {
	s.calls++
	if s.err != nil {
		return cms.ContentPage{}, s.err
	}
	p, ok := s.pages[kind+"/"+lang+"/"+slug]
	if !ok {
		return cms.ContentPage{}, cms.ErrNotFound
	}
	return p, nil
}

func TestStorefrontCoversRouteTable(t *testing.T) {
	t.Parallel()

	reg := Storefront(nil)
	require.NoError(t, reg.Covers(nav.Storefront()))

	_, ok := reg.Lookup(PageNotFound)
	require.True(t, ok)
}

func TestCoversReportsMissingRenderers(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil, Page{ID: nav.PageHome, Template: "page-home"})
	err := reg.Covers(nav.Storefront())
	require.ErrorIs(t, err, ErrNoRenderer)
	require.Contains(t, err.Error(), string(nav.PageAdminOrders))
}

func TestLoadAttachesContent(t *testing.T) {
	t.Parallel()

	src := &stubContent{pages: map[string]cms.ContentPage{
		"pages/es/shop": {Title: "Comprar"},
	}}
	view, err := Storefront(src).Load(context.Background(), nav.PageShop, "es")
	require.NoError(t, err)
	require.True(t, view.HasContent)
	require.Equal(t, "Comprar", view.Content.Title)
	require.Equal(t, "page-shop", view.Page.Template)
}

func TestLoadWithoutContentIsNotAnError(t *testing.T) {
	t.Parallel()

	src := &stubContent{}
	view, err := Storefront(src).Load(context.Background(), nav.PageSupport, "es")
	require.NoError(t, err)
	require.False(t, view.HasContent)

	view, err = Storefront(src).Load(context.Background(), PageNotFound, "es")
	require.NoError(t, err)
	require.Equal(t, "page-not-found", view.Page.Template)
	require.Equal(t, 1, src.calls, "not-found page has no content slug")
}

func TestLoadPropagatesContentErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Storefront(&stubContent{err: boom}).Load(context.Background(), nav.PageHome, "es")
	require.ErrorIs(t, err, boom)
}

func TestLoadUnknownPage(t *testing.T) {
	t.Parallel()

	_, err := Storefront(nil).Load(context.Background(), nav.PageID("blog"), "es")
	require.ErrorIs(t, err, ErrNoRenderer)
}

func TestBundledContentExistsForEveryRoute(t *testing.T) {
	t.Parallel()

	reg := Storefront(cms.NewStore(content.FS, "es"))
	for _, lang := range []string{"es", "en"} {
		for _, e := range nav.Storefront().Entries() {
			view, err := reg.Load(context.Background(), e.Page, lang)
			require.NoError(t, err)
			require.True(t, view.HasContent, "%s/%s", lang, e.Page)
			require.Equal(t, lang, view.Content.Lang)
		}
	}
}
