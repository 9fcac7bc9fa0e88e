package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBreadcrumbsHome(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs(Storefront(), "/")
	require.Equal(t, []Crumb{{Href: "/", LabelKey: "nav.home", Label: "Inicio", Active: true}}, crumbs)

	require.Equal(t, crumbs, Breadcrumbs(Storefront(), ""))
}

func TestBreadcrumbsUseTableLabels(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs(Storefront(), "/admin/orders")
	require.Len(t, crumbs, 3)

	require.Equal(t, "/", crumbs[0].Href)
	require.False(t, crumbs[0].Active)

	require.Empty(t, crumbs[1].Href, "/admin is not a route")
	require.Equal(t, "Admin", crumbs[1].Label)
	require.Empty(t, crumbs[1].LabelKey)
	require.False(t, crumbs[1].Active)

	require.Equal(t, Crumb{Href: "/admin/orders", LabelKey: "nav.admin_orders", Label: "Revisar Pedidos", Active: true}, crumbs[2])
}

func TestBreadcrumbsPrettifyUnknownSegments(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs(Storefront(), "/shop/gift_cards/summer-sale/")
	require.Len(t, crumbs, 4)
	require.Equal(t, "nav.shop", crumbs[1].LabelKey)
	require.Equal(t, "Gift cards", crumbs[2].Label)
	require.Equal(t, "Summer sale", crumbs[3].Label)
	require.True(t, crumbs[3].Active)
	require.Empty(t, crumbs[3].Href)
}

func TestBreadcrumbLinksAlwaysResolve(t *testing.T) {
	t.Parallel()

	table := Storefront()
	paths := []string{"/", "/shop", "/admin/products", "/admin/orders", "/admin", "/shop/gift-cards", "/a/b/c"}
	for _, p := range paths {
		for _, c := range Breadcrumbs(table, p) {
			if c.Href == "" {
				continue
			}
			_, ok := table.Resolve(c.Href)
			require.True(t, ok, "crumb %q on %s links to %q", c.Label, p, c.Href)
		}
	}
}
