package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ryven.shop/web/internal/config"
	"ryven.shop/web/internal/i18n"
	"ryven.shop/web/internal/nav"
	"ryven.shop/web/locales"
)

func loadBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.Load(locales.FS, "es", []string{"es", "en"})
	require.NoError(t, err)
	return b
}

func TestBuildPageDataMarksActiveLink(t *testing.T) {
	t.Parallel()

	data := BuildPageData(nav.Storefront(), loadBundle(t), "en", "/shop", nav.RestoreMenu(true), "RyVen")

	require.Equal(t, "Shop", data.Title)
	require.True(t, data.Menu.Open)
	require.Len(t, data.Nav, 5)
	active := 0
	for _, item := range data.Nav {
		if item.Active {
			active++
			require.Equal(t, "/shop", item.Href)
			require.Equal(t, nav.IconShoppingCart, item.Icon)
		}
	}
	require.Equal(t, 1, active)
	require.Len(t, data.Breadcrumbs, 2)
	require.Equal(t, "Home", data.Breadcrumbs[0].Label)
}

func TestBuildPageDataUnknownPath(t *testing.T) {
	t.Parallel()

	data := BuildPageData(nav.Storefront(), loadBundle(t), "es", "/unknown", nil, "Página no encontrada")

	require.Equal(t, "Página no encontrada", data.Title)
	require.False(t, data.Menu.Open)
	for _, item := range data.Nav {
		require.False(t, item.Active, item.Href)
	}
}

func TestNavItemsWithoutTranslatorUseLiteralLabels(t *testing.T) {
	t.Parallel()

	items := NavItems(nav.Classify(nav.Storefront(), "/"), nil, "en")
	require.Equal(t, "Inicio", items[0].Label)
	require.True(t, items[0].Active)
	require.Equal(t, "Revisar Pedidos", items[4].Label)
}

func TestAnalyticsFromConfig(t *testing.T) {
	t.Parallel()

	require.False(t, AnalyticsFromConfig(config.AnalyticsConfig{}).Enabled())
	a := AnalyticsFromConfig(config.AnalyticsConfig{GA4MeasurementID: "G-1"})
	require.True(t, a.Enabled())
	require.Equal(t, "G-1", a.GA4MeasurementID)
}
