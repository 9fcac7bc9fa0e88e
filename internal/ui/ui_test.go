package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ryven.shop/web/internal/nav"
)

func TestLinkClassesSelectVariant(t *testing.T) {
	t.Parallel()

	active := LinkClasses(Desktop, true)
	inactive := LinkClasses(Desktop, false)
	require.Contains(t, active, "bg-primary")
	require.NotContains(t, inactive, "bg-primary ")
	require.Contains(t, inactive, "text-muted-foreground")
	require.True(t, strings.HasPrefix(active, "flex items-center px-4 py-3"))

	require.Contains(t, LinkClasses(Mobile, false), "w-full")
	require.NotContains(t, LinkClasses(Mobile, true), "scale-105")
}

func TestLinkClassesUnknownVariantFallsBackToDesktop(t *testing.T) {
	t.Parallel()

	require.Equal(t, LinkClasses(Desktop, true), LinkClasses(Variant("sidebar"), true))
}

func TestIconRendersEveryNavigationGlyph(t *testing.T) {
	t.Parallel()

	for _, e := range nav.Storefront().Entries() {
		svg := string(Icon(e.Icon, NavIconStyle))
		require.Contains(t, svg, `data-icon="`+string(e.Icon)+`"`)
		require.Contains(t, svg, `width="20"`)
		require.Contains(t, svg, `class="mr-3"`)
	}
}

func TestIconUnknownIsEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, string(Icon(nav.IconID("rocket"), NavIconStyle)))
}

func TestToggleIcon(t *testing.T) {
	t.Parallel()

	require.Contains(t, string(ToggleIcon(false)), `data-icon="menu"`)
	require.Contains(t, string(ToggleIcon(true)), `data-icon="x"`)
	require.Contains(t, string(ToggleIcon(true)), `width="24"`)
}
