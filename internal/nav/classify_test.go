package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func countActive(links []Link) int {
	n := 0
	for _, l := range links {
		if l.Active {
			n++
		}
	}
	return n
}

func TestClassifyMarksExactlyOneActiveForRegisteredPaths(t *testing.T) {
	t.Parallel()

	table := Storefront()
	for _, e := range table.Entries() {
		links := Classify(table, e.Path)
		require.Len(t, links, table.Len())
		require.Equal(t, 1, countActive(links), "path %s", e.Path)

		active, ok := ActiveEntry(links)
		require.True(t, ok)
		require.Equal(t, e, active)
	}
}

func TestClassifyAdminOrders(t *testing.T) {
	t.Parallel()

	links := Classify(Storefront(), "/admin/orders")
	for _, l := range links {
		if l.Page == PageAdminOrders {
			require.True(t, l.Active)
			continue
		}
		require.False(t, l.Active, "%s must be inactive", l.Path)
	}
}

func TestClassifyUnknownPathHasNoActiveLink(t *testing.T) {
	t.Parallel()

	table := Storefront()
	_, ok := table.Resolve("/unknown")
	require.False(t, ok)

	for _, p := range []string{"/unknown", "", "/shop/", "/admin", "/admin/products/new"} {
		links := Classify(table, p)
		require.Len(t, links, table.Len())
		require.Zero(t, countActive(links), "path %q", p)

		_, ok := ActiveEntry(links)
		require.False(t, ok)
	}
}

func TestClassifyPreservesTableOrder(t *testing.T) {
	t.Parallel()

	table := Storefront()
	links := Classify(table, "/support")
	for i, e := range table.Entries() {
		require.Equal(t, e, links[i].Entry)
	}
}

func TestClassifyRootOnlyMatchesRoot(t *testing.T) {
	t.Parallel()

	links := Classify(Storefront(), "/shop")
	require.False(t, links[0].Active, "home must not be active on /shop")
	require.True(t, links[1].Active)
}
