package httpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandlerTimeoutFinishesBeforeWriteTimeout(t *testing.T) {
	t.Parallel()

	cases := map[time.Duration]time.Duration{
		15 * time.Second:       14 * time.Second,
		5 * time.Second:        4500 * time.Millisecond,
		2 * time.Minute:        119 * time.Second,
		100 * time.Millisecond: 90 * time.Millisecond,
	}
	for write, want := range cases {
		got := handlerTimeout(write)
		require.Equal(t, want, got, write)
		require.Less(t, got, write)
	}
}

func TestCurrentURLPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/support", currentURLPath("https://ryven.shop/support?ref=nav#top", "/"))
	require.Equal(t, "/admin/orders", currentURLPath("/admin/orders", "/"))
	require.Equal(t, "/shop", currentURLPath("", "/shop"))
	require.Equal(t, "/shop", currentURLPath("https://ryven.shop", "/shop"))
	require.Equal(t, "/shop", currentURLPath("://bad", "/shop"))
}
