package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"ryven.shop/web/locales"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"es.json": {Data: []byte(`{"nav.shop":"Comprar","nav.home":"Inicio"}`)},
		"en.json": {Data: []byte(`{"nav.shop":"Shop"}`)},
	}
}

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load(testFS(), "es", []string{"es", "en"})
	require.NoError(t, err)

	require.Equal(t, "en", b.Resolve("es;q=0.8, en;q=0.9"))
	require.Equal(t, "es", b.Resolve("es-MX,es;q=0.9,en;q=0.5"))
	require.Equal(t, "en", b.Resolve("en-GB"))
}

func TestResolveFallsBack(t *testing.T) {
	b, err := Load(testFS(), "es", []string{"es", "en"})
	require.NoError(t, err)

	require.Equal(t, "es", b.Resolve(""))
	require.Equal(t, "es", b.Resolve("fr-FR"))
	require.Equal(t, "es", b.Resolve(";;;"))
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	b, err := Load(testFS(), "es", []string{"es", "en"})
	require.NoError(t, err)

	require.Equal(t, "Shop", b.T("en", "nav.shop"))
	require.Equal(t, "Inicio", b.T("en", "nav.home"))
	require.Equal(t, "nav.missing", b.T("en", "nav.missing"))
	require.Equal(t, "Soporte", b.TOr("en", "nav.support", "Soporte"))
	require.Equal(t, "Soporte", b.TOr("en", "", "Soporte"))
}

func TestLoadSkipsMissingOptionalLocales(t *testing.T) {
	b, err := Load(testFS(), "es", []string{"es", "en", "pt"})
	require.NoError(t, err)
	require.Equal(t, []string{"en", "es"}, b.Supported())
	require.False(t, b.IsSupported("pt"))
}

func TestLoadRequiresFallbackLocale(t *testing.T) {
	_, err := Load(testFS(), "ja", []string{"ja", "en"})
	require.Error(t, err)
}

func TestEmbeddedLocalesCoverNavigationKeys(t *testing.T) {
	b, err := Load(locales.FS, "es", []string{"es", "en"})
	require.NoError(t, err)

	for _, lang := range []string{"es", "en"} {
		for _, key := range []string{"nav.home", "nav.shop", "nav.support", "nav.admin_products", "nav.admin_orders", "nav.menu"} {
			_, ok := b.Lookup(lang, key)
			require.True(t, ok, "%s missing %s", lang, key)
		}
	}
	require.Equal(t, "Revisar Pedidos", b.T("es", "nav.admin_orders"))
}
