package nav

import (
	"errors"
	"fmt"
	"strings"
)

// PageID identifies the page component rendered for a route.
type PageID string

const (
	PageHome          PageID = "home"
	PageShop          PageID = "shop"
	PageSupport       PageID = "support"
	PageAdminProducts PageID = "admin-products"
	PageAdminOrders   PageID = "admin-orders"
)

// IconID names a glyph; rendering is left to the presentation layer.
type IconID string

const (
	IconHome         IconID = "home"
	IconShoppingCart IconID = "shopping-cart"
	IconHelpCircle   IconID = "help-circle"
	IconPackage      IconID = "package"
	IconServer       IconID = "server"
	IconMenu         IconID = "menu"
	IconClose        IconID = "x"
)

var (
	// ErrRouteNotFound reports a path that matches no registered entry.
	ErrRouteNotFound = errors.New("nav: route not found")
	// ErrDuplicatePath is returned when two entries share a path.
	ErrDuplicatePath = errors.New("nav: duplicate path")
	// ErrInvalidPath is returned for empty or relative paths.
	ErrInvalidPath = errors.New("nav: invalid path")
)

// Entry associates a URL path with the page rendered for it.
type Entry struct {
	Path     string // exact match, e.g. "/shop"
	Page     PageID
	Label    string // default label, e.g. "Comprar"
	LabelKey string // i18n key, e.g. "nav.shop"
	Icon     IconID
}

// Table is an ordered, immutable set of entries. Order is display order.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable validates the entries and builds a table preserving their order.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Path == "" || !strings.HasPrefix(e.Path, "/") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, e.Path)
		}
		if _, exists := t.index[e.Path]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, e.Path)
		}
		t.index[e.Path] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// MustTable is like NewTable but panics on invalid input. Intended for package-level tables.
func MustTable(entries ...Entry) *Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Storefront returns the route table of the storefront shell.
func Storefront() *Table {
	return MustTable(
		Entry{Path: "/", Page: PageHome, Label: "Inicio", LabelKey: "nav.home", Icon: IconHome},
		Entry{Path: "/shop", Page: PageShop, Label: "Comprar", LabelKey: "nav.shop", Icon: IconShoppingCart},
		Entry{Path: "/support", Page: PageSupport, Label: "Soporte", LabelKey: "nav.support", Icon: IconHelpCircle},
		Entry{Path: "/admin/products", Page: PageAdminProducts, Label: "Administrar Productos", LabelKey: "nav.admin_products", Icon: IconPackage},
		Entry{Path: "/admin/orders", Page: PageAdminOrders, Label: "Revisar Pedidos", LabelKey: "nav.admin_orders", Icon: IconServer},
	)
}

// Resolve returns the entry registered for path. The boolean is false when
// nothing matches; callers decide the fallback.
func (t *Table) Resolve(path string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	i, ok := t.index[path]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of the entries in display order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
