package handlers

import (
	"html/template"
	"time"

	"ryven.shop/web/internal/nav"
)

// Translator resolves i18n keys. *i18n.Bundle satisfies it.
type Translator interface {
	TOr(lang, key, def string) string
}

// Site is the branding shown by the layout.
type Site struct {
	Name     string
	LogoPath string
}

// NavItem is one navigation link as rendered in the header and the mobile overlay.
type NavItem struct {
	Href   string
	Label  string
	Icon   nav.IconID
	Active bool
}

// MenuView exposes the mobile menu state to templates.
type MenuView struct {
	Open bool
}

// PageData is the view model executed by the base layout.
type PageData struct {
	Title       string
	Description string
	Lang        string
	Site        Site
	Analytics   Analytics
	Path        string
	Nav         []NavItem
	Menu        MenuView
	Breadcrumbs []nav.Crumb
	Body        template.HTML
	CSRFToken   string
	// OOB marks the header for an out-of-band swap when rendered inside a fragment.
	OOB bool
	// NotFound is set when the path resolved to no route.
	NotFound bool
	Year     int
}

// NavItems translates classified links into view items, resolving labels in lang.
func NavItems(links []nav.Link, tr Translator, lang string) []NavItem {
	items := make([]NavItem, 0, len(links))
	for _, l := range links {
		items = append(items, NavItem{
			Href:   l.Path,
			Label:  label(tr, lang, l.LabelKey, l.Label),
			Icon:   l.Icon,
			Active: l.Active,
		})
	}
	return items
}

// LocalizeCrumbs resolves crumb labels in place and returns the slice.
func LocalizeCrumbs(crumbs []nav.Crumb, tr Translator, lang string) []nav.Crumb {
	for i := range crumbs {
		crumbs[i].Label = label(tr, lang, crumbs[i].LabelKey, crumbs[i].Label)
	}
	return crumbs
}

// BuildPageData assembles the layout model for currentPath. The page title comes from the
// active entry, else from fallbackTitle.
func BuildPageData(t *nav.Table, tr Translator, lang, currentPath string, menu *nav.Menu, fallbackTitle string) PageData {
	links := nav.Classify(t, currentPath)
	title := fallbackTitle
	if e, ok := nav.ActiveEntry(links); ok {
		title = label(tr, lang, e.LabelKey, e.Label)
	}
	open := false
	if menu != nil {
		open = menu.IsOpen()
	}
	return PageData{
		Title:       title,
		Lang:        lang,
		Path:        currentPath,
		Nav:         NavItems(links, tr, lang),
		Menu:        MenuView{Open: open},
		Breadcrumbs: LocalizeCrumbs(nav.Breadcrumbs(t, currentPath), tr, lang),
		Year:        time.Now().Year(),
	}
}

func label(tr Translator, lang, key, def string) string {
	if tr == nil || key == "" {
		return def
	}
	return tr.TOr(lang, key, def)
}
