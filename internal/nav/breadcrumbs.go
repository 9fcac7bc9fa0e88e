package nav

import (
	"path"
	"strings"
)

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
// Href is empty for path prefixes that are not routes.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with the "/" entry
// - Prefixes registered in the table use the entry labels
// - Other segments use a prettified segment label and carry no Href
func Breadcrumbs(t *Table, currentPath string) []Crumb {
	home := Crumb{Href: "/", LabelKey: "nav.home", Label: "Inicio"}
	if e, ok := t.Resolve("/"); ok {
		home.LabelKey, home.Label = e.LabelKey, e.Label
	}
	if currentPath == "" || currentPath == "/" {
		home.Active = true
		return []Crumb{home}
	}

	clean := path.Clean("/" + strings.TrimPrefix(currentPath, "/"))
	if clean == "/" {
		home.Active = true
		return []Crumb{home}
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	crumbs := []Crumb{home}
	href := ""
	for i, seg := range parts {
		href += "/" + seg
		c := Crumb{Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if e, ok := t.Resolve(href); ok {
			c.Href, c.LabelKey, c.Label = e.Path, e.LabelKey, e.Label
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
