package ui

import (
	"fmt"
	"html"
	"html/template"

	"ryven.shop/web/internal/nav"
)

// IconStyle is the static sizing applied to a glyph.
type IconStyle struct {
	Size  int
	Class string
}

var (
	// NavIconStyle is used next to navigation labels.
	NavIconStyle = IconStyle{Size: 20, Class: "mr-3"}
	// ToggleIconStyle is used for the mobile menu button.
	ToggleIconStyle = IconStyle{Size: 24, Class: "h-6 w-6"}
)

// lucide outlines, 24x24 viewBox
var iconPaths = map[nav.IconID]string{
	nav.IconHome:         `<path d="m3 9 9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/><polyline points="9 22 9 12 15 12 15 22"/>`,
	nav.IconShoppingCart: `<circle cx="8" cy="21" r="1"/><circle cx="19" cy="21" r="1"/><path d="M2.05 2.05h2l2.66 12.42a2 2 0 0 0 2 1.58h9.78a2 2 0 0 0 1.95-1.57l1.65-7.43H5.12"/>`,
	nav.IconHelpCircle:   `<circle cx="12" cy="12" r="10"/><path d="M9.09 9a3 3 0 0 1 5.83 1c0 2-3 3-3 3"/><path d="M12 17h.01"/>`,
	nav.IconPackage:      `<path d="m7.5 4.27 9 5.15"/><path d="M21 8a2 2 0 0 0-1-1.73l-7-4a2 2 0 0 0-2 0l-7 4A2 2 0 0 0 3 8v8a2 2 0 0 0 1 1.73l7 4a2 2 0 0 0 2 0l7-4A2 2 0 0 0 21 16Z"/><path d="m3.3 7 8.7 5 8.7-5"/><path d="M12 22V12"/>`,
	nav.IconServer:       `<rect width="20" height="8" x="2" y="2" rx="2" ry="2"/><rect width="20" height="8" x="2" y="14" rx="2" ry="2"/><line x1="6" x2="6.01" y1="6" y2="6"/><line x1="6" x2="6.01" y1="18" y2="18"/>`,
	nav.IconMenu:         `<line x1="4" x2="20" y1="12" y2="12"/><line x1="4" x2="20" y1="6" y2="6"/><line x1="4" x2="20" y1="18" y2="18"/>`,
	nav.IconClose:        `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
}

// Icon renders the glyph for id as inline SVG. Unknown ids render nothing.
func Icon(id nav.IconID, style IconStyle) template.HTML {
	body, ok := iconPaths[id]
	if !ok {
		return ""
	}
	size := style.Size
	if size <= 0 {
		size = NavIconStyle.Size
	}
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="%s" data-icon="%s" aria-hidden="true">%s</svg>`,
		size, size, html.EscapeString(style.Class), html.EscapeString(string(id)), body,
	))
}

// ToggleIcon returns the menu glyph for a closed overlay and the close glyph for an open one.
func ToggleIcon(open bool) template.HTML {
	if open {
		return Icon(nav.IconClose, ToggleIconStyle)
	}
	return Icon(nav.IconMenu, ToggleIconStyle)
}
