package ui

import "strings"

// Variant selects the navigation surface a link is rendered on.
type Variant string

const (
	Desktop Variant = "desktop"
	Mobile  Variant = "mobile"
)

// LinkStyle lists the class sets for one variant.
type LinkStyle struct {
	Base     string
	Active   string
	Inactive string
}

var linkStyles = map[Variant]LinkStyle{
	Desktop: {
		Base:     "flex items-center px-4 py-3 text-sm font-medium rounded-lg transition-all duration-300 ease-in-out",
		Active:   "bg-primary text-primary-foreground shadow-lg scale-105",
		Inactive: "text-muted-foreground hover:bg-secondary/80 hover:text-secondary-foreground hover:scale-105",
	},
	Mobile: {
		Base:     "flex items-center w-full px-4 py-4 text-base font-medium rounded-lg mb-2 transition-all duration-300",
		Active:   "bg-primary text-primary-foreground",
		Inactive: "text-muted-foreground hover:bg-secondary/80 hover:text-secondary-foreground",
	},
}

// LinkClasses returns the class attribute for a navigation link.
// Unknown variants fall back to Desktop.
func LinkClasses(v Variant, active bool) string {
	style, ok := linkStyles[v]
	if !ok {
		style = linkStyles[Desktop]
	}
	variant := style.Inactive
	if active {
		variant = style.Active
	}
	return strings.TrimSpace(style.Base + " " + variant)
}
