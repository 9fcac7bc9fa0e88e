package ui

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"sort"

	"github.com/Masterminds/sprig/v3"
	"github.com/laher/mergefs"

	"ryven.shop/web/internal/nav"
)

// ErrNoTemplates is returned when no layer provides a template file.
var ErrNoTemplates = errors.New("ui: no templates found")

var templatePatterns = []string{
	"layouts/*.tmpl",
	"partials/*.tmpl",
	"pages/*.tmpl",
}

var commonFuncs = template.FuncMap{
	"icon": func(id nav.IconID) template.HTML {
		return Icon(id, NavIconStyle)
	},
	"toggleIcon": ToggleIcon,
	"linkClasses": func(variant string, active bool) string {
		return LinkClasses(Variant(variant), active)
	},
}

// Templates parses every template from the given layers. Earlier layers shadow later ones,
// so an on-disk directory placed first overrides the embedded set file by file.
func Templates(funcs template.FuncMap, layers ...fs.FS) (*template.Template, error) {
	layers = compact(layers)
	if len(layers) == 0 {
		return nil, ErrNoTemplates
	}
	merged := mergefs.Merge(layers...)

	seen := map[string]struct{}{}
	for _, layer := range layers {
		for _, pattern := range templatePatterns {
			matches, err := fs.Glob(layer, pattern)
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", pattern, err)
			}
			for _, m := range matches {
				seen[m] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return nil, ErrNoTemplates
	}
	files := make([]string, 0, len(seen))
	for name := range seen {
		files = append(files, name)
	}
	sort.Strings(files)

	tmpl := template.New("").Funcs(sprig.FuncMap()).Funcs(commonFuncs)
	if funcs != nil {
		tmpl = tmpl.Funcs(funcs)
	}
	tmpl, err := tmpl.ParseFS(merged, files...)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func compact(layers []fs.FS) []fs.FS {
	out := layers[:0:0]
	for _, l := range layers {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}
