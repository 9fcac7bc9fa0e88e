package httpserver

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"ryven.shop/web/internal/ui"
)

// Translator is the i18n surface templates use through the "t" func.
type Translator interface {
	T(lang, key string) string
	TOr(lang, key, def string) string
}

// Renderer parses the template set once, or on every call in dev mode.
type Renderer struct {
	layers []fs.FS
	funcs  template.FuncMap
	dev    bool

	mu     sync.RWMutex
	cached *template.Template
}

// NewRenderer parses the layers eagerly so broken templates fail at start-up.
func NewRenderer(tr Translator, dev bool, layers ...fs.FS) (*Renderer, error) {
	r := &Renderer{
		layers: layers,
		dev:    dev,
		funcs: template.FuncMap{
			"t": tr.T,
		},
	}
	tmpl, err := ui.Templates(r.funcs, r.layers...)
	if err != nil {
		return nil, err
	}
	r.cached = tmpl
	return r, nil
}

// Template returns the parsed set. In dev mode templates are reparsed on each call.
func (r *Renderer) Template() (*template.Template, error) {
	if r.dev {
		tmpl, err := ui.Templates(r.funcs, r.layers...)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cached = tmpl
		r.mu.Unlock()
		return tmpl, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cached, nil
}

// Execute renders the named template into a buffer so failures never leave a half-written response.
func (r *Renderer) Execute(name string, data any) (*bytes.Buffer, error) {
	tmpl, err := r.Template()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return &buf, nil
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
