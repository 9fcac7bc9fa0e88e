package httpserver

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"ryven.shop/web/internal/handlers"
	custommw "ryven.shop/web/internal/middleware"
	"ryven.shop/web/internal/nav"
	"ryven.shop/web/internal/observability"
	"ryven.shop/web/internal/pages"
)

// bodyData is handed to page templates.
type bodyData struct {
	Lang string
	Site handlers.Site
	View pages.View
}

type shell struct {
	table     *nav.Table
	pages     *pages.Registry
	renderer  *Renderer
	bundle    Translator
	metrics   *observability.Metrics
	site      handlers.Site
	analytics handlers.Analytics
}

func (s *shell) pageHandler(entry nav.Entry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, r.URL.Path, entry.Page, http.StatusOK)
	}
}

func (s *shell) notFound(w http.ResponseWriter, r *http.Request) {
	s.metrics.RouteNotFound()
	observability.FromContext(r.Context()).Info("route not found",
		zap.String("path", observability.SanitizeRoute(r.URL.Path)),
		zap.Error(nav.ErrRouteNotFound),
	)
	s.renderPage(w, r, r.URL.Path, pages.PageNotFound, http.StatusNotFound)
}

func (s *shell) layoutData(r *http.Request, currentPath string) handlers.PageData {
	lang := custommw.Lang(r)
	sess := custommw.GetSession(r)
	data := handlers.BuildPageData(s.table, s.bundle, lang, currentPath, nav.RestoreMenu(sess.MenuOpen),
		s.bundle.TOr(lang, "notfound.title", "Not found"))
	data.Site = s.site
	data.Analytics = s.analytics
	data.CSRFToken = sess.CSRFToken
	return data
}

func (s *shell) renderPage(w http.ResponseWriter, r *http.Request, currentPath string, id nav.PageID, status int) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	data := s.layoutData(r, currentPath)
	data.NotFound = status == http.StatusNotFound

	view, err := s.pages.Load(ctx, id, data.Lang)
	if err != nil {
		logger.Error("load page", zap.String("page", string(id)), zap.Error(err))
		custommw.WriteError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if view.HasContent {
		data.Description = firstNonEmpty(view.Content.SEO.Description, view.Content.Summary)
	}

	body, err := s.renderer.Execute(view.Page.Template, bodyData{Lang: data.Lang, Site: s.site, View: view})
	if err != nil {
		s.renderFailed(w, r, view.Page.Template, err)
		return
	}
	data.Body = template.HTML(body.String())

	layout := "base"
	if custommw.HTMXInfoFromContext(ctx).Fragment() {
		layout = "fragment"
		data.OOB = true
	}
	out, err := s.renderer.Execute(layout, data)
	if err != nil {
		s.renderFailed(w, r, layout, err)
		return
	}
	writeHTML(w, status, out)
	s.metrics.PageView(string(id))
}

func (s *shell) renderFailed(w http.ResponseWriter, r *http.Request, name string, err error) {
	s.metrics.RenderFailure(name)
	observability.FromContext(r.Context()).Error("template exec error", zap.String("template", name), zap.Error(err))
	custommw.WriteError(w, r, http.StatusInternalServerError, "internal server error")
}

// toggleMenu applies ToggleButtonPressed to the visitor's menu.
func (s *shell) toggleMenu(w http.ResponseWriter, r *http.Request) {
	sess := custommw.GetSession(r)
	menu := nav.RestoreMenu(sess.MenuOpen)
	state := menu.Toggle()
	sess.SetMenuOpen(menu.IsOpen())
	s.metrics.MenuTransition(nav.ToggleButtonPressed.String(), state.String())

	ret := cleanReturnPath(r.PostFormValue("return"))
	if hx := custommw.HTMXInfoFromContext(r.Context()); hx.IsHTMX {
		data := s.layoutData(r, currentURLPath(hx.CurrentURL, ret))
		out, err := s.renderer.Execute("header", data)
		if err != nil {
			s.renderFailed(w, r, "header", err)
			return
		}
		writeHTML(w, http.StatusOK, out)
		return
	}
	if _, ok := s.table.Resolve(ret); !ok {
		ret = "/"
	}
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// selectLink applies LinkSelected and issues exactly one navigation to the chosen entry.
func (s *shell) selectLink(w http.ResponseWriter, r *http.Request) {
	path := r.PostFormValue("path")
	entry, ok := s.table.Resolve(path)
	if !ok {
		s.metrics.RouteNotFound()
		observability.FromContext(r.Context()).Warn("select unknown route",
			zap.String("path", observability.SanitizeRoute(path)),
			zap.Error(nav.ErrRouteNotFound),
		)
		custommw.WriteError(w, r, http.StatusNotFound, "route not found")
		return
	}

	sess := custommw.GetSession(r)
	menu := nav.RestoreMenu(sess.MenuOpen)
	navigator := &responseNavigator{}
	menu.SelectLink(entry, navigator)
	sess.SetMenuOpen(menu.IsOpen())
	s.metrics.MenuTransition(nav.LinkSelected.String(), menu.State().String())

	navigator.respond(w, r, custommw.HTMXInfoFromContext(r.Context()).IsHTMX)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// cleanReturnPath keeps only local absolute paths.
func cleanReturnPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\\r\n") {
		return "/"
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return p
}

// currentURLPath returns the path of the page htmx reports in HX-Current-URL, or fallback
// when the header is missing or unparsable.
func currentURLPath(current, fallback string) string {
	if current == "" {
		return fallback
	}
	u, err := url.Parse(current)
	if err != nil || u.Path == "" {
		return fallback
	}
	return cleanReturnPath(u.Path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
