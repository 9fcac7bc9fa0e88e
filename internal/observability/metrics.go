package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "ryven_web"

// Metrics holds the collectors exported on the metrics endpoint. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	registry        *prometheus.Registry
	pageViews       *prometheus.CounterVec
	routeNotFound   prometheus.Counter
	menuTransitions *prometheus.CounterVec
	renderFailures  *prometheus.CounterVec
}

// NewMetrics registers the web collectors on a fresh registry, alongside Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		pageViews: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "nav",
			Name:      "page_views_total",
			Help:      "Pages rendered, by page id",
		}, []string{"page"}),
		routeNotFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "nav",
			Name:      "route_not_found_total",
			Help:      "Requests whose path resolved to no route",
		}),
		menuTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "nav",
			Name:      "menu_transitions_total",
			Help:      "Mobile menu events applied, by event and resulting state",
		}, []string{"event", "state"}),
		renderFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "render",
			Name:      "failures_total",
			Help:      "Template executions that failed, by template",
		}, []string{"template"}),
	}
}

// Registry exposes the underlying registry (tests, custom collectors).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// PageView counts a rendered page.
func (m *Metrics) PageView(page string) {
	if m == nil {
		return
	}
	m.pageViews.WithLabelValues(page).Inc()
}

// RouteNotFound counts a request for an unknown path.
func (m *Metrics) RouteNotFound() {
	if m == nil {
		return
	}
	m.routeNotFound.Inc()
}

// MenuTransition counts an applied menu event and the state it produced.
func (m *Metrics) MenuTransition(event, state string) {
	if m == nil {
		return
	}
	m.menuTransitions.WithLabelValues(event, state).Inc()
}

// RenderFailure counts a failed template execution.
func (m *Metrics) RenderFailure(template string) {
	if m == nil {
		return
	}
	m.renderFailures.WithLabelValues(template).Inc()
}
