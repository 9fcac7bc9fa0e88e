package httpserver

import (
	"encoding/json"
	"net/http"
)

// responseNavigator records the navigation requested by nav.Menu.SelectLink so the
// session can be updated before the response is committed.
type responseNavigator struct {
	target string
	calls  int
}

// Navigate implements nav.Navigator.
func (n *responseNavigator) Navigate(path string) {
	n.calls++
	n.target = path
}

type hxLocation struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
}

// respond issues the recorded navigation: HX-Location for htmx callers, a 303 otherwise.
func (n *responseNavigator) respond(w http.ResponseWriter, r *http.Request, fragment bool) {
	if n.calls == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if fragment {
		loc, _ := json.Marshal(hxLocation{Path: n.target, Target: "#main"})
		w.Header().Set("HX-Location", string(loc))
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, n.target, http.StatusSeeOther)
}
