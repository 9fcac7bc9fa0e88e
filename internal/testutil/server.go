package testutil

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ryven.shop/web/internal/config"
	"ryven.shop/web/internal/httpserver"
)

// ServerOption customises the environment the server configuration is loaded from.
type ServerOption func(map[string]string)

// WithEnv sets a configuration key (full name, e.g. RYVEN_WEB_SITE_NAME).
func WithEnv(key, value string) ServerOption {
	return func(env map[string]string) {
		env[key] = value
	}
}

// NewServer constructs an httptest server running the storefront HTTP stack with
// embedded templates, content and locales.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	env := map[string]string{
		"RYVEN_WEB_SESSION_HASH_KEY": "test-hash-key-test-hash-key-0000",
		"RYVEN_WEB_LOG_LEVEL":        "error",
	}
	for _, opt := range opts {
		opt(env)
	}

	cfg, err := config.Load(config.WithEnvMap(env), config.WithoutSystemEnv(), config.WithEnvFile(""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	srv, err := httpserver.FromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// NewClient returns a client that keeps cookies and does not follow redirects.
func NewClient(t testing.TB) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Do sends the request and reads the whole body.
func Do(t testing.TB, client *http.Client, req *http.Request) Response {
	t.Helper()

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: body}
}

// Get issues a GET with optional headers given as key/value pairs.
func Get(t testing.TB, client *http.Client, target string, headers ...string) Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	setHeaders(req, headers)
	return Do(t, client, req)
}

// PostForm issues a form POST with optional headers given as key/value pairs.
func PostForm(t testing.TB, client *http.Client, target string, form url.Values, headers ...string) Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	setHeaders(req, headers)
	return Do(t, client, req)
}

func setHeaders(req *http.Request, headers []string) {
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
}
