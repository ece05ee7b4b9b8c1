package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/treelayout/pkg/cache"
	"github.com/matzehuels/treelayout/pkg/observability"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

const sampleTree = `{"label": "S", "children": [{"label": "NP"}, {"label": "VP", "emphasize": true}]}`

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	prom, err := observability.NewPrometheus(reg)
	if err != nil {
		t.Fatalf("NewPrometheus error: %v", err)
	}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := pipeline.NewRunner(fc, nil, nil)
	runner.RenderHooks = prom
	runner.CacheHooks = prom
	t.Cleanup(func() { _ = runner.Close() })

	return New(Config{
		Runner:  runner,
		Hooks:   prom,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}), reg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func renderBody(tree, options string) string {
	return `{"tree": ` + tree + `, "options": ` + options + `}`
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestRenderSVG(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/v1/render", renderBody(sampleTree, `{}`))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /v1/render = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if got := w.Header().Get(HeaderCache); got != "MISS" {
		t.Errorf("%s = %q, want MISS", HeaderCache, got)
	}
	if len(w.Header().Get(HeaderTreeHash)) != 64 {
		t.Errorf("%s = %q, want a sha256 digest", HeaderTreeHash, w.Header().Get(HeaderTreeHash))
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("<svg")) {
		t.Errorf("body is not SVG: %.40s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), ">VP</text>") {
		t.Error("rendered SVG is missing the VP label")
	}
}

func TestRenderCached(t *testing.T) {
	srv, reg := newTestServer(t)
	body := renderBody(sampleTree, `{"drawer": "text"}`)

	first := do(t, srv, http.MethodPost, "/v1/render", body)
	second := do(t, srv, http.MethodPost, "/v1/render", body)
	if second.Code != http.StatusOK {
		t.Fatalf("second render = %d: %s", second.Code, second.Body.String())
	}
	if got := second.Header().Get(HeaderCache); got != "HIT" {
		t.Errorf("%s = %q, want HIT", HeaderCache, got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from the first render")
	}
	if got := second.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", got)
	}

	n, err := testutil.GatherAndCount(reg, "treelayout_http_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount error: %v", err)
	}
	if n == 0 {
		t.Error("request metrics were not recorded")
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed envelope", `{"tree":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad tree", renderBody(`{"label": 5}`, `{}`), http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown drawer", renderBody(sampleTree, `{"drawer": "canvas"}`), http.StatusBadRequest, "INVALID_DRAWER"},
		{"bad format", renderBody(sampleTree, `{"drawer": "text", "format": "svg"}`), http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad style", renderBody(sampleTree, `{"style": "crayon"}`), http.StatusBadRequest, "INVALID_STYLE"},
		{"bad orientation", renderBody(sampleTree, `{"orientation": "up"}`), http.StatusBadRequest, "INVALID_ORIENTATION"},
	}
	srv, _ := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/v1/render", tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			var body errorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
			if body.Error.RequestID == "" {
				t.Error("error body should carry the request ID")
			}
		})
	}
}

func TestRenderFilename(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/v1/render?filename=tree.svg", renderBody(sampleTree, `{}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	if got, want := w.Header().Get("Content-Disposition"), `attachment; filename="tree.svg"`; got != want {
		t.Errorf("Content-Disposition = %q, want %q", got, want)
	}

	w = do(t, srv, http.MethodPost, "/v1/render?filename=..%2Fpasswd", renderBody(sampleTree, `{}`))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "INVALID_PATH") {
		t.Errorf("path in filename: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestRenderBodyTooLarge(t *testing.T) {
	srv := New(Config{MaxBodyBytes: 16})
	w := do(t, srv, http.MethodPost, "/v1/render", renderBody(sampleTree, `{}`))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
}

func TestRenderEmptyTree(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/v1/render", `{"options": {}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `viewBox="0 0 0 0"`) {
		t.Errorf("empty tree should render an empty viewport: %s", w.Body.String())
	}
}

func TestDrawers(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/v1/drawers", "")
	var got []DrawerInfo
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(pipeline.Drawers()) {
		t.Fatalf("got %d drawers, want %d", len(got), len(pipeline.Drawers()))
	}
	for _, d := range got {
		if d.Name == pipeline.DrawerSVG && len(d.Styles) == 0 {
			t.Error("svg drawer should list its styles")
		}
		if d.Name != pipeline.DrawerSVG && len(d.Styles) != 0 {
			t.Errorf("%s drawer should not list styles", d.Name)
		}
	}
}

func TestRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/healthz", "")
	if w.Header().Get(HeaderRequestID) == "" {
		t.Error("response should carry a generated request ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("%s = %q, want the client's ID", HeaderRequestID, got)
	}
}

func TestMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, srv, http.MethodPost, "/v1/render", renderBody(sampleTree, `{}`))

	w := do(t, srv, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", w.Code)
	}
	for _, name := range []string{"treelayout_render_duration_seconds", "treelayout_cache_events_total"} {
		if !strings.Contains(w.Body.String(), name) {
			t.Errorf("/metrics is missing %s", name)
		}
	}
	if !strings.Contains(w.Body.String(), `route="/v1/render"`) {
		t.Error("responses should be reported by route pattern")
	}
}

func TestMetricsDisabled(t *testing.T) {
	srv := New(Config{})
	if w := do(t, srv, http.MethodGet, "/metrics", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET /metrics without handler = %d, want 404", w.Code)
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Config{}).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
