package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depflow/pkg/buildinfo"
	"github.com/matzehuels/depflow/pkg/cache"
	"github.com/matzehuels/depflow/pkg/graph"
	"github.com/matzehuels/depflow/pkg/observability"
	"github.com/matzehuels/depflow/pkg/pipeline"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	mem, err := cache.NewMemoryCache(64)
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(mem, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, logger, opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

const scenario = `{"files":[
	{"id":"a","imports":["./b","./c"]},
	{"id":"b"},
	{"id":"c"}
]}`

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	w := do(t, s, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decodeBody[map[string]string](t, w); got["status"] != "ok" {
		t.Errorf("body = %v", got)
	}
}

func TestVersion(t *testing.T) {
	s := newTestServer(t, Options{})
	w := do(t, s, http.MethodGet, "/version", "")
	if got := decodeBody[buildinfo.Info](t, w); got != buildinfo.Get() {
		t.Errorf("version = %+v, want %+v", got, buildinfo.Get())
	}
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t, Options{})
	w := do(t, s, http.MethodPost, "/v1/analyze", scenario)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}

	resp := decodeBody[AnalyzeResponse](t, w)
	if resp.ID == "" {
		t.Error("response should carry an ID")
	}
	if resp.Cached {
		t.Error("first request should not be cached")
	}
	if resp.Stats.NodeCount != 3 || resp.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", resp.Stats)
	}

	want := map[string][2]float64{"a": {50, 50}, "b": {50, 200}, "c": {250, 200}}
	for id, pos := range want {
		n, ok := resp.Graph.Node(id)
		if !ok || !n.Positioned() {
			t.Fatalf("node %s missing or unpositioned", id)
		}
		if *n.X != pos[0] || *n.Y != pos[1] {
			t.Errorf("%s = (%v, %v), want %v", id, *n.X, *n.Y, pos)
		}
	}

	again := decodeBody[AnalyzeResponse](t, do(t, s, http.MethodPost, "/v1/analyze", scenario))
	if !again.Cached {
		t.Error("identical request should hit the layout cache")
	}
	if again.ID == resp.ID {
		t.Error("each run should get its own ID")
	}
}

func TestAnalyzePartialLayout(t *testing.T) {
	s := newTestServer(t, Options{})
	body := `{"files":[{"id":"a","imports":["./b"]},{"id":"b"}],"layout":{"offset_x":0}}`
	resp := decodeBody[AnalyzeResponse](t, do(t, s, http.MethodPost, "/v1/analyze", body))

	a, _ := resp.Graph.Node("a")
	b, _ := resp.Graph.Node("b")
	if *a.X != 0 || *a.Y != 50 {
		t.Errorf("a = (%v, %v), want (0, 50)", *a.X, *a.Y)
	}
	if *b.Y != 200 {
		t.Errorf("b.y = %v, want default layer spacing", *b.Y)
	}
}

func TestAnalyzeZeroLayout(t *testing.T) {
	s := newTestServer(t, Options{})
	body := `{"files":[{"id":"a","imports":["./b"]},{"id":"b"}],
		"layout":{"node_spacing_x":0,"layer_spacing_y":0,"offset_x":0,"offset_y":0}}`
	resp := decodeBody[AnalyzeResponse](t, do(t, s, http.MethodPost, "/v1/analyze", body))

	for _, id := range []string{"a", "b"} {
		n, ok := resp.Graph.Node(id)
		if !ok || !n.Positioned() {
			t.Fatalf("node %s missing or unpositioned", id)
		}
		if *n.X != 0 || *n.Y != 0 {
			t.Errorf("%s = (%v, %v), want explicit zeros kept", id, *n.X, *n.Y)
		}
	}
}

func TestAnalyzeViolations(t *testing.T) {
	s := newTestServer(t, Options{})
	const files = `"files":[
		{"id":"src/domain/user.ts","imports":["../infrastructure/db"]},
		{"id":"src/infrastructure/db.ts"}
	]`

	resp := decodeBody[AnalyzeResponse](t, do(t, s, http.MethodPost, "/v1/analyze", "{"+files+"}"))
	if resp.Stats.ViolationCount != 1 {
		t.Fatalf("violations = %d, want 1", resp.Stats.ViolationCount)
	}
	if v := resp.Graph.Violations(); len(v) != 1 || v[0].Violation != "Domain Independence" {
		t.Errorf("violations = %+v", v)
	}

	resp = decodeBody[AnalyzeResponse](t, do(t, s, http.MethodPost, "/v1/analyze", "{"+files+`,"rules":[]}`))
	if resp.Stats.ViolationCount != 0 {
		t.Errorf("empty rules should disable linting, got %d violations", resp.Stats.ViolationCount)
	}
}

func TestErrors(t *testing.T) {
	s := newTestServer(t, Options{MaxBodyBytes: 512})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", http.MethodPost, "/v1/analyze", `{"files":`, 400, "INVALID_INPUT"},
		{"empty body", http.MethodPost, "/v1/analyze", ``, 400, "INVALID_INPUT"},
		{"unknown field", http.MethodPost, "/v1/analyze", `{"filez":[]}`, 400, "INVALID_INPUT"},
		{"no files", http.MethodPost, "/v1/analyze", `{"files":[]}`, 400, "INVALID_INPUT"},
		{"absolute id", http.MethodPost, "/v1/analyze", `{"files":[{"id":"/etc/passwd"}]}`, 400, "INVALID_NODE_ID"},
		{"dotdot id", http.MethodPost, "/v1/analyze", `{"files":[{"id":"../x.ts"}]}`, 400, "INVALID_NODE_ID"},
		{"bad rule", http.MethodPost, "/v1/analyze", `{"files":[{"id":"a"}],"rules":[{"name":"r","from":"(","to":"x"}]}`, 400, "INVALID_RULE"},
		{"dangling link", http.MethodPost, "/v1/layout", `{"graph":{"nodes":[{"id":"a"}],"links":[{"source":"a","target":"b"}]}}`, 400, "INVALID_GRAPH"},
		{"bad format", http.MethodPost, "/v1/render", `{"graph":{"nodes":[],"links":[]},"format":"gif"}`, 400, "INVALID_FORMAT"},
		{"too large", http.MethodPost, "/v1/analyze", `{"files":[{"id":"` + strings.Repeat("x", 1024) + `"}]}`, 413, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, tt.method, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body)
			}
			resp := decodeBody[ErrorResponse](t, w)
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
			if resp.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Options{})
	if w := do(t, s, http.MethodGet, "/v1/analyze", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(t, Options{})
	analyzed := decodeBody[AnalyzeResponse](t, do(t, s, http.MethodPost, "/v1/analyze", scenario))

	payload, err := json.Marshal(LayoutRequest{
		Graph:  analyzed.Graph,
		Layout: &LayoutParams{NodeSpacingX: ptr(300.0)},
	})
	if err != nil {
		t.Fatal(err)
	}
	w := do(t, s, http.MethodPost, "/v1/layout", string(payload))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}

	resp := decodeBody[LayoutResponse](t, w)
	if c, _ := resp.Graph.Node("c"); *c.X != 350 {
		t.Errorf("c.x = %v, want 350", *c.X)
	}
	if len(resp.Graph.Links) != len(analyzed.Graph.Links) {
		t.Errorf("links = %d, want %d", len(resp.Graph.Links), len(analyzed.Graph.Links))
	}
}

func TestRender(t *testing.T) {
	s := newTestServer(t, Options{})
	analyzed := decodeBody[AnalyzeResponse](t, do(t, s, http.MethodPost, "/v1/analyze", scenario))

	payload, err := json.Marshal(RenderRequest{Graph: analyzed.Graph, Format: pipeline.FormatDOT})
	if err != nil {
		t.Fatal(err)
	}

	w := do(t, s, http.MethodPost, "/v1/render", string(payload))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", w.Header().Get("X-Cache"))
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"a" -> "b"`)) {
		t.Errorf("DOT missing edge:\n%s", w.Body)
	}

	w = do(t, s, http.MethodPost, "/v1/render", string(payload))
	if w.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second render X-Cache = %q, want HIT", w.Header().Get("X-Cache"))
	}
}

func TestRenderJSON(t *testing.T) {
	s := newTestServer(t, Options{})
	g := graph.Graph{Nodes: []graph.Node{{ID: "a", Name: "a", Type: "file"}}, Links: []graph.Link{}}
	payload, _ := json.Marshal(RenderRequest{Graph: g, Format: pipeline.FormatJSON})

	w := do(t, s, http.MethodPost, "/v1/render", string(payload))
	got, err := graph.Unmarshal(w.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != 1 || got.Nodes[0].ID != "a" {
		t.Errorf("nodes = %+v", got.Nodes)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)

	s := newTestServer(t, Options{})
	do(t, s, http.MethodGet, "/healthz", "")
	do(t, s, http.MethodPost, "/v1/analyze", `{`)

	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", hooks.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func ptr[T any](v T) *T { return &v }
