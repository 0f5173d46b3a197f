package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/observability"
	"github.com/matzehuels/visualencer/pkg/pipeline"
	"github.com/matzehuels/visualencer/pkg/storage"
)

const fireball = `{
  "name": "fireball",
  "nodes": [
    {"id": "fx", "type": "effect", "config": {"file": "jb2a.fireball"}},
    {"id": "fade", "type": "fade", "parent": "fx", "config": {"fadeInDuration": 200}},
    {"id": "pause", "type": "wait", "config": {"ms": 500}}
  ]
}`

func setupServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	cfg := Config{
		Runner: pipeline.NewRunner(nil, nil, logger),
		Logger: logger,
	}
	if withStore {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)
		cfg.Store = store
	}
	srv := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := setupServer(t, false)
	resp := do(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	health := decodeBody[HealthResponse](t, resp)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 71, health.NodeTypes)
	assert.False(t, health.Storage)
}

func TestRequestIDEcho(t *testing.T) {
	srv := setupServer(t, false)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestCompile(t *testing.T) {
	srv := setupServer(t, false)
	resp := do(t, srv, http.MethodPost, "/compile", `{"document": `+fireball+`, "previews": ["dot"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[CompileResponse](t, resp)
	assert.Equal(t, "seq.effect()\n  .file(\"jb2a.fireball\")\n  .fadeIn(200);\nseq.wait(500);", out.Output)
	assert.Len(t, out.Script.Statements, 2)
	assert.Equal(t, 3, out.Stats.NodeCount)
	assert.Contains(t, out.Previews["dot"], "digraph")
}

func TestCompileStandaloneDiagnostics(t *testing.T) {
	srv := setupServer(t, false)
	body := `{"standalone": true, "document": {"nodes": [{"id": "x", "type": "bogus"}, {"type": "wait", "config": {"ms": 10}}]}}`
	resp := do(t, srv, http.MethodPost, "/compile", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[CompileResponse](t, resp)
	assert.Equal(t, "const seq = new Sequence();\nseq.wait(10);\nseq.play();", out.Output)
	require.Len(t, out.Script.Diagnostics, 1)
	assert.Equal(t, compiler.DiagUnknownType, out.Script.Diagnostics[0].Kind)

	resp = do(t, srv, http.MethodPost, "/compile", `{"strict": true, "document": {"nodes": [{"id": "x", "type": "bogus"}, {"type": "wait", "config": {"ms": 10}}]}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decodeBody[ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_GRAPH", string(errBody.Code))
	assert.Equal(t, "seq.wait(10);", errBody.Output)
	require.Len(t, errBody.Diagnostics, 1)
	assert.Equal(t, "x", errBody.Diagnostics[0].Node)
	assert.Equal(t, compiler.DiagUnknownType, errBody.Diagnostics[0].Kind)
}

func TestCompileBadRequests(t *testing.T) {
	srv := setupServer(t, false)
	tests := []struct {
		name string
		body string
		code string
	}{
		{"Empty", "", "INVALID_INPUT"},
		{"Malformed", "{", "INVALID_INPUT"},
		{"NoDocument", `{"standalone": true}`, "INVALID_INPUT"},
		{"DuplicateIDs", `{"document": {"nodes": [{"id": "a", "type": "wait"}, {"id": "a", "type": "wait"}]}}`, "INVALID_GRAPH"},
		{"BadPreview", `{"document": {"nodes": []}, "previews": ["png"]}`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, http.MethodPost, "/compile", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			e := decodeBody[ErrorResponse](t, resp)
			assert.Equal(t, tt.code, string(e.Code))
			assert.NotEmpty(t, e.RequestID)
		})
	}
}

func TestNodes(t *testing.T) {
	srv := setupServer(t, false)

	all := decodeBody[[]compiler.Info](t, do(t, srv, http.MethodGet, "/nodes", ""))
	assert.Len(t, all, 71)

	roots := decodeBody[[]compiler.Info](t, do(t, srv, http.MethodGet, "/nodes?role=root", ""))
	assert.Len(t, roots, 6)
	for _, d := range roots {
		assert.Equal(t, compiler.RoleRoot, d.Role)
	}

	sound := decodeBody[[]compiler.Info](t, do(t, srv, http.MethodGet, "/nodes?family=sound&role=child", ""))
	var types []string
	for _, d := range sound {
		types = append(types, d.Type)
	}
	assert.Contains(t, types, "volume")
	assert.NotContains(t, types, "rotateTowards")

	resp := do(t, srv, http.MethodGet, "/nodes/macro", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	macro := decodeBody[compiler.Info](t, resp)
	assert.Equal(t, compiler.RoleUtility, macro.Role)
	assert.Equal(t, "MacroName", macro.Defaults["macroName"])

	resp = do(t, srv, http.MethodGet, "/nodes/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_NODE_TYPE", string(decodeBody[ErrorResponse](t, resp).Code))
}

func TestGraphs(t *testing.T) {
	srv := setupServer(t, true)

	resp := do(t, srv, http.MethodGet, "/graphs/fireball", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "GRAPH_NOT_FOUND", string(decodeBody[ErrorResponse](t, resp).Code))

	resp = do(t, srv, http.MethodPut, "/graphs/fireball", fireball)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	list := decodeBody[GraphList](t, do(t, srv, http.MethodGet, "/graphs", ""))
	require.Len(t, list.Graphs, 1)
	assert.Equal(t, "fireball", list.Graphs[0].Name)
	assert.Equal(t, 3, list.Graphs[0].Nodes)

	resp = do(t, srv, http.MethodGet, "/graphs/fireball", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/graphs/fireball/compile", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody[CompileResponse](t, resp)
	assert.Contains(t, out.Output, `.file("jb2a.fireball")`)

	resp = do(t, srv, http.MethodPost, "/graphs/fireball/compile", `{"standalone": true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decodeBody[CompileResponse](t, resp)
	assert.True(t, strings.HasPrefix(out.Output, "const seq = new Sequence();"))

	resp = do(t, srv, http.MethodPut, "/graphs/.hidden", fireball)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodDelete, "/graphs/fireball", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodDelete, "/graphs/fireball", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGraphsWithoutStore(t *testing.T) {
	srv := setupServer(t, false)
	resp := do(t, srv, http.MethodGet, "/graphs", "")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED", string(decodeBody[ErrorResponse](t, resp).Code))
}

func TestMetrics(t *testing.T) {
	prom := observability.NewPrometheusHooks()
	observability.SetHTTPHooks(prom)
	observability.SetPipelineHooks(prom)
	t.Cleanup(observability.Reset)

	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := httptest.NewServer(New(Config{
		Runner:  pipeline.NewRunner(nil, nil, logger),
		Logger:  logger,
		Metrics: prom.Handler(),
	}).Handler())
	defer srv.Close()

	do(t, srv, http.MethodGet, "/nodes/effect", "")
	do(t, srv, http.MethodPost, "/compile", `{"document": `+fireball+`}`)

	resp := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `visualencer_http_requests_total{method="GET",route="/nodes/{type}",status="200"} 1`)
	assert.Contains(t, text, "visualencer_compiles_total 1")
}
