package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/visualencer/pkg/cache"
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/compiler/nodes"
	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/pipeline"
)

const fireballYAML = `name: fireball
nodes:
  - id: fx
    type: effect
    config:
      file: jb2a.fireball
  - id: fade
    type: fade
    parent: fx
    config:
      fadeInDuration: 200
  - id: pause
    type: wait
    config:
      ms: 500
`

const fireballScript = "seq.effect()\n  .file(\"jb2a.fireball\")\n  .fadeIn(200);\nseq.wait(500);\n"

// isolate points every config, cache and backend location at temp dirs.
func isolate(t *testing.T) (configHome, cacheHome string) {
	t.Helper()
	configHome, cacheHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv(envRedisAddr, "")
	t.Setenv(envMongoURI, "")
	t.Setenv(envAddr, "")
	t.Setenv("VISUALENCER_STANDALONE", "")
	return configHome, cacheHome
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fireball.yaml")
	if err := os.WriteFile(path, []byte(fireballYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// =============================================================================
// Config
// =============================================================================

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Server.Addr != defaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, defaultAddr)
	}
	if cfg.Standalone || cfg.Redis.Addr != "" || cfg.Mongo.URI != "" {
		t.Errorf("unexpected non-zero config: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `standalone = true
cache_dir = "/tmp/scripts"

[server]
addr = ":9000"

[redis]
addr = "localhost:6379"
db = 2
ttl = "12h"

[mongo]
uri = "mongodb://localhost:27017"
database = "vtt"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if !cfg.Standalone {
		t.Error("Standalone = false, want true")
	}
	if cfg.CacheDir != "/tmp/scripts" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if got := cfg.Redis.TTL.Hours(); got != 12 {
		t.Errorf("Redis.TTL = %vh, want 12h", got)
	}
	if cfg.Mongo.Database != "vtt" {
		t.Errorf("Mongo.Database = %q, want vtt", cfg.Mongo.Database)
	}
}

func TestServerKeyer(t *testing.T) {
	opts := cache.ScriptKeyOpts{Standalone: true}
	plain := cache.NewDefaultKeyer().ScriptKey("abc", opts)

	c := New(io.Discard, LogInfo)
	c.config = &Config{}
	if k := c.serverKeyer(); k != nil {
		t.Errorf("serverKeyer() without redis = %T, want nil", k)
	}

	c.config = &Config{Redis: RedisConfig{Addr: "localhost:6379"}}
	if got := c.serverKeyer().ScriptKey("abc", opts); got != defaultRedisPrefix+plain {
		t.Errorf("ScriptKey() = %q, want %q", got, defaultRedisPrefix+plain)
	}

	c.config = &Config{Redis: RedisConfig{Addr: "localhost:6379", Prefix: "shared:"}}
	if got := c.serverKeyer().PreviewKey("abc", cache.PreviewKeyOpts{Format: "svg"}); !strings.HasPrefix(got, "shared:preview:") {
		t.Errorf("PreviewKey() = %q, want shared:preview: prefix", got)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envAddr, ":7000")
	t.Setenv(envRedisAddr, "redis:6379")
	t.Setenv("VISUALENCER_STANDALONE", "true")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("Redis.Addr = %q, want redis:6379", cfg.Redis.Addr)
	}
	if !cfg.Standalone {
		t.Error("Standalone = false, want true")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	isolate(t)

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config: got %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[redis]\nttl = \"forever\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad ttl: got %v, want INVALID_INPUT", err)
	}
}

// =============================================================================
// Commands
// =============================================================================

func TestCompileCommandToFile(t *testing.T) {
	isolate(t)
	input := writeGraph(t)
	output := filepath.Join(t.TempDir(), "fireball.js")

	if _, err := execute(t, "", "compile", input, "-o", output); err != nil {
		t.Fatalf("compile: %v", err)
	}
	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != fireballScript {
		t.Errorf("compile output =\n%s\nwant\n%s", got, fireballScript)
	}
}

func TestCompileCommandStdin(t *testing.T) {
	isolate(t)
	in := `{"nodes":[{"type":"wait","config":{"ms":250}}]}`

	out, err := execute(t, in, "compile", "-", "--no-cache")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if out != "seq.wait(250);\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestCompileCommandStandalone(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "compile", writeGraph(t), "--standalone", "--no-cache")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.HasPrefix(out, "const seq = new Sequence();\n") || !strings.HasSuffix(out, "seq.play();\n") {
		t.Errorf("standalone framing missing:\n%s", out)
	}
}

func TestCompileCommandJSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "compile", writeGraph(t), "--json", "--no-cache")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var s compiler.Script
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(s.Statements) != 2 {
		t.Errorf("statements = %d, want 2", len(s.Statements))
	}
}

func TestCompileCommandStrict(t *testing.T) {
	isolate(t)
	in := `{"nodes":[{"type":"bogus"},{"type":"wait","config":{"ms":1}}]}`

	if _, err := execute(t, in, "compile", "-", "--strict", "--no-cache"); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("strict compile: got %v, want INVALID_GRAPH", err)
	}
	out, err := execute(t, in, "compile", "-", "--no-cache")
	if err != nil {
		t.Fatalf("lenient compile: %v", err)
	}
	if out != "seq.wait(1);\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestPreviewCommandStdout(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "preview", writeGraph(t), "-f", "dot", "-o", "-")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, "digraph") {
		t.Errorf("expected DOT output, got:\n%s", out)
	}

	if _, err := execute(t, "", "preview", writeGraph(t), "-f", "dot,svg", "-o", "-"); err == nil {
		t.Error("multiple formats to stdout should fail")
	}
	if _, err := execute(t, "", "preview", writeGraph(t), "-f", "png"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("png: got %v, want INVALID_INPUT", err)
	}
}

func TestGraphsCommands(t *testing.T) {
	configHome, _ := isolate(t)
	input := writeGraph(t)

	if _, err := execute(t, "", "graphs", "put", input); err != nil {
		t.Fatalf("graphs put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(configHome, appName, "graphs", "fireball.json")); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	out, err := execute(t, "", "graphs", "list")
	if err != nil {
		t.Fatalf("graphs list: %v", err)
	}
	if !strings.Contains(out, "fireball") {
		t.Errorf("list output missing graph:\n%s", out)
	}

	out, err = execute(t, "", "graphs", "get", "fireball")
	if err != nil {
		t.Fatalf("graphs get: %v", err)
	}
	if !strings.Contains(out, `"effect"`) || !strings.Contains(out, `"fade"`) {
		t.Errorf("get output missing nodes:\n%s", out)
	}

	if _, err := execute(t, "", "graphs", "delete", "fireball"); err != nil {
		t.Fatalf("graphs delete: %v", err)
	}
	if _, err := execute(t, "", "graphs", "get", "fireball"); !errors.Is(err, errors.ErrCodeGraphNotFound) {
		t.Errorf("get after delete: got %v, want GRAPH_NOT_FOUND", err)
	}
}

func TestNodesShowCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "nodes", "show", "macro")
	if err != nil {
		t.Fatalf("nodes show: %v", err)
	}
	if !strings.Contains(out, "macroName") || !strings.Contains(out, "MacroName") {
		t.Errorf("show output missing field or default:\n%s", out)
	}

	if _, err := execute(t, "", "nodes", "show", "nope"); !errors.Is(err, errors.ErrCodeUnknownNodeType) {
		t.Errorf("unknown type: got %v, want UNKNOWN_NODE_TYPE", err)
	}
}

func TestVersionAndCachePath(t *testing.T) {
	_, cacheHome := isolate(t)

	out, err := execute(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "dev\n" {
		t.Errorf("version --short = %q, want dev", out)
	}

	out, err = execute(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(cacheHome, appName) + "\n"; out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClear(t *testing.T) {
	isolate(t)
	input := writeGraph(t)

	if _, err := execute(t, "", "compile", input); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func TestPreviewPath(t *testing.T) {
	tests := []struct {
		input, output, format string
		multi                 bool
		want                  string
	}{
		{"fireball.yaml", "", "svg", false, "fireball.svg"},
		{"fireball.yaml", "out.svg", "svg", false, "out.svg"},
		{"fireball.yaml", "out.svg", "dot", true, "out.dot"},
		{"dir/fireball.json", "", "dot", true, "dir/fireball.dot"},
		{"-", "", "svg", false, "graph.svg"},
	}
	for _, tt := range tests {
		if got := previewPath(tt.input, tt.output, tt.format, tt.multi); got != tt.want {
			t.Errorf("previewPath(%q, %q, %q, %v) = %q, want %q", tt.input, tt.output, tt.format, tt.multi, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != pipeline.FormatSVG {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("dot, svg,"); len(got) != 2 || got[0] != "dot" || got[1] != "svg" {
		t.Errorf("parseFormats(\"dot, svg,\") = %v, want [dot svg]", got)
	}
}

func TestSetInputStdin(t *testing.T) {
	var opts pipeline.Options
	err := setInput(&opts, strings.NewReader("nodes:\n  - type: wait\n"), "-", "yaml")
	if err != nil {
		t.Fatalf("setInput: %v", err)
	}
	if opts.Document == nil || len(opts.Document.Nodes) != 1 || opts.Path != "" {
		t.Errorf("setInput did not decode stdin: %+v", opts)
	}

	if err := setInput(&opts, nil, "-", "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("xml format: got %v, want INVALID_FORMAT", err)
	}
}

func TestCatalogFilter(t *testing.T) {
	reg := nodes.NewRegistry()

	if got := len(catalogFilter{}.apply(reg)); got != reg.Len() {
		t.Errorf("empty filter = %d types, want %d", got, reg.Len())
	}
	if got := len(catalogFilter{role: "root"}.apply(reg)); got != len(reg.Families()) {
		t.Errorf("root filter = %d types, want %d", got, len(reg.Families()))
	}

	sound := catalogFilter{role: "child", family: "sound"}.apply(reg)
	var hasVolume, hasRotate bool
	for _, d := range sound {
		hasVolume = hasVolume || d.Type == "volume"
		hasRotate = hasRotate || d.Type == "rotateTowards"
	}
	if !hasVolume || hasRotate {
		t.Errorf("sound children: volume=%v rotateTowards=%v", hasVolume, hasRotate)
	}
}

func TestRenderCatalogTable(t *testing.T) {
	ds := catalogFilter{role: "root"}.apply(nodes.NewRegistry())
	out := renderCatalogTable(ds)
	for _, want := range []string{"Type", "Family", "effect", "sound"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

// =============================================================================
// Catalog browser
// =============================================================================

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m CatalogModel, msg tea.Msg) (CatalogModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(CatalogModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return cm, cmd
}

func TestCatalogModelNavigation(t *testing.T) {
	ds := nodes.NewRegistry().Descriptors()
	m := NewCatalogModel(ds)
	m.Height = 3

	if len(m.Visible) != len(ds) {
		t.Fatalf("Visible = %d, want %d", len(m.Visible), len(ds))
	}

	m, _ = update(t, m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("up at top: Cursor = %d, want 0", m.Cursor)
	}
	for range 4 {
		m, _ = update(t, m, key("j"))
	}
	if m.Cursor != 4 || m.Offset != 2 {
		t.Errorf("after 4 down: Cursor=%d Offset=%d, want 4 and 2", m.Cursor, m.Offset)
	}
	m, _ = update(t, m, key("k"))
	m, _ = update(t, m, key("up"))
	m, _ = update(t, m, key("up"))
	if m.Cursor != 1 || m.Offset != 1 {
		t.Errorf("after 3 up: Cursor=%d Offset=%d, want 1 and 1", m.Cursor, m.Offset)
	}

	if view := m.View(); !strings.Contains(view, "Node Types") || !strings.Contains(view, m.Visible[m.Cursor].Label) {
		t.Errorf("View missing title or detail pane:\n%s", view)
	}
}

func TestCatalogModelRoleFilter(t *testing.T) {
	m := NewCatalogModel(nodes.NewRegistry().Descriptors())

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("tab"))
	if m.Role != compiler.RoleRoot || m.Cursor != 0 {
		t.Errorf("after tab: Role=%q Cursor=%d, want root and 0", m.Role, m.Cursor)
	}
	for _, d := range m.Visible {
		if d.Role != compiler.RoleRoot {
			t.Errorf("root filter shows %s (%s)", d.Type, d.Role)
		}
	}

	for range 3 {
		m, _ = update(t, m, key("tab"))
	}
	if m.Role != "" || len(m.Visible) != len(m.All) {
		t.Errorf("filter did not cycle back to all: Role=%q Visible=%d", m.Role, len(m.Visible))
	}
}

func TestCatalogModelSelect(t *testing.T) {
	m := NewCatalogModel(nodes.NewRegistry().Descriptors())
	m, _ = update(t, m, key("down"))
	want := m.Visible[1].Type

	m, cmd := update(t, m, key("enter"))
	if m.Selected == nil || m.Selected.Type != want {
		t.Fatalf("Selected = %v, want %s", m.Selected, want)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}

	m = NewCatalogModel(nil)
	if _, cmd := update(t, m, key("enter")); cmd != nil {
		t.Error("enter on an empty list should not quit")
	}
	if _, cmd := update(t, m, key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestCatalogModelWindowSize(t *testing.T) {
	m := NewCatalogModel(nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	if m.Height != 22 {
		t.Errorf("Height = %d, want 22", m.Height)
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Errorf("Height = %d, want 5", m.Height)
	}
}
