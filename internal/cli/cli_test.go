package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ddkit/weightdd/pkg/cache"
	"github.com/ddkit/weightdd/pkg/dd"
	"github.com/ddkit/weightdd/pkg/diagram"
)

// writeDiagram builds a small two-level diagram and writes it to a JSON
// file in a temp directory.
func writeDiagram(t *testing.T) string {
	t.Helper()
	tbl := dd.New()
	d, err := diagram.FromTensor(tbl, []dd.Weight{1, 2, 3, 4}, []int{2, 2})
	if err != nil {
		t.Fatalf("FromTensor() error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "diagram.json")
	if err := diagram.ExportJSON(d, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	return path
}

func newTestCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestNew(t *testing.T) {
	c := newTestCLI()

	if c.Logger == nil {
		t.Fatal("New() returned a CLI without a logger")
	}
	if c.Config.Eps != dd.DefaultEps {
		t.Errorf("Config.Eps = %v, want DefaultEps", c.Config.Eps)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug message logged at info level")
	}

	c.SetLogLevel(log.DebugLevel)
	c.Logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug message suppressed at debug level")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}

	want := map[string]bool{"stats": false, "render": false, "compact": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLoadDiagram(t *testing.T) {
	path := writeDiagram(t)
	c := newTestCLI()

	tbl, d, err := c.loadDiagram(path)
	if err != nil {
		t.Fatalf("loadDiagram() error: %v", err)
	}
	if d.Root == nil {
		t.Fatal("loadDiagram() returned a terminal-only diagram")
	}
	if tbl.Eps() != c.Config.Eps {
		t.Errorf("store eps = %v, want configured %v", tbl.Eps(), c.Config.Eps)
	}
}

func TestNewCache_Disabled(t *testing.T) {
	c := newTestCLI()

	if _, ok := c.newCache(true).(*cache.NullCache); !ok {
		t.Error("newCache(true) should return a null cache")
	}

	c.Config.NoCache = true
	if _, ok := c.newCache(false).(*cache.NullCache); !ok {
		t.Error("newCache should honor the no_cache config setting")
	}
}

func TestNewCache_File(t *testing.T) {
	c := newTestCLI()
	c.Config.CacheDir = filepath.Join(t.TempDir(), "artifacts")

	store := c.newCache(false)
	defer store.Close()

	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("newCache(false) = %T, want *cache.FileCache", store)
	}
}

func TestStatsCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeDiagram(t)

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"stats", path})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
}

func TestStatsCommand_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"stats", "absent.json"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Fatal("stats on a missing file should fail")
	}
}

func TestCompactCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeDiagram(t)
	out := filepath.Join(t.TempDir(), "compacted.json")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"compact", path, "-o", out})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("compact failed: %v", err)
	}

	// The compacted file still decodes to the same tensor values.
	tbl := dd.New()
	d, err := diagram.ImportJSON(tbl, out)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	got, err := d.Value([]int{1, 0})
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if got != 3 {
		t.Errorf("Value(1,0) = %v, want 3", got)
	}
}

func TestRenderCommand_DOT(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeDiagram(t)
	out := filepath.Join(t.TempDir(), "out.dot")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"render", path, "-o", out, "-f", "dot", "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("digraph")) {
		t.Error("render -f dot did not produce a DOT graph")
	}
}

func TestRenderCommand_RejectsBadFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeDiagram(t)

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"render", path, "-f", "png"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Fatal("render with an unsupported format should fail")
	}
}

func TestFormatShape(t *testing.T) {
	if got := formatShape([]int{2, 3, 2}); got != "2x3x2" {
		t.Errorf("formatShape() = %q, want %q", got, "2x3x2")
	}
	if got := formatShape(nil); got != "scalar" {
		t.Errorf("formatShape(nil) = %q, want %q", got, "scalar")
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("bell.json", "svg"); got != "bell.svg" {
		t.Errorf("outputPath() = %q, want %q", got, "bell.svg")
	}
	if got := outputPath("noext", "dot"); got != "noext.dot" {
		t.Errorf("outputPath() = %q, want %q", got, "noext.dot")
	}
}
