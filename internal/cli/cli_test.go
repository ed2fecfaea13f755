package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"

	"github.com/matzehuels/conceptmap/pkg/errors"
)

// runCLI executes the root command with an isolated config and file store.
func runCLI(t *testing.T, dataDir string, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", dataDir)

	c := New(io.Discard, log.FatalLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--store", "file:"+dataDir))
	return root.ExecuteContext(context.Background())
}

func readSnapshot(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func TestLayoutSample(t *testing.T) {
	data := t.TempDir()
	out := filepath.Join(t.TempDir(), "layout.json")

	if err := runCLI(t, data, "layout", "--view", "tree", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}
	snap := readSnapshot(t, out)
	if snap["view"] != "tree" {
		t.Errorf("view = %v, want tree", snap["view"])
	}
	if snap["mapId"] != sampleMapID {
		t.Errorf("mapId = %v, want %s", snap["mapId"], sampleMapID)
	}
	if _, ok := snap["progress"]; !ok {
		t.Error("layout output should include progress")
	}
}

func TestKnownTogglePersistsAcrossRuns(t *testing.T) {
	data := t.TempDir()
	out := filepath.Join(t.TempDir(), "layout.json")

	if err := runCLI(t, data, "known", "toggle", "larynx"); err != nil {
		t.Fatalf("known toggle: %v", err)
	}
	if err := runCLI(t, data, "layout", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}
	overall := readSnapshot(t, out)["overall"].(map[string]any)
	if overall["known"] != float64(1) {
		t.Errorf("overall known = %v, want 1", overall["known"])
	}
}

func TestKnownToggleUnknownCard(t *testing.T) {
	err := runCLI(t, t.TempDir(), "known", "toggle", "no-such-card")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestCollapseExpandAll(t *testing.T) {
	data := t.TempDir()
	out := filepath.Join(t.TempDir(), "layout.json")

	if err := runCLI(t, data, "collapse", "expand-all"); err != nil {
		t.Fatalf("expand-all: %v", err)
	}
	if err := runCLI(t, data, "layout", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}
	nodes := readSnapshot(t, out)["nodes"].([]any)
	if len(nodes) <= 4 {
		t.Errorf("expanded outline has %d nodes, want every card visible", len(nodes))
	}
}

func TestRenderMultipleFormats(t *testing.T) {
	base := filepath.Join(t.TempDir(), "map")
	if err := runCLI(t, t.TempDir(), "render", "-f", "svg,json,dot", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{"svg", "json", "dot"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
	dot, _ := os.ReadFile(base + ".dot")
	if !strings.HasPrefix(string(dot), "digraph") {
		t.Errorf("dot output starts with %q", string(dot[:min(len(dot), 10)]))
	}
}

func TestRenderRejectsUnknownView(t *testing.T) {
	err := runCLI(t, t.TempDir(), "render", "--view", "spiral", "-o", filepath.Join(t.TempDir(), "x.svg"))
	if !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("error = %v, want INVALID_VIEW", err)
	}
}

func TestHierarchyFileGetsStableMapID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.yaml")
	doc := `topics:
  - id: t1
    title: One
    subtopics:
      - id: s1
        title: Sub
        cards:
          - id: c1
            title: Card
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	data := t.TempDir()
	first := filepath.Join(t.TempDir(), "a.json")
	second := filepath.Join(t.TempDir(), "b.json")
	if err := runCLI(t, data, "layout", path, "-o", first); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if err := runCLI(t, data, "layout", path, "-o", second); err != nil {
		t.Fatalf("layout: %v", err)
	}
	a, b := readSnapshot(t, first)["mapId"], readSnapshot(t, second)["mapId"]
	if a != b || a == sampleMapID {
		t.Errorf("map ids = %v, %v; want equal and derived from the path", a, b)
	}
}
