package sink

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/progress"
	"github.com/matzehuels/conceptmap/pkg/tree"
)

func sample() (layout.Result, progress.Report, map[string]bool) {
	h := hierarchy.Hierarchy{{
		ID: "t", Title: "Topic",
		Subtopics: []hierarchy.Subtopic{
			{ID: "s", Title: "Sub <one>", Cards: []hierarchy.Card{{ID: "c1", Title: "One"}, {ID: "c2", Title: "Two"}}},
		},
	}}
	known := map[string]bool{"c1": true}
	res := layout.Tidy(tree.Build(h), nil, 800, 400)
	return res, progress.Aggregate(h, known), known
}

func TestRenderSVG(t *testing.T) {
	res, report, known := sample()
	out := string(RenderSVG(res, WithProgress(report), WithKnown(known), WithTitle("Map")))

	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document: %.80s", out)
	}
	for _, want := range []string{
		`id="node-t"`, `id="node-c2"`,
		"<title>Map</title>",
		"Sub &lt;one&gt;",
		"1/2 · 50%",
		css(LevelColor(progress.LevelMedium)),
		css(colorKnown),
		res.Links[0].Path,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGViewport(t *testing.T) {
	res, _, _ := sample()
	v := layout.NewViewport()
	v.Zoom(0, 0, -1)
	out := string(RenderSVG(res, WithViewport(v)))
	if !strings.Contains(out, v.Transform()) {
		t.Errorf("SVG missing transform %q", v.Transform())
	}
}

func TestRenderSVGRadial(t *testing.T) {
	res := layout.Radial(2, 900, 600).Result()
	out := string(RenderSVG(res))
	if got := strings.Count(out, "<circle"); got != 21 {
		t.Errorf("circles = %d, want 21", got)
	}
}

func TestRenderPNG(t *testing.T) {
	res, report, known := sample()
	data, err := RenderPNG(res, WithPNGProgress(report), WithPNGKnown(known), WithScale(0.5))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 480 || b.Dy() != 200 {
		t.Errorf("size = %dx%d, want 480x200", b.Dx(), b.Dy())
	}
}

func TestRenderJSON(t *testing.T) {
	res, report, known := sample()
	data, err := RenderJSON(res, WithJSONMapID("m"), WithJSONProgress(report, progress.Pair{Known: 1, Total: 2}), WithJSONKnown(known))
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		MapID    string                    `json:"mapId"`
		Nodes    []map[string]any          `json:"nodes"`
		Links    []map[string]any          `json:"links"`
		Progress map[string]map[string]any `json:"progress"`
		Overall  progress.Pair             `json:"overall"`
		Known    map[string]bool           `json:"known"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.MapID != "m" || len(got.Nodes) != 4 || len(got.Links) != 3 {
		t.Errorf("got mapId=%q nodes=%d links=%d", got.MapID, len(got.Nodes), len(got.Links))
	}
	if _, ok := got.Progress["bySubtopicId"]["s"]; !ok {
		t.Error("progress.bySubtopicId.s missing")
	}
	if got.Overall.Total != 2 || !got.Known["c1"] {
		t.Errorf("overall=%+v known=%v", got.Overall, got.Known)
	}

	bare, err := RenderJSON(layout.Result{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(bare), "progress") {
		t.Errorf("bare output should omit progress: %s", bare)
	}
}

func TestLevelColor(t *testing.T) {
	if LevelColor("bogus") != LevelColor(progress.LevelMinimal) {
		t.Error("unknown level should use the minimal colour")
	}
	if css(colorGround) != "rgba(5,150,105,0.40)" {
		t.Errorf("css(colorGround) = %s", css(colorGround))
	}
}
