package tree

import (
	"reflect"
	"testing"

	"github.com/matzehuels/conceptmap/pkg/hierarchy"
)

func fixture() hierarchy.Hierarchy {
	return hierarchy.Hierarchy{
		{ID: "t1", Title: "Topic 1", Subtopics: []hierarchy.Subtopic{
			{ID: "s1", Title: "Sub 1", Cards: []hierarchy.Card{{ID: "c2", Title: "B"}, {ID: "c1", Title: "A"}}},
			{ID: "s2", Title: "Sub 2"},
		}},
		{ID: "t0", Title: "Topic 0"},
	}
}

func ids(roots []Node) []string {
	var out []string
	Walk(roots, func(n Node, _ int, _ string) bool {
		out = append(out, n.ID)
		return true
	})
	return out
}

func TestBuildPreservesOrder(t *testing.T) {
	roots := Build(fixture())

	if got, want := ids(roots), []string{"t1", "s1", "c2", "c1", "s2", "t0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("pre-order ids = %v, want %v", got, want)
	}
	if roots[0].Kind != KindTopic || roots[0].Children[0].Kind != KindSubtopic || roots[0].Children[0].Children[0].Kind != KindCard {
		t.Error("kinds should follow topic → subtopic → card")
	}
	if roots[0].Children[0].Children[1].Label != "A" {
		t.Errorf("card label = %q, want A", roots[0].Children[0].Children[1].Label)
	}
	if !roots[1].IsLeaf() || !roots[0].Children[1].IsLeaf() {
		t.Error("empty topic and empty subtopic should be leaves")
	}
}

func TestBuildEmpty(t *testing.T) {
	if roots := Build(nil); len(roots) != 0 {
		t.Errorf("Build(nil) = %v, want empty", roots)
	}
}

func TestPrune(t *testing.T) {
	roots := Build(fixture())

	tests := []struct {
		name      string
		collapsed map[string]bool
		want      []string
	}{
		{"nothing collapsed", nil, []string{"t1", "s1", "c2", "c1", "s2", "t0"}},
		{"topic collapsed", map[string]bool{"t1": true}, []string{"t1", "t0"}},
		{"subtopic collapsed", map[string]bool{"s1": true}, []string{"t1", "s1", "s2", "t0"}},
		{"card id ignored", map[string]bool{"c1": true}, []string{"t1", "s1", "c2", "c1", "s2", "t0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pruned := Prune(roots, func(id string) bool { return tt.collapsed[id] })
			if got := ids(pruned); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Prune() ids = %v, want %v", got, tt.want)
			}
		})
	}

	if got := Count(roots); got != 6 {
		t.Errorf("Prune must not modify its input: Count = %d, want 6", got)
	}
}

func TestWalkDepthAndParent(t *testing.T) {
	type visit struct {
		id     string
		depth  int
		parent string
	}
	var got []visit
	Walk(Build(fixture()), func(n Node, depth int, parent string) bool {
		got = append(got, visit{n.ID, depth, parent})
		return n.Kind != KindSubtopic
	})
	want := []visit{{"t1", 0, ""}, {"s1", 1, "t1"}, {"s2", 1, "t1"}, {"t0", 0, ""}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Walk() = %v, want %v", got, want)
	}
}

func TestCollapsibleIDs(t *testing.T) {
	got := CollapsibleIDs(fixture())
	want := []string{"t1", "s1", "s2", "t0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollapsibleIDs() = %v, want %v", got, want)
	}
}
