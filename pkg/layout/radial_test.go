package layout

import (
	"math"
	"testing"
)

func TestRadialShape(t *testing.T) {
	r := Radial(4, 0, 0)

	if r.Width != 900 || r.Height != 600 {
		t.Errorf("canvas = %vx%v, want 900x600", r.Width, r.Height)
	}
	if got := len(r.Nodes); got != 1+5+15 {
		t.Errorf("len(Nodes) = %d, want 21", got)
	}
	if got := len(r.Edges); got != 5+15 {
		t.Errorf("len(Edges) = %d, want 20", got)
	}

	var central, categories, concepts int
	for _, n := range r.Nodes {
		switch n := n.(type) {
		case CentralNode:
			central++
			if n.X != 450 || n.Y != 300 || n.Radius != 35 || n.Progress != 100 {
				t.Errorf("central = %+v", n)
			}
		case CategoryNode:
			categories++
			if want := float64(n.Index) * 72 * math.Pi / 180; !near(n.Angle, want) {
				t.Errorf("category %d angle = %v, want %v", n.Index, n.Angle, want)
			}
			if d := math.Hypot(n.X-450, n.Y-300); !near(d, 180) {
				t.Errorf("category %d distance = %v, want 180", n.Index, d)
			}
		case ConceptNode:
			concepts++
			if n.Radius != 20 {
				t.Errorf("concept radius = %v, want 20", n.Radius)
			}
		}
	}
	if central != 1 || categories != 5 || concepts != 15 {
		t.Errorf("counts = %d/%d/%d, want 1/5/15", central, categories, concepts)
	}
}

func TestRadialConceptsHangOffCategory(t *testing.T) {
	r := Radial(0, 1200, 800)
	for _, e := range r.Edges {
		from, to := e.From.Center(), e.To.Center()
		if c, ok := e.To.(ConceptNode); ok {
			if d := math.Hypot(to.X-from.X, to.Y-from.Y); !near(d, 100) {
				t.Errorf("%s distance from category = %v, want 100", c.NodeID(), d)
			}
		}
	}
}

func TestRadialResult(t *testing.T) {
	res := Radial(3, 900, 600).Result()

	central, ok := res.Node("central")
	if !ok {
		t.Fatal("central node missing")
	}
	if central.Label != "Central · 3 topics" || central.Kind != KindCentral {
		t.Errorf("central = %+v", central)
	}
	concept, ok := res.Node("concept-2-1")
	if !ok {
		t.Fatal("concept-2-1 missing")
	}
	if concept.ParentID != "category-2" || concept.Label != "Concept 2" || concept.Depth != 2 {
		t.Errorf("concept = %+v", concept)
	}
	for _, n := range res.Nodes {
		if n.Progress == nil || *n.Progress < 0 || *n.Progress > 100 {
			t.Errorf("%s progress = %v, want in [0, 100]", n.ID, n.Progress)
		}
	}

	again := Radial(3, 900, 600).Result()
	for i := range res.Nodes {
		if *res.Nodes[i].Progress != *again.Nodes[i].Progress {
			t.Errorf("%s progress differs between runs", res.Nodes[i].ID)
		}
	}
}
