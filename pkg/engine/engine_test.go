package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/store"
)

func anatomy() hierarchy.Hierarchy {
	return hierarchy.Hierarchy{{
		ID: "Anatomy", Title: "Anatomy",
		Subtopics: []hierarchy.Subtopic{
			{ID: "upper", Title: "Upper airway", Cards: []hierarchy.Card{{ID: "c1", Title: "Nose"}, {ID: "c2", Title: "Pharynx"}}},
			{ID: "lower", Title: "Lower airway", Cards: []hierarchy.Card{{ID: "c3", Title: "Trachea"}, {ID: "c4", Title: "Bronchi"}}},
		},
	}}
}

func openSession(t *testing.T, s *store.Store, startExpanded bool) *Session {
	t.Helper()
	sess, err := Open(context.Background(), anatomy(), s, Options{MapID: "map1", Namespace: "ns", StartExpanded: startExpanded})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return sess
}

func TestOpenWritesDefaults(t *testing.T) {
	mem := store.NewMemoryBackend()
	sess := openSession(t, store.New(mem), false)

	got := sess.Collapsed()
	for _, id := range []string{"Anatomy", "upper", "lower"} {
		if v, ok := got[id]; !ok || !v {
			t.Errorf("collapsed[%s] = %v, %v; want true, true", id, v, ok)
		}
	}
	if _, ok, _ := mem.Get(context.Background(), "ns:map1:collapsed"); !ok {
		t.Error("defaults were not persisted")
	}
}

func TestOpenRejectsBadMapID(t *testing.T) {
	_, err := Open(context.Background(), anatomy(), store.New(nil), Options{MapID: "a:b"})
	if !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("error = %v, want INVALID_ID", err)
	}
}

func TestProgressScenario(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, store.New(store.NewMemoryBackend()), true)

	for _, id := range []string{"c1", "c3"} {
		if _, err := sess.ToggleKnown(ctx, id); err != nil {
			t.Fatalf("ToggleKnown(%s) error: %v", id, err)
		}
	}

	p, ok := sess.Progress().For("Anatomy")
	if !ok || p.Known != 2 || p.Total != 4 {
		t.Errorf("Anatomy progress = %+v, want 2/4", p)
	}
	if o := sess.Overall(); o.Percent() != 50 {
		t.Errorf("overall = %d%%, want 50%%", o.Percent())
	}

	sess.ResetProgress(ctx)
	if o := sess.Overall(); o.Known != 0 {
		t.Errorf("after reset known = %d, want 0", o.Known)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryBackend())

	first := openSession(t, s, true)
	if _, err := first.ToggleKnown(ctx, "c2"); err != nil {
		t.Fatal(err)
	}
	if _, err := first.ToggleCollapsed(ctx, "lower"); err != nil {
		t.Fatal(err)
	}

	second := openSession(t, s, true)
	if !second.IsKnown("c2") {
		t.Error("known card lost after reopen")
	}
	if !second.IsCollapsed("lower") {
		t.Error("collapsed subtopic lost after reopen")
	}
	if second.IsCollapsed("upper") {
		t.Error("upper should keep its expanded default")
	}
}

func TestUnknownIDs(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, store.New(nil), true)

	tests := []struct {
		name string
		call func() error
		code errors.Code
	}{
		{"toggle known on subtopic", func() error { _, err := sess.ToggleKnown(ctx, "upper"); return err }, errors.ErrCodeNotFound},
		{"set known on missing card", func() error { return sess.SetKnown(ctx, "nope", true) }, errors.ErrCodeNotFound},
		{"collapse a card", func() error { _, err := sess.ToggleCollapsed(ctx, "c1"); return err }, errors.ErrCodeNotFound},
		{"empty id", func() error { _, err := sess.ToggleCollapsed(ctx, ""); return err }, errors.ErrCodeInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestHierarchyIDsBypassSyntaxRules(t *testing.T) {
	ctx := context.Background()
	long := strings.Repeat("k", 300)
	tab := "sub\tone"
	h := hierarchy.Hierarchy{{
		ID: "t", Title: "Topic",
		Subtopics: []hierarchy.Subtopic{{ID: tab, Title: "Tabbed", Cards: []hierarchy.Card{{ID: long, Title: "Long"}}}},
	}}
	sess, err := Open(ctx, h, store.New(nil), Options{MapID: "m"})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if v, err := sess.ToggleKnown(ctx, long); err != nil || !v {
		t.Errorf("ToggleKnown(long) = %v, %v; want true, nil", v, err)
	}
	if err := sess.SetKnown(ctx, long, false); err != nil {
		t.Errorf("SetKnown(long) error: %v", err)
	}
	if _, err := sess.ToggleCollapsed(ctx, tab); err != nil {
		t.Errorf("ToggleCollapsed(tab) error: %v", err)
	}

	if _, err := sess.ToggleKnown(ctx, strings.Repeat("x", 300)); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("unknown long id error = %v, want INVALID_ID", err)
	}
}

func TestExpandAllAndLayout(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, store.New(nil), false)

	snap, err := sess.Layout(ctx, layout.ViewTree, 1000, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Nodes) != 1 || snap.Columns != 1 {
		t.Errorf("collapsed map: %d nodes, %d columns; want 1, 1", len(snap.Nodes), snap.Columns)
	}

	sess.ExpandAll(ctx, true)
	snap, err = sess.Layout(ctx, layout.ViewTree, 1000, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Nodes) != 7 || snap.Columns != 3 {
		t.Errorf("expanded map: %d nodes, %d columns; want 7, 3", len(snap.Nodes), snap.Columns)
	}
	if snap.MapID != "map1" || snap.View != layout.ViewTree {
		t.Errorf("snapshot header = %s/%s", snap.MapID, snap.View)
	}

	if _, err := sess.Layout(ctx, layout.View("spiral"), 0, 0); !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("error = %v, want INVALID_VIEW", err)
	}
}

func TestReloadKeepsState(t *testing.T) {
	ctx := context.Background()
	sess := openSession(t, store.New(nil), true)
	if err := sess.SetKnown(ctx, "c4", true); err != nil {
		t.Fatal(err)
	}

	h := anatomy()
	h[0].Subtopics = append(h[0].Subtopics, hierarchy.Subtopic{ID: "extra", Title: "Extra"})
	sess.Reload(ctx, h)

	if !sess.IsKnown("c4") {
		t.Error("known state lost on reload")
	}
	if _, err := sess.ToggleCollapsed(ctx, "extra"); err != nil {
		t.Errorf("new subtopic not collapsible: %v", err)
	}
	if p, _ := sess.Progress().For("extra"); p.Total != 0 {
		t.Errorf("extra total = %d, want 0", p.Total)
	}
}

func TestMapIDForPath(t *testing.T) {
	a, err := MapIDForPath("/tmp/maps/resp.yaml")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := MapIDForPath("/tmp/maps/../maps/resp.yaml")
	c, _ := MapIDForPath("/tmp/maps/other.yaml")

	if a != b {
		t.Errorf("same file gave %s and %s", a, b)
	}
	if a == c {
		t.Error("different files share a map id")
	}
	if errors.ValidateMapID(a) != nil {
		t.Errorf("derived id %q is not a valid map id", a)
	}
}
