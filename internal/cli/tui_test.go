package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/conceptmap/pkg/engine"
	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/store"
)

func testSession(t *testing.T) *engine.Session {
	t.Helper()
	h := hierarchy.Hierarchy{{
		ID: "t1", Title: "Anatomy",
		Subtopics: []hierarchy.Subtopic{
			{ID: "s1", Title: "Airways", Cards: []hierarchy.Card{{ID: "c1", Title: "Nose"}, {ID: "c2", Title: "Larynx"}}},
		},
	}}
	sess, err := engine.Open(context.Background(), h, store.New(store.NewMemoryBackend()), engine.Options{MapID: "tui"})
	if err != nil {
		t.Fatalf("engine.Open() error: %v", err)
	}
	return sess
}

func press(m BrowseModel, keys ...string) BrowseModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(BrowseModel)
	}
	return m
}

func TestBrowseStartsCollapsed(t *testing.T) {
	m := NewBrowseModel(context.Background(), testSession(t), "Test")
	if len(m.rows) != 1 {
		t.Fatalf("rows = %d, want only the topic", len(m.rows))
	}
}

func TestBrowseExpandAndMarkKnown(t *testing.T) {
	sess := testSession(t)
	m := NewBrowseModel(context.Background(), sess, "Test")

	m = press(m, "enter")
	if len(m.rows) != 2 {
		t.Fatalf("after expanding topic rows = %d, want 2", len(m.rows))
	}
	m = press(m, "down", "l")
	if len(m.rows) != 4 {
		t.Fatalf("after expanding subtopic rows = %d, want 4", len(m.rows))
	}
	m = press(m, "down", "enter")
	if !sess.IsKnown("c1") {
		t.Error("enter on a card should mark it known")
	}
	if got := sess.Overall(); got.Known != 1 || got.Total != 2 {
		t.Errorf("overall = %+v, want 1/2", got)
	}
	if !strings.Contains(m.View(), "Nose") {
		t.Error("view should list the expanded card")
	}
}

func TestBrowseCursorFollowsNode(t *testing.T) {
	m := NewBrowseModel(context.Background(), testSession(t), "Test")
	m = press(m, "E")
	if len(m.rows) != 4 {
		t.Fatalf("expand all rows = %d, want 4", len(m.rows))
	}
	m = press(m, "down", "h")
	if len(m.rows) != 2 {
		t.Fatalf("collapsing s1 rows = %d, want 2", len(m.rows))
	}
	if n, _ := m.current(); n.ID != "s1" {
		t.Errorf("cursor on %q, want s1", n.ID)
	}
}

func TestBrowseQuit(t *testing.T) {
	m := NewBrowseModel(context.Background(), testSession(t), "Test")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
