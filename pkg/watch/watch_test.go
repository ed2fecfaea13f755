package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/conceptmap/pkg/hierarchy"
)

const oneTopic = `{"topics":[{"id":"t1","title":"One","subtopics":[]}]}`
const twoTopics = `{"topics":[{"id":"t1","title":"One","subtopics":[]},{"id":"t2","title":"Two","subtopics":[]}]}`

func quietLogger() *log.Logger {
	l := log.New(io.Discard)
	l.SetLevel(log.FatalLevel)
	return l
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(oneTopic), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan hierarchy.Document, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, doc hierarchy.Document) { got <- doc })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(twoTopics), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case doc := <-got:
		if len(doc.Topics) != 2 {
			t.Errorf("reloaded %d topics, want 2", len(doc.Topics))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error: %v", err)
	}
}

func TestWatcherIgnoresInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(oneTopic), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()

	reloads := 0
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(path, []byte("{not json"), 0o644)
	}()
	if err := w.Run(ctx, func(context.Context, hierarchy.Document) { reloads++ }); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if reloads != 0 {
		t.Errorf("reloads = %d, want 0 for unparsable content", reloads)
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	w := &Watcher{path: "/tmp/maps/a.json"}
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: "/tmp/maps/a.json", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "/tmp/maps/a.json", Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: "/tmp/maps/a.json", Op: fsnotify.Chmod}, false},
		{"sibling", fsnotify.Event{Name: "/tmp/maps/b.json", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.ev); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}
