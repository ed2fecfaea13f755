package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

type failingBackend struct{ NullBackend }

func (failingBackend) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("storage disabled")
}

func (failingBackend) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	ctx := context.Background()

	file, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	sqlite, err := NewSQLiteBackend(ctx, filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBackend: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	out := map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   file,
		"sqlite": sqlite,
	}
	if url := os.Getenv("CONCEPTMAP_TEST_REDIS_URL"); url != "" {
		r, err := NewRedisBackend(ctx, url)
		if err != nil {
			t.Fatalf("NewRedisBackend: %v", err)
		}
		t.Cleanup(func() { r.Close() })
		out["redis"] = r
	}
	if uri := os.Getenv("CONCEPTMAP_TEST_MONGO_URI"); uri != "" {
		m, err := NewMongoBackend(ctx, uri, "conceptmap_test", "state")
		if err != nil {
			t.Fatalf("NewMongoBackend: %v", err)
		}
		t.Cleanup(func() { m.Close() })
		out["mongo"] = m
	}
	return out
}

func TestKey(t *testing.T) {
	tests := []struct {
		ns, key, want string
	}{
		{"dod:conceptmap", KnownKey("map1"), "dod:conceptmap:map1:known"},
		{"ns", CollapsedKey("map1"), "ns:map1:collapsed"},
		{"", "bare", "bare"},
	}
	for _, tt := range tests {
		if got := Key(tt.ns, tt.key); got != tt.want {
			t.Errorf("Key(%q, %q) = %q, want %q", tt.ns, tt.key, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(b)
			want := map[string]bool{"c1": true, "c2": false}
			s.Save(ctx, "ns", KnownKey("map1"), want)

			got := Load(ctx, s, "ns", KnownKey("map1"), map[string]bool{})
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Load() = %v, want %v", got, want)
			}

			s.Delete(ctx, "ns", KnownKey("map1"))
			fallback := map[string]bool{"fallback": true}
			if got := Load(ctx, s, "ns", KnownKey("map1"), fallback); !reflect.DeepEqual(got, fallback) {
				t.Errorf("Load() after Delete = %v, want fallback", got)
			}
		})
	}
}

func TestRoundTripNull(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(b)

			s.Save(ctx, "ns", "any", nil)
			if got := Load[any](ctx, s, "ns", "any", "fallback"); got != nil {
				t.Errorf("Load[any]() = %#v, want nil", got)
			}

			var none map[string]bool
			s.Save(ctx, "ns", "set", none)
			if got := Load(ctx, s, "ns", "set", map[string]bool{"x": true}); got != nil {
				t.Errorf("Load() = %v, want nil map", got)
			}
		})
	}
}

func TestLoadNeverWrittenReturnsFallback(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(b)
			if got := Load(ctx, s, "ns", "missing", 7); got != 7 {
				t.Errorf("Load() = %d, want 7", got)
			}
		})
	}
}

func TestLoadMalformedReturnsFallback(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated", `{"c1": tr`},
		{"wrong shape", `[1, 2, 3]`},
		{"empty", ``},
		{"blank", "  \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := NewMemoryBackend()
			_ = mem.Set(ctx, "ns:k", []byte(tt.raw))
			s := New(mem)

			got := Load(ctx, s, "ns", "k", map[string]bool{"x": true})
			if !got["x"] || len(got) != 1 {
				t.Errorf("Load() = %v, want fallback", got)
			}
		})
	}
}

func TestFailingBackendIsSwallowed(t *testing.T) {
	ctx := context.Background()
	s := New(failingBackend{})

	s.Save(ctx, "ns", "k", map[string]bool{"a": true})
	if got := Load(ctx, s, "ns", "k", "fallback"); got != "fallback" {
		t.Errorf("Load() = %q, want fallback", got)
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	s.Save(context.Background(), "ns", "k", 1)
	if got := Load(context.Background(), s, "ns", "k", 3); got != 3 {
		t.Errorf("Load() on nil store = %d, want 3", got)
	}
}

func TestNullBackend(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	s.Save(ctx, "ns", "k", map[string]bool{"a": true})
	if got := Load(ctx, s, "ns", "k", map[string]bool{}); len(got) != 0 {
		t.Errorf("null store returned %v, want empty fallback", got)
	}
}

func TestFileBackendCorruptEntry(t *testing.T) {
	ctx := context.Background()
	f, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Set(ctx, "k", []byte(`{"a":true}`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	path := f.path("k")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, ok, err := f.Get(ctx, "k")
	if err != nil || ok {
		t.Errorf("Get(corrupt) = ok %v, err %v; want miss", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileBackendLayout(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	path := f.path("ns:map1:known")
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		t.Fatal(err)
	}
	hash := Hash([]byte("ns:map1:known"))
	if want := filepath.Join(hash[:2], hash[2:]+".json"); rel != want {
		t.Errorf("path = %q, want %q", rel, want)
	}
	if f.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", f.Dir(), dir)
	}
}

func TestRoundTripProperty(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend())

	rapid.Check(t, func(t *rapid.T) {
		key := rapid.StringMatching(`[a-z0-9-]{1,16}`).Draw(t, "key")
		want := rapid.MapOf(rapid.StringMatching(`[a-z0-9_-]{1,12}`), rapid.Bool()).Draw(t, "value")

		if rapid.Bool().Draw(t, "nil") {
			want = nil
		}

		s.Save(ctx, "ns", key, want)
		got := Load(ctx, s, "ns", key, map[string]bool{"fallback": true})
		if want == nil {
			if got != nil {
				t.Fatalf("Load() = %v, want nil", got)
			}
			return
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Load() = %v, want %v", got, want)
		}
	})
}

func TestMemoryBackendKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend()
	_ = m.Set(ctx, "b", []byte("1"))
	_ = m.Set(ctx, "a", []byte("2"))
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v", got)
	}
}
