package state

import (
	"context"

	"github.com/matzehuels/conceptmap/pkg/store"
)

// Known is the learner's known set for one map.
type Known struct {
	b   binding
	set Set
}

// LoadKnown restores the known set of mapID, or starts empty.
func LoadKnown(ctx context.Context, s *store.Store, namespace, mapID string) *Known {
	b := binding{store: s, namespace: namespace, key: store.KnownKey(mapID)}
	return &Known{b: b, set: b.load(ctx)}
}

// IsKnown reports whether id is marked known. Absent ids are unknown.
func (k *Known) IsKnown(id string) bool {
	return k.set[id]
}

// Toggle flips id and persists. The entry stays in the map as an explicit
// false when unmarked. It returns the new value.
func (k *Known) Toggle(ctx context.Context, id string) bool {
	v := !k.set[id]
	k.set[id] = v
	k.b.save(ctx, k.set)
	return v
}

// Set stores value for id and persists.
func (k *Known) Set(ctx context.Context, id string, value bool) {
	k.set[id] = value
	k.b.save(ctx, k.set)
}

// Reset forgets every entry and persists the empty set.
func (k *Known) Reset(ctx context.Context) {
	k.set = Set{}
	k.b.save(ctx, k.set)
}

// Snapshot returns a copy of the current set.
func (k *Known) Snapshot() Set {
	return k.set.Clone()
}

// Map exposes the live set for read-only aggregation. Callers must not mutate it.
func (k *Known) Map() map[string]bool {
	return k.set
}
