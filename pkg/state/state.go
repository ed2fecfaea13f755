// Package state tracks the per-map known and collapsed flags and persists
// them after every mutation.
//
// Both sets are flat id → bool maps stored as one JSON object each under
// "<namespace>:<mapId>:known" and "<namespace>:<mapId>:collapsed". The
// in-memory map is authoritative: a failed save is logged by the store and
// the session carries on.
package state

import (
	"context"
	"maps"

	"github.com/matzehuels/conceptmap/pkg/store"
)

// Set is a flat id → bool mapping as persisted.
type Set map[string]bool

// Clone returns a copy of s that is never nil.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	maps.Copy(out, s)
	return out
}

// binding ties a set to its storage location.
type binding struct {
	store     *store.Store
	namespace string
	key       string
}

// load never returns nil; a stored null yields an empty set.
func (b binding) load(ctx context.Context) Set {
	return store.Load(ctx, b.store, b.namespace, b.key, Set{}).Clone()
}

func (b binding) save(ctx context.Context, s Set) {
	b.store.Save(ctx, b.namespace, b.key, s)
}
