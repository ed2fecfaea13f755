package state

import (
	"context"

	"github.com/matzehuels/conceptmap/pkg/store"
)

// Collapse is the collapse/expand state for the topics and subtopics of one map.
//
// An id that was never written behaves exactly as if it were stored with the
// default, which is !startExpanded. EnsureDefault only makes that value
// concrete in the persisted map.
type Collapse struct {
	b            binding
	set          Set
	defaultValue bool
}

// LoadCollapse restores the collapsed set of mapID, or starts empty.
func LoadCollapse(ctx context.Context, s *store.Store, namespace, mapID string, startExpanded bool) *Collapse {
	b := binding{store: s, namespace: namespace, key: store.CollapsedKey(mapID)}
	return &Collapse{b: b, set: b.load(ctx), defaultValue: !startExpanded}
}

// Default returns the value used for ids that were never set.
func (c *Collapse) Default() bool {
	return c.defaultValue
}

// IsCollapsed returns the stored value for id, or the default.
func (c *Collapse) IsCollapsed(id string) bool {
	if v, ok := c.set[id]; ok {
		return v
	}
	return c.defaultValue
}

// Toggle flips the effective value of id, persists, and returns the new value.
func (c *Collapse) Toggle(ctx context.Context, id string) bool {
	v := !c.IsCollapsed(id)
	c.set[id] = v
	c.b.save(ctx, c.set)
	return v
}

// EnsureDefault writes the default for id unless a value is already stored.
// It persists only when it added an entry and reports whether it did.
func (c *Collapse) EnsureDefault(ctx context.Context, id string) bool {
	if c.ensure(id) {
		c.b.save(ctx, c.set)
		return true
	}
	return false
}

// EnsureDefaults is EnsureDefault for many ids with at most one save.
func (c *Collapse) EnsureDefaults(ctx context.Context, ids []string) int {
	added := 0
	for _, id := range ids {
		if c.ensure(id) {
			added++
		}
	}
	if added > 0 {
		c.b.save(ctx, c.set)
	}
	return added
}

func (c *Collapse) ensure(id string) bool {
	if _, ok := c.set[id]; ok {
		return false
	}
	c.set[id] = c.defaultValue
	return true
}

// SetAll overwrites every id with value and persists once.
func (c *Collapse) SetAll(ctx context.Context, ids []string, value bool) {
	for _, id := range ids {
		c.set[id] = value
	}
	c.b.save(ctx, c.set)
}

// Snapshot returns a copy of the current set.
func (c *Collapse) Snapshot() Set {
	return c.set.Clone()
}
