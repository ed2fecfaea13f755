// Package observability provides hooks for metrics about layout and storage.
//
// Libraries in this module call the registered hooks; they never import a
// metrics backend themselves. The serve command registers Prometheus-backed
// hooks at startup, every other entry point runs with the no-op defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetEngineHooks(myEngineHooks)
//	observability.SetStoreHooks(myStoreHooks)
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... compute layout ...
//	observability.Engine().OnLayout(ctx, "tree", len(nodes), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from concept-map sessions.
type EngineHooks interface {
	// OnLayout records one layout pass for a view.
	OnLayout(ctx context.Context, view string, nodeCount int, duration time.Duration)

	// OnToggle records a state mutation. kind is "known" or "collapsed".
	OnToggle(ctx context.Context, kind string, value bool)

	// OnReset records a bulk mutation. kind is "progress", "expand" or "collapse".
	OnReset(ctx context.Context, kind string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from the persisted key-value store.
type StoreHooks interface {
	// OnHit records a successful load.
	OnHit(ctx context.Context, key string)

	// OnMiss records a load that fell back to the default.
	OnMiss(ctx context.Context, key string)

	// OnSave records a successful save of size bytes.
	OnSave(ctx context.Context, key string, size int)

	// OnError records a swallowed failure. op is load, decode, encode, save or delete.
	OnError(ctx context.Context, op string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnLayout(context.Context, string, int, time.Duration) {}
func (NoopEngineHooks) OnToggle(context.Context, string, bool)               {}
func (NoopEngineHooks) OnReset(context.Context, string)                      {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnHit(context.Context, string)          {}
func (NoopStoreHooks) OnMiss(context.Context, string)         {}
func (NoopStoreHooks) OnSave(context.Context, string, int)    {}
func (NoopStoreHooks) OnError(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks. A nil value is ignored.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetStoreHooks registers custom store hooks. A nil value is ignored.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	storeHooks = NoopStoreHooks{}
}
