// Package observability provides hooks for instrumenting the node store.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about unique-table activity and cache
// operations; libraries emit events through the registry and stay free of
// metrics frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTableHooks(&myTableHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Table().OnHit()
//
// Table hooks run inside the table's critical section, so implementations
// must be fast and must not call back into the table.
package observability

import "sync"

// TableHooks receives events from unique-table operations.
type TableHooks interface {
	// OnHit records a lookup that found an existing canonical node.
	OnHit()

	// OnMiss records a lookup that found no node for the structural key.
	OnMiss()

	// OnInsert records the insertion of a new canonical node.
	// entries is the table's node count after the insert.
	OnInsert(entries int)

	// OnReset records a compaction pass.
	// kept is the rebuilt table's node count; discarded is how many nodes
	// the old table held beyond that.
	OnReset(kept, discarded int)
}

// CacheHooks receives events from artifact cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(keyType string)

	// OnCacheSet records a cache write of size bytes.
	OnCacheSet(keyType string, size int)
}

// NoopTableHooks is a no-op implementation of TableHooks.
type NoopTableHooks struct{}

func (NoopTableHooks) OnHit()           {}
func (NoopTableHooks) OnMiss()          {}
func (NoopTableHooks) OnInsert(int)     {}
func (NoopTableHooks) OnReset(int, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

var (
	tableHooks TableHooks = NoopTableHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetTableHooks registers custom table hooks.
// This should be called once at application startup before any table operations.
func SetTableHooks(h TableHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		tableHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Table returns the registered table hooks.
func Table() TableHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return tableHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	tableHooks = NoopTableHooks{}
	cacheHooks = NoopCacheHooks{}
}
