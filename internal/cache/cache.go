package cache

import "context"

// ItemPool is the item-oriented cache contract.
// Handles returned by GetItem are detached copies; nothing reaches the store
// until a handle is saved.
type ItemPool interface {
	// GetItem returns a handle for key. A miss is a handle with IsHit false.
	GetItem(key string) (*CacheItem, error)

	// GetItems returns a handle per key.
	GetItems(keys ...string) (map[string]*CacheItem, error)

	// HasItem reports whether key holds a live entry.
	HasItem(key string) (bool, error)

	// Clear removes all entries.
	Clear() bool

	// DeleteItem removes key if present.
	DeleteItem(key string) (bool, error)

	// DeleteItems removes every key if present.
	DeleteItems(keys ...string) (bool, error)

	// Save writes the handle to the store.
	Save(item Item) (bool, error)

	// SaveDeferred saves the handle, possibly not before Commit.
	SaveDeferred(item Item) (bool, error)

	// Commit flushes anything SaveDeferred held back.
	Commit() bool
}

// SimpleCache is the value-oriented cache contract.
type SimpleCache interface {
	// Get returns the value or def when there is no live entry.
	Get(key string, def any) (any, error)

	// Set stores value with an optional ttl.
	Set(key string, value any, ttl any) (bool, error)

	// Delete removes key if present.
	Delete(key string) (bool, error)

	// Clear removes all entries.
	Clear() bool

	// GetMultiple returns the value or def for every key.
	GetMultiple(keys any, def any) (map[string]any, error)

	// SetMultiple stores every association with one shared ttl.
	SetMultiple(values any, ttl any) (bool, error)

	// DeleteMultiple removes every key if present.
	DeleteMultiple(keys any) (bool, error)

	// Has reports whether key holds a live entry.
	Has(key string) (bool, error)

	// Remember reads key through, calling load on a miss.
	Remember(ctx context.Context, key string, ttl any, load func(context.Context) (any, error)) (any, error)
}

// Ensure Pool and Simple implement their contracts at compile time.
var (
	_ ItemPool    = (*Pool)(nil)
	_ SimpleCache = (*Simple)(nil)
	_ Item        = (*CacheItem)(nil)
	_ Expirer     = (*CacheItem)(nil)
)
