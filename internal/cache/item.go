package cache

import "time"

// Item is the minimum a handle must offer to be saved by a Pool.
type Item interface {
	Key() string
	Value() any
	IsHit() bool
}

// Expirer is implemented by handles that carry their own expiration. Pool.Save
// stores handles without it as never expiring.
type Expirer interface {
	Expiration() Expiration
}

// CacheItem is the handle produced by Pool. It is a detached view: changing it
// has no effect on the store until it is passed back to Save.
type CacheItem struct {
	key        string
	value      any
	hit        bool
	expiration Expiration
}

// NewItem returns a miss handle for key that never expires. It is meant for
// callers that build handles themselves; the key is validated by Save.
func NewItem(key string) *CacheItem {
	return &CacheItem{key: key}
}

// Key returns the key the handle was created for.
func (i *CacheItem) Key() string { return i.key }

// Value returns the value read from the store, or the value given to Set.
// It is nil for a miss.
func (i *CacheItem) Value() any { return i.value }

// IsHit reports whether the handle was produced from a live entry.
func (i *CacheItem) IsHit() bool { return i.hit }

// Expiration implements Expirer.
func (i *CacheItem) Expiration() Expiration { return i.expiration }

// Set replaces the handle's value.
func (i *CacheItem) Set(value any) *CacheItem {
	i.value = value
	return i
}

// ExpiresAt pins the expiration to t.
func (i *CacheItem) ExpiresAt(t time.Time) *CacheItem {
	i.expiration = At(t)
	return i
}

// ExpiresNever clears any expiration.
func (i *CacheItem) ExpiresNever() *CacheItem {
	i.expiration = Never()
	return i
}

// ExpiresAfter sets the expiration relative to the current time. ttl accepts
// the same forms as Simple.Set.
func (i *CacheItem) ExpiresAfter(ttl any) error {
	exp, err := ResolveTTL(ttl, now())
	if err != nil {
		return err
	}
	i.expiration = exp
	return nil
}
