package cache

import "fmt"

// Pool is the item-oriented view of a Store: fetch a handle, change it, save
// it back.
type Pool struct {
	store *Store
}

// NewPool returns a Pool backed by s.
func NewPool(s *Store) *Pool {
	return &Pool{store: s}
}

// GetItem returns a handle for key. A miss is a handle with IsHit false, never
// a nil handle.
func (p *Pool) GetItem(key string) (*CacheItem, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	item := &CacheItem{key: key}
	if v, exp, ok := p.store.read(key, now()); ok {
		item.value = v
		item.hit = true
		item.expiration = exp
	}
	return item, nil
}

// GetItems returns one handle per key. The first invalid key aborts the call.
func (p *Pool) GetItems(keys ...string) (map[string]*CacheItem, error) {
	items := make(map[string]*CacheItem, len(keys))
	for _, key := range keys {
		item, err := p.GetItem(key)
		if err != nil {
			return nil, err
		}
		items[key] = item
	}
	return items, nil
}

// HasItem reports whether key holds a live entry.
//
// The answer can be stale by the time the caller acts on it; use the hit flag
// from GetItem when the value is needed as well.
func (p *Pool) HasItem(key string) (bool, error) {
	item, err := p.GetItem(key)
	if err != nil {
		return false, err
	}
	return item.IsHit(), nil
}

// DeleteItem removes key. Removing an absent key succeeds.
func (p *Pool) DeleteItem(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	p.store.remove(key)
	return true, nil
}

// DeleteItems removes every key in order, stopping at the first invalid key.
func (p *Pool) DeleteItems(keys ...string) (bool, error) {
	ok := true
	for _, key := range keys {
		deleted, err := p.DeleteItem(key)
		if err != nil {
			return false, err
		}
		ok = ok && deleted
	}
	return ok, nil
}

// Save writes the handle's value. Handles that do not implement Expirer are
// stored without expiration.
func (p *Pool) Save(item Item) (bool, error) {
	if item == nil {
		return false, fmt.Errorf("%w: nil item", ErrInvalidArgument)
	}
	key := item.Key()
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	exp := Never()
	if e, ok := item.(Expirer); ok {
		exp = e.Expiration()
	}
	p.store.write(key, item.Value(), exp)
	return true, nil
}

// SaveDeferred is Save; nothing is buffered.
func (p *Pool) SaveDeferred(item Item) (bool, error) {
	return p.Save(item)
}

// Commit has nothing to flush and always succeeds.
func (p *Pool) Commit() bool {
	return true
}

// Clear removes every entry from the underlying store.
func (p *Pool) Clear() bool {
	p.store.clear()
	return true
}
