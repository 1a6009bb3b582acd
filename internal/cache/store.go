package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// entry stores a cached value and its expiration.
type entry struct {
	value     any
	expiresAt Expiration
}

// Store is the map shared by Pool and Simple. Every read and write of the map
// goes through read, write, remove and clear.
//
// Expired entries are removed lazily, the next time they are read. There is no
// background janitor; PurgeExpired sweeps on demand.
type Store struct {
	// If muPtr is nil, the store is NOT goroutine-safe.
	// If muPtr is non-nil, it guards all operations.
	muPtr *sync.RWMutex

	items map[string]entry
	log   zerolog.Logger
}

// Options controls construction of a Store.
type Options struct {
	// SingleThreaded drops the RWMutex. Such a store is NOT safe for
	// concurrent use and may be faster in single-threaded contexts.
	SingleThreaded bool

	// Logger receives debug events. Nil disables logging.
	Logger *zerolog.Logger
}

// New constructs an empty Store with the given options. The zero Options
// give a goroutine-safe store.
func New(opts Options) *Store {
	var mu *sync.RWMutex
	if !opts.SingleThreaded {
		mu = &sync.RWMutex{}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "cache").Logger()
	}
	return &Store{
		muPtr: mu,
		items: make(map[string]entry),
		log:   log,
	}
}

func (s *Store) lockR() func() {
	if s.muPtr == nil {
		return func() {}
	}
	s.muPtr.RLock()
	return s.muPtr.RUnlock
}

func (s *Store) lockW() func() {
	if s.muPtr == nil {
		return func() {}
	}
	s.muPtr.Lock()
	return s.muPtr.Unlock
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

// read returns a copy of the live value under key. An expired entry is
// removed and reported as a miss.
func (s *Store) read(key string, at time.Time) (any, Expiration, bool) {
	unlock := s.lockR()
	e, ok := s.items[key]
	unlock()
	if !ok {
		return nil, Expiration{}, false
	}
	if e.expiresAt.ValidAt(at) {
		return cloneValue(e.value), e.expiresAt, true
	}

	unlock = s.lockW()
	defer unlock()
	// A writer may have replaced the entry between the two locks.
	e, ok = s.items[key]
	if !ok {
		return nil, Expiration{}, false
	}
	if e.expiresAt.ValidAt(at) {
		return cloneValue(e.value), e.expiresAt, true
	}
	delete(s.items, key)
	s.log.Debug().Str("key", key).Stringer("expired_at", e.expiresAt).Msg("evicted expired entry")
	return nil, Expiration{}, false
}

// write stores a copy of value under key, replacing any existing entry.
func (s *Store) write(key string, value any, exp Expiration) {
	v := cloneValue(value)

	unlock := s.lockW()
	defer unlock()
	s.items[key] = entry{value: v, expiresAt: exp}
}

// remove deletes key if present.
func (s *Store) remove(key string) {
	unlock := s.lockW()
	defer unlock()
	delete(s.items, key)
}

// clear removes every entry.
func (s *Store) clear() {
	unlock := s.lockW()
	defer unlock()
	n := len(s.items)
	s.items = make(map[string]entry)
	s.log.Debug().Int("removed", n).Msg("cleared store")
}

// Len returns the number of entries held, including expired entries that
// have not been read since they elapsed.
func (s *Store) Len() int {
	unlock := s.lockR()
	defer unlock()
	return len(s.items)
}

// Keys returns the held keys in sorted order. Like Len it does not filter
// expired entries.
func (s *Store) Keys() []string {
	unlock := s.lockR()
	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	unlock()
	sort.Strings(keys)
	return keys
}

// PurgeExpired scans and removes expired entries and returns how many it removed.
func (s *Store) PurgeExpired() int {
	unlock := s.lockW()
	defer unlock()
	if len(s.items) == 0 {
		return 0
	}
	nowTs := now()
	removed := 0
	for k, e := range s.items {
		if !e.expiresAt.ValidAt(nowTs) {
			delete(s.items, k)
			removed++
		}
	}
	s.log.Debug().Int("removed", removed).Msg("purged expired entries")
	return removed
}
