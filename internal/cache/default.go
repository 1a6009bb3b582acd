package cache

import "sync"

var (
	defaultMu    sync.Mutex
	defaultStore *Store
)

// InitDefault constructs the process-wide Store on its first call and returns
// it. Later calls return the same Store and ignore opts.
//
// Code that can take a *Store as a dependency should do so; the default
// exists for callers that have no way to receive one.
func InitDefault(opts Options) *Store {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultStore == nil {
		defaultStore = New(opts)
	}
	return defaultStore
}

// Default returns the Store built by InitDefault.
func Default() (*Store, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultStore == nil {
		return nil, ErrNotInitialized
	}
	return defaultStore, nil
}

// ResetDefault forgets the process-wide Store so the next InitDefault builds a
// new one.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultStore = nil
}
