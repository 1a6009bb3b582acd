package cache

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"reflect"

	"golang.org/x/sync/singleflight"
)

// KeyValue is one association accepted by SetMultiple.
type KeyValue struct {
	Key   string
	Value any
}

// Simple is the value-oriented view of a Store.
//
// TTL arguments accept nil or NoTTL (never expire), an integer number of
// seconds, or a time.Duration.
type Simple struct {
	store *Store

	// sf collapses concurrent Remember loads of the same key into one call.
	sf singleflight.Group
}

// NewSimple returns a Simple backed by s.
func NewSimple(s *Store) *Simple {
	return &Simple{store: s}
}

// Get returns the value stored under key, or def when there is no live entry.
func (c *Simple) Get(key string, def any) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if v, _, ok := c.store.read(key, now()); ok {
		return v, nil
	}
	return def, nil
}

// Set stores value under key with the given ttl.
func (c *Simple) Set(key string, value any, ttl any) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	exp, err := ResolveTTL(ttl, now())
	if err != nil {
		return false, err
	}
	c.store.write(key, value, exp)
	return true, nil
}

// Delete removes key. Removing an absent key succeeds.
func (c *Simple) Delete(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	c.store.remove(key)
	return true, nil
}

// Clear removes every entry from the underlying store.
func (c *Simple) Clear() bool {
	c.store.clear()
	return true
}

// Has reports whether key holds a live entry.
func (c *Simple) Has(key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	_, _, ok := c.store.read(key, now())
	return ok, nil
}

// GetMultiple returns the value or def for every key. keys may be a []string,
// a []any, an iter.Seq[string] or any other slice or array. The first invalid
// key aborts the call.
func (c *Simple) GetMultiple(keys any, def any) (map[string]any, error) {
	list, err := collectKeys(keys)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(list))
	for _, k := range list {
		key, err := keyString(k)
		if err != nil {
			return nil, err
		}
		v, err := c.Get(key, def)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// SetMultiple stores every association in values with one shared expiration.
// values may be a []KeyValue or a map keyed by strings or integers; integer
// keys are stored under their decimal form.
//
// Invalid keys do not stop the remaining writes. The result is false and the
// error joins every key failure when any key was rejected.
func (c *Simple) SetMultiple(values any, ttl any) (bool, error) {
	pairs, err := collectValues(values)
	if err != nil {
		return false, err
	}
	exp, err := ResolveTTL(ttl, now())
	if err != nil {
		return false, err
	}

	var errs []error
	for _, p := range pairs {
		key, err := coerceKey(p.key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.store.write(key, p.value, exp)
	}
	return len(errs) == 0, errors.Join(errs...)
}

// DeleteMultiple removes every key. keys accepts the same shapes as
// GetMultiple. Like SetMultiple it carries on past invalid keys and reports
// them together.
func (c *Simple) DeleteMultiple(keys any) (bool, error) {
	list, err := collectKeys(keys)
	if err != nil {
		return false, err
	}

	ok := true
	var errs []error
	for _, k := range list {
		key, err := keyString(k)
		if err != nil {
			errs = append(errs, err)
			ok = false
			continue
		}
		deleted, err := c.Delete(key)
		if err != nil {
			errs = append(errs, err)
		}
		ok = ok && deleted
	}
	return ok, errors.Join(errs...)
}

// Remember returns the live value under key, or calls load, stores its result
// with ttl and returns it. Concurrent misses on one key share a single load.
// Load errors are returned as is and nothing is stored.
//
// The shared load sees ctx values but not its cancellation. A caller whose ctx
// ends stops waiting; the load carries on for the others.
func (c *Simple) Remember(ctx context.Context, key string, ttl any, load func(context.Context) (any, error)) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if _, err := ResolveTTL(ttl, now()); err != nil {
		return nil, err
	}
	if v, _, ok := c.store.read(key, now()); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key, func() (any, error) {
		// A load that finished while we waited for the flight already filled the key.
		if v, _, ok := c.store.read(key, now()); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		exp, err := ResolveTTL(ttl, now())
		if err != nil {
			return nil, err
		}
		c.store.write(key, v, exp)
		c.store.log.Debug().Str("key", key).Stringer("expires_at", exp).Msg("loaded entry")
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneValue(res.Val), nil
	}
}

func collectKeys(keys any) ([]any, error) {
	switch v := keys.(type) {
	case []string:
		out := make([]any, len(v))
		for i, k := range v {
			out[i] = k
		}
		return out, nil
	case []any:
		return v, nil
	case iter.Seq[string]:
		return collectSeq(v), nil
	case func(func(string) bool):
		return collectSeq(v), nil
	}

	rv := reflect.ValueOf(keys)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: keys must be a slice, array or iter.Seq[string], got %T", ErrInvalidArgument, keys)
}

func collectSeq(seq iter.Seq[string]) []any {
	var out []any
	for k := range seq {
		out = append(out, k)
	}
	return out
}

type pair struct {
	key   any
	value any
}

func collectValues(values any) ([]pair, error) {
	switch v := values.(type) {
	case []KeyValue:
		out := make([]pair, len(v))
		for i, kv := range v {
			out[i] = pair{key: kv.Key, value: kv.Value}
		}
		return out, nil
	case map[string]any:
		out := make([]pair, 0, len(v))
		for k, val := range v {
			out = append(out, pair{key: k, value: val})
		}
		return out, nil
	}

	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: values must be a map or []KeyValue, got %T", ErrInvalidArgument, values)
	}
	out := make([]pair, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out = append(out, pair{key: it.Key().Interface(), value: it.Value().Interface()})
	}
	return out, nil
}
