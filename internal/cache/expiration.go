package cache

import (
	"fmt"
	"reflect"
	"time"
)

// Expiration is either "never" or an absolute instant.
// The zero value never expires.
type Expiration struct {
	at  time.Time
	set bool
}

// Never returns an Expiration that never elapses.
func Never() Expiration { return Expiration{} }

// At returns an Expiration that elapses at t.
func At(t time.Time) Expiration { return Expiration{at: t, set: true} }

// Time returns the expiration instant and whether one is set.
func (e Expiration) Time() (time.Time, bool) { return e.at, e.set }

// IsNever reports whether e never elapses.
func (e Expiration) IsNever() bool { return !e.set }

// ValidAt reports whether an entry carrying e is still live at now.
func (e Expiration) ValidAt(now time.Time) bool {
	return !e.set || e.at.After(now)
}

func (e Expiration) String() string {
	if !e.set {
		return "never"
	}
	return e.at.Format(time.RFC3339Nano)
}

type noTTL struct{}

// NoTTL explicitly requests an entry that never expires. Passing nil has the
// same effect.
var NoTTL = noTTL{}

// ResolveTTL converts a TTL argument into an absolute Expiration.
//
// Accepted forms are nil, NoTTL, a time.Duration, or any integer kind counted
// in seconds. Every other type is ErrInvalidArgument, as is a second count
// that does not fit in a time.Duration. A zero or negative TTL resolves to an
// instant at or before now, which is already elapsed.
func ResolveTTL(ttl any, now time.Time) (Expiration, error) {
	switch v := ttl.(type) {
	case nil, noTTL:
		return Never(), nil
	case time.Duration:
		return At(now.Add(v)), nil
	}

	rv := reflect.ValueOf(ttl)
	var secs int64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		secs = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(maxTTLSeconds) {
			return Expiration{}, fmt.Errorf("%w: ttl %d out of range", ErrInvalidArgument, u)
		}
		secs = int64(u)
	default:
		return Expiration{}, fmt.Errorf("%w: ttl must be nil, an integer number of seconds or a time.Duration, got %T", ErrInvalidArgument, ttl)
	}
	if secs > maxTTLSeconds || secs < -maxTTLSeconds {
		return Expiration{}, fmt.Errorf("%w: ttl %d out of range", ErrInvalidArgument, secs)
	}
	return At(now.Add(time.Duration(secs) * time.Second)), nil
}

// maxTTLSeconds keeps secs*time.Second inside time.Duration.
const maxTTLSeconds = int64(1<<63-1) / int64(time.Second)
