package cache

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ReservedCharacters may not appear anywhere in a key.
const ReservedCharacters = `{}()/\@:`

// ValidateKey reports whether key can be used with any store operation.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrInvalidKey)
	}
	if i := strings.IndexAny(key, ReservedCharacters); i >= 0 {
		return fmt.Errorf("%w: %q contains reserved character %q", ErrInvalidKey, key, key[i])
	}
	return nil
}

// keyString validates a loosely typed key taken from a bulk collection.
func keyString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: key must be a string, got %T", ErrInvalidKey, v)
	}
	return s, ValidateKey(s)
}

// coerceKey is keyString for map keys, where integer keys are accepted in
// their decimal form.
func coerceKey(v any) (string, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return keyString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return keyString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.String:
		return keyString(rv.String())
	}
	return keyString(v)
}
