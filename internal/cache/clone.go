package cache

import (
	"reflect"
	"time"
	"unsafe"
)

// Cloner is implemented by payloads that know how to copy themselves.
// CloneValue must return a value that shares no mutable state with the receiver.
type Cloner interface {
	CloneValue() any
}

// cloneValue returns an independent copy of v so that neither the caller nor
// the store can observe the other's later mutations.
//
// Immutable kinds come back unchanged. Slices, arrays, maps, pointers and
// structs are copied recursively, unexported struct fields included. Chans and
// funcs cannot be copied and are shared.
func cloneValue(v any) any {
	switch t := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128,
		time.Time, time.Duration:
		return v
	case []byte:
		if t == nil {
			return t
		}
		out := make([]byte, len(t))
		copy(out, t)
		return out
	case Cloner:
		return t.CloneValue()
	}

	rv := reflect.ValueOf(v)
	return deepCopy(rv, map[visit]reflect.Value{}).Interface()
}

// visit identifies a pointer already copied during one clone, so shared and
// cyclic references keep their shape in the copy.
type visit struct {
	ptr uintptr
	typ reflect.Type
}

// Values of these types are immutable once built and are shared as is.
var (
	timeType     = reflect.TypeFor[time.Time]()
	locationType = reflect.TypeFor[*time.Location]()
)

// exposed returns an addressable, settable view of f, which must itself be
// addressable. It lifts the read-only flag reflect puts on unexported fields.
func exposed(f reflect.Value) reflect.Value {
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

func deepCopy(v reflect.Value, seen map[visit]reflect.Value) reflect.Value {
	if t := v.Type(); t == timeType || t == locationType {
		return v
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		if v.IsNil() {
			return v
		}
	}

	if v.Kind() != reflect.Interface && v.CanInterface() {
		if c, ok := v.Interface().(Cloner); ok {
			if cp := reflect.ValueOf(c.CloneValue()); cp.IsValid() && cp.Type().AssignableTo(v.Type()) {
				return cp
			}
		}
	}

	switch v.Kind() {
	case reflect.Pointer:
		k := visit{ptr: v.Pointer(), typ: v.Type()}
		if cp, ok := seen[k]; ok {
			return cp
		}
		cp := reflect.New(v.Type().Elem())
		seen[k] = cp
		cp.Elem().Set(deepCopy(v.Elem(), seen))
		return cp

	case reflect.Interface:
		cp := reflect.New(v.Type()).Elem()
		cp.Set(deepCopy(v.Elem(), seen))
		return cp

	case reflect.Slice:
		cp := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			cp.Index(i).Set(deepCopy(v.Index(i), seen))
		}
		return cp

	case reflect.Array:
		cp := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			cp.Index(i).Set(deepCopy(v.Index(i), seen))
		}
		return cp

	case reflect.Map:
		cp := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), deepCopy(iter.Value(), seen))
		}
		return cp

	case reflect.Struct:
		// Shallow copy into addressable memory, then replace every field with
		// a deep copy of itself. Unexported fields go through exposed.
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		for i := 0; i < cp.NumField(); i++ {
			f := cp.Field(i)
			if !f.CanSet() {
				f = exposed(f)
			}
			f.Set(deepCopy(f, seen))
		}
		return cp
	}

	return v
}
