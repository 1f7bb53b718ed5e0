package ptr

import "reflect"

// Dropper is implemented by values that need cleanup at end of lifetime.
type Dropper interface {
	Drop()
}

// DropFunc adapts a function to the Dropper interface.
type DropFunc func()

// Drop calls f.
func (f DropFunc) Drop() {
	f()
}

// noCopy makes go vet's copylocks check report copies of the embedding
// struct. It has no runtime effect.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// isNil reports whether v is a nil pointer-like value. Wrappers treat a
// nil resource the same as no resource.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// sameValue reports whether a and b are the same comparable value. Values
// of types that cannot be compared, such as DropFunc, are never the same.
func sameValue(a, b any) bool {
	if isNil(a) || isNil(b) {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
