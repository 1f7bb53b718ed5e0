package ptr

import "github.com/wippyai/ownership/errors"

// Exclusive is a minimal owning pointer in the style of the pre-move
// smart pointers: it drops its resource when dropped and does nothing
// else. It can be copied like any Go value, and nothing tracks that a
// copy exists. Two copies that are both dropped release the resource
// twice. Use Unique for real code; Exclusive exists to show the hazard.
type Exclusive[T Dropper] struct {
	value T
	held  bool
}

// NewExclusive wraps v. A nil v gives an empty pointer.
func NewExclusive[T Dropper](v T) Exclusive[T] {
	if isNil(v) {
		return Exclusive[T]{}
	}
	return Exclusive[T]{value: v, held: true}
}

// Deref returns the held resource or a null access error.
func (e *Exclusive[T]) Deref() (T, error) {
	if !e.held {
		var zero T
		return zero, errors.NullAccess("exclusive")
	}
	return e.value, nil
}

// Get returns the held resource without giving up ownership.
func (e *Exclusive[T]) Get() (T, bool) {
	return e.value, e.held
}

// Valid reports whether the pointer holds a resource.
func (e *Exclusive[T]) Valid() bool {
	return e.held
}

// Drop drops the held resource, if any, and empties this copy.
// Other copies still refer to the resource.
func (e *Exclusive[T]) Drop() {
	if !e.held {
		return
	}
	v := e.value
	var zero T
	e.value, e.held = zero, false
	v.Drop()
}
