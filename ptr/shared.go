package ptr

import (
	"go.uber.org/atomic"

	"github.com/wippyai/ownership/errors"
)

// Shared is one of possibly many owners of a resource. All owners of the
// same resource share a single count cell; the resource is dropped by
// whichever owner brings the count to zero.
//
// The zero value is an empty owner. New owners come from Clone; a Shared
// must not be copied after first use.
type Shared[T Dropper] struct {
	_     noCopy
	value T
	refs  *atomic.Int32
}

// NewShared takes ownership of v with a count of one. A nil v gives an
// empty owner.
func NewShared[T Dropper](v T) Shared[T] {
	if isNil(v) {
		return Shared[T]{}
	}
	return Shared[T]{value: v, refs: atomic.NewInt32(1)}
}

// Share converts a unique owner into the first shared owner. u is left
// empty.
func Share[T Dropper](u *Unique[T]) Shared[T] {
	v, ok := u.Release()
	if !ok {
		logNullTransfer("share")
		return Shared[T]{}
	}
	return Shared[T]{value: v, refs: atomic.NewInt32(1)}
}

// Clone returns a new owner of the same resource and increments the
// count. Cloning an empty owner returns an empty owner.
func (s *Shared[T]) Clone() Shared[T] {
	if s.refs == nil {
		return Shared[T]{}
	}
	s.refs.Inc()
	return Shared[T]{value: s.value, refs: s.refs}
}

// Drop gives up this owner's share. The decrement is a single atomic step;
// the owner that reaches zero drops the resource. Afterwards s is empty,
// so dropping it again is a no-op.
func (s *Shared[T]) Drop() {
	refs := s.refs
	if refs == nil {
		return
	}
	v := s.value
	var zero T
	s.value, s.refs = zero, nil

	switch n := refs.Dec(); {
	case n == 0:
		v.Drop()
	case n < 0:
		panic(errors.RefUnderflow("shared", n))
	}
}

// Reset is Drop under the name callers of shared pointers expect.
func (s *Shared[T]) Reset() {
	s.Drop()
}

// UseCount returns the number of live owners of s's resource, or 0 if s
// is empty.
func (s *Shared[T]) UseCount() int32 {
	if s.refs == nil {
		return 0
	}
	return s.refs.Load()
}

// Deref returns the held resource or a null access error.
func (s *Shared[T]) Deref() (T, error) {
	if s.refs == nil {
		var zero T
		return zero, errors.NullAccess("shared")
	}
	return s.value, nil
}

// Get returns the held resource.
func (s *Shared[T]) Get() (T, bool) {
	return s.value, s.refs != nil
}

// Valid reports whether s holds a resource.
func (s *Shared[T]) Valid() bool {
	return s.refs != nil
}

// SameOwner reports whether s and other share one count cell.
func (s *Shared[T]) SameOwner(other *Shared[T]) bool {
	return s.refs != nil && s.refs == other.refs
}
