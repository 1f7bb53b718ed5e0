package ptr

import (
	"go.uber.org/zap"

	"github.com/wippyai/ownership/errors"
)

// Unique owns at most one resource and is the only owner of it.
//
// The zero value is an empty owner. A Unique must not be copied after
// first use; transfer it with Take, Assign or Release.
type Unique[T Dropper] struct {
	_     noCopy
	value T
	held  bool
}

// NewUnique takes ownership of v. A nil v gives an empty owner.
func NewUnique[T Dropper](v T) Unique[T] {
	if isNil(v) {
		return Unique[T]{}
	}
	return Unique[T]{value: v, held: true}
}

// Take moves src's resource into a new owner and leaves src empty.
// Nothing is dropped.
func Take[T Dropper](src *Unique[T]) Unique[T] {
	v, ok := src.Release()
	if !ok {
		logNullTransfer("take")
	}
	return Unique[T]{value: v, held: ok}
}

// Assign drops the resource u currently holds, then moves src's resource
// into u, leaving src empty. Assigning an owner to itself does nothing.
func (u *Unique[T]) Assign(src *Unique[T]) {
	if u == src {
		return
	}
	u.Reset()
	u.value, u.held = src.Release()
	if !u.held {
		logNullTransfer("assign")
	}
}

// Reset drops the held resource, if any, and leaves u empty.
func (u *Unique[T]) Reset() {
	if v, ok := u.Release(); ok {
		v.Drop()
	}
}

// ResetTo replaces the held resource with v, dropping the old one.
// Resetting to the resource already held does nothing.
func (u *Unique[T]) ResetTo(v T) {
	if u.held && sameValue(v, u.value) {
		return
	}
	old, ok := u.Release()
	if !isNil(v) {
		u.value, u.held = v, true
	}
	if ok {
		old.Drop()
	}
}

// Release gives up ownership without dropping the resource. The caller
// becomes responsible for it; u is left empty.
func (u *Unique[T]) Release() (T, bool) {
	v, ok := u.value, u.held
	var zero T
	u.value, u.held = zero, false
	return v, ok
}

// Deref returns the held resource or a null access error.
func (u *Unique[T]) Deref() (T, error) {
	if !u.held {
		var zero T
		return zero, errors.NullAccess("unique")
	}
	return u.value, nil
}

// Get returns the held resource without giving up ownership.
func (u *Unique[T]) Get() (T, bool) {
	return u.value, u.held
}

// Valid reports whether u holds a resource.
func (u *Unique[T]) Valid() bool {
	return u.held
}

// Drop drops the held resource. Dropping an empty owner is a no-op.
func (u *Unique[T]) Drop() {
	u.Reset()
}

// logNullTransfer notes a transfer whose source held nothing. The
// destination ends up empty, which is legal but usually unintended.
func logNullTransfer(op string) {
	if ce := Logger().Check(zap.DebugLevel, "null transfer"); ce != nil {
		ce.Write(
			zap.String("op", op),
			zap.Error(errors.NullTransfer("unique")))
	}
}
