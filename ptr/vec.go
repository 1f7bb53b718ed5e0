package ptr

import (
	"slices"

	"github.com/wippyai/ownership/errors"
)

// UniqueVec is an ordered container of Unique owners. Elements move in
// and out by transfer; the container itself moves with TakeVec, which
// hands over the backing slice without touching any element.
type UniqueVec[T Dropper] struct {
	_     noCopy
	items []*Unique[T]
}

// MakeVec builds a container of n owners produced by factory.
func MakeVec[T Dropper](n int, factory func(i int) Unique[T]) UniqueVec[T] {
	items := make([]*Unique[T], 0, n)
	for i := 0; i < n; i++ {
		u := factory(i)
		items = append(items, &u)
	}
	return UniqueVec[T]{items: items}
}

// TakeVec moves src's elements into a new container and leaves src empty.
func TakeVec[T Dropper](src *UniqueVec[T]) UniqueVec[T] {
	items := src.items
	src.items = nil
	return UniqueVec[T]{items: items}
}

// Push moves u's resource into a new element at the end. u is left empty.
func (v *UniqueVec[T]) Push(u *Unique[T]) {
	el := Take(u)
	v.items = append(v.items, &el)
}

// PushNew appends a new owner of r.
func (v *UniqueVec[T]) PushNew(r T) {
	el := NewUnique(r)
	v.items = append(v.items, &el)
}

// Remove deletes element i and drops its resource immediately.
func (v *UniqueVec[T]) Remove(i int) error {
	if i < 0 || i >= len(v.items) {
		return errors.OutOfBounds(errors.PhaseRelease, "vector", i, len(v.items))
	}
	el := v.items[i]
	v.items = slices.Delete(v.items, i, i+1)
	el.Drop()
	return nil
}

// At returns element i, or nil if i is out of range. The element stays
// owned by the container; use Take on it to move the resource out.
func (v *UniqueVec[T]) At(i int) *Unique[T] {
	if i < 0 || i >= len(v.items) {
		return nil
	}
	return v.items[i]
}

// Len returns the number of elements.
func (v *UniqueVec[T]) Len() int {
	return len(v.items)
}

// Each calls fn for every element in order until fn returns false.
func (v *UniqueVec[T]) Each(fn func(int, *Unique[T]) bool) {
	for i, el := range v.items {
		if !fn(i, el) {
			return
		}
	}
}

// Drop drops every element in index order and empties the container.
func (v *UniqueVec[T]) Drop() {
	items := v.items
	v.items = nil
	for _, el := range items {
		el.Drop()
	}
}
