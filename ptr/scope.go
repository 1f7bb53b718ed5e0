package ptr

import (
	"go.uber.org/zap"

	"github.com/wippyai/ownership/errors"
)

// Scope collects owners whose lifetime ends with a Run call.
type Scope struct {
	name  string
	drops []Dropper
	count int
}

// Run calls fn with a new scope and drops every owner registered with it,
// newest first, before returning fn's result. Cleanup also runs when fn
// panics; the panic then continues to the caller.
func Run(name string, fn func(s *Scope) error) error {
	s := &Scope{name: name}
	defer s.unwind()
	return fn(s)
}

// Name returns the label the scope was run with.
func (s *Scope) Name() string {
	return s.name
}

// Defer registers d to be dropped when the scope exits.
func (s *Scope) Defer(d Dropper) {
	s.drops = append(s.drops, d)
}

// DeferFunc registers fn to be called when the scope exits.
func (s *Scope) DeferFunc(fn func()) {
	s.Defer(DropFunc(fn))
}

// Pending returns the number of owners not yet dropped.
func (s *Scope) Pending() int {
	return len(s.drops)
}

// Own wraps v in a Unique registered with s.
func Own[T Dropper](s *Scope, v T) *Unique[T] {
	u := NewUnique(v)
	s.Defer(&u)
	return &u
}

// OwnShared wraps v in a Shared registered with s.
func OwnShared[T Dropper](s *Scope, v T) *Shared[T] {
	sh := NewShared(v)
	s.Defer(&sh)
	return &sh
}

func (s *Scope) unwind() {
	// A panicking Drop does not stop the remaining drops.
	defer func() {
		if len(s.drops) > 0 {
			s.unwind()
			return
		}
		Logger().Debug("scope unwound",
			zap.String("scope", s.name),
			zap.Int("dropped", s.count))
	}()

	for len(s.drops) > 0 {
		last := len(s.drops) - 1
		d := s.drops[last]
		s.drops[last] = nil
		s.drops = s.drops[:last]
		s.count++
		d.Drop()
	}
}

// Try calls fn and converts a panic into an errors.KindPanic error, the
// way a catch-all handler would. Scopes entered inside fn have already
// unwound by the time Try returns.
func Try(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Debug("recovered panic",
				zap.Any("panic", r))
			err = errors.Recovered(r)
		}
	}()
	return fn()
}
