// Package tracked provides a value whose every lifetime transition is
// observable through a lifecycle.Tracker.
package tracked

import (
	"fmt"

	"github.com/wippyai/ownership/errors"
	"github.com/wippyai/ownership/lifecycle"
)

type state uint8

const (
	stateLive state = iota
	stateMovedFrom
	stateDropped
)

// Resource is a tracked value identified by an integer id.
//
// A Resource must be dropped exactly once. Dropping it a second time is a
// double release: the event is recorded and Drop panics with an
// errors.KindDoubleRelease error, the way freeing freed memory aborts.
type Resource struct {
	tracker *lifecycle.Tracker
	id      int
	state   state
}

// New constructs a resource and records the construction.
func New(tr *lifecycle.Tracker, id int) *Resource {
	r := &Resource{tracker: tr, id: id}
	tr.Emit(lifecycle.KindConstructed, id)
	return r
}

// ID returns the identity the resource was constructed with.
// A moved-from resource keeps its id.
func (r *Resource) ID() int {
	return r.id
}

// Clone builds an independent resource carrying the same id.
func (r *Resource) Clone() *Resource {
	c := &Resource{tracker: r.tracker, id: r.id}
	r.tracker.Emit(lifecycle.KindCopied, r.id)
	return c
}

// Move builds a resource that takes over r's identity. Afterwards r is a
// moved-from shell: it still has to be dropped, but its drop is recorded
// as vacated rather than destroyed.
//
// Moving from a shell yields another shell. Moving from a dropped
// resource is a use after release and panics like a second Drop.
func (r *Resource) Move() *Resource {
	switch r.state {
	case stateLive:
		r.state = stateMovedFrom
		r.tracker.Emit(lifecycle.KindMoved, r.id)
		return &Resource{tracker: r.tracker, id: r.id}
	case stateMovedFrom:
		r.tracker.Emit(lifecycle.KindMoved, r.id)
		return &Resource{tracker: r.tracker, id: r.id, state: stateMovedFrom}
	default:
		r.tracker.Emit(lifecycle.KindDoubleRelease, r.id)
		panic(errors.New(errors.PhaseTransfer, errors.KindDoubleRelease).
			Owner("resource").
			ID(r.id).
			Detail("move from a dropped resource").
			Build())
	}
}

// Drop ends the resource's lifetime.
func (r *Resource) Drop() {
	switch r.state {
	case stateLive:
		r.state = stateDropped
		r.tracker.Emit(lifecycle.KindDestroyed, r.id)
	case stateMovedFrom:
		r.state = stateDropped
		r.tracker.Emit(lifecycle.KindVacated, r.id)
	default:
		r.tracker.Emit(lifecycle.KindDoubleRelease, r.id)
		panic(errors.DoubleRelease(r.id))
	}
}

// Live reports whether the resource has neither been dropped nor moved from.
func (r *Resource) Live() bool {
	return r.state == stateLive
}

// MovedFrom reports whether the resource was emptied by Move and not yet dropped.
func (r *Resource) MovedFrom() bool {
	return r.state == stateMovedFrom
}

// Dropped reports whether Drop has run.
func (r *Resource) Dropped() bool {
	return r.state == stateDropped
}

func (r *Resource) String() string {
	switch r.state {
	case stateMovedFrom:
		return fmt.Sprintf("resource(%d, moved-from)", r.id)
	case stateDropped:
		return fmt.Sprintf("resource(%d, dropped)", r.id)
	default:
		return fmt.Sprintf("resource(%d)", r.id)
	}
}
