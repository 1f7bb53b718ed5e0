package lifecycle

import (
	"slices"
	"sync"
)

// Stats summarizes the events a tracker has seen.
type Stats struct {
	Constructed    int `json:"constructed" yaml:"constructed"`
	Copied         int `json:"copied" yaml:"copied"`
	Moved          int `json:"moved" yaml:"moved"`
	Destroyed      int `json:"destroyed" yaml:"destroyed"`
	Vacated        int `json:"vacated" yaml:"vacated"`
	DoubleReleases int `json:"double_releases" yaml:"double_releases"`
}

// Live returns constructions and copies not yet matched by a destruction.
func (s Stats) Live() int {
	return s.Constructed + s.Copied - s.Destroyed
}

// Tracker sequences lifecycle events and keeps live counts per identity.
// A nil *Tracker accepts and discards events.
type Tracker struct {
	sink  Sink
	live  map[int]int
	stats Stats
	seq   uint64
	mu    sync.Mutex
}

// NewTracker creates a tracker forwarding to the given sinks.
func NewTracker(sinks ...Sink) *Tracker {
	t := &Tracker{live: make(map[int]int)}
	switch len(sinks) {
	case 0:
	case 1:
		t.sink = sinks[0]
	default:
		t.sink = MultiSink(sinks)
	}
	return t
}

// Emit records one transition for id and returns the stamped event.
func (t *Tracker) Emit(kind Kind, id int) Event {
	if t == nil {
		return Event{Kind: kind, ID: id}
	}

	t.mu.Lock()
	t.seq++
	e := Event{Seq: t.seq, Kind: kind, ID: id}
	switch kind {
	case KindConstructed:
		t.stats.Constructed++
		t.live[id]++
	case KindCopied:
		t.stats.Copied++
		t.live[id]++
	case KindMoved:
		t.stats.Moved++
	case KindDestroyed:
		t.stats.Destroyed++
		// A negative count is kept so Overreleased can report it.
		if t.live[id]--; t.live[id] == 0 {
			delete(t.live, id)
		}
	case KindVacated:
		t.stats.Vacated++
	case KindDoubleRelease:
		t.stats.DoubleReleases++
	}
	sink := t.sink
	t.mu.Unlock()

	// Forwarded outside the lock so a sink may query the tracker.
	if sink != nil {
		sink.Record(e)
	}
	return e
}

// Live returns the number of live values across all identities.
func (t *Tracker) Live() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.Live()
}

// LiveOf returns the number of live values carrying id.
func (t *Tracker) LiveOf(id int) int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live[id]
}

// LiveIDs returns the identities that still have live values, ascending.
// Once a program has unwound every owner, these are its leaks.
func (t *Tracker) LiveIDs() []int {
	return t.ids(func(n int) bool { return n > 0 })
}

// Overreleased returns the identities destroyed more often than they were
// constructed or copied, ascending.
func (t *Tracker) Overreleased() []int {
	return t.ids(func(n int) bool { return n < 0 })
}

func (t *Tracker) ids(keep func(n int) bool) []int {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int, 0, len(t.live))
	for id, n := range t.live {
		if keep(n) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Stats returns a snapshot of the event counters.
func (t *Tracker) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Seq returns the sequence number of the last event.
func (t *Tracker) Seq() uint64 {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}
