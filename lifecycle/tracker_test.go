package lifecycle

import (
	"slices"
	"testing"
)

func TestTracker_LiveCounts(t *testing.T) {
	tr := NewTracker()

	tr.Emit(KindConstructed, 1)
	tr.Emit(KindConstructed, 2)
	tr.Emit(KindCopied, 2)
	tr.Emit(KindMoved, 1)

	if got := tr.Live(); got != 3 {
		t.Fatalf("Live() = %d, want 3", got)
	}
	if got := tr.LiveOf(2); got != 2 {
		t.Fatalf("LiveOf(2) = %d, want 2", got)
	}

	tr.Emit(KindDestroyed, 2)
	tr.Emit(KindVacated, 1)
	tr.Emit(KindDestroyed, 1)

	if got := tr.Live(); got != 1 {
		t.Fatalf("Live() = %d, want 1", got)
	}
	if ids := tr.LiveIDs(); !slices.Equal(ids, []int{2}) {
		t.Fatalf("LiveIDs() = %v, want [2]", ids)
	}

	st := tr.Stats()
	want := Stats{Constructed: 2, Copied: 1, Moved: 1, Destroyed: 2, Vacated: 1}
	if st != want {
		t.Fatalf("Stats() = %+v, want %+v", st, want)
	}
}

func TestTracker_SequencesEvents(t *testing.T) {
	rec := NewRecorder()
	tr := NewTracker(rec)

	for i := 0; i < 5; i++ {
		tr.Emit(KindConstructed, i)
	}

	events := rec.Events()
	if len(events) != 5 {
		t.Fatalf("recorded %d events, want 5", len(events))
	}
	for i, e := range events {
		if e.Seq != uint64(i+1) {
			t.Errorf("event %d Seq = %d, want %d", i, e.Seq, i+1)
		}
		if e.ID != i {
			t.Errorf("event %d ID = %d, want %d", i, e.ID, i)
		}
	}
	if tr.Seq() != 5 {
		t.Errorf("Seq() = %d, want 5", tr.Seq())
	}
}

func TestTracker_MultipleSinks(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	var seen []Kind
	tr := NewTracker(a, b, SinkFunc(func(e Event) { seen = append(seen, e.Kind) }))

	tr.Emit(KindConstructed, 1)
	tr.Emit(KindDestroyed, 1)

	if a.Len() != 2 || b.Len() != 2 {
		t.Fatalf("recorders got %d and %d events, want 2 each", a.Len(), b.Len())
	}
	if !slices.Equal(seen, []Kind{KindConstructed, KindDestroyed}) {
		t.Fatalf("SinkFunc saw %v", seen)
	}
}

func TestTracker_NilIsSafe(t *testing.T) {
	var tr *Tracker

	e := tr.Emit(KindConstructed, 3)
	if e.ID != 3 || e.Kind != KindConstructed {
		t.Fatalf("Emit on nil tracker = %v", e)
	}
	if tr.Live() != 0 || tr.LiveIDs() != nil || tr.Seq() != 0 {
		t.Fatal("nil tracker should report nothing")
	}
}

func TestTracker_SinkMayQueryTracker(t *testing.T) {
	var tr *Tracker
	var lives []int
	tr = NewTracker(SinkFunc(func(Event) { lives = append(lives, tr.Live()) }))

	tr.Emit(KindConstructed, 1)
	tr.Emit(KindDestroyed, 1)

	if !slices.Equal(lives, []int{1, 0}) {
		t.Fatalf("live counts seen by sink = %v, want [1 0]", lives)
	}
}

func TestTracker_Overreleased(t *testing.T) {
	tr := NewTracker()

	tr.Emit(KindConstructed, 4)
	tr.Emit(KindConstructed, 7)
	tr.Emit(KindDestroyed, 4)
	tr.Emit(KindDestroyed, 4)

	if got := tr.Live(); got != 0 {
		t.Fatalf("Live() = %d, want 0 (one leak offset by one extra destroy)", got)
	}
	if got := tr.LiveOf(4); got != -1 {
		t.Fatalf("LiveOf(4) = %d, want -1", got)
	}
	if ids := tr.LiveIDs(); !slices.Equal(ids, []int{7}) {
		t.Fatalf("LiveIDs() = %v, want [7]", ids)
	}
	if ids := tr.Overreleased(); !slices.Equal(ids, []int{4}) {
		t.Fatalf("Overreleased() = %v, want [4]", ids)
	}

	tr.Emit(KindCopied, 4)
	if ids := tr.Overreleased(); len(ids) != 0 {
		t.Fatalf("Overreleased() after balancing = %v, want none", ids)
	}
	if tr.LiveOf(4) != 0 {
		t.Fatalf("LiveOf(4) = %d, want 0", tr.LiveOf(4))
	}

	var nilTracker *Tracker
	if nilTracker.Overreleased() != nil {
		t.Fatal("nil tracker should report nothing")
	}
}
