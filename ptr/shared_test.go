package ptr

import (
	"errors"
	"fmt"
	"testing"

	ownerrors "github.com/wippyai/ownership/errors"
	"github.com/wippyai/ownership/lifecycle"
	"github.com/wippyai/ownership/tracked"
)

func TestShared_LastOwnerDrops(t *testing.T) {
	h := newHarness(t)

	a := NewShared(h.res(500))
	b := a.Clone()
	c := b.Clone()

	if a.UseCount() != 3 {
		t.Fatalf("UseCount() = %d, want 3", a.UseCount())
	}
	if !a.SameOwner(&c) {
		t.Fatal("clones should share a count cell")
	}

	a.Reset()
	b.Reset()
	if c.UseCount() != 1 {
		t.Fatalf("UseCount() = %d, want 1", c.UseCount())
	}
	h.expectDestroyed(500, 0)

	before := h.rec.Len()
	c.Reset()
	events := h.rec.Since(before)
	if len(events) != 1 || events[0].Kind != lifecycle.KindDestroyed || events[0].ID != 500 {
		t.Fatalf("last drop emitted %v, want one destroyed(500)", events)
	}
	h.expectLive(0)
}

// Property: for every release order the resource is destroyed exactly
// once, immediately after the last release, and never before.
func TestShared_AnyReleaseOrder(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for _, order := range permutations(n) {
			t.Run(fmt.Sprintf("n=%d/%v", n, order), func(t *testing.T) {
				h := newHarness(t)

				owners := make([]Shared[*tracked.Resource], n)
				owners[0] = NewShared(h.res(1))
				for i := 1; i < n; i++ {
					owners[i] = owners[0].Clone()
				}

				for step, idx := range order {
					owners[idx].Drop()
					want := 0
					if step == n-1 {
						want = 1
					}
					h.expectDestroyed(1, want)
				}
				for i := range owners {
					if owners[i].Valid() {
						t.Fatalf("owner %d still valid after Drop", i)
					}
				}
			})
		}
	}
}

func TestShared_DropIsIdempotentPerHandle(t *testing.T) {
	h := newHarness(t)

	a := NewShared(h.res(7))
	b := a.Clone()

	a.Drop()
	a.Drop()
	a.Reset()

	if b.UseCount() != 1 {
		t.Fatalf("UseCount() = %d, want 1", b.UseCount())
	}
	h.expectDestroyed(7, 0)

	b.Drop()
	h.expectDestroyed(7, 1)
}

func TestShared_Empty(t *testing.T) {
	var s Shared[*tracked.Resource]
	if s.Valid() || s.UseCount() != 0 {
		t.Fatal("zero value should be empty")
	}
	_, err := s.Deref()
	if !errors.Is(err, &ownerrors.Error{Phase: ownerrors.PhaseAccess, Kind: ownerrors.KindNullAccess}) {
		t.Fatalf("Deref error = %v, want null access", err)
	}
	c := s.Clone()
	if c.Valid() {
		t.Fatal("clone of empty owner should be empty")
	}
	if s.SameOwner(&c) {
		t.Fatal("empty owners share nothing")
	}
	s.Drop()

	n := NewShared[*tracked.Resource](nil)
	if n.Valid() {
		t.Fatal("owner built from nil should be empty")
	}
}

func TestShared_FromUnique(t *testing.T) {
	h := newHarness(t)

	u := NewUnique(h.res(3))
	s := Share(&u)
	if u.Valid() {
		t.Fatal("Share should empty the unique owner")
	}
	if s.UseCount() != 1 {
		t.Fatalf("UseCount() = %d, want 1", s.UseCount())
	}
	r, err := s.Deref()
	if err != nil || r.ID() != 3 {
		t.Fatalf("Deref = %v, %v", r, err)
	}

	var empty Unique[*tracked.Resource]
	if e := Share(&empty); e.Valid() {
		t.Fatal("sharing an empty owner should give an empty owner")
	}

	s.Drop()
	h.expectDestroyed(3, 1)
}
