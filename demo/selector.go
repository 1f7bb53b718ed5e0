package demo

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/wippyai/ownership/errors"
)

// Selector picks one of n release-order branches.
type Selector interface {
	Pick(n int) int
}

// ClockSelector picks by wall-clock seconds, so the branch varies from
// run to run.
type ClockSelector struct {
	Now func() time.Time
}

// Pick implements Selector.
func (c ClockSelector) Pick(n int) int {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return mod(now().Unix(), n)
}

// FixedSelector always picks the same branch, modulo n.
type FixedSelector int

// Pick implements Selector.
func (f FixedSelector) Pick(n int) int {
	return mod(int64(f), n)
}

// RandSelector picks from a seeded PCG source.
type RandSelector struct {
	rng *rand.Rand
}

// NewRandSelector creates a selector whose choices are reproducible for
// a given seed.
func NewRandSelector(seed uint64) *RandSelector {
	return &RandSelector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick implements Selector.
func (r *RandSelector) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

func mod(v int64, n int) int {
	if n <= 0 {
		return 0
	}
	m := int(v % int64(n))
	if m < 0 {
		m += n
	}
	return m
}

// ValidOrders lists the named release orders accepted by ParseSelector.
// Any non-negative integer and any "expr:" expression are accepted as well.
func ValidOrders() []string {
	return []string{"auto", "clock", "random"}
}

// ParseSelector maps an order name to a Selector. "auto" and "clock" use
// the wall clock, "random" uses seed, an integer fixes the branch and
// "expr:..." computes it.
func ParseSelector(order string, seed uint64) (Selector, error) {
	if expression, ok := strings.CutPrefix(order, ExprPrefix); ok {
		return NewExprSelector(expression)
	}
	switch order {
	case "", "auto", "clock":
		return ClockSelector{}, nil
	case "random":
		return NewRandSelector(seed), nil
	}
	n, err := strconv.Atoi(order)
	if err != nil || n < 0 {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(order).
			Detail("release order %q is not auto, clock, random, expr:... or a non-negative integer", order).
			Build()
	}
	return FixedSelector(n), nil
}
