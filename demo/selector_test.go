package demo

import (
	"errors"
	"testing"
	"time"

	ownerrors "github.com/wippyai/ownership/errors"
)

func TestClockSelector(t *testing.T) {
	tests := []struct {
		unix int64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{1373846400, 1373846400 % 3},
	}
	for _, tt := range tests {
		sel := ClockSelector{Now: func() time.Time { return time.Unix(tt.unix, 0) }}
		if got := sel.Pick(3); got != tt.want {
			t.Errorf("Pick(3) at %d = %d, want %d", tt.unix, got, tt.want)
		}
	}

	if got := (ClockSelector{}).Pick(3); got < 0 || got > 2 {
		t.Errorf("Pick(3) with real clock = %d", got)
	}
}

func TestFixedSelector(t *testing.T) {
	if got := FixedSelector(4).Pick(3); got != 1 {
		t.Errorf("Pick = %d, want 1", got)
	}
	if got := FixedSelector(-1).Pick(3); got != 2 {
		t.Errorf("Pick of negative = %d, want 2", got)
	}
	if got := FixedSelector(5).Pick(0); got != 0 {
		t.Errorf("Pick(0) = %d, want 0", got)
	}
}

func TestRandSelector_Reproducible(t *testing.T) {
	a, b := NewRandSelector(42), NewRandSelector(42)
	for i := 0; i < 20; i++ {
		x, y := a.Pick(3), b.Pick(3)
		if x != y {
			t.Fatalf("pick %d differs: %d vs %d", i, x, y)
		}
		if x < 0 || x > 2 {
			t.Fatalf("pick %d out of range: %d", i, x)
		}
	}
	if a.Pick(0) != 0 {
		t.Fatal("Pick(0) should be 0")
	}
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		order   string
		want    Selector
		wantErr bool
	}{
		{order: "", want: ClockSelector{}},
		{order: "auto", want: ClockSelector{}},
		{order: "clock", want: ClockSelector{}},
		{order: "2", want: FixedSelector(2)},
		{order: "-1", wantErr: true},
		{order: "sideways", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			sel, err := ParseSelector(tt.order, 0)
			if tt.wantErr {
				if !errors.Is(err, &ownerrors.Error{Phase: ownerrors.PhaseConfig, Kind: ownerrors.KindInvalidInput}) {
					t.Fatalf("err = %v, want invalid input", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelector(%q): %v", tt.order, err)
			}
			switch want := tt.want.(type) {
			case ClockSelector:
				if _, ok := sel.(ClockSelector); !ok {
					t.Fatalf("got %T, want ClockSelector", sel)
				}
			case FixedSelector:
				if sel != want {
					t.Fatalf("got %v, want %v", sel, want)
				}
			}
		})
	}

	sel, err := ParseSelector("random", 7)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sel.(*RandSelector); !ok {
		t.Fatalf("random gave %T", sel)
	}
}

func TestExprSelector(t *testing.T) {
	at := func(unix int64) func() time.Time {
		return func() time.Time { return time.Unix(unix, 0) }
	}

	tests := []struct {
		expression string
		unix       int64
		want       int
	}{
		{"unix % n", 7, 1},
		{"n - 1", 0, 2},
		{"int(unix / 60)", 125, 2},
		{"5", 0, 2},
		{"-1", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			sel, err := NewExprSelector(tt.expression)
			if err != nil {
				t.Fatalf("NewExprSelector: %v", err)
			}
			sel.Now = at(tt.unix)
			if got := sel.Pick(3); got != tt.want {
				t.Fatalf("Pick(3) = %d, want %d", got, tt.want)
			}
		})
	}

	zero, err := NewExprSelector("unix % (n - 3)")
	if err != nil {
		t.Fatal(err)
	}
	if got := zero.Pick(3); got != 0 {
		t.Fatalf("failed evaluation picked %d, want 0", got)
	}
}

func TestExprSelector_Invalid(t *testing.T) {
	invalid := &ownerrors.Error{Phase: ownerrors.PhaseConfig, Kind: ownerrors.KindInvalidInput}
	for _, expression := range []string{"", "  ", "unix +", `"text"`, "missing"} {
		if _, err := NewExprSelector(expression); !errors.Is(err, invalid) {
			t.Errorf("NewExprSelector(%q) err = %v, want invalid input", expression, err)
		}
	}

	sel, err := ParseSelector("expr:unix % n", 0)
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := sel.(*ExprSelector); !ok || s.String() != "unix % n" {
		t.Fatalf("ParseSelector gave %T %v", sel, sel)
	}
}
