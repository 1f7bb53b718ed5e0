package demo

import (
	"github.com/wippyai/ownership/ptr"
	"github.com/wippyai/ownership/tracked"
)

// Scenario is one step of the driving sequence.
type Scenario struct {
	run     func(*Env) error
	Name    string
	Summary string
}

var registry = []Scenario{
	{Name: "stack", Summary: "value owned by the enclosing scope", run: runStack},
	{Name: "raw-leak", Summary: "plain pointer never dropped", run: runRawLeak},
	{Name: "exclusive", Summary: "exclusive pointer holding a value", run: runExclusive},
	{Name: "exclusive-null", Summary: "exclusive pointer holding nothing", run: runExclusiveNull},
	{Name: "exclusive-alias", Summary: "two exclusive pointers claiming one value", run: runExclusiveAlias},
	{Name: "goto-raw", Summary: "jump past a manual drop", run: runGotoRaw},
	{Name: "goto-stack", Summary: "early exit from a scope owning a value", run: runGotoStack},
	{Name: "goto-exclusive", Summary: "early exit from a scope owning an exclusive pointer", run: runGotoExclusive},
	{Name: "panic-raw", Summary: "panic between new and drop", run: runPanicRaw},
	{Name: "panic-unique", Summary: "panic inside a scope owning a unique owner", run: runPanicUnique},
	{Name: "baton", Summary: "unique owner returned from a factory and passed on", run: runBaton},
	{Name: "vectors", Summary: "containers of unique owners", run: runVectors},
	{Name: "shared", Summary: "three shared owners released in clock-chosen order", run: runShared},
}

// Scenarios returns the registry in run order.
func Scenarios() []Scenario {
	out := make([]Scenario, len(registry))
	copy(out, registry)
	return out
}

// Names returns the scenario names in run order.
func Names() []string {
	names := make([]string, len(registry))
	for i, sc := range registry {
		names[i] = sc.Name
	}
	return names
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	for _, sc := range registry {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

func runStack(env *Env) error {
	foo := tracked.New(env.tracker, 1)
	env.main.Defer(foo)
	env.Notef("foo %d lives until the outer scope ends", foo.ID())
	return nil
}

func runRawLeak(env *Env) error {
	foo2 := tracked.New(env.tracker, 2)
	env.Notef("the id of foo2 is %d", foo2.ID())
	env.Notef("foo2 is never dropped; it is leaked")
	return nil
}

func runExclusive(env *Env) error {
	foo3 := ptr.NewExclusive(tracked.New(env.tracker, 3))
	env.main.Defer(&foo3)
	describeExclusive(env, "foo3", &foo3)
	return nil
}

func runExclusiveNull(env *Env) error {
	var foo4 ptr.Exclusive[*tracked.Resource]
	describeExclusive(env, "foo4", &foo4)
	if _, err := foo4.Deref(); err != nil {
		env.Notef("dereferencing foo4: %v", err)
	}
	return nil
}

func describeExclusive(env *Env, name string, e *ptr.Exclusive[*tracked.Resource]) {
	r, err := e.Deref()
	if err != nil {
		env.Notef("exclusive %s is null", name)
		return
	}
	env.Notef("exclusive %s is not null", name)
	env.Notef("exclusive %s has id %d", name, r.ID())
}

func runExclusiveAlias(env *Env) error {
	foo5 := ptr.NewExclusive(tracked.New(env.tracker, 5))
	if !env.opts.Hazard {
		env.main.Defer(&foo5)
		env.Notef("foo5 has a single owner; enable the hazard to alias it")
		return nil
	}

	// Both pointers believe they own resource 5. The second drop is a
	// double release and panics.
	err := ptr.Try(func() error {
		return ptr.Run("foo5", func(s *ptr.Scope) error {
			s.Defer(&foo5)
			r, _ := foo5.Get()
			foo6 := ptr.NewExclusive(r)
			s.Defer(&foo6)
			return nil
		})
	})
	if err != nil {
		env.Notef("aliasing exclusive pointers failed: %v", err)
	}
	return err
}

func runGotoRaw(env *Env) error {
	foo6 := tracked.New(env.tracker, 6)
	if foo6.Live() {
		goto afterFoo6
	}
	foo6.Drop()
afterFoo6:
	env.Notef("the drop of foo6 was jumped over; foo6 is leaked")
	return nil
}

func runGotoStack(env *Env) error {
	before := destroyed(env)
	_ = ptr.Run("foo7", func(s *ptr.Scope) error {
		foo7 := tracked.New(env.tracker, 7)
		s.Defer(foo7)
		if foo7.Live() {
			return nil
		}
		env.Notef("not reached")
		return nil
	})
	env.Notef("leaving the scope early dropped %d value(s); foo7 is not leaked", destroyed(env)-before)
	return nil
}

func runGotoExclusive(env *Env) error {
	before := destroyed(env)
	_ = ptr.Run("foo8", func(s *ptr.Scope) error {
		foo8 := ptr.NewExclusive(tracked.New(env.tracker, 8))
		s.Defer(&foo8)
		if foo8.Valid() {
			return nil
		}
		env.Notef("not reached")
		return nil
	})
	env.Notef("early exit cannot get around an owning pointer either: %d dropped", destroyed(env)-before)
	return nil
}

func runPanicRaw(env *Env) error {
	err := ptr.Try(func() error {
		foo8 := tracked.New(env.tracker, 8)
		doSomethingInnocuous()
		foo8.Drop()
		return nil
	})
	if err != nil {
		env.Notef("caught %v, but foo8 wasn't destroyed", err)
	}
	return nil
}

func runPanicUnique(env *Env) error {
	before := destroyed(env)
	err := ptr.Try(func() error {
		return ptr.Run("foo800", func(s *ptr.Scope) error {
			ptr.Own(s, tracked.New(env.tracker, 800))
			doSomethingInnocuous()
			return nil
		})
	})
	if err != nil {
		env.Notef("caught %v; the unique owner dropped %d value(s) while unwinding", err, destroyed(env)-before)
	}
	return nil
}

// doSomethingInnocuous looks harmless and isn't.
func doSomethingInnocuous() {
	panic(25)
}

func makeAFoo(env *Env, id int) ptr.Unique[*tracked.Resource] {
	return ptr.NewUnique(tracked.New(env.tracker, id))
}

func makeManyFoos(env *Env, startID, n int) ptr.UniqueVec[*tracked.Resource] {
	vec := ptr.MakeVec(n, func(i int) ptr.Unique[*tracked.Resource] {
		return makeAFoo(env, startID+i)
	})
	return ptr.TakeVec(&vec)
}

func runBaton(env *Env) error {
	foo9 := makeAFoo(env, 9)
	env.main.Defer(&foo9)

	raw, _ := foo9.Release()
	foo10 := ptr.NewUnique(raw)
	env.main.Defer(&foo10)
	env.Notef("after passing the baton, foo9 is %s and foo10 is %s", nullness(foo9.Valid()), nullness(foo10.Valid()))

	foo10.Reset()
	env.Notef("after reassigning, foo10 is %s", nullness(foo10.Valid()))
	return nil
}

func nullness(valid bool) string {
	if valid {
		return "not null"
	}
	return "null"
}

func runVectors(env *Env) error {
	return ptr.Run("vectors", func(s *ptr.Scope) error {
		var vec1 ptr.UniqueVec[*tracked.Resource]
		s.Defer(&vec1)
		for id := 11; id <= 13; id++ {
			u := ptr.NewUnique(tracked.New(env.tracker, id))
			vec1.Push(&u)
		}
		if err := vec1.Remove(0); err != nil {
			return err
		}
		env.Notef("erasing the first element dropped foo 11; %d remain", vec1.Len())

		before := destroyed(env)
		vec2 := makeManyFoos(env, 14, env.opts.Many)
		s.Defer(&vec2)
		env.Notef("returned %d owners by value (foo 14-%d); %d were dropped on the way",
			vec2.Len(), 14+vec2.Len()-1, destroyed(env)-before)
		return nil
	})
}

func runShared(env *Env) error {
	a := ptr.NewShared(tracked.New(env.tracker, 500))
	b := a.Clone()
	c := b.Clone()
	env.main.Defer(&a)
	env.main.Defer(&b)
	env.main.Defer(&c)
	env.Notef("foo500 has %d owners", c.UseCount())

	env.order = env.opts.Selector.Pick(3)
	var left *ptr.Shared[*tracked.Resource]
	switch env.order {
	case 0:
		a.Reset()
		b.Reset()
		left = &c
	case 1:
		b.Reset()
		c.Reset()
		left = &a
	default:
		c.Reset()
		a.Reset()
		left = &b
	}

	env.Notef("release order %d: 2 of 3 owners released, %d left, foo500 still live: %t",
		env.order, left.UseCount(), env.tracker.LiveOf(500) == 1)
	return nil
}

func destroyed(env *Env) int {
	return env.tracker.Stats().Destroyed
}
