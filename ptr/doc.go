// Package ptr provides owning wrappers with explicit lifetime rules.
//
// A value with cleanup implements Dropper. The wrappers in this package
// decide when Drop runs:
//
//	Exclusive[T]  - legacy single owner, freely copyable, no aliasing protection
//	Unique[T]     - exactly one owner; ownership moves, never duplicates
//	Shared[T]     - reference counted; Drop runs when the last owner lets go
//	UniqueVec[T]  - a container of Unique owners
//
// Every wrapper is itself a Dropper, so owners nest and can be registered
// with a Scope.
//
// # Transfer
//
// Unique values carry a noCopy marker. go vet's copylocks check rejects
// plain assignment of a Unique, so ownership moves through Take, Assign
// and Release instead:
//
//	a := ptr.NewUnique(tracked.New(tr, 9))
//	b := ptr.Take(&a) // a is empty, nothing was dropped
//	b.Reset()         // resource 9 is dropped here
//
// Exclusive has no marker on purpose. Copying one yields two owners of the
// same resource and dropping both releases it twice:
//
//	a := ptr.NewExclusive(tracked.New(tr, 5))
//	alias := a
//	a.Drop()
//	alias.Drop() // double release
//
// # Scope Exit
//
// Go runs deferred calls when a function returns or panics, not when a
// block ends. Run turns a function literal into a block with guaranteed
// cleanup: every owner registered with the scope is dropped, newest first,
// before Run returns, whether fn fell through, returned early, returned an
// error, or panicked. A panic keeps propagating after cleanup.
//
//	err := ptr.Run("work", func(s *ptr.Scope) error {
//	    u := ptr.Own(s, tracked.New(tr, 8))
//	    if early {
//	        return nil // u is dropped before Run returns
//	    }
//	    return step(u)
//	})
//
// Values held only by a plain pointer get no such treatment. A resource
// that is never registered and never dropped is leaked on every exit path.
//
// # Thread Safety
//
// Shared decrements its count with a single atomic operation. Nothing else
// in this package is safe for concurrent use.
package ptr
