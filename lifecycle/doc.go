// Package lifecycle records the lifetime transitions of tracked values.
//
// Every construction, copy, transfer and destruction of a tracked value is
// reported to a Tracker as exactly one Event. The tracker stamps each event
// with a sequence number, keeps per-identity live counts, and forwards the
// event to its Sink:
//
//	rec := lifecycle.NewRecorder()
//	tr := lifecycle.NewTracker(rec, lifecycle.NewZapSink(logger))
//
//	r := tracked.New(tr, 7)
//	r.Drop()
//
//	rec.Events() // [constructed(7) destroyed(7)]
//	tr.Live()    // 0
//
// # Event Kinds
//
//	constructed    - a value was built from an identity
//	copied         - an independent duplicate was built
//	moved          - a value was built by emptying another
//	destroyed      - a live value reached end of lifetime
//	vacated        - a moved-from shell reached end of lifetime
//	double_release - a value already destroyed was destroyed again
//
// Constructed and copied raise the live count of an identity, destroyed
// lowers it. Moved and vacated leave it unchanged, so a transfer never
// alters the number of live values.
package lifecycle
