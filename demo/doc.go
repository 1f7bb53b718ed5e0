// Package demo drives the ownership wrappers through the sequence of
// situations that show where cleanup does and does not happen: plain
// pointers, the legacy exclusive pointer, unique owners passed between
// functions and containers, shared owners released in varying order,
// and all of these under early exit and panics.
//
// Each scenario runs against one lifecycle.Tracker and produces a Result
// holding its notes and the exact events it caused. Values a scenario
// leaves on the run's outer scope are dropped after the last scenario,
// the way locals of a main function are destroyed when it returns; those
// events are reported under the name "unwind".
//
//	runner := demo.NewRunner(demo.Options{Selector: demo.FixedSelector(1)}, logger)
//	report, err := runner.Run() // every scenario, in order
//	report.Leaked             // ids never destroyed: [2 6 8]
package demo
