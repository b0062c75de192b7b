// Package debounce provides a generic debouncer that coalesces rapid bursts
// of calls into one delayed invocation carrying the most recent arguments.
//
// Each Debouncer owns a single timer. A new Call before the quiet interval
// expires cancels and replaces the pending invocation; timers never queue or
// overlap. The implementation tolerates wall-clock adjustments: a negative
// elapsed duration is treated as an expired quiet period and fires
// immediately.
//
// # Usage
//
//	d := debounce.New(300*time.Millisecond, func(q string) {
//		runSearch(q)
//	})
//	d.Call("go")     // superseded
//	d.Call("gopher") // fires once, 300ms after the last call
//	defer d.Stop()
package debounce
