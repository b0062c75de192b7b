package debounce

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period used when New receives a non-positive
// interval.
const DefaultInterval = 700 * time.Millisecond

// Debouncer coalesces bursts of calls into a single invocation of fn with the
// most recent arguments, fired after a quiet interval with no newer call.
//
// A new Call before the pending one fires supersedes it (last write wins);
// there is never more than one live timer per Debouncer. The zero value is
// not usable; construct with New.
type Debouncer[T any] struct {
	interval time.Duration
	fn       func(T)

	mu       sync.Mutex
	timer    *time.Timer
	args     T
	lastCall time.Time
	stopped  bool

	now func() time.Time // test seam for clock-skew scenarios
}

// New creates a Debouncer that invokes fn with the surviving arguments after
// interval has elapsed without a newer Call. A non-positive interval falls
// back to DefaultInterval. A nil fn yields a Debouncer whose calls are
// silently discarded.
func New[T any](interval time.Duration, fn func(T)) *Debouncer[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer[T]{
		interval: interval,
		fn:       fn,
		now:      time.Now,
	}
}

// Call records args as the latest pending invocation and (re)arms the timer.
func (d *Debouncer[T]) Call(args T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || d.fn == nil {
		return
	}

	d.args = args
	d.lastCall = d.now()

	if d.timer == nil {
		d.timer = time.AfterFunc(d.interval, d.fire)
		return
	}
	// Stop may lose the race with an in-flight fire; fire re-checks the
	// elapsed time under the mutex, so a superseded invocation re-arms
	// instead of dispatching stale arguments.
	d.timer.Stop()
	d.timer.Reset(d.interval)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()

	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}

	elapsed := d.now().Sub(d.lastCall)
	// Negative elapsed time means the wall clock moved backwards; treat the
	// quiet period as expired rather than re-arming far into the future.
	if elapsed >= 0 && elapsed < d.interval {
		d.timer.Reset(d.interval - elapsed)
		d.mu.Unlock()
		return
	}

	args := d.args
	d.timer = nil
	d.mu.Unlock()

	d.fn(args)
}

// Cancel discards any pending invocation. The Debouncer remains usable.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending invocation and permanently disables the Debouncer.
// Subsequent calls to Call are no-ops. Stop is idempotent.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether an invocation is scheduled but not yet fired.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
