package form

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Done notifies the engine of the external submission outcome. Exactly one of
// Success or Failure should be called; only the first call takes effect.
type Done interface {
	// Success resets the form to its post-construction state.
	Success()
	// Failure clears the submitting flag and leaves everything else intact
	// so the user can edit and retry.
	Failure()
}

// SubmitFunc is the external submit callback, invoked once all fields pass
// aggregation. It runs on its own goroutine and may block.
type SubmitFunc[D any] func(ctx context.Context, data D, done Done)

// Engine is a field-level validation engine for one form. It decides when to
// run synchronous and debounced asynchronous rules, aggregates per-field
// results, cascades revalidation to dependent fields, and gates submission
// until every field passes.
//
// All transitions are serialized through a single dispatch stream guarded by
// one mutex; async validators and debounce timers resume by dispatching
// follow-up events into the same stream, so no transition ever observes
// partially updated state.
type Engine[D any] struct {
	id     uuid.UUID
	log    *slog.Logger
	binder Binder[D]
	submit SubmitFunc[D]
	reg    *registry[D]

	asyncTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	st      machine[D]
	initial D
	closed  bool
}

// New builds an engine from an initial domain-state snapshot, the binder that
// reads and writes field values on it, the external submit callback, and the
// per-field validator configuration. The validator slice order is the
// submit-time fold order.
func New[D any](initial D, binder Binder[D], submit SubmitFunc[D], validators []Validator[D], opts ...Option) (*Engine[D], error) {
	if binder == nil {
		return nil, ErrNilBinder
	}
	if submit == nil {
		return nil, ErrNilSubmit
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine[D]{
		id:           uuid.New(),
		log:          o.logger,
		binder:       binder,
		submit:       submit,
		asyncTimeout: o.asyncTimeout,
		ctx:          ctx,
		cancel:       cancel,
		st:           newMachine(initial),
		initial:      initial,
	}

	reg, err := newRegistry(validators, o.defaultStrategy, o.debounceInterval, func(call asyncCall) {
		e.dispatch(triggerAsyncEvent{field: call.field, value: call.value, rev: call.rev})
	})
	if err != nil {
		cancel()
		return nil, err
	}
	e.reg = reg

	return e, nil
}

// MustNew is like New but panics on configuration errors. Intended for
// static form definitions where a failure is a programming mistake.
func MustNew[D any](initial D, binder Binder[D], submit SubmitFunc[D], validators []Validator[D], opts ...Option) *Engine[D] {
	e, err := New(initial, binder, submit, validators, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// dispatch is the single entry point for every event. State mutation happens
// under the lock; effects execute after release and loop their outcomes back
// through dispatch.
func (e *Engine[D]) dispatch(ev event) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	effects := e.reduce(&e.st, ev)
	e.mu.Unlock()

	if len(effects) > 0 {
		e.log.Debug("form: event reduced", "engine_id", e.id, "event", ev.eventName(), "effects", len(effects))
	}
	for _, fx := range effects {
		e.exec(fx)
	}
}

func (e *Engine[D]) exec(fx effect[D]) {
	switch fx := fx.(type) {
	case scheduleDebounced[D]:
		bound := e.reg.lookup(fx.call.field)
		if bound == nil {
			return
		}
		if bound.deb == nil {
			// Debouncing disabled for this field; trigger right away.
			e.dispatch(triggerAsyncEvent{field: fx.call.field, value: fx.call.value, rev: fx.call.rev})
			return
		}
		bound.deb.Call(fx.call)
	case invokeAsync[D]:
		go e.runAsync(fx)
	case invokeSubmit[D]:
		go e.submit(e.ctx, fx.data, &submitDone[D]{engine: e})
	case cancelDebounced[D]:
		e.reg.cancelPending()
	}
}

// runAsync executes the async validator and feeds its resolution back as an
// applyAsyncEvent. A future that resolves with an error, or not at all
// within the configured timeout, commits a failing result so the form can
// never deadlock waiting on it.
func (e *Engine[D]) runAsync(fx invokeAsync[D]) {
	fut := fx.fn(e.ctx, fx.call.value)
	if fut == nil {
		return
	}

	apply := func(result Result, err error) {
		if err != nil {
			e.log.Warn("form: async validation failed",
				"engine_id", e.id, "field", string(fx.call.field), "error", err)
			result = Invalid(err.Error())
		}
		e.dispatch(applyAsyncEvent{field: fx.call.field, rev: fx.call.rev, result: result})
	}

	if e.asyncTimeout > 0 {
		apply(fut.AwaitWithTimeout(e.asyncTimeout))
		return
	}
	fut.OnComplete(apply)
}

// submitDone routes the external submission outcome back into the dispatch
// stream. The first notification wins.
type submitDone[D any] struct {
	engine *Engine[D]
	once   sync.Once
}

func (d *submitDone[D]) Success() {
	d.once.Do(func() { d.engine.dispatch(resetEvent{}) })
}

func (d *submitDone[D]) Failure() {
	d.once.Do(func() { d.engine.dispatch(submissionErrorEvent{}) })
}

// Change updates the field's value in the domain state and, depending on the
// field's strategy and history, revalidates it. The value must already be
// extracted from whatever raw UI event carried it.
func (e *Engine[D]) Change(field Field, value any) {
	e.dispatch(changeEvent{field: field, value: value})
}

// Blur reports that the field lost focus. Only not-yet-emitted fields with a
// blur-triggered strategy validate in response.
func (e *Engine[D]) Blur(field Field) {
	e.dispatch(blurEvent{field: field})
}

// Submit runs the readiness aggregation and, if every field passes, invokes
// the external submit callback. It is a no-op while any async validation is
// in flight or a submission is already running.
func (e *Engine[D]) Submit() {
	e.dispatch(submitEvent{})
}

// Reset restores the engine to its post-construction state: the original
// initial domain-state snapshot with all derived containers cleared.
func (e *Engine[D]) Reset() {
	e.dispatch(resetEvent{})
}

// Close cancels in-flight async work and releases all debounce timers.
// Subsequent dispatches are no-ops. Close is idempotent.
func (e *Engine[D]) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.reg.stop()
	return nil
}

// Data returns the current domain state.
func (e *Engine[D]) Data() D {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.data
}

// Result returns the field's current validation result, if one is committed.
func (e *Engine[D]) Result(field Field) (Result, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.st.results[field]
	return r, ok
}

// Validating reports whether the field has an async validation in flight.
func (e *Engine[D]) Validating(field Field) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.st.validating[field]
	return ok
}

// ValidatingAny reports whether any field has an async validation in flight.
func (e *Engine[D]) ValidatingAny() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.st.validating) > 0
}

// Emitted reports whether the field has committed at least one result since
// the last reset.
func (e *Engine[D]) Emitted(field Field) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.st.emitted[field]
	return ok
}

// Submitting reports whether the external submit callback is running.
func (e *Engine[D]) Submitting() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.submitting
}

// SubmittedOnce reports whether a submit aggregation has completed since the
// last reset, successfully or not.
func (e *Engine[D]) SubmittedOnce() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.submittedOnce
}
