package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/formkit/debounce"
	"github.com/dmitrymomot/formkit/future"
)

// AsyncFunc performs asynchronous validation of a single value, typically a
// remote lookup. The returned future must eventually resolve; its outcome is
// applied only if the field has not been edited since the call was scheduled.
type AsyncFunc func(ctx context.Context, value any) *future.Future[Result]

// Validator configures validation for one field.
type Validator[D any] struct {
	// Field names the form input this validator is bound to.
	Field Field

	// Validate is the synchronous rule. It must be total: invalid input is
	// expressed as a failing Result, never as a panic.
	Validate func(value any, data D) Result

	// ValidateAsync, when set, runs debounced after Validate passes. A
	// failing sync result short-circuits and the async call is skipped.
	ValidateAsync AsyncFunc

	// Strategy overrides the form-level default for this field.
	Strategy Strategy

	// Dependents lists fields revalidated whenever this field validates.
	// Only dependents that have already emitted a result are cascaded.
	Dependents []Field

	// DebounceInterval overrides the form-level debounce interval for this
	// field's async validator. Zero means use the form default; a negative
	// value disables debouncing and triggers the async call immediately.
	DebounceInterval time.Duration
}

// asyncCall is the surviving triple carried through the debouncer.
type asyncCall struct {
	field Field
	value any
	rev   uint64
}

// boundValidator pairs a validator with its resolved strategy and, for async
// validators, a dedicated debouncer built once at engine construction.
type boundValidator[D any] struct {
	cfg      Validator[D]
	strategy Strategy
	deb      *debounce.Debouncer[asyncCall]
}

// registry holds the wrapped validators. The order slice preserves
// configuration order for the submit-time fold.
type registry[D any] struct {
	order   []Field
	byField map[Field]*boundValidator[D]
}

// newRegistry wraps every configured validator exactly once. Async validators
// get a fresh debouncer whose expiry dispatches the surviving call through
// trigger; sync-only validators pass through unchanged.
func newRegistry[D any](validators []Validator[D], defaultStrategy Strategy, defaultInterval time.Duration, trigger func(asyncCall)) (*registry[D], error) {
	if len(validators) == 0 {
		return nil, ErrNoValidators
	}

	reg := &registry[D]{
		order:   make([]Field, 0, len(validators)),
		byField: make(map[Field]*boundValidator[D], len(validators)),
	}

	for _, v := range validators {
		if v.Field == "" {
			return nil, ErrEmptyField
		}
		if _, ok := reg.byField[v.Field]; ok {
			return nil, errors.Join(ErrDuplicateField, fmt.Errorf("field %q", v.Field))
		}
		if v.Validate == nil {
			return nil, errors.Join(ErrNilValidate, fmt.Errorf("field %q", v.Field))
		}

		strategy := v.Strategy
		if strategy == StrategyDefault {
			strategy = defaultStrategy
		}
		if _, ok := strategyNames[strategy]; !ok || strategy == StrategyDefault {
			return nil, errors.Join(ErrInvalidStrategy, fmt.Errorf("field %q: %v", v.Field, strategy))
		}

		bound := &boundValidator[D]{cfg: v, strategy: strategy}
		if v.ValidateAsync != nil {
			interval := v.DebounceInterval
			if interval == 0 {
				interval = defaultInterval
			}
			if interval > 0 {
				bound.deb = debounce.New(interval, trigger)
			}
		}

		reg.order = append(reg.order, v.Field)
		reg.byField[v.Field] = bound
	}

	for _, v := range validators {
		for _, dep := range v.Dependents {
			if _, ok := reg.byField[dep]; !ok {
				return nil, errors.Join(ErrUnknownDependent, fmt.Errorf("field %q depends on %q", v.Field, dep))
			}
		}
	}

	return reg, nil
}

func (r *registry[D]) lookup(f Field) *boundValidator[D] {
	return r.byField[f]
}

// cancelPending discards every scheduled debounced call; the debouncers
// remain usable for subsequent edits.
func (r *registry[D]) cancelPending() {
	for _, bound := range r.byField {
		if bound.deb != nil {
			bound.deb.Cancel()
		}
	}
}

// stop permanently disables all debouncers.
func (r *registry[D]) stop() {
	for _, bound := range r.byField {
		if bound.deb != nil {
			bound.deb.Stop()
		}
	}
}
