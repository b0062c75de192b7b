package form

// machine is the engine's single mutable state, owned by the dispatch stream.
//
// Invariants:
//   - validating only ever contains fields configured with an async validator
//   - a field in validating has no entry in results
//   - a field is in emitted iff it has committed at least one result since
//     the last reset
//   - submitting is true only between a passed readiness check and the
//     resolution of the external submit callback
type machine[D any] struct {
	data          D
	results       map[Field]Result
	validating    map[Field]struct{}
	emitted       map[Field]struct{}
	revs          map[Field]uint64
	submitting    bool
	submittedOnce bool
}

func newMachine[D any](initial D) machine[D] {
	return machine[D]{
		data:       initial,
		results:    make(map[Field]Result),
		validating: make(map[Field]struct{}),
		emitted:    make(map[Field]struct{}),
		revs:       make(map[Field]uint64),
	}
}

// reduce is the transition function: it updates st for the given event and
// returns the side-effect commands the engine must execute afterwards. All
// asynchronous work happens in effects; reduce itself never blocks and never
// re-enters dispatch.
func (e *Engine[D]) reduce(st *machine[D], ev event) []effect[D] {
	switch ev := ev.(type) {
	case changeEvent:
		return e.reduceChange(st, ev.field, ev.value)
	case blurEvent:
		return e.reduceBlur(st, ev.field)
	case submitEvent:
		return e.reduceSubmit(st)
	case resetEvent:
		*st = newMachine(e.initial)
		return []effect[D]{cancelDebounced[D]{}}
	case triggerAsyncEvent:
		return e.reduceTriggerAsync(st, ev)
	case applyAsyncEvent:
		e.reduceApplyAsync(st, ev)
		return nil
	case submissionErrorEvent:
		st.submitting = false
		return nil
	default:
		return nil
	}
}

func (e *Engine[D]) reduceChange(st *machine[D], f Field, value any) []effect[D] {
	st.data = e.binder.Apply(f, value, st.data)
	st.revs[f]++

	bound := e.reg.lookup(f)
	if bound == nil {
		return nil
	}

	commitIfValid := false
	if _, emitted := st.emitted[f]; !emitted && !st.submittedOnce {
		switch bound.strategy {
		case OnFirstChange:
		case OnFirstSuccess, OnFirstSuccessOrFirstBlur:
			commitIfValid = true
		default: // OnFirstBlur, OnSubmit
			// Data-only update. Any in-flight async check now refers to a
			// superseded edit, so the field must not stay stuck validating.
			e.dropInFlight(st, bound)
			return nil
		}
	}

	return e.validateNow(st, bound, value, commitIfValid, true)
}

func (e *Engine[D]) reduceBlur(st *machine[D], f Field) []effect[D] {
	bound := e.reg.lookup(f)
	if bound == nil {
		return nil
	}
	if _, emitted := st.emitted[f]; emitted {
		return nil
	}
	if bound.strategy != OnFirstBlur && bound.strategy != OnFirstSuccessOrFirstBlur {
		return nil
	}

	value := e.binder.Value(f, st.data)
	return e.validateNow(st, bound, value, false, false)
}

// validateNow runs the sync rule and either commits the result or schedules
// the debounced async check. commitIfValid drops failing results without
// emitting; withDependents enables the cascade (change path only).
func (e *Engine[D]) validateNow(st *machine[D], bound *boundValidator[D], value any, commitIfValid, withDependents bool) []effect[D] {
	f := bound.cfg.Field
	result := bound.cfg.Validate(value, st.data)

	if !result.Valid && commitIfValid {
		// Dropped silently: the field stays un-emitted so further edits
		// keep retrying.
		e.dropInFlight(st, bound)
		return nil
	}

	hasAsync := bound.cfg.ValidateAsync != nil
	if !result.Valid || !hasAsync {
		st.results[f] = result
		st.emitted[f] = struct{}{}
		delete(st.validating, f)
		if withDependents {
			e.cascade(st, bound)
		}
		return nil
	}

	// Sync passed and an async check remains: the field has no result while
	// the debounced call is pending. Dependents cascade before scheduling.
	if withDependents {
		e.cascade(st, bound)
	}
	delete(st.results, f)
	st.validating[f] = struct{}{}
	return []effect[D]{scheduleDebounced[D]{call: asyncCall{field: f, value: value, rev: st.revs[f]}}}
}

// cascade revalidates every already-emitted dependent against the current
// domain state. Dependents never emit through a cascade, and a dependent with
// an async check in flight is left for that check to settle.
func (e *Engine[D]) cascade(st *machine[D], bound *boundValidator[D]) {
	for _, dep := range bound.cfg.Dependents {
		if _, emitted := st.emitted[dep]; !emitted {
			continue
		}
		if _, busy := st.validating[dep]; busy {
			continue
		}
		depBound := e.reg.lookup(dep)
		value := e.binder.Value(dep, st.data)
		st.results[dep] = depBound.cfg.Validate(value, st.data)
	}
}

// dropInFlight clears a pending async check whose input was superseded.
func (e *Engine[D]) dropInFlight(st *machine[D], bound *boundValidator[D]) {
	f := bound.cfg.Field
	if _, busy := st.validating[f]; !busy {
		return
	}
	delete(st.validating, f)
	if bound.deb != nil {
		bound.deb.Cancel()
	}
}

func (e *Engine[D]) reduceTriggerAsync(st *machine[D], ev triggerAsyncEvent) []effect[D] {
	bound := e.reg.lookup(ev.field)
	if bound == nil || bound.cfg.ValidateAsync == nil {
		return nil
	}
	// The edit this call was scheduled for may have been superseded or the
	// form reset while the debouncer was waiting.
	if _, busy := st.validating[ev.field]; !busy || st.revs[ev.field] != ev.rev {
		return nil
	}
	return []effect[D]{invokeAsync[D]{
		call: asyncCall{field: ev.field, value: ev.value, rev: ev.rev},
		fn:   bound.cfg.ValidateAsync,
	}}
}

func (e *Engine[D]) reduceApplyAsync(st *machine[D], ev applyAsyncEvent) {
	// Staleness guard: the result is applied only if the field is still
	// waiting on this exact revision. Latest edit wins.
	if _, busy := st.validating[ev.field]; !busy || st.revs[ev.field] != ev.rev {
		e.log.Debug("form: stale async result dropped",
			"engine_id", e.id, "field", string(ev.field), "rev", ev.rev)
		return
	}
	st.results[ev.field] = ev.result
	delete(st.validating, ev.field)
	st.emitted[ev.field] = struct{}{}
}

// reduceSubmit aggregates readiness across all configured fields in
// configuration order. The fold recomputes every field's sync result against
// the current data, with one exception: a stored invalid result on a field
// with an async validator is kept even if the fresh sync check passes, since
// only a re-run of the async check may promote such a field to valid.
func (e *Engine[D]) reduceSubmit(st *machine[D]) []effect[D] {
	if st.submitting || len(st.validating) > 0 {
		return nil
	}

	allValid := true
	for _, f := range e.reg.order {
		bound := e.reg.byField[f]
		prev, hasPrev := st.results[f]

		if bound.cfg.Validate == nil {
			// Unreachable after construction-time validation; a field with
			// no computable result is a configuration defect, not user input.
			panic("form: no computable result for field " + string(f))
		}

		value := e.binder.Value(f, st.data)
		result := bound.cfg.Validate(value, st.data)
		if hasPrev && !prev.Valid && bound.cfg.ValidateAsync != nil && result.Valid {
			result = prev
		}

		st.results[f] = result
		st.emitted[f] = struct{}{}
		allValid = allValid && result.Valid
	}

	st.submittedOnce = true
	if !allValid {
		return nil
	}

	st.submitting = true
	return []effect[D]{invokeSubmit[D]{data: st.data}}
}
