package form

// event is the sealed set of inputs to the engine's transition function.
// External dispatchers produce change/blur/submit/reset; the remaining
// events are fed back by effect execution.
type event interface {
	eventName() string
}

type changeEvent struct {
	field Field
	value any
}

type blurEvent struct {
	field Field
}

type submitEvent struct{}

type resetEvent struct{}

// triggerAsyncEvent is dispatched by a debouncer when its quiet interval
// expires with no newer call.
type triggerAsyncEvent struct {
	field Field
	value any
	rev   uint64
}

// applyAsyncEvent carries a resolved async validation result back into the
// dispatch stream.
type applyAsyncEvent struct {
	field  Field
	rev    uint64
	result Result
}

// submissionErrorEvent is dispatched when the external submit callback
// signals failure.
type submissionErrorEvent struct{}

func (changeEvent) eventName() string          { return "change" }
func (blurEvent) eventName() string            { return "blur" }
func (submitEvent) eventName() string          { return "submit" }
func (resetEvent) eventName() string           { return "reset" }
func (triggerAsyncEvent) eventName() string    { return "trigger_async" }
func (applyAsyncEvent) eventName() string      { return "apply_async" }
func (submissionErrorEvent) eventName() string { return "submission_error" }

// effect is the sealed set of side-effect commands returned by the transition
// function and executed by the engine after the state update. Completions
// loop back as new events, preserving single-writer semantics.
type effect[D any] interface {
	effectName() string
}

// scheduleDebounced forwards the surviving call triple to the field's
// debouncer, or triggers immediately when debouncing is disabled.
type scheduleDebounced[D any] struct {
	call asyncCall
}

// invokeAsync runs the field's async validator for the given value.
type invokeAsync[D any] struct {
	call asyncCall
	fn   AsyncFunc
}

// invokeSubmit calls the external submit callback with the domain state that
// passed aggregation.
type invokeSubmit[D any] struct {
	data D
}

// cancelDebounced discards all pending debounced calls (reset path).
type cancelDebounced[D any] struct{}

func (scheduleDebounced[D]) effectName() string { return "schedule_debounced" }
func (invokeAsync[D]) effectName() string       { return "invoke_async" }
func (invokeSubmit[D]) effectName() string      { return "invoke_submit" }
func (cancelDebounced[D]) effectName() string   { return "cancel_debounced" }
