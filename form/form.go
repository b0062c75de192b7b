package form

import "maps"

// Field identifies a single form input. The set of fields is fixed at engine
// construction; configuration order determines submit-time fold order.
type Field string

// Result is the outcome of validating one field. The zero value is invalid
// with no message.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Valid returns a passing Result.
func Valid() Result {
	return Result{Valid: true}
}

// Invalid returns a failing Result carrying a human-readable message.
func Invalid(message string) Result {
	return Result{Valid: false, Message: message}
}

// Binder connects the engine to a consumer-owned domain state. The engine
// treats D as an immutable value: Apply must return the updated state and
// leave the input untouched.
type Binder[D any] interface {
	// Value extracts the current value of field from data.
	Value(field Field, data D) any
	// Apply returns data with field set to value.
	Apply(field Field, value any, data D) D
}

// BinderFuncs adapts plain functions to the Binder interface.
type BinderFuncs[D any] struct {
	Get func(field Field, data D) any
	Set func(field Field, value any, data D) D
}

func (b BinderFuncs[D]) Value(field Field, data D) any {
	return b.Get(field, data)
}

func (b BinderFuncs[D]) Apply(field Field, value any, data D) D {
	return b.Set(field, value, data)
}

// Values is a ready-made map-backed domain state for forms that do not carry
// a richer model.
type Values map[Field]any

// MapBinder is the Binder for Values-backed forms. Apply copies the map, so
// earlier snapshots stay unchanged.
type MapBinder struct{}

func (MapBinder) Value(field Field, data Values) any {
	return data[field]
}

func (MapBinder) Apply(field Field, value any, data Values) Values {
	next := maps.Clone(data)
	if next == nil {
		next = make(Values, 1)
	}
	next[field] = value
	return next
}
