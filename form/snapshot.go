package form

import (
	"github.com/goccy/go-json"
)

// FieldState is one field's projection in a Snapshot.
type FieldState struct {
	Result     *Result `json:"result,omitempty"`
	Validating bool    `json:"validating,omitempty"`
	Emitted    bool    `json:"emitted,omitempty"`
}

// Snapshot is a point-in-time projection of the engine's validation state,
// shaped for shipping to a presentation layer (for example over SSE).
// Fields holds an entry for every configured field.
type Snapshot struct {
	Fields        map[Field]FieldState `json:"fields"`
	Submitting    bool                 `json:"submitting"`
	SubmittedOnce bool                 `json:"submitted_once"`
}

// JSON marshals the snapshot to its wire format.
func (s Snapshot) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// Snapshot returns the current validation state for all configured fields.
func (e *Engine[D]) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	fields := make(map[Field]FieldState, len(e.reg.order))
	for _, f := range e.reg.order {
		fs := FieldState{}
		if r, ok := e.st.results[f]; ok {
			fs.Result = &r
		}
		_, fs.Validating = e.st.validating[f]
		_, fs.Emitted = e.st.emitted[f]
		fields[f] = fs
	}

	return Snapshot{
		Fields:        fields,
		Submitting:    e.st.submitting,
		SubmittedOnce: e.st.submittedOnce,
	}
}
