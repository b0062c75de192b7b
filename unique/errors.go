package unique

import "errors"

var (
	ErrMisconfigured = errors.New("unique: validator is missing its client or query")
	ErrLookupFailed  = errors.New("unique: existence lookup failed")
)
