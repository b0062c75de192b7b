package form

import "errors"

var (
	ErrNilBinder        = errors.New("form: binder must not be nil")
	ErrNilSubmit        = errors.New("form: submit callback must not be nil")
	ErrNoValidators     = errors.New("form: at least one validator is required")
	ErrEmptyField       = errors.New("form: validator field name must not be empty")
	ErrDuplicateField   = errors.New("form: duplicate validator field")
	ErrNilValidate      = errors.New("form: validator must provide a sync Validate function")
	ErrUnknownDependent = errors.New("form: dependent references an unconfigured field")
	ErrInvalidStrategy  = errors.New("form: invalid validation strategy")
	ErrParsingConfig    = errors.New("form: failed to parse config from environment")
)
