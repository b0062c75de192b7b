package future

import "errors"

var ErrTimeout = errors.New("future: operation timed out waiting for resolution")
