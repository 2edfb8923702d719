package engine

import "errors"

// ErrInvalidArgument marks caller mistakes detected before any backend call:
// bad parameter combinations, unsupported sort keys, empty required values.
var ErrInvalidArgument = errors.New("invalid argument")
