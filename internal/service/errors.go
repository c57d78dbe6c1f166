package service

import "errors"

// ErrValidation marks input that was rejected before touching the store.
var ErrValidation = errors.New("validation failed")
