package services

import "errors"

// ErrAuthenticationRequired is returned when an operation that stamps writes
// with a user identity is invoked without one.
var ErrAuthenticationRequired = errors.New("authentication required")
