package policy

import "errors"

// ErrAccessDenied is the single outcome for every denied operation.
// Callers must not be able to distinguish "record does not exist" from
// "you may not see it", so the storage layer maps absent records to this
// same error. This prevents existence probing.
var ErrAccessDenied = errors.New("access denied")

// ErrNoPolicy is returned when an operation targets a resource type with
// no registered policy. This is a programming error, not a user-facing
// denial, but it still denies by default.
var ErrNoPolicy = errors.New("no policy registered for resource")
