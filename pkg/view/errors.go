package view

import "errors"

// ErrInvalidOperation reports a lifecycle call that is not valid in the
// view's current state: mounting an already-mounted view, unmounting a
// view that was never mounted, or mounting into an attachment point that
// cannot host output. Surfaced synchronously, never retried.
var ErrInvalidOperation = errors.New("lattice: invalid operation")
