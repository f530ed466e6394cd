package render

import "errors"

// ErrRenderContract reports that a component's render chain terminated in
// a non-node value, or that a child entry was neither a component nor a
// node. Fatal to the current render pass; surfaced to the caller, never
// retried.
var ErrRenderContract = errors.New("lattice: render contract violation")

// ErrHydrationMismatch reports that a rendered tree and the live tree it
// was hydrated against disagree structurally.
var ErrHydrationMismatch = errors.New("lattice: hydration mismatch")
