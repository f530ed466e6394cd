package server

import "errors"

// ErrSessionNotFound is returned when a WebSocket attach names a session
// this server does not know and cannot resume.
var ErrSessionNotFound = errors.New("lattice: session not found")

// ErrSessionExpired is returned when a persisted session exists but its
// resume window has passed.
var ErrSessionExpired = errors.New("lattice: session expired")

// ErrNoSuchPage is returned when a resume names a route with no
// registered page.
var ErrNoSuchPage = errors.New("lattice: no such page")

// ErrInvalidSession is returned when a session cannot be persisted or
// resumed because its output tree is missing or foreign.
var ErrInvalidSession = errors.New("lattice: invalid session")
