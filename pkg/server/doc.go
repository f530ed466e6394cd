// Package server serves mounted views over HTTP.
//
// Each GET on a registered page route creates a session: a private
// Document, work queue and view tree, server-side rendered into the
// response with data-lid identity attributes. The client then attaches
// over the WebSocket endpoint; event frames are dispatched to the
// session's listener registry, the queue is drained, and the resulting
// mutation-log patches are streamed back.
//
// Detached sessions can be persisted through a StateStore (in-memory or
// bbolt-backed) and resumed within the configured window: the output tree
// is rebuilt from its snapshot and the view hydrates onto it instead of
// re-rendering from scratch.
package server
