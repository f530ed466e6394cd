// Package dom implements the live output tree the reconciler mutates.
//
// A Document owns a mutable tree of Nodes, a listener registry for event
// dispatch, and an append-only mutation log. The log serves two consumers:
// live sessions (pkg/server) encode drained Patch records for the client,
// and tests assert on exactly which mutations a reconciliation pass
// performed.
//
// Node implements vdom.OutputNode and Document implements
// vdom.OutputFactory, so the engine core never depends on this package's
// concrete types.
package dom
