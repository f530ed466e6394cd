package vdom

// OutputNode is the narrow capability surface the engine needs from one
// node of the live output tree. pkg/dom provides the concrete tree; the
// reconciler depends only on this interface.
//
// AppendChild has move semantics: appending a node that is already attached
// somewhere relocates it instead of duplicating it.
type OutputNode interface {
	ID() string

	SetText(text string)
	SetStyle(name, value string)
	RemoveStyle(name string)
	SetAttr(name, value string)
	RemoveAttr(name string)
	AddListener(event string, h Handler)
	RemoveListeners(event string)

	AppendChild(child OutputNode)
	Detach()
	ReplaceWith(node OutputNode)

	// CanHostChildren reports whether the node is a valid attachment point
	// for a mounted subtree.
	CanHostChildren() bool
}

// OutputFactory creates fresh live output nodes during materialization.
type OutputFactory interface {
	CreateElement(tag string) OutputNode
	CreateText(text string) OutputNode
	CreateFragment() OutputNode
}

// Lifecycle is the non-owning back-reference from a rendered node to the
// views that produced it, used for lifecycle dispatch only.
type Lifecycle interface {
	// DidMount fires after the node's live subtree is freshly attached.
	DidMount()
	// DidInvalidate fires after a reconciliation pass over the node completes.
	DidInvalidate()
}
