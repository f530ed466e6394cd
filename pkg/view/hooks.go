package view

// Hooks is the data-driven list of lifecycle hook functions attached to a
// view's configuration. Hook lists compose by concatenation; hooks run in
// list order.
type Hooks struct {
	// DidMount runs after the view's live subtree is freshly attached.
	DidMount []func(*View)

	// DidInvalidate runs after a reconciliation pass over the view's
	// output completes.
	DidInvalidate []func(*View)

	// WillUnmount runs before the view's live subtree is detached.
	WillUnmount []func(*View)
}

// Concat returns hooks running h's functions first, then other's.
func (h Hooks) Concat(other Hooks) Hooks {
	return Hooks{
		DidMount:      append(append([]func(*View){}, h.DidMount...), other.DidMount...),
		DidInvalidate: append(append([]func(*View){}, h.DidInvalidate...), other.DidInvalidate...),
		WillUnmount:   append(append([]func(*View){}, h.WillUnmount...), other.WillUnmount...),
	}
}

// OnMount creates hooks with a single post-mount function.
func OnMount(fn func(*View)) Hooks {
	return Hooks{DidMount: []func(*View){fn}}
}

// OnInvalidate creates hooks with a single post-invalidation function.
func OnInvalidate(fn func(*View)) Hooks {
	return Hooks{DidInvalidate: []func(*View){fn}}
}

// OnUnmount creates hooks with a single pre-unmount function.
func OnUnmount(fn func(*View)) Hooks {
	return Hooks{WillUnmount: []func(*View){fn}}
}
