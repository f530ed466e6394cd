// Package reconcile compares a previously committed virtual tree against a
// freshly rendered one and mutates the live output tree in place to match,
// reusing unaffected live nodes.
//
// Reconciliation never raises domain errors: any structural mismatch is
// handled by discarding the previous live subtree and materializing the
// next one fresh in its place. The live binding of the previous tree
// transfers to the next tree exactly once per pass; two passes never run
// concurrently over the same committed node under the engine's
// single-threaded cooperative model.
package reconcile

import (
	"sort"

	"github.com/lattice-ui/lattice/pkg/vdom"
)

// Reconciler applies virtual-tree differences to a live output tree.
// Fresh subtrees are materialized through the output factory.
type Reconciler struct {
	out vdom.OutputFactory
}

// New creates a Reconciler backed by the given output factory.
func New(out vdom.OutputFactory) *Reconciler {
	return &Reconciler{out: out}
}

// Materialize builds a fresh live subtree for a rendered node, binds every
// virtual node to its live counterpart, and returns the subtree root. The
// returned node is detached; the caller attaches it.
func (r *Reconciler) Materialize(node *vdom.VNode) vdom.OutputNode {
	var live vdom.OutputNode

	switch node.Kind {
	case vdom.KindText:
		live = r.out.CreateText(node.Text)
	case vdom.KindFragment:
		live = r.out.CreateFragment()
	default:
		live = r.out.CreateElement(node.Tag)
		for _, name := range sortedKeys(node.Styles) {
			live.SetStyle(name, node.Styles[name].CanonicalString())
		}
		for _, name := range sortedKeys(node.Attrs) {
			live.SetAttr(name, node.Attrs[name].CanonicalString())
		}
		for event, handlers := range node.Events {
			for _, h := range handlers {
				live.AddListener(event, h)
			}
		}
	}

	for _, child := range node.Children {
		live.AppendChild(r.Materialize(child))
	}

	node.Bound = live
	return live
}

// Reconcile mutates the live output tree so it matches next, reusing
// prev's live binding wherever compatible. On return the live binding of
// prev has become the live binding of next.
func (r *Reconciler) Reconcile(prev, next *vdom.VNode) {
	if prev == nil || next == nil {
		return
	}

	// Coarse-grained bail-out: any tag or kind change forces a full
	// subtree rebuild, trading some efficiency for correctness simplicity.
	if prev.Tag != next.Tag || (prev.Kind == vdom.KindText) != (next.Kind == vdom.KindText) {
		fresh := r.Materialize(next)
		if prev.Bound != nil {
			prev.Bound.ReplaceWith(fresh)
			prev.Bound = nil
		}
		fireInvalidate(next)
		return
	}

	live := prev.Bound
	if live == nil {
		// The previous tree was never materialized; nothing to reuse.
		r.Materialize(next)
		fireInvalidate(next)
		return
	}

	if next.Kind == vdom.KindText {
		if prev.Text != next.Text {
			live.SetText(next.Text)
		}
		prev.Bound = nil
		next.Bound = live
		fireInvalidate(next)
		return
	}

	r.reconcileStyles(live, prev, next)
	r.reconcileEvents(live, prev, next)
	r.reconcileAttrs(live, prev, next)
	r.reconcileChildren(live, prev, next)

	prev.Bound = nil
	next.Bound = live
	fireInvalidate(next)
}

// reconcileStyles clears styles absent from next and writes styles whose
// canonical string form is new or changed. Comparison is always by string
// representation, never by reference, so equal-looking but distinct value
// objects do not cause spurious writes.
func (r *Reconciler) reconcileStyles(live vdom.OutputNode, prev, next *vdom.VNode) {
	for _, name := range sortedKeys(prev.Styles) {
		if _, ok := next.Styles[name]; !ok {
			live.RemoveStyle(name)
		}
	}
	for _, name := range sortedKeys(next.Styles) {
		s := next.Styles[name].CanonicalString()
		if pv, ok := prev.Styles[name]; !ok || pv.CanonicalString() != s {
			live.SetStyle(name, s)
		}
	}
}

// reconcileEvents detaches every previously attached handler for every
// event name known to prev, then attaches every handler listed on next.
// Handlers are not diffed individually; identity sameness does not skip a
// reattachment.
func (r *Reconciler) reconcileEvents(live vdom.OutputNode, prev, next *vdom.VNode) {
	for event := range prev.Events {
		live.RemoveListeners(event)
	}
	for event, handlers := range next.Events {
		for _, h := range handlers {
			live.AddListener(event, h)
		}
	}
}

// reconcileAttrs is symmetric to reconcileStyles.
func (r *Reconciler) reconcileAttrs(live vdom.OutputNode, prev, next *vdom.VNode) {
	for _, name := range sortedKeys(prev.Attrs) {
		if _, ok := next.Attrs[name]; !ok {
			live.RemoveAttr(name)
		}
	}
	for _, name := range sortedKeys(next.Attrs) {
		s := next.Attrs[name].CanonicalString()
		if pv, ok := prev.Attrs[name]; !ok || pv.CanonicalString() != s {
			live.SetAttr(name, s)
		}
	}
}

// reconcileChildren applies one of two regimes. Equal child counts
// reconcile positionally; no key matching is attempted. Unequal counts
// reconcile by key: keyed previous children with a surviving key recurse,
// everything else on the previous side is torn down, and every next child
// without a consumed binding is materialized fresh. Unkeyed children are
// therefore always rebuilt in the unequal regime; stable keys are required
// for reorder-without-remount.
func (r *Reconciler) reconcileChildren(live vdom.OutputNode, prev, next *vdom.VNode) {
	if len(prev.Children) == len(next.Children) {
		for i := range prev.Children {
			r.Reconcile(prev.Children[i], next.Children[i])
		}
		return
	}

	nextByKey := make(map[string]*vdom.VNode)
	for _, nc := range next.Children {
		if nc.Key != "" {
			nextByKey[nc.Key] = nc
		}
	}

	consumed := make(map[string]bool)
	for _, pc := range prev.Children {
		if pc.Key != "" {
			if nc, ok := nextByKey[pc.Key]; ok && !consumed[pc.Key] {
				r.Reconcile(pc, nc)
				consumed[pc.Key] = true
				continue
			}
		}
		if pc.Bound != nil {
			pc.Bound.Detach()
			pc.Bound = nil
		}
	}

	// Place every next child at its target position, in order. Appending
	// relies on the output tree's move semantics, so reused children slot
	// in before the siblings that follow them and already-placed children
	// are left alone. Fresh children fire their views' post-mount hooks.
	for _, nc := range next.Children {
		fresh := false
		if nc.Bound == nil {
			r.Materialize(nc)
			fresh = true
		}
		live.AppendChild(nc.Bound)
		if fresh {
			fireMount(nc)
		}
	}
}

// fireMount dispatches post-mount to every view that delegated to the
// node, innermost first.
func fireMount(node *vdom.VNode) {
	for _, owner := range node.Owners() {
		owner.DidMount()
	}
}

// fireInvalidate dispatches post-invalidation to every view that
// delegated to the node, innermost first.
func fireInvalidate(node *vdom.VNode) {
	for _, owner := range node.Owners() {
		owner.DidInvalidate()
	}
}

func sortedKeys(m map[string]vdom.Value) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
