package render

import (
	"fmt"

	"github.com/lattice-ui/lattice/pkg/vdom"
)

// Options configures one render pass.
type Options struct {
	// Target is the rendering side indicator passed to component bodies.
	// It only influences text-tag mapping decisions.
	Target vdom.Target

	// SaveVNode updates the committed-node pointer of every view in the
	// delegation chain (not only the outermost) to the final resolved node.
	// Multiple views share one committed node when one delegates its entire
	// body to another.
	SaveVNode bool

	// IgnoreStateChange temporarily replaces every state-mutation entry
	// point of a view with a no-op while its body runs, so rendering for
	// serialization can never trigger a re-render loop.
	IgnoreStateChange bool
}

// nodeKeeper is implemented by views that track their committed node.
type nodeKeeper interface {
	KeepRenderedNode(node *vdom.VNode)
}

// stateMuter is implemented by views whose state-mutation entry points can
// be muted for the duration of a body call.
type stateMuter interface {
	MuteState() (restore func())
}

// nodeDecorator is implemented by views that carry styling, attribute and
// event builders to be applied to the node they render to.
type nodeDecorator interface {
	DecorateNode(node *vdom.VNode)
}

// Render resolves root into a fully rendered virtual-node tree.
//
// root is either a vdom.Component or a *vdom.VNode. While the current
// value is a component, its body is invoked with the options' target and
// the result replaces the current value; the walk stops at a node or an
// empty value. A chain that terminates in anything else fails with
// ErrRenderContract, as does any child entry that is neither a component
// nor a node, at every tree level.
//
// A nil node with a nil error means the root resolved to nothing.
func Render(root any, opts Options) (*vdom.VNode, error) {
	node, chain, err := unwind(root, opts)
	if err != nil {
		return nil, err
	}

	if node == nil {
		saveNode(chain, nil, opts)
		return nil, nil
	}

	if err := resolveChildren(node, opts); err != nil {
		return nil, err
	}

	// Builders apply innermost first so an outer delegating view can
	// override what its inner body declared.
	for i := len(chain) - 1; i >= 0; i-- {
		if d, ok := chain[i].(nodeDecorator); ok {
			d.DecorateNode(node)
		}
	}

	owners := make([]vdom.Lifecycle, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		if lc, ok := chain[i].(vdom.Lifecycle); ok {
			owners = append(owners, lc)
		}
	}
	if len(owners) > 0 {
		node.SetOwners(owners)
	}

	saveNode(chain, node, opts)
	return node, nil
}

// unwind follows the body delegation chain until it reaches a concrete
// node or an empty value, recording every component visited on the way.
func unwind(root any, opts Options) (*vdom.VNode, []vdom.Component, error) {
	cur := root
	var chain []vdom.Component

	for {
		if cur == nil {
			return nil, chain, nil
		}

		if n, ok := cur.(*vdom.VNode); ok {
			if n == nil {
				return nil, chain, nil
			}
			switch n.Kind {
			case vdom.KindComponent:
				if n.Comp == nil {
					return nil, chain, nil
				}
				cur = n.Comp
				continue
			case vdom.KindInvalid:
				return nil, chain, fmt.Errorf(
					"%w: value of type %s is neither a component nor a node",
					ErrRenderContract, n.Text)
			}
			return n, chain, nil
		}

		if c, ok := cur.(vdom.Component); ok {
			chain = append(chain, c)
			cur = callBody(c, opts)
			continue
		}

		return nil, chain, fmt.Errorf(
			"%w: body chain resolved to %T, want component or *vdom.VNode",
			ErrRenderContract, cur)
	}
}

// callBody invokes one component body, muting its state entry points for
// exactly the duration of the call when the options ask for it.
func callBody(c vdom.Component, opts Options) any {
	if opts.IgnoreStateChange {
		if m, ok := c.(stateMuter); ok {
			restore := m.MuteState()
			defer restore()
		}
	}
	return c.Body(opts.Target)
}

// resolveChildren renders every child in place, dropping entries that
// resolve to nothing, so the resulting tree contains no component values.
func resolveChildren(node *vdom.VNode, opts Options) error {
	if len(node.Children) == 0 {
		return nil
	}
	resolved := make([]*vdom.VNode, 0, len(node.Children))
	for _, child := range node.Children {
		r, err := Render(child, opts)
		if err != nil {
			return err
		}
		if r != nil {
			resolved = append(resolved, r)
		}
	}
	node.Children = resolved
	return nil
}

func saveNode(chain []vdom.Component, node *vdom.VNode, opts Options) {
	if !opts.SaveVNode {
		return
	}
	for _, c := range chain {
		if k, ok := c.(nodeKeeper); ok {
			k.KeepRenderedNode(node)
		}
	}
}
