package render

import (
	"fmt"

	"github.com/lattice-ui/lattice/pkg/dom"
	"github.com/lattice-ui/lattice/pkg/vdom"
)

// Hydrate binds a fully rendered virtual tree onto a pre-existing live
// tree produced from the same serialization, without rebuilding the
// output. Each virtual node takes ownership of its live counterpart and
// its event handlers are attached; styles and attributes are assumed to
// already match, which holds by construction when the live tree came from
// serializing this same tree.
//
// Any structural disagreement fails with ErrHydrationMismatch; on failure
// the trees are left partially bound and the caller should discard the
// virtual tree.
func Hydrate(node *vdom.VNode, live *dom.Node) error {
	if node == nil || live == nil {
		if node == nil && live == nil {
			return nil
		}
		return fmt.Errorf("%w: virtual and live trees have different shapes", ErrHydrationMismatch)
	}

	switch node.Kind {
	case vdom.KindElement:
		if live.Kind() != dom.ElementNode || live.Tag != node.Tag {
			return fmt.Errorf("%w: virtual <%s> against live %s %q",
				ErrHydrationMismatch, node.Tag, live.Kind(), live.Tag)
		}
	case vdom.KindText:
		if live.Kind() != dom.TextNode {
			return fmt.Errorf("%w: virtual text against live %s", ErrHydrationMismatch, live.Kind())
		}
	case vdom.KindFragment:
		if live.Kind() != dom.FragmentNode {
			return fmt.Errorf("%w: virtual fragment against live %s", ErrHydrationMismatch, live.Kind())
		}
	default:
		return fmt.Errorf("%w: cannot hydrate %s node", ErrRenderContract, node.Kind)
	}

	if len(node.Children) != len(live.Children()) {
		return fmt.Errorf("%w: %d virtual children against %d live children under %q",
			ErrHydrationMismatch, len(node.Children), len(live.Children()), live.Tag)
	}

	node.Bound = live
	for event, handlers := range node.Events {
		for _, h := range handlers {
			live.AddListener(event, h)
		}
	}

	for i, child := range node.Children {
		if err := Hydrate(child, live.Children()[i]); err != nil {
			return err
		}
	}
	return nil
}
