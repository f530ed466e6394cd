package dom

import "github.com/lattice-ui/lattice/pkg/vdom"

// NodeKind is the live node type discriminator.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
	FragmentNode
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Node is one node of the live output tree.
type Node struct {
	doc  *Document
	id   string
	kind NodeKind

	Tag    string
	Text   string
	Styles map[string]string
	Attrs  map[string]string

	parent   *Node
	children []*Node
}

var _ vdom.OutputNode = (*Node)(nil)

// ID implements vdom.OutputNode.
func (n *Node) ID() string { return n.id }

// Kind returns the node kind.
func (n *Node) Kind() NodeKind { return n.kind }

// Parent returns the parent node, or nil for detached nodes and the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered child nodes.
func (n *Node) Children() []*Node { return n.children }

// CanHostChildren implements vdom.OutputNode.
func (n *Node) CanHostChildren() bool {
	return n.kind != TextNode
}

// SetText implements vdom.OutputNode.
func (n *Node) SetText(text string) {
	if n.Text == text {
		return
	}
	n.Text = text
	n.doc.record(Patch{Op: OpSetText, NodeID: n.id, Value: text})
}

// SetStyle implements vdom.OutputNode.
func (n *Node) SetStyle(name, value string) {
	if n.Styles == nil {
		n.Styles = make(map[string]string)
	}
	n.Styles[name] = value
	n.doc.record(Patch{Op: OpSetStyle, NodeID: n.id, Name: name, Value: value})
}

// RemoveStyle implements vdom.OutputNode.
func (n *Node) RemoveStyle(name string) {
	delete(n.Styles, name)
	n.doc.record(Patch{Op: OpRemoveStyle, NodeID: n.id, Name: name})
}

// SetAttr implements vdom.OutputNode.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
	n.doc.record(Patch{Op: OpSetAttr, NodeID: n.id, Name: name, Value: value})
}

// RemoveAttr implements vdom.OutputNode.
func (n *Node) RemoveAttr(name string) {
	delete(n.Attrs, name)
	n.doc.record(Patch{Op: OpRemoveAttr, NodeID: n.id, Name: name})
}

// AddListener implements vdom.OutputNode. Listeners live in the document's
// registry, not in the mutation log: rebinding handlers is a server-side
// concern and is not a mutation of the visible output.
func (n *Node) AddListener(event string, h vdom.Handler) {
	if h == nil {
		return
	}
	n.doc.addListener(n.id, event, h)
}

// RemoveListeners implements vdom.OutputNode.
func (n *Node) RemoveListeners(event string) {
	n.doc.removeListeners(n.id, event)
}

// AppendChild implements vdom.OutputNode. Appending a node that is already
// attached relocates it (move semantics); appending a node already in its
// final position is a no-op and is not logged.
func (n *Node) AppendChild(child vdom.OutputNode) {
	c := child.(*Node)
	if c.parent == n && len(n.children) > 0 && n.children[len(n.children)-1] == c {
		return
	}
	c.detachQuiet()
	c.parent = n
	n.children = append(n.children, c)
	n.doc.record(Patch{
		Op:       OpAppend,
		NodeID:   c.id,
		ParentID: n.id,
		Index:    len(n.children) - 1,
	})
}

// Detach implements vdom.OutputNode.
func (n *Node) Detach() {
	if n.parent == nil {
		return
	}
	n.detachQuiet()
	n.doc.record(Patch{Op: OpDetach, NodeID: n.id})
}

// ReplaceWith implements vdom.OutputNode. The replacement takes this
// node's position under its parent; a detached node cannot be replaced.
func (n *Node) ReplaceWith(node vdom.OutputNode) {
	r := node.(*Node)
	if n.parent == nil || r == n {
		return
	}
	parent := n.parent
	r.detachQuiet()
	for i, c := range parent.children {
		if c == n {
			parent.children[i] = r
			break
		}
	}
	r.parent = parent
	n.parent = nil
	n.doc.record(Patch{Op: OpReplace, NodeID: n.id, WithID: r.id})
}

// IndexIn returns the node's position under the given parent, or -1.
func (n *Node) IndexIn(parent *Node) int {
	for i, c := range parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (n *Node) detachQuiet() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}
