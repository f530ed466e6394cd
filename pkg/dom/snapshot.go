package dom

// Snapshot is a serializable copy of a live subtree, used to persist a
// detached session's output so it can be rebuilt and hydrated on resume.
type Snapshot struct {
	Kind     NodeKind          `json:"kind"`
	Tag      string            `json:"tag,omitempty"`
	Text     string            `json:"text,omitempty"`
	Styles   map[string]string `json:"styles,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*Snapshot       `json:"children,omitempty"`
}

// TakeSnapshot copies a live subtree into a Snapshot.
func TakeSnapshot(n *Node) *Snapshot {
	if n == nil {
		return nil
	}
	s := &Snapshot{
		Kind: n.kind,
		Tag:  n.Tag,
		Text: n.Text,
	}
	if len(n.Styles) > 0 {
		s.Styles = make(map[string]string, len(n.Styles))
		for k, v := range n.Styles {
			s.Styles[k] = v
		}
	}
	if len(n.Attrs) > 0 {
		s.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			s.Attrs[k] = v
		}
	}
	for _, child := range n.children {
		s.Children = append(s.Children, TakeSnapshot(child))
	}
	return s
}

// Restore rebuilds a subtree from a snapshot inside this document.
// Restored nodes are registered but not logged: the rebuilt tree
// pre-exists the next render the same way a hydration target does.
// The returned subtree is detached; the caller attaches it.
func (d *Document) Restore(s *Snapshot) *Node {
	if s == nil {
		return nil
	}
	n := &Node{doc: d, id: d.nextNodeID(), kind: s.Kind, Tag: s.Tag, Text: s.Text}
	if len(s.Styles) > 0 {
		n.Styles = make(map[string]string, len(s.Styles))
		for k, v := range s.Styles {
			n.Styles[k] = v
		}
	}
	if len(s.Attrs) > 0 {
		n.Attrs = make(map[string]string, len(s.Attrs))
		for k, v := range s.Attrs {
			n.Attrs[k] = v
		}
	}
	d.nodes[n.id] = n
	for _, child := range s.Children {
		c := d.Restore(child)
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}
