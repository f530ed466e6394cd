package dom

import (
	"fmt"

	"github.com/lattice-ui/lattice/pkg/vdom"
)

// Document owns a live output tree: the node registry, the event listener
// table and the mutation log. Documents are not safe for concurrent use;
// the engine's cooperative model runs all mutation on one scheduler.
type Document struct {
	nextID    uint64
	root      *Node
	nodes     map[string]*Node
	listeners map[string]map[string][]vdom.Handler
	log       []Patch
}

var _ vdom.OutputFactory = (*Document)(nil)

// NewDocument creates an empty document with a "body" root node.
// The root itself is not logged; it pre-exists every render.
func NewDocument() *Document {
	d := &Document{
		nodes:     make(map[string]*Node),
		listeners: make(map[string]map[string][]vdom.Handler),
	}
	d.root = &Node{doc: d, id: d.nextNodeID(), kind: ElementNode, Tag: "body"}
	d.nodes[d.root.id] = d.root
	return d
}

// Root returns the document's root node.
func (d *Document) Root() *Node {
	return d.root
}

// ByID returns the node with the given ID, or nil.
func (d *Document) ByID(id string) *Node {
	return d.nodes[id]
}

// CreateElement implements vdom.OutputFactory.
func (d *Document) CreateElement(tag string) vdom.OutputNode {
	n := &Node{doc: d, id: d.nextNodeID(), kind: ElementNode, Tag: tag}
	d.nodes[n.id] = n
	d.record(Patch{Op: OpCreate, NodeID: n.id, Value: tag})
	return n
}

// CreateText implements vdom.OutputFactory.
func (d *Document) CreateText(text string) vdom.OutputNode {
	n := &Node{doc: d, id: d.nextNodeID(), kind: TextNode, Text: text}
	d.nodes[n.id] = n
	d.record(Patch{Op: OpCreate, NodeID: n.id, Value: text})
	return n
}

// CreateFragment implements vdom.OutputFactory.
func (d *Document) CreateFragment() vdom.OutputNode {
	n := &Node{doc: d, id: d.nextNodeID(), kind: FragmentNode}
	d.nodes[n.id] = n
	d.record(Patch{Op: OpCreate, NodeID: n.id})
	return n
}

// TakePatches drains and returns the mutation log.
func (d *Document) TakePatches() []Patch {
	log := d.log
	d.log = nil
	return log
}

// PendingPatches returns the mutation log without draining it.
func (d *Document) PendingPatches() []Patch {
	return d.log
}

// Dispatch delivers an event to every handler registered for the given
// node and event name, in registration order. It returns the number of
// handlers invoked.
func (d *Document) Dispatch(nodeID, event string, payload map[string]any) int {
	byEvent := d.listeners[nodeID]
	if byEvent == nil {
		return 0
	}
	// Copy: a handler may rebind listeners on the node it fired from.
	handlers := append([]vdom.Handler(nil), byEvent[event]...)
	for _, h := range handlers {
		h(vdom.Event{Name: event, Payload: payload})
	}
	return len(handlers)
}

// HandlerCount returns the number of handlers registered for a node/event.
func (d *Document) HandlerCount(nodeID, event string) int {
	if byEvent := d.listeners[nodeID]; byEvent != nil {
		return len(byEvent[event])
	}
	return 0
}

func (d *Document) nextNodeID() string {
	id := fmt.Sprintf("n%d", d.nextID)
	d.nextID++
	return id
}

func (d *Document) record(p Patch) {
	d.log = append(d.log, p)
}

func (d *Document) addListener(nodeID, event string, h vdom.Handler) {
	byEvent := d.listeners[nodeID]
	if byEvent == nil {
		byEvent = make(map[string][]vdom.Handler)
		d.listeners[nodeID] = byEvent
	}
	byEvent[event] = append(byEvent[event], h)
}

func (d *Document) removeListeners(nodeID, event string) {
	if byEvent := d.listeners[nodeID]; byEvent != nil {
		delete(byEvent, event)
	}
}
