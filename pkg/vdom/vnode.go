package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Unresolved nested component (pre-render only)
	KindInvalid                // Child value that is neither node nor component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Target tells a component body which side a render pass is for.
// It may only influence text-tag mapping decisions, never behavior.
type Target uint8

const (
	TargetClient Target = iota
	TargetServer
)

// String returns the string representation of the Target.
func (t Target) String() string {
	if t == TargetServer {
		return "server"
	}
	return "client"
}

// Event is a single UI event delivered to a handler.
type Event struct {
	Name    string
	Payload map[string]any
}

// Handler consumes one UI event.
type Handler func(Event)

// Component is anything that can produce a body.
// Body may return another Component (delegation), a *VNode, or nil.
type Component interface {
	Body(t Target) any
}

// FuncComponent wraps a body function as a Component.
type FuncComponent func(t Target) any

// Body implements Component.
func (f FuncComponent) Body(t Target) any {
	return f(t)
}

// VNode is one node of a virtual tree.
//
// Text and Fragment nodes carry no tag, styles, attributes or events.
// Sibling keys, when present, are unique within one children slice.
type VNode struct {
	Kind     VKind
	Tag      string             // KindElement only
	Key      string             // Stable identity among siblings
	Styles   map[string]Value   // Style name -> value
	Attrs    map[string]Value   // Attribute name -> value
	Events   map[string][]Handler // Event name -> ordered handlers
	Children []*VNode
	Text     string    // KindText and KindInvalid (type description)
	Comp     Component // KindComponent only

	// Bound is the live output node this VNode owns. It is held by exactly
	// one committed VNode at a time and transferred, never duplicated,
	// across reconciliation passes.
	Bound OutputNode

	// owners is the delegation chain of views that produced this node,
	// innermost (the last body in the chain) first. Non-owning references:
	// lifecycle dispatch only.
	owners []Lifecycle
}

// Owner returns the innermost originating view, or nil.
func (v *VNode) Owner() Lifecycle {
	if len(v.owners) == 0 {
		return nil
	}
	return v.owners[0]
}

// Owners returns the full delegation chain, innermost first.
func (v *VNode) Owners() []Lifecycle {
	return v.owners
}

// SetOwners records the delegation chain, innermost first.
func (v *VNode) SetOwners(chain []Lifecycle) {
	v.owners = chain
}

// Style sets one style on the node and returns it for chaining.
func (v *VNode) Style(name string, value Value) *VNode {
	if v.Styles == nil {
		v.Styles = make(map[string]Value)
	}
	v.Styles[name] = value
	return v
}

// Attr sets one attribute on the node and returns it for chaining.
func (v *VNode) Attr(name string, value Value) *VNode {
	if v.Attrs == nil {
		v.Attrs = make(map[string]Value)
	}
	v.Attrs[name] = value
	return v
}

// On appends an event handler and returns the node for chaining.
func (v *VNode) On(event string, h Handler) *VNode {
	if h == nil {
		return v
	}
	if v.Events == nil {
		v.Events = make(map[string][]Handler)
	}
	v.Events[event] = append(v.Events[event], h)
	return v
}

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	return v != nil && v.Kind == KindElement && len(v.Events) > 0
}
