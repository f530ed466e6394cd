package vdom

import "fmt"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Attr is a single attribute argument for element factories.
type Attr struct {
	Name  string
	Value Value
}

// Style is a single style declaration argument for element factories.
type Style struct {
	Name  string
	Value Value
}

// Listener is an event handler argument for element factories.
type Listener struct {
	Event   string
	Handler Handler
}

// On creates a Listener argument.
func On(event string, h Handler) Listener {
	return Listener{Event: event, Handler: h}
}

// keyOption carries a reconciliation key argument.
type keyOption string

// Key creates a key argument for element factories. The key is converted
// to its string form and must be unique among siblings.
func Key(key any) any {
	return keyOption(fmt.Sprintf("%v", key))
}

// El creates an element node with the given tag.
//
// Arguments can be nil, Attr, Style, Listener, the Key option, *VNode,
// []*VNode, string (text child shorthand), or Component. Any other value
// is recorded as an invalid child; the rendering pipeline rejects it with
// a render contract error rather than silently dropping it.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Allows conditional attributes and children
			continue

		case Attr:
			if v.Name != "" {
				node.Attr(v.Name, v.Value)
			}

		case []Attr:
			for _, a := range v {
				if a.Name != "" {
					node.Attr(a.Name, a.Value)
				}
			}

		case Style:
			if v.Name != "" {
				node.Style(v.Name, v.Value)
			}

		case []Style:
			for _, s := range v {
				if s.Name != "" {
					node.Style(s.Name, s.Value)
				}
			}

		case Listener:
			node.On(v.Event, v.Handler)

		case keyOption:
			node.Key = string(v)

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			node.Children = append(node.Children, Text(v))

		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})

		default:
			node.Children = append(node.Children, &VNode{
				Kind: KindInvalid,
				Text: fmt.Sprintf("%T", v),
			})
		}
	}

	return node
}

// Div creates a <div> element.
func Div(args ...any) *VNode { return El("div", args...) }

// Span creates a <span> element.
func Span(args ...any) *VNode { return El("span", args...) }

// P creates a <p> element.
func P(args ...any) *VNode { return El("p", args...) }

// A creates an <a> element.
func A(args ...any) *VNode { return El("a", args...) }

// Button creates a <button> element.
func Button(args ...any) *VNode { return El("button", args...) }

// Input creates an <input> element.
func Input(args ...any) *VNode { return El("input", args...) }

// Label creates a <label> element.
func Label(args ...any) *VNode { return El("label", args...) }

// Form creates a <form> element.
func Form(args ...any) *VNode { return El("form", args...) }

// Ul creates a <ul> element.
func Ul(args ...any) *VNode { return El("ul", args...) }

// Ol creates an <ol> element.
func Ol(args ...any) *VNode { return El("ol", args...) }

// Li creates an <li> element.
func Li(args ...any) *VNode { return El("li", args...) }

// H1 creates an <h1> element.
func H1(args ...any) *VNode { return El("h1", args...) }

// H2 creates an <h2> element.
func H2(args ...any) *VNode { return El("h2", args...) }

// H3 creates an <h3> element.
func H3(args ...any) *VNode { return El("h3", args...) }

// Img creates an <img> element.
func Img(args ...any) *VNode { return El("img", args...) }

// Br creates a <br> element.
func Br() *VNode { return El("br") }

// Header creates a <header> element.
func Header(args ...any) *VNode { return El("header", args...) }

// Main creates a <main> element.
func Main(args ...any) *VNode { return El("main", args...) }

// Section creates a <section> element.
func Section(args ...any) *VNode { return El("section", args...) }

// Pre creates a <pre> element.
func Pre(args ...any) *VNode { return El("pre", args...) }

// Code creates a <code> element.
func Code(args ...any) *VNode { return El("code", args...) }
