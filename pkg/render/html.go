package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/lattice-ui/lattice/pkg/dom"
	"github.com/lattice-ui/lattice/pkg/vdom"
)

// Config configures the HTML serializer.
type Config struct {
	// Pretty enables indented output. Development only; it increases
	// output size.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer serializes virtual trees and live trees to HTML.
type Renderer struct {
	config Config
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString serializes a rendered virtual tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a rendered virtual tree to the given writer.
// The tree must be fully rendered: component nodes are a serialization
// error, not something the serializer resolves.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Static renders root for serialization and returns its HTML. State
// mutation is muted for the duration of the pass, so serializing a
// stateful view can never trigger a re-render loop.
func Static(root any) (string, error) {
	node, err := Render(root, Options{
		Target:            vdom.TargetServer,
		IgnoreStateChange: true,
	})
	if err != nil {
		return "", err
	}
	if node == nil {
		return "", nil
	}
	return NewRenderer(Config{}).RenderToString(node)
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: cannot serialize %s node", ErrRenderContract, node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	if r.config.Pretty && depth > 0 {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "<%s", node.Tag); err != nil {
		return err
	}
	if err := writeAttrs(w, attrStrings(node.Attrs), styleString(node.Styles), eventNames(node.Events)); err != nil {
		return err
	}

	if vdom.IsVoidElement(node.Tag) {
		_, err := io.WriteString(w, ">")
		if err == nil && r.config.Pretty {
			_, err = io.WriteString(w, "\n")
		}
		return err
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if r.config.Pretty && len(node.Children) > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && len(node.Children) > 0 {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", node.Tag); err != nil {
		return err
	}
	if r.config.Pretty {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// OutputHTML serializes a live output tree. Every element carries a
// data-lid identity attribute so a client can address patch targets.
func (r *Renderer) OutputHTML(w io.Writer, node *dom.Node) error {
	return r.renderOutput(w, node, 0)
}

// OutputString serializes a live output tree to a string.
func (r *Renderer) OutputString(node *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.OutputHTML(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderOutput(w io.Writer, node *dom.Node, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case dom.TextNode:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case dom.FragmentNode:
		for _, child := range node.Children() {
			if err := r.renderOutput(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	}

	if r.config.Pretty && depth > 0 {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, `<%s data-lid="%s"`, node.Tag, node.ID()); err != nil {
		return err
	}

	attrs := make(map[string]string, len(node.Attrs))
	for k, v := range node.Attrs {
		attrs[k] = v
	}
	styles := make(map[string]string, len(node.Styles))
	for k, v := range node.Styles {
		styles[k] = v
	}
	if err := writeAttrs(w, attrs, styleMapString(styles), nil); err != nil {
		return err
	}

	if vdom.IsVoidElement(node.Tag) {
		_, err := io.WriteString(w, ">")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	for _, child := range node.Children() {
		if err := r.renderOutput(w, child, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", node.Tag)
	return err
}

// writeAttrs emits attributes sorted by name for deterministic output,
// then the style attribute, then data-on-* event markers.
func writeAttrs(w io.Writer, attrs map[string]string, style string, events []string) error {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(attrs[name])); err != nil {
			return err
		}
	}

	if style != "" {
		if _, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(style)); err != nil {
			return err
		}
	}

	sort.Strings(events)
	for _, event := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, event); err != nil {
			return err
		}
	}
	return nil
}

func attrStrings(attrs map[string]vdom.Value) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for name, val := range attrs {
		out[name] = val.CanonicalString()
	}
	return out
}

func styleString(styles map[string]vdom.Value) string {
	if len(styles) == 0 {
		return ""
	}
	out := make(map[string]string, len(styles))
	for name, val := range styles {
		out[name] = val.CanonicalString()
	}
	return styleMapString(out)
}

func styleMapString(styles map[string]string) string {
	if len(styles) == 0 {
		return ""
	}
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for i, name := range names {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(styles[name])
	}
	return buf.String()
}

func eventNames(events map[string][]vdom.Handler) []string {
	if len(events) == 0 {
		return nil
	}
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	return names
}

func (r *Renderer) writeIndent(w io.Writer, depth int) error {
	for i := 0; i < depth; i++ {
		if _, err := io.WriteString(w, r.config.Indent); err != nil {
			return err
		}
	}
	return nil
}
