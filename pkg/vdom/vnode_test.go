package vdom

import (
	"strings"
	"testing"
)

func TestElArguments(t *testing.T) {
	clicked := false
	node := El("div",
		Attr{Name: "id", Value: Str("main")},
		[]Attr{{Name: "class", Value: Str("card")}, {Name: "", Value: Str("dropped")}},
		Style{Name: "color", Value: Str("red")},
		On("click", func(Event) { clicked = true }),
		Key("row-1"),
		Span(),
		[]*VNode{Text("a"), nil, Text("b")},
		"shorthand",
		nil,
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("got %s %q, want Element div", node.Kind, node.Tag)
	}
	if node.Key != "row-1" {
		t.Errorf("Key = %q, want row-1", node.Key)
	}
	if got := node.Attrs["id"].CanonicalString(); got != "main" {
		t.Errorf("id attr = %q, want main", got)
	}
	if got := node.Attrs["class"].CanonicalString(); got != "card" {
		t.Errorf("class attr = %q, want card", got)
	}
	if _, ok := node.Attrs[""]; ok {
		t.Error("empty attribute name should be dropped")
	}
	if got := node.Styles["color"].CanonicalString(); got != "red" {
		t.Errorf("color style = %q, want red", got)
	}
	if len(node.Children) != 4 {
		t.Fatalf("got %d children, want 4", len(node.Children))
	}
	if node.Children[3].Kind != KindText || node.Children[3].Text != "shorthand" {
		t.Errorf("string argument should become a text child, got %+v", node.Children[3])
	}

	node.Events["click"][0](Event{Name: "click"})
	if !clicked {
		t.Error("listener argument was not attached")
	}
}

func TestElUnknownArgumentBecomesInvalidChild(t *testing.T) {
	node := El("div", 42)

	if len(node.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(node.Children))
	}
	child := node.Children[0]
	if child.Kind != KindInvalid {
		t.Fatalf("got kind %s, want Invalid", child.Kind)
	}
	if !strings.Contains(child.Text, "int") {
		t.Errorf("invalid child should record the offending type, got %q", child.Text)
	}
}

func TestElComponentChild(t *testing.T) {
	comp := FuncComponent(func(Target) any { return Text("inner") })
	node := Div(comp)

	if len(node.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(node.Children))
	}
	if node.Children[0].Kind != KindComponent {
		t.Errorf("got kind %s, want Component", node.Children[0].Kind)
	}
}

func TestChainingBuilders(t *testing.T) {
	node := Div().
		Style("width", Px(10)).
		Attr("id", Str("x")).
		On("click", func(Event) {})

	if got := node.Styles["width"].CanonicalString(); got != "10px" {
		t.Errorf("width = %q, want 10px", got)
	}
	if !node.IsInteractive() {
		t.Error("node with a handler should be interactive")
	}
	if Div().IsInteractive() {
		t.Error("node without handlers should not be interactive")
	}
}

func TestOnNilHandlerIgnored(t *testing.T) {
	node := Div().On("click", nil)
	if len(node.Events) != 0 {
		t.Errorf("nil handler should not be recorded, got %v", node.Events)
	}
}

func TestFragmentArguments(t *testing.T) {
	frag := Fragment(Text("a"), []*VNode{Text("b")}, "c", nil)

	if frag.Kind != KindFragment {
		t.Fatalf("got kind %s, want Fragment", frag.Kind)
	}
	if len(frag.Children) != 3 {
		t.Errorf("got %d children, want 3", len(frag.Children))
	}
}

func TestConditionalHelpers(t *testing.T) {
	if If(false, Div()) != nil {
		t.Error("If(false) should be nil")
	}
	if If(true, nil) != nil {
		t.Error("If(true, nil) should be nil")
	}

	called := false
	When(false, func() *VNode { called = true; return Div() })
	if called {
		t.Error("When(false) must not evaluate its function")
	}

	second := Div()
	if got := Either(nil, second); got != second {
		t.Error("Either should fall through to second")
	}
}

func TestMapSkipsNil(t *testing.T) {
	nodes := Map([]int{1, 2, 3}, func(n, _ int) *VNode {
		if n == 2 {
			return nil
		}
		return Textf("%d", n)
	})
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[1].Text != "3" {
		t.Errorf("got %q, want 3", nodes[1].Text)
	}
}

func TestRepeat(t *testing.T) {
	if got := Repeat(-1, func(int) *VNode { return Div() }); got != nil {
		t.Errorf("Repeat(-1) = %v, want nil", got)
	}
	if got := len(Repeat(3, func(int) *VNode { return Div() })); got != 3 {
		t.Errorf("got %d nodes, want 3", got)
	}
}

func TestOwners(t *testing.T) {
	node := Div()
	if node.Owner() != nil {
		t.Error("fresh node should have no owner")
	}
	a, b := &lifecycleRecorder{}, &lifecycleRecorder{}
	node.SetOwners([]Lifecycle{a, b})
	if node.Owner() != a {
		t.Error("Owner should return the innermost view")
	}
	if got := node.Owners(); len(got) != 2 || got[1] != b {
		t.Errorf("Owners = %v", got)
	}
}

type lifecycleRecorder struct {
	mounts, invalidations int
}

func (l *lifecycleRecorder) DidMount()      { l.mounts++ }
func (l *lifecycleRecorder) DidInvalidate() { l.invalidations++ }
