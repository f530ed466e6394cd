package render

import (
	"errors"
	"testing"

	"github.com/lattice-ui/lattice/pkg/dom"
	"github.com/lattice-ui/lattice/pkg/vdom"
)

// buildLive materializes a minimal live mirror of node for hydration
// tests, without going through the reconciler.
func buildLive(d *dom.Document, node *vdom.VNode) *dom.Node {
	var live *dom.Node
	switch node.Kind {
	case vdom.KindText:
		live = d.CreateText(node.Text).(*dom.Node)
	case vdom.KindFragment:
		live = d.CreateFragment().(*dom.Node)
	default:
		live = d.CreateElement(node.Tag).(*dom.Node)
	}
	for _, child := range node.Children {
		live.AppendChild(buildLive(d, child))
	}
	return live
}

func TestHydrateBindsAndAttachesHandlers(t *testing.T) {
	clicks := 0
	tree := vdom.Div(
		vdom.Button(
			vdom.Text("go"),
			vdom.On("click", func(vdom.Event) { clicks++ }),
		),
	)

	d := dom.NewDocument()
	live := buildLive(d, tree)

	if err := Hydrate(tree, live); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	if tree.Bound != vdom.OutputNode(live) {
		t.Error("root not bound to live tree")
	}
	button := tree.Children[0]
	if button.Bound == nil {
		t.Fatal("child not bound")
	}

	d.Dispatch(button.Bound.ID(), "click", nil)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1; handler not attached during hydration", clicks)
	}
}

func TestHydrateMismatches(t *testing.T) {
	d := dom.NewDocument()

	tests := []struct {
		name string
		node *vdom.VNode
		live *dom.Node
	}{
		{"tag", vdom.Div(), buildLive(d, vdom.Span())},
		{"kind", vdom.Text("x"), buildLive(d, vdom.Div())},
		{"child count", vdom.Div(vdom.Text("a")), buildLive(d, vdom.Div())},
		{"nil live", vdom.Div(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Hydrate(tt.node, tt.live)
			if !errors.Is(err, ErrHydrationMismatch) {
				t.Errorf("err = %v, want ErrHydrationMismatch", err)
			}
		})
	}
}

func TestHydrateRejectsUnrenderedTree(t *testing.T) {
	d := dom.NewDocument()
	node := &vdom.VNode{Kind: vdom.KindComponent}
	err := Hydrate(node, buildLive(d, vdom.Div()))
	if !errors.Is(err, ErrRenderContract) {
		t.Errorf("err = %v, want ErrRenderContract", err)
	}
}

// Hydration must not touch the mutation log: the client already has the
// serialized form of the tree.
func TestHydrateLogsNothing(t *testing.T) {
	tree := vdom.Div(vdom.Span(vdom.Text("x")))
	d := dom.NewDocument()
	live := buildLive(d, tree)
	d.TakePatches()

	if err := Hydrate(tree, live); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if got := d.TakePatches(); len(got) != 0 {
		t.Errorf("hydration logged %v", got)
	}
}
