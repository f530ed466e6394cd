package demo

import (
	"strings"
	"testing"

	"github.com/lattice-ui/lattice/pkg/render"
	"github.com/lattice-ui/lattice/pkg/store"
	"github.com/lattice-ui/lattice/pkg/view"
)

func TestStaticPagesRender(t *testing.T) {
	for path, root := range StaticPages() {
		html, err := render.Static(root)
		if err != nil {
			t.Errorf("Static(%q): %v", path, err)
			continue
		}
		if html == "" {
			t.Errorf("Static(%q) rendered nothing", path)
		}
	}
}

func TestTodoReducer(t *testing.T) {
	state := view.State{
		"items":  []todoItem{{ID: 1, Label: "a"}},
		"nextID": 2,
	}

	state = todoReducer(state, store.Action{Type: actionAdd, Payload: "b"})
	items := asItems(state["items"])
	if len(items) != 2 || items[1].Label != "b" || items[1].ID != 2 {
		t.Fatalf("items after add = %+v", items)
	}
	if asInt(state["nextID"]) != 3 {
		t.Errorf("nextID = %v, want 3", state["nextID"])
	}

	state = todoReducer(state, store.Action{Type: actionToggle, Payload: 1})
	if items := asItems(state["items"]); !items[0].Done {
		t.Error("toggle did not mark item done")
	}

	state = todoReducer(state, store.Action{Type: actionRemove, Payload: 1})
	items = asItems(state["items"])
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("items after remove = %+v", items)
	}

	// Empty labels are ignored.
	before := len(asItems(state["items"]))
	state = todoReducer(state, store.Action{Type: actionAdd, Payload: ""})
	if len(asItems(state["items"])) != before {
		t.Error("empty label should not add an item")
	}
}

func TestAsItemsNormalizesDecodedState(t *testing.T) {
	decoded := []any{
		map[string]any{"ID": float64(3), "Label": "restored", "Done": true},
		"garbage",
	}
	items := asItems(decoded)
	if len(items) != 1 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].ID != 3 || items[0].Label != "restored" || !items[0].Done {
		t.Errorf("item = %+v", items[0])
	}
}

func TestCounterBodyRendersCount(t *testing.T) {
	v := view.New(view.Config{
		Name:         "counter",
		InitialState: view.State{"count": 5},
		Body:         counterBody,
	})
	html, err := render.Static(v)
	if err != nil {
		t.Fatalf("Static: %v", err)
	}
	if !strings.Contains(html, "Count: 5") {
		t.Errorf("html = %q", html)
	}
}
