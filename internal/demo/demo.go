// Package demo ships the example pages served by `lattice serve` when no
// application is wired in. It doubles as living documentation for the
// view API.
package demo

import (
	"fmt"

	"github.com/lattice-ui/lattice/pkg/server"
	"github.com/lattice-ui/lattice/pkg/store"
	"github.com/lattice-ui/lattice/pkg/vdom"
	"github.com/lattice-ui/lattice/pkg/view"
)

// Register adds the demo pages to s.
func Register(s *server.Server) {
	s.RegisterPage("/", Counter)
	s.RegisterPage("/todo", Todo)
}

// Counter is a single-value counter page.
func Counter(s *server.Session) *view.View {
	return view.New(view.Config{
		Name:         "counter",
		Queue:        s.Queue(),
		Output:       s.Document(),
		InitialState: view.State{"count": 0},
		Body:         counterBody,
	})
}

func counterBody(v *view.View, _ vdom.Target) any {
	count := asInt(v.Get("count"))

	return vdom.Div(
		vdom.Attr{Name: "class", Value: vdom.Str("counter")},
		vdom.H1(vdom.Textf("Count: %d", count)),
		vdom.Button(
			vdom.Text("-"),
			vdom.On("click", func(vdom.Event) {
				v.Set(view.State{"count": count - 1})
			}),
		),
		vdom.Button(
			vdom.Text("+"),
			vdom.On("click", func(vdom.Event) {
				v.Set(view.State{"count": count + 1})
			}),
		),
	)
}

const (
	actionAdd    = "todo/add"
	actionToggle = "todo/toggle"
	actionRemove = "todo/remove"
)

type todoItem struct {
	ID    int
	Label string
	Done  bool
}

// Todo is a keyed-list page: every structural edit exercises the keyed
// child regime of the reconciler.
func Todo(s *server.Session) *view.View {
	return view.New(view.Config{
		Name:   "todo",
		Queue:  s.Queue(),
		Output: s.Document(),
		InitialState: view.State{
			"items":  []todoItem{{ID: 1, Label: "try lattice"}},
			"nextID": 2,
		},
		Reducer: todoReducer,
		Body:    todoBody,
	})
}

// asInt tolerates numbers decoded from a persisted session, which come
// back as float64.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

// asItems normalizes the item list; a restored session decodes it as
// []any of maps.
func asItems(v any) []todoItem {
	switch items := v.(type) {
	case []todoItem:
		return items
	case []any:
		out := make([]todoItem, 0, len(items))
		for _, e := range items {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			label, _ := m["Label"].(string)
			done, _ := m["Done"].(bool)
			out = append(out, todoItem{ID: asInt(m["ID"]), Label: label, Done: done})
		}
		return out
	}
	return nil
}

func todoReducer(prev view.State, action store.Action) view.State {
	items := asItems(prev["items"])
	nextID := asInt(prev["nextID"])

	switch action.Type {
	case actionAdd:
		label, _ := action.Payload.(string)
		if label == "" {
			return prev
		}
		next := append(append([]todoItem(nil), items...), todoItem{ID: nextID, Label: label})
		return view.State{"items": next, "nextID": nextID + 1}

	case actionToggle:
		id, _ := action.Payload.(int)
		next := append([]todoItem(nil), items...)
		for i := range next {
			if next[i].ID == id {
				next[i].Done = !next[i].Done
			}
		}
		return view.State{"items": next, "nextID": nextID}

	case actionRemove:
		id, _ := action.Payload.(int)
		next := make([]todoItem, 0, len(items))
		for _, item := range items {
			if item.ID != id {
				next = append(next, item)
			}
		}
		return view.State{"items": next, "nextID": nextID}

	default:
		return view.MergeReducer(prev, action)
	}
}

func todoBody(v *view.View, _ vdom.Target) any {
	items := asItems(v.Get("items"))

	return vdom.Div(
		vdom.H1(vdom.Text("Todo")),
		vdom.Button(
			vdom.Text("add"),
			vdom.On("click", func(e vdom.Event) {
				label, _ := e.Payload["label"].(string)
				if label == "" {
					label = fmt.Sprintf("task %d", len(items)+1)
				}
				v.Dispatch(store.Action{Type: actionAdd, Payload: label})
			}),
		),
		vdom.Ul(
			vdom.Map(items, func(item todoItem, _ int) *vdom.VNode {
				return todoRow(v, item)
			}),
		),
	)
}

func todoRow(v *view.View, item todoItem) *vdom.VNode {
	li := vdom.Li(
		vdom.Key(fmt.Sprintf("todo-%d", item.ID)),
		vdom.Span(vdom.Text(item.Label)),
		vdom.Button(
			vdom.Text("toggle"),
			vdom.On("click", func(vdom.Event) {
				v.Dispatch(store.Action{Type: actionToggle, Payload: item.ID})
			}),
		),
		vdom.Button(
			vdom.Text("x"),
			vdom.On("click", func(vdom.Event) {
				v.Dispatch(store.Action{Type: actionRemove, Payload: item.ID})
			}),
		),
	)
	if item.Done {
		li.Style("text-decoration", vdom.Str("line-through"))
	}
	return li
}

// StaticPages returns the demo pages as static roots for publishing.
func StaticPages() map[string]any {
	return map[string]any{
		"/":     vdom.FuncComponent(func(t vdom.Target) any { return counterStatic() }),
		"/todo": vdom.FuncComponent(func(t vdom.Target) any { return todoStatic() }),
	}
}

func counterStatic() *vdom.VNode {
	return vdom.Div(
		vdom.Attr{Name: "class", Value: vdom.Str("counter")},
		vdom.H1(vdom.Text("Count: 0")),
	)
}

func todoStatic() *vdom.VNode {
	return vdom.Div(
		vdom.H1(vdom.Text("Todo")),
		vdom.Ul(vdom.Li(vdom.Span(vdom.Text("try lattice")))),
	)
}
