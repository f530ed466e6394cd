package view

import (
	"errors"
	"testing"

	"github.com/lattice-ui/lattice/pkg/dom"
	"github.com/lattice-ui/lattice/pkg/sched"
	"github.com/lattice-ui/lattice/pkg/store"
	"github.com/lattice-ui/lattice/pkg/vdom"
)

func counterBody(v *View, _ vdom.Target) any {
	n, _ := v.Get("n").(int)
	return vdom.Div(vdom.Textf("n=%d", n))
}

func newTestView(t *testing.T, cfg Config) (*View, *dom.Document, *sched.Queue) {
	t.Helper()
	d := dom.NewDocument()
	q := sched.New()
	cfg.Queue = q
	cfg.Output = d
	if cfg.Body == nil {
		cfg.Body = counterBody
	}
	if cfg.InitialState == nil {
		cfg.InitialState = State{"n": 0}
	}
	return New(cfg), d, q
}

func mountView(t *testing.T, v *View, d *dom.Document, q *sched.Queue) {
	t.Helper()
	if err := v.Mount(d.Root()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	q.Flush()
	if !v.Mounted() {
		t.Fatal("view did not mount")
	}
	d.TakePatches()
}

func rootText(d *dom.Document) string {
	return d.Root().Children()[0].Children()[0].Text
}

func TestMountIsDeferred(t *testing.T) {
	v, d, q := newTestView(t, Config{Name: "c"})

	if err := v.Mount(d.Root()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if v.Mounted() {
		t.Error("mount must not run before the queue drains")
	}
	if len(d.Root().Children()) != 0 {
		t.Error("no output before the queue drains")
	}

	q.Flush()
	if !v.Mounted() {
		t.Fatal("view should be mounted after flush")
	}
	if got := rootText(d); got != "n=0" {
		t.Errorf("text = %q, want n=0", got)
	}
}

func TestMountTwiceFails(t *testing.T) {
	v, d, q := newTestView(t, Config{Name: "c"})

	if err := v.Mount(d.Root()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	// Second mount fails synchronously even before the first executes.
	if err := v.Mount(d.Root()); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("err = %v, want ErrInvalidOperation", err)
	}

	q.Flush()
	if err := v.Mount(d.Root()); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("err after mount = %v, want ErrInvalidOperation", err)
	}
}

func TestMountTargetGuards(t *testing.T) {
	v, d, _ := newTestView(t, Config{Name: "c"})

	if err := v.Mount(nil); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("nil target: err = %v, want ErrInvalidOperation", err)
	}
	text := d.CreateText("x")
	if err := v.Mount(text); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("text target: err = %v, want ErrInvalidOperation", err)
	}
}

func TestMountWithoutOutputFactoryFails(t *testing.T) {
	d := dom.NewDocument()
	v := New(Config{Name: "c", Body: counterBody})
	if err := v.Mount(d.Root()); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("err = %v, want ErrInvalidOperation", err)
	}
}

func TestUnmount(t *testing.T) {
	unmounts := 0
	v, d, q := newTestView(t, Config{
		Name:  "c",
		Hooks: OnUnmount(func(*View) { unmounts++ }),
	})
	mountView(t, v, d, q)

	if err := v.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if !v.Mounted() {
		t.Error("unmount must not run before the queue drains")
	}
	q.Flush()

	if v.Mounted() {
		t.Error("view still mounted")
	}
	if len(d.Root().Children()) != 0 {
		t.Error("live subtree still attached")
	}
	if unmounts != 1 {
		t.Errorf("unmounts = %d, want 1", unmounts)
	}
	if v.CommittedNode() != nil {
		t.Error("committed node should be cleared")
	}
}

func TestUnmountWhileUnmountedFails(t *testing.T) {
	v, _, _ := newTestView(t, Config{Name: "c"})
	if err := v.Unmount(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("err = %v, want ErrInvalidOperation", err)
	}
}

func TestSetWhileUnmountedDoesNotRender(t *testing.T) {
	v, d, q := newTestView(t, Config{Name: "c"})
	v.Set(State{"n": 5})
	q.Flush()
	if len(d.Root().Children()) != 0 {
		t.Error("state change before mount should render nothing")
	}
	if got := v.Get("n"); got != 5 {
		t.Errorf("state still updates, n = %v", got)
	}
}

// Several same-tick state changes coalesce into sequential passes, each
// observing the snapshot current at its own execution time. The first
// pass does all the visible work; later ones find nothing to change.
func TestScheduledInvalidationsObserveExecutionTimeState(t *testing.T) {
	renders := 0
	v, d, q := newTestView(t, Config{
		Name: "c",
		Body: func(v *View, _ vdom.Target) any {
			renders++
			n, _ := v.Get("n").(int)
			return vdom.Div(vdom.Textf("n=%d", n))
		},
	})
	mountView(t, v, d, q)
	renders = 0

	v.Set(State{"n": 1})
	v.Set(State{"n": 2})
	v.Set(State{"n": 3})
	if got := rootText(d); got != "n=0" {
		t.Fatalf("output changed before drain: %q", got)
	}

	q.Flush()

	if renders != 3 {
		t.Errorf("renders = %d, want 3 (one pass per invalidation)", renders)
	}
	if got := rootText(d); got != "n=3" {
		t.Errorf("text = %q, want n=3", got)
	}
	// Only the first pass changes anything: one SetText patch in total.
	patches := d.TakePatches()
	if len(patches) != 1 || patches[0].Op != dom.OpSetText {
		t.Errorf("patches = %v, want one SetText", patches)
	}
}

func TestForcedModeRendersSynchronously(t *testing.T) {
	v, d, q := newTestView(t, Config{Name: "c", Mode: ModeForced})
	mountView(t, v, d, q)

	v.Set(State{"n": 7})

	if got := rootText(d); got != "n=7" {
		t.Errorf("text = %q, want n=7 without a flush", got)
	}
}

func TestDispatchCustomReducer(t *testing.T) {
	v, d, q := newTestView(t, Config{
		Name: "c",
		Reducer: func(prev State, action store.Action) State {
			if action.Type != "incr" {
				return MergeReducer(prev, action)
			}
			n, _ := prev["n"].(int)
			return State{"n": n + 1}
		},
	})
	mountView(t, v, d, q)

	v.Dispatch(store.Action{Type: "incr"})
	q.Flush()

	if got := rootText(d); got != "n=1" {
		t.Errorf("text = %q, want n=1", got)
	}
}

func TestLifecycleHooks(t *testing.T) {
	mounts, invalidations := 0, 0
	v, d, q := newTestView(t, Config{
		Name: "c",
		Hooks: OnMount(func(*View) { mounts++ }).
			Concat(OnInvalidate(func(*View) { invalidations++ })),
	})
	mountView(t, v, d, q)

	if mounts != 1 {
		t.Errorf("mounts = %d, want 1", mounts)
	}
	if invalidations != 0 {
		t.Errorf("invalidations = %d after mount, want 0", invalidations)
	}

	v.Set(State{"n": 1})
	q.Flush()
	if invalidations != 1 {
		t.Errorf("invalidations = %d, want 1", invalidations)
	}
	if mounts != 1 {
		t.Errorf("mounts = %d after invalidate, want 1", mounts)
	}
}

func TestViewBuildersDecorateRenderedNode(t *testing.T) {
	v, d, q := newTestView(t, Config{Name: "c"})
	v.Style("border", vdom.Str("none")).Attr("id", vdom.Str("top"))
	mountView(t, v, d, q)

	live := d.Root().Children()[0]
	if live.Styles["border"] != "none" || live.Attrs["id"] != "top" {
		t.Errorf("live = %+v, want decorated", live)
	}
}

func TestViewEventBuilderReceivesEvents(t *testing.T) {
	fired := 0
	v, d, q := newTestView(t, Config{Name: "c"})
	v.On("click", func(vdom.Event) { fired++ })
	mountView(t, v, d, q)

	d.Dispatch(d.Root().Children()[0].ID(), "click", nil)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestFailedRenderKeepsCommittedTree(t *testing.T) {
	bad := false
	v, d, q := newTestView(t, Config{
		Name: "c",
		Body: func(v *View, _ vdom.Target) any {
			if bad {
				return 42
			}
			return vdom.Div(vdom.Text("ok"))
		},
	})
	mountView(t, v, d, q)
	committed := v.CommittedNode()

	bad = true
	v.Set(State{"n": 1})
	q.Flush()

	if v.CommittedNode() != committed {
		t.Error("failed pass must leave the committed tree untouched")
	}
	if got := rootText(d); got != "ok" {
		t.Errorf("text = %q, want ok", got)
	}
}

func TestMergeReducer(t *testing.T) {
	prev := State{"a": 1, "b": 2}
	next := MergeReducer(prev, store.Action{Type: ActionMerge, Payload: State{"b": 3, "c": 4}})

	if next["a"] != 1 || next["b"] != 3 || next["c"] != 4 {
		t.Errorf("next = %v", next)
	}
	if prev["b"] != 2 {
		t.Error("previous snapshot mutated")
	}
	if got := MergeReducer(prev, store.Action{Type: "other"}); got["b"] != 2 || len(got) != 2 {
		t.Errorf("unknown action should keep snapshot, got %v", got)
	}
}

func TestHydrateBindsOntoRestoredTree(t *testing.T) {
	// First life: mount and snapshot the live subtree.
	v1, d1, q1 := newTestView(t, Config{Name: "c", InitialState: State{"n": 3}})
	mountView(t, v1, d1, q1)
	snap := dom.TakeSnapshot(d1.Root().Children()[0])

	// Second life: restore the output and hydrate a fresh view onto it.
	d2 := dom.NewDocument()
	q2 := sched.New()
	v2 := New(Config{
		Name:         "c",
		Body:         counterBody,
		InitialState: State{"n": 3},
		Queue:        q2,
		Output:       d2,
	})
	restored := d2.Restore(snap)
	d2.Root().AppendChild(restored)
	d2.TakePatches()

	if err := v2.Hydrate(restored); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if !v2.Mounted() {
		t.Fatal("hydrated view should be mounted")
	}
	if got := d2.TakePatches(); len(got) != 0 {
		t.Errorf("hydration logged %v", got)
	}

	// The hydrated view renders incrementally from here on.
	v2.Set(State{"n": 4})
	q2.Flush()
	if got := rootText(d2); got != "n=4" {
		t.Errorf("text = %q, want n=4", got)
	}
}

func TestHydrateWhileMountedFails(t *testing.T) {
	v, d, q := newTestView(t, Config{Name: "c"})
	mountView(t, v, d, q)

	if err := v.Hydrate(d.Root().Children()[0]); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("err = %v, want ErrInvalidOperation", err)
	}
}

func TestHydrateMismatchedTreeFails(t *testing.T) {
	d := dom.NewDocument()
	q := sched.New()
	v := New(Config{
		Name:   "c",
		Body:   counterBody,
		Queue:  q,
		Output: d,
	})

	wrong := d.CreateElement("span").(*dom.Node)
	if err := v.Hydrate(wrong); err == nil {
		t.Fatal("hydrating onto a mismatched tree should fail")
	}
	if v.Mounted() {
		t.Error("failed hydration must not leave the view mounted")
	}
}
