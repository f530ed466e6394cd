// Package view implements the stateful component type that composes the
// rendering pipeline and the reconciler.
//
// A View owns a reducer-driven state snapshot, a data-driven list of
// lifecycle hooks, and styling/attribute/event builders that populate the
// node it eventually renders to. Mount, Unmount and Invalidate run through
// the engine's FIFO scheduler so that several state mutations in one tick
// coalesce into sequential, non-interleaved reconciliation passes.
package view

import (
	"fmt"
	"log/slog"

	"github.com/lattice-ui/lattice/pkg/dom"
	"github.com/lattice-ui/lattice/pkg/reconcile"
	"github.com/lattice-ui/lattice/pkg/render"
	"github.com/lattice-ui/lattice/pkg/sched"
	"github.com/lattice-ui/lattice/pkg/store"
	"github.com/lattice-ui/lattice/pkg/vdom"
)

// State is a view's state snapshot. It is replaced wholesale on every
// dispatch and never mutated in place.
type State = map[string]any

// ActionMerge is the action type dispatched by Set.
const ActionMerge = "lattice/merge"

// InvalidationMode governs whether state changes re-render synchronously
// or via the deferred work queue.
type InvalidationMode uint8

const (
	// ModeScheduled defers re-renders to the work queue (the default).
	ModeScheduled InvalidationMode = iota
	// ModeForced re-renders synchronously inside the state change.
	ModeForced
)

// String returns the string representation of the InvalidationMode.
func (m InvalidationMode) String() string {
	if m == ModeForced {
		return "Forced"
	}
	return "Scheduled"
}

// MergeReducer handles ActionMerge by shallow-merging the partial payload
// over the previous snapshot into a fresh one. Other actions leave the
// snapshot unchanged.
func MergeReducer(prev State, action store.Action) State {
	if action.Type != ActionMerge {
		return prev
	}
	partial, _ := action.Payload.(State)
	next := make(State, len(prev)+len(partial))
	for k, v := range prev {
		next[k] = v
	}
	for k, v := range partial {
		next[k] = v
	}
	return next
}

// BodyFunc produces a view's body: another component (delegation), a
// *vdom.VNode, or nil. The target only influences text-tag mapping.
type BodyFunc func(v *View, target vdom.Target) any

// Config configures a View.
type Config struct {
	// Name identifies the view in logs.
	Name string

	// Body produces the view's body. A nil Body renders to nothing.
	Body BodyFunc

	// InitialState seeds the state snapshot.
	InitialState State

	// Reducer computes snapshots from dispatched actions.
	// Defaults to MergeReducer.
	Reducer store.Reducer[State]

	// Hooks are the view's lifecycle hook lists.
	Hooks Hooks

	// Mode selects scheduled or forced invalidation.
	Mode InvalidationMode

	// Queue is the FIFO work queue used for deferred lifecycle work.
	// Created on demand when nil.
	Queue *sched.Queue

	// Output is the factory for fresh live output nodes. Required for
	// mounting; dom.Document implements it.
	Output vdom.OutputFactory

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// View is a stateful component.
type View struct {
	name   string
	body   BodyFunc
	store  *store.Store[State]
	hooks  Hooks
	mode   InvalidationMode
	queue  *sched.Queue
	rec    *reconcile.Reconciler
	logger *slog.Logger

	committed    *vdom.VNode
	mountPending bool
	muted        bool

	styles map[string]vdom.Value
	attrs  map[string]vdom.Value
	events map[string][]vdom.Handler
}

var (
	_ vdom.Component = (*View)(nil)
	_ vdom.Lifecycle = (*View)(nil)
)

// New creates a view with default state and no committed node.
// The view subscribes to its own store: every state change triggers
// Invalidate (never ForceInvalidate) according to the configured mode.
func New(cfg Config) *View {
	reducer := cfg.Reducer
	if reducer == nil {
		reducer = MergeReducer
	}
	queue := cfg.Queue
	if queue == nil {
		queue = sched.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	initial := cfg.InitialState
	if initial == nil {
		initial = State{}
	}

	v := &View{
		name:   cfg.Name,
		body:   cfg.Body,
		hooks:  cfg.Hooks,
		mode:   cfg.Mode,
		queue:  queue,
		logger: logger.With("view", cfg.Name),
	}
	v.store = store.New(initial, reducer)
	if cfg.Output != nil {
		v.rec = reconcile.New(cfg.Output)
	}
	v.store.Subscribe(func(State) {
		v.Invalidate()
	})
	return v
}

// Name returns the view's configured name.
func (v *View) Name() string { return v.name }

// Queue returns the view's work queue.
func (v *View) Queue() *sched.Queue { return v.queue }

// CommittedNode returns the virtual tree most recently reconciled into
// the live output, or nil before first mount.
func (v *View) CommittedNode() *vdom.VNode { return v.committed }

// Mounted reports whether the view's committed tree owns a live output
// node.
func (v *View) Mounted() bool {
	return v.committed != nil && v.committed.Bound != nil
}

// =============================================================================
// State
// =============================================================================

// State returns the current snapshot.
func (v *View) State() State { return v.store.Get() }

// Get returns a single value from the current snapshot.
func (v *View) Get(key string) any { return v.store.Get()[key] }

// Set shallow-merges partial over the current snapshot, replacing it
// wholesale, and notifies subscribers synchronously before returning.
// It is a no-op while state mutation is muted during a serialization
// render pass.
func (v *View) Set(partial State) {
	if v.muted {
		return
	}
	v.store.Dispatch(store.Action{Type: ActionMerge, Payload: partial})
}

// Dispatch forwards an action to the view's store unless muted.
func (v *View) Dispatch(action store.Action) {
	if v.muted {
		return
	}
	v.store.Dispatch(action)
}

// Subscribe registers a listener on the view's store.
func (v *View) Subscribe(fn func(State)) (unsubscribe func()) {
	return v.store.Subscribe(fn)
}

// MuteState disables the view's state-mutation entry points until the
// returned restore function runs. Used by the rendering pipeline for
// serialization passes.
func (v *View) MuteState() (restore func()) {
	prev := v.muted
	v.muted = true
	return func() { v.muted = prev }
}

// =============================================================================
// Builders
// =============================================================================

// Style declares a style to populate the node this view renders to.
func (v *View) Style(name string, value vdom.Value) *View {
	if v.styles == nil {
		v.styles = make(map[string]vdom.Value)
	}
	v.styles[name] = value
	return v
}

// Attr declares an attribute to populate the node this view renders to.
func (v *View) Attr(name string, value vdom.Value) *View {
	if v.attrs == nil {
		v.attrs = make(map[string]vdom.Value)
	}
	v.attrs[name] = value
	return v
}

// On appends an event handler to populate the node this view renders to.
func (v *View) On(event string, h vdom.Handler) *View {
	if h == nil {
		return v
	}
	if v.events == nil {
		v.events = make(map[string][]vdom.Handler)
	}
	v.events[event] = append(v.events[event], h)
	return v
}

// DecorateNode applies the view's declared styles, attributes and event
// handlers to its resolved node. Called by the rendering pipeline; only
// element nodes carry styles, attributes or events.
func (v *View) DecorateNode(node *vdom.VNode) {
	if node == nil || node.Kind != vdom.KindElement {
		return
	}
	for name, val := range v.styles {
		node.Style(name, val)
	}
	for name, val := range v.attrs {
		node.Attr(name, val)
	}
	for event, handlers := range v.events {
		for _, h := range handlers {
			node.On(event, h)
		}
	}
}

// =============================================================================
// Rendering integration
// =============================================================================

// Body implements vdom.Component.
func (v *View) Body(target vdom.Target) any {
	if v.body == nil {
		return nil
	}
	return v.body(v, target)
}

// KeepRenderedNode updates the committed-node pointer. Called by the
// rendering pipeline for every view in the delegation chain when the
// pass runs with SaveVNode.
func (v *View) KeepRenderedNode(node *vdom.VNode) {
	v.committed = node
}

// DidMount implements vdom.Lifecycle by running the post-mount hook list.
func (v *View) DidMount() {
	for _, fn := range v.hooks.DidMount {
		fn(v)
	}
}

// DidInvalidate implements vdom.Lifecycle by running the
// post-invalidation hook list.
func (v *View) DidInvalidate() {
	for _, fn := range v.hooks.DidInvalidate {
		fn(v)
	}
}

// =============================================================================
// Lifecycle
// =============================================================================

// Mount enqueues a unit of work that renders the view, attaches the
// resulting live subtree under target, and fires the post-mount hooks.
// It fails synchronously if the view is already mounted (or a mount is
// already pending) or if target cannot host output.
func (v *View) Mount(target vdom.OutputNode) error {
	if v.Mounted() || v.mountPending {
		return fmt.Errorf("%w: view %q is already mounted", ErrInvalidOperation, v.name)
	}
	if target == nil || !target.CanHostChildren() {
		return fmt.Errorf("%w: mount target cannot host output", ErrInvalidOperation)
	}
	if v.rec == nil {
		return fmt.Errorf("%w: view %q has no output factory", ErrInvalidOperation, v.name)
	}

	v.mountPending = true
	v.queue.Enqueue(func() {
		v.mountPending = false
		node, err := render.Render(v, render.Options{
			Target:    vdom.TargetClient,
			SaveVNode: true,
		})
		if err != nil {
			v.logger.Error("mount render failed", "err", err)
			return
		}
		if node == nil {
			v.logger.Warn("mount rendered empty body")
			return
		}
		v.rec.Materialize(node)
		target.AppendChild(node.Bound)
		for _, owner := range node.Owners() {
			owner.DidMount()
		}
	})
	return nil
}

// Unmount enqueues detachment of the committed live subtree. It fails
// synchronously if the view is not mounted and no mount is pending.
func (v *View) Unmount() error {
	if !v.Mounted() && !v.mountPending {
		return fmt.Errorf("%w: view %q is not mounted", ErrInvalidOperation, v.name)
	}

	v.queue.Enqueue(func() {
		if !v.Mounted() {
			return
		}
		for _, fn := range v.hooks.WillUnmount {
			fn(v)
		}
		v.committed.Bound.Detach()
		v.committed = nil
	})
	return nil
}

// Invalidate requests a re-render. It is a no-op while unmounted. Under
// ModeForced the pass runs synchronously; under ModeScheduled it is
// enqueued, so several same-tick invalidations execute later as separate
// sequential passes, each observing the snapshot current at its own
// execution time.
func (v *View) Invalidate() {
	if !v.Mounted() && !v.mountPending {
		return
	}
	if v.mode == ModeForced {
		if err := v.ForceInvalidate(); err != nil {
			v.logger.Error("invalidate failed", "err", err)
		}
		return
	}
	v.queue.Enqueue(func() {
		if err := v.ForceInvalidate(); err != nil {
			v.logger.Error("invalidate failed", "err", err)
		}
	})
}

// ForceInvalidate synchronously renders a fresh tree, reconciles it
// against the committed tree, and commits it. The post-invalidation hooks
// fire from the reconciliation pass. A failed render pass leaves the
// previously committed tree and the live output untouched. No-op while
// unmounted.
func (v *View) ForceInvalidate() error {
	if !v.Mounted() {
		return nil
	}

	node, err := render.Render(v, render.Options{
		Target: vdom.TargetClient,
	})
	if err != nil {
		return err
	}
	if node == nil {
		v.logger.Warn("invalidate rendered empty body; keeping committed tree")
		return nil
	}

	v.rec.Reconcile(v.committed, node)
	v.committed = node
	return nil
}

// Hydrate binds a freshly rendered tree onto a pre-existing live subtree
// produced from this view's own serialization, making it the committed
// tree without rebuilding the output. Fails if the view is already
// mounted.
func (v *View) Hydrate(live *dom.Node) error {
	if v.Mounted() || v.mountPending {
		return fmt.Errorf("%w: view %q is already mounted", ErrInvalidOperation, v.name)
	}

	node, err := render.Render(v, render.Options{
		Target:    vdom.TargetClient,
		SaveVNode: true,
	})
	if err != nil {
		return err
	}
	if err := render.Hydrate(node, live); err != nil {
		v.committed = nil
		return err
	}
	v.committed = node
	return nil
}
