// Package lattice re-exports the handful of types most applications
// touch, so app code can usually import this package and pkg/vdom and
// nothing else. The underlying packages remain importable directly.
package lattice

import (
	"github.com/lattice-ui/lattice/pkg/render"
	"github.com/lattice-ui/lattice/pkg/sched"
	"github.com/lattice-ui/lattice/pkg/server"
	"github.com/lattice-ui/lattice/pkg/view"
)

// View is a stateful component. See pkg/view.
type View = view.View

// ViewConfig configures a View.
type ViewConfig = view.Config

// State is a view's state snapshot.
type State = view.State

// Hooks is a view's lifecycle hook lists.
type Hooks = view.Hooks

// NewView creates a view.
func NewView(cfg ViewConfig) *View { return view.New(cfg) }

// Queue is the FIFO work queue lifecycle work runs on.
type Queue = sched.Queue

// NewQueue creates an empty work queue.
func NewQueue() *Queue { return sched.New() }

// Server serves mounted views over HTTP. See pkg/server.
type Server = server.Server

// ServerConfig configures a Server.
type ServerConfig = server.Config

// Session is one client's mounted page.
type Session = server.Session

// PageFunc builds the root view for one session.
type PageFunc = server.PageFunc

// NewServer creates a server.
func NewServer(cfg ServerConfig) *Server { return server.New(cfg) }

// Static renders root for serialization and returns its HTML.
func Static(root any) (string, error) { return render.Static(root) }
