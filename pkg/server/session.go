package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lattice-ui/lattice/pkg/dom"
	"github.com/lattice-ui/lattice/pkg/sched"
	"github.com/lattice-ui/lattice/pkg/view"
)

// Session is one client's mounted page: a private output tree, the FIFO
// work queue all of its lifecycle work runs on, and the root view.
// All event handling for a session runs on a single goroutine, so the
// document and queue need no locking of their own.
type Session struct {
	ID        string
	Route     string
	CreatedAt time.Time

	doc   *dom.Document
	queue *sched.Queue
	view  *view.View

	logger     *slog.Logger
	lastActive atomic.Int64

	writeMu sync.Mutex

	eventCount atomic.Uint64
	patchCount atomic.Uint64
}

func newSession(id, route string, logger *slog.Logger) *Session {
	s := &Session{
		ID:        id,
		Route:     route,
		CreatedAt: time.Now(),
		doc:       dom.NewDocument(),
		queue:     sched.New(),
		logger:    logger.With("session", id, "route", route),
	}
	s.touch()
	return s
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("lattice: session id: %v", err))
	}
	return hex.EncodeToString(b)
}

// Document returns the session's live output tree.
func (s *Session) Document() *dom.Document { return s.doc }

// Queue returns the session's work queue. Page functions pass it to the
// views they build so all of a session's work drains in one place.
func (s *Session) Queue() *sched.Queue { return s.queue }

// View returns the session's root view.
func (s *Session) View() *view.View { return s.view }

// LastActive returns the time of the session's most recent event.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// HandleEvent dispatches a client event into the session's listener
// registry, drains the work queue, and returns the resulting mutation
// patches. A zero handler count is not an error; stale events from a
// client that has not yet applied removals are expected.
func (s *Session) HandleEvent(nodeID, event string, payload map[string]any) []dom.Patch {
	s.touch()
	s.eventCount.Add(1)

	handled := s.doc.Dispatch(nodeID, event, payload)
	if handled == 0 {
		s.logger.Debug("event had no handlers", "node", nodeID, "event", event)
	}
	s.queue.Flush()

	patches := s.doc.TakePatches()
	s.patchCount.Add(uint64(len(patches)))
	return patches
}

// sessionRecord is the persisted form of a detached session.
type sessionRecord struct {
	Route    string        `json:"route"`
	State    view.State    `json:"state,omitempty"`
	Snapshot *dom.Snapshot `json:"snapshot"`
}

// persist encodes the session's route, root view state and output
// snapshot. The snapshot covers the view's mounted subtree, not the
// document root; the root pre-exists on both ends.
func (s *Session) persist() ([]byte, error) {
	committed := s.view.CommittedNode()
	if committed == nil || committed.Bound == nil {
		return nil, fmt.Errorf("%w: session %s has no mounted output", ErrInvalidSession, s.ID)
	}
	live, ok := committed.Bound.(*dom.Node)
	if !ok {
		return nil, fmt.Errorf("%w: session %s output is not a document node", ErrInvalidSession, s.ID)
	}

	rec := sessionRecord{
		Route:    s.Route,
		State:    s.view.State(),
		Snapshot: dom.TakeSnapshot(live),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("lattice: encode session %s: %w", s.ID, err)
	}
	return data, nil
}
