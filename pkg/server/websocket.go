package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lattice-ui/lattice/pkg/dom"
)

// eventFrame is a client event addressed at a live node.
type eventFrame struct {
	Node    string         `json:"node"`
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
}

// patchFrame carries the mutations produced by one event.
type patchFrame struct {
	Type    string      `json:"type"`
	Patches []dom.Patch `json:"patches"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Origin checks belong to the fronting proxy; sessions are
	// unguessable 128-bit IDs.
	CheckOrigin: func(*http.Request) bool { return true },
}

// serveWS attaches a client to its session: live sessions attach
// directly, persisted ones are resumed first.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "missing session", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sess := s.live[id]
	s.mu.Unlock()

	resumed := false
	if sess == nil {
		var err error
		sess, err = s.resumeSession(r.Context(), id)
		switch {
		case errors.Is(err, ErrSessionNotFound):
			http.Error(w, "session not found", http.StatusNotFound)
			return
		case errors.Is(err, ErrSessionExpired):
			http.Error(w, "session expired", http.StatusGone)
			return
		case err != nil:
			s.logger.Error("session resume failed", "session", id, "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		resumed = true
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		sess.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	s.metrics.activeSessions.Inc()
	defer s.metrics.activeSessions.Dec()
	if resumed {
		s.metrics.resumesTotal.Inc()
		s.metrics.detachedSessions.Dec()
	}

	sess.logger.Info("client attached", "resumed", resumed)
	s.readLoop(r.Context(), conn, sess)

	// The request context is done once the handler unwinds; persist with
	// a fresh one.
	detachCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.detachSession(detachCtx, sess)
}

// readLoop processes event frames one at a time. Each event runs to
// completion, including every re-render it schedules, before its patch
// frame is written and the next frame is read.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, sess *Session) {
	for {
		var frame eventFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.logger.Warn("connection error", "err", err)
			}
			return
		}
		if frame.Node == "" || frame.Event == "" {
			sess.logger.Debug("dropping malformed frame")
			continue
		}

		start := time.Now()
		_, span := s.tracer.Start(ctx, "lattice.event", trace.WithAttributes(
			attribute.String("lattice.route", sess.Route),
			attribute.String("lattice.event", frame.Event),
			attribute.String("lattice.node", frame.Node),
		))
		patches := sess.HandleEvent(frame.Node, frame.Event, frame.Payload)
		span.End()

		s.metrics.eventDuration.WithLabelValues(sess.Route).Observe(time.Since(start).Seconds())

		sess.writeMu.Lock()
		err := conn.WriteJSON(patchFrame{Type: "patch", Patches: patches})
		sess.writeMu.Unlock()
		if err != nil {
			s.metrics.eventsTotal.WithLabelValues(sess.Route, "error").Inc()
			sess.logger.Warn("patch write failed", "err", err)
			return
		}
		s.metrics.eventsTotal.WithLabelValues(sess.Route, "ok").Inc()
		s.metrics.patchesSent.Add(float64(len(patches)))
	}
}
