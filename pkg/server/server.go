package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/lattice-ui/lattice/pkg/render"
	"github.com/lattice-ui/lattice/pkg/view"
)

// WebSocketPath is the attach endpoint clients connect to after the
// initial page load.
const WebSocketPath = "/lattice/ws"

// PageFunc builds the root view for one session. Implementations must
// wire the session's queue and document into the view:
//
//	func Counter(s *server.Session) *view.View {
//		return view.New(view.Config{
//			Name:   "counter",
//			Queue:  s.Queue(),
//			Output: s.Document(),
//			Body:   body,
//		})
//	}
type PageFunc func(s *Session) *view.View

// Server renders registered pages over HTTP and drives their sessions
// over WebSocket connections.
type Server struct {
	config   Config
	logger   *slog.Logger
	metrics  *Metrics
	renderer *render.Renderer
	tracer   trace.Tracer

	mu    sync.Mutex
	pages map[string]PageFunc
	live  map[string]*Session
}

// New creates a server. Register pages before calling Handler or Run.
func New(config Config) *Server {
	config = config.withDefaults()
	return &Server{
		config:   config,
		logger:   config.Logger,
		metrics:  NewMetrics(config.Registry),
		renderer: render.NewRenderer(render.Config{Pretty: config.Pretty}),
		tracer:   otel.Tracer("github.com/lattice-ui/lattice/pkg/server"),
		pages:    make(map[string]PageFunc),
		live:     make(map[string]*Session),
	}
}

// RegisterPage binds a page function to a route pattern.
func (s *Server) RegisterPage(route string, page PageFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[route] = page
}

// Handler returns the server's HTTP handler: one GET route per
// registered page, the WebSocket attach endpoint, and /metrics.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get(WebSocketPath, s.serveWS)
	r.Handle("/metrics", promhttp.Handler())

	s.mu.Lock()
	for route, page := range s.pages {
		r.Get(route, s.servePage(route, page))
	}
	s.mu.Unlock()
	return r
}

// Run serves until ctx is canceled, evicting idle unattached sessions
// along the way.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.config.Addr,
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go s.evictLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", "addr", s.config.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// evictLoop drops live sessions that were rendered but never attached,
// or whose connection handler has long gone, once idle past the resume
// window.
func (s *Server) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-s.config.ResumeWindow)
			s.mu.Lock()
			for id, sess := range s.live {
				if sess.LastActive().Before(cutoff) {
					delete(s.live, id)
					sess.logger.Info("session evicted")
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *Server) servePage(route string, page PageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.createSession(route, page)
		if err != nil {
			s.logger.Error("page render failed", "route", route, "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.writeShell(w, sess); err != nil {
			sess.logger.Error("response write failed", "err", err)
		}
	}
}

// createSession mounts a fresh session for the route. The mount's
// creation patches are discarded; the response carries the serialized
// tree itself.
func (s *Server) createSession(route string, page PageFunc) (*Session, error) {
	sess := newSession(newSessionID(), route, s.logger)
	v := page(sess)
	if v == nil {
		return nil, fmt.Errorf("%w: page %q returned no view", ErrNoSuchPage, route)
	}
	sess.view = v

	if err := v.Mount(sess.doc.Root()); err != nil {
		return nil, err
	}
	sess.queue.Flush()
	if !v.Mounted() {
		return nil, fmt.Errorf("%w: page %q mounted no output", ErrInvalidSession, route)
	}
	sess.doc.TakePatches()

	s.mu.Lock()
	s.live[sess.ID] = sess
	s.mu.Unlock()

	sess.logger.Info("session created")
	return sess, nil
}

// writeShell emits the HTML document around the session's live tree.
// Every element carries its data-lid, and the body advertises the
// session ID and attach endpoint for the client runtime.
func (s *Server) writeShell(w io.Writer, sess *Session) error {
	fmt.Fprintf(w, "<!doctype html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n", htmlTitle(s.config.Title))
	fmt.Fprintf(w, "<body data-lattice-session=%q data-lattice-ws=%q>\n", sess.ID, WebSocketPath)
	for _, child := range sess.doc.Root().Children() {
		if err := s.renderer.OutputHTML(w, child); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}

// resumeSession rebuilds a persisted session: the output tree is
// restored from its snapshot, the saved state is merged in, and the
// root view hydrates onto the rebuilt tree instead of re-mounting.
func (s *Server) resumeSession(ctx context.Context, id string) (*Session, error) {
	data, expiresAt, err := s.config.StateStore.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if time.Now().After(expiresAt) {
		s.config.StateStore.Delete(ctx, id)
		return nil, ErrSessionExpired
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("lattice: decode session %s: %w", id, err)
	}

	s.mu.Lock()
	page := s.pages[rec.Route]
	s.mu.Unlock()
	if page == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchPage, rec.Route)
	}

	sess := newSession(id, rec.Route, s.logger)
	v := page(sess)
	if v == nil {
		return nil, fmt.Errorf("%w: page %q returned no view", ErrNoSuchPage, rec.Route)
	}
	sess.view = v

	restored := sess.doc.Restore(rec.Snapshot)
	if restored == nil {
		return nil, fmt.Errorf("%w: session %s has no snapshot", ErrInvalidSession, id)
	}
	sess.doc.Root().AppendChild(restored)
	if len(rec.State) > 0 {
		v.Set(rec.State)
	}
	if err := v.Hydrate(restored); err != nil {
		return nil, err
	}
	sess.doc.TakePatches()

	s.config.StateStore.Delete(ctx, id)

	s.mu.Lock()
	s.live[sess.ID] = sess
	s.mu.Unlock()

	sess.logger.Info("session resumed")
	return sess, nil
}

// detachSession persists a session after its connection closes and
// removes it from the live table.
func (s *Server) detachSession(ctx context.Context, sess *Session) {
	s.mu.Lock()
	delete(s.live, sess.ID)
	s.mu.Unlock()

	data, err := sess.persist()
	if err != nil {
		sess.logger.Error("session persist failed", "err", err)
		return
	}
	expiresAt := time.Now().Add(s.config.ResumeWindow)
	if err := s.config.StateStore.Save(ctx, sess.ID, data, expiresAt); err != nil {
		sess.logger.Error("session save failed", "err", err)
		return
	}
	s.metrics.detachedSessions.Inc()
	sess.logger.Info("session detached", "expires_at", expiresAt)
}

func htmlTitle(title string) string {
	return strings.NewReplacer("<", "&lt;", ">", "&gt;", "&", "&amp;").Replace(title)
}
