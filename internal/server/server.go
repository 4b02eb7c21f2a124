// Package server exposes generation, rendering, layout, templates and export
// over HTTP, and pushes document changes to preview pages over a WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nlui/studio/internal/generate"
	"github.com/nlui/studio/internal/observability"
	"github.com/nlui/studio/internal/render/plain"
	"github.com/nlui/studio/internal/session"
	"github.com/nlui/studio/internal/templates"
	"github.com/nlui/studio/internal/uidoc"
)

// Health describes the configured provider.
type Health struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
}

// Options wires a Server. Generator may be nil when no provider is
// configured; generation then answers 503. Session may be nil to disable
// persistence.
type Options struct {
	Generator generate.Generator
	Templates *templates.Store
	Session   session.Store
	Actions   *plain.ActionTable
	Logger    *observability.Logger
	Metrics   *observability.MetricsCollector
	Health    Health

	RateLimitRPS   float64
	RateLimitBurst int

	// AllowedOrigins extends the preview socket's same-host origin check.
	AllowedOrigins []string

	AppName string
	Version string
}

// Server holds the single current document and the collaborators that act
// on it.
type Server struct {
	gen       generate.Generator
	templates *templates.Store
	session   session.Store
	actions   *plain.ActionTable
	log       *observability.Logger
	metrics   *observability.MetricsCollector
	health    Health
	limiter   *clientLimiter
	hub       *Hub
	appName   string
	version   string
	now       func() time.Time

	// generating guards the single outstanding generation.
	generating atomic.Bool

	mu        sync.RWMutex
	doc       *uidoc.Document
	prompt    string
	updatedAt time.Time
	rev       uint64

	// pubMu orders session writes and broadcasts; published is the last
	// revision written.
	pubMu     sync.Mutex
	published uint64

	unsubscribe func()
}

// New creates a server. Call Restore to reload the persisted session.
func New(opts Options) *Server {
	s := &Server{
		gen:       opts.Generator,
		templates: opts.Templates,
		session:   opts.Session,
		actions:   opts.Actions,
		log:       observability.OrNop(opts.Logger).Component("server"),
		metrics:   opts.Metrics,
		health:    opts.Health,
		limiter:   newClientLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		appName:   opts.AppName,
		version:   opts.Version,
		now:       time.Now,
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetricsCollector(0)
	}
	if s.actions == nil {
		s.actions = defaultActions(s.log)
	}
	s.hub = NewHub(s.log.Component("hub"), s.snapshot, opts.AllowedOrigins...)
	if s.templates != nil {
		s.unsubscribe = s.templates.Subscribe(func(ev templates.Event) {
			s.hub.Broadcast(Message{Type: MsgTemplates, Data: ev})
		})
	}
	return s
}

// Restore loads the last saved prompt and document, if any.
func (s *Server) Restore(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	st, err := s.session.Load(ctx)
	if err != nil {
		return fmt.Errorf("server: restore session: %w", err)
	}
	if st == nil {
		return nil
	}
	s.mu.Lock()
	s.doc = uidoc.AssignIDs(st.Document)
	s.prompt = st.Prompt
	s.updatedAt = st.UpdatedAt
	s.mu.Unlock()
	s.log.Info("session restored", "prompt_len", len(st.Prompt), "has_document", st.Document != nil)
	return nil
}

// Hub returns the live preview hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoverer)
	r.Get("/ws", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(s.requestLog)
		r.Get("/", s.handlePage)
		r.Route("/api", s.apiRoutes)
	})
	return r
}

func (s *Server) apiRoutes(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Delete("/metrics", s.handleResetMetrics)
	r.With(s.rateLimit).Post("/generate", s.handleGenerate)

	r.Get("/document", s.handleGetDocument)
	r.Put("/document", s.handlePutDocument)
	r.Delete("/document", s.handleClearDocument)
	r.Post("/render", s.handleRender)
	r.Get("/export", s.handleExport)

	r.Post("/layout/move", s.handleMove)
	r.Post("/layout/zindex", s.handleZIndex)

	r.Post("/actions/{action}", s.handleAction)

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.handleListTemplates)
		r.Post("/", s.handleAddTemplate)
		r.Get("/search", s.handleSearchTemplates)
		r.Get("/tags", s.handleTemplateTags)
		// Template IDs may contain slashes.
		r.Get("/*", s.handleGetTemplate)
		r.Patch("/*", s.handleUpdateTemplate)
		r.Delete("/*", s.handleRemoveTemplate)
	})
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.Close()
		if err := srv.Shutdown(shutCtx); err != nil {
			s.log.Warn("shutdown", "error", err)
		}
	}()
	go s.sweepLimiter(ctx)

	s.log.Info("listening", "addr", ln.Addr().String(), "provider", s.health.Provider, "model", s.health.Model)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}

// Close releases the template subscription.
func (s *Server) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.hub.Close()
}

func (s *Server) sweepLimiter(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.limiter.sweep(3 * time.Minute)
		}
	}
}

// current returns a copy of the current document and prompt.
func (s *Server) current() (*uidoc.Document, string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone(), s.prompt, s.updatedAt
}

// update is one installed state waiting to be persisted and broadcast.
type update struct {
	rev     uint64
	state   session.State
	cleared bool
}

// replace installs doc as the current document, persists it and notifies
// preview clients. An empty prompt keeps the previous one.
func (s *Server) replace(ctx context.Context, doc *uidoc.Document, prompt string) {
	s.mu.Lock()
	u := s.installLocked(doc, prompt)
	s.mu.Unlock()
	s.publish(ctx, u)
}

// clear drops the current document and prompt.
func (s *Server) clear(ctx context.Context) {
	s.mu.Lock()
	s.doc = nil
	s.prompt = ""
	s.updatedAt = time.Time{}
	s.rev++
	u := update{rev: s.rev, cleared: true}
	s.mu.Unlock()
	s.publish(ctx, u)
}

// installLocked swaps in doc; s.mu must be held.
func (s *Server) installLocked(doc *uidoc.Document, prompt string) update {
	s.doc = doc
	if prompt != "" {
		s.prompt = prompt
	}
	s.updatedAt = s.now().UTC()
	s.rev++
	return update{
		rev:   s.rev,
		state: session.State{Prompt: s.prompt, Document: doc.Clone(), UpdatedAt: s.updatedAt},
	}
}

// publish persists and broadcasts u unless a later revision already went out,
// so the session store and clients always end on the in-memory state.
func (s *Server) publish(ctx context.Context, u update) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	if u.rev <= s.published {
		s.log.Debug("stale update dropped", "rev", u.rev, "published", s.published)
		return
	}
	s.published = u.rev
	if u.cleared {
		s.forget(ctx)
		s.hub.Broadcast(Message{Type: MsgDocument})
		return
	}
	s.persist(ctx, u.state)
	s.hub.Broadcast(Message{Type: MsgDocument, Data: u.state.Document})
}

func (s *Server) persist(ctx context.Context, st session.State) {
	if s.session == nil {
		return
	}
	if err := s.session.Save(ctx, st); err != nil {
		s.log.Warn("session save failed", "error", err)
	}
}

func (s *Server) forget(ctx context.Context) {
	if s.session == nil {
		return
	}
	if err := s.session.Clear(ctx); err != nil {
		s.log.Warn("session clear failed", "error", err)
	}
}

func (s *Server) snapshot() []Message {
	doc, _, _ := s.current()
	return []Message{{Type: MsgDocument, Data: doc}}
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.log.Error("handler panic", "path", r.URL.Path, "panic", fmt.Sprint(v))
				s.writeError(w, http.StatusInternalServerError, classInternal, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
