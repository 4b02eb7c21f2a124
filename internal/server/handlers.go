package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nlui/studio/internal/export"
	"github.com/nlui/studio/internal/generate"
	"github.com/nlui/studio/internal/observability"
	"github.com/nlui/studio/internal/render"
	"github.com/nlui/studio/internal/render/plain"
	"github.com/nlui/studio/internal/uidoc"
)

type healthResponse struct {
	Status string `json:"status"`
	Health
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Health: s.health})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	window := time.Hour
	if v := r.URL.Query().Get("since"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			s.writeError(w, http.StatusBadRequest, classBadRequest, "since must be a positive duration like 15m")
			return
		}
		window = d
	}
	since := s.now().Add(-window)
	if t := r.URL.Query().Get("type"); t != "" {
		s.metricPoints(w, observability.MetricType(t), r.URL.Query().Get("label"), since)
		return
	}
	s.writeJSON(w, http.StatusOK, s.metrics.Report(since))
}

type pointsResponse struct {
	Type   observability.MetricType    `json:"type"`
	Points []observability.MetricPoint `json:"points"`
}

// metricPoints serves the raw points of one type, optionally filtered by a
// label given as key=value.
func (s *Server) metricPoints(w http.ResponseWriter, mt observability.MetricType, label string, since time.Time) {
	known := false
	for _, t := range observability.MetricTypes {
		known = known || t == mt
	}
	if !known {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "unknown metric type "+string(mt))
		return
	}
	if label == "" {
		s.writeJSON(w, http.StatusOK, pointsResponse{Type: mt, Points: s.metrics.Query(mt, since)})
		return
	}
	key, value, ok := strings.Cut(label, "=")
	if !ok || key == "" {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "label must be key=value")
		return
	}
	points := []observability.MetricPoint{}
	for _, p := range s.metrics.QueryWithLabel(mt, key, value) {
		if !p.Timestamp.Before(since) {
			points = append(points, p)
		}
	}
	s.writeJSON(w, http.StatusOK, pointsResponse{Type: mt, Points: points})
}

func (s *Server) handleResetMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.Reset()
	s.log.Info("metrics reset")
	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// generateStatus maps a generation class onto an HTTP status.
func generateStatus(c generate.Class) int {
	switch c {
	case generate.ClassSchema:
		return http.StatusBadGateway
	case generate.ClassAuth:
		return http.StatusUnauthorized
	case generate.ClassRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if _, err := decodeJSON(r, &req, false); err != nil {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "invalid json: "+err.Error())
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "prompt is required")
		return
	}
	if s.gen == nil {
		s.writeError(w, http.StatusServiceUnavailable, classUnavailable, "no LLM provider configured")
		return
	}
	if !s.generating.CompareAndSwap(false, true) {
		s.writeError(w, http.StatusConflict, classBusy, "a generation is already in progress")
		return
	}
	defer s.generating.Store(false)

	res, err := s.gen.Generate(r.Context(), prompt)
	if err != nil {
		if errors.Is(err, generate.ErrEmptyPrompt) {
			s.writeError(w, http.StatusBadRequest, classBadRequest, err.Error())
			return
		}
		class := generate.ClassOf(err)
		if class == "" {
			class = generate.ClassFailure
		}
		s.writeError(w, generateStatus(class), string(class), err.Error())
		return
	}

	s.replace(r.Context(), res.Document, prompt)
	s.writeJSON(w, http.StatusOK, res)
}

type documentResponse struct {
	Document    *uidoc.Document    `json:"document"`
	Prompt      string             `json:"prompt,omitempty"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty"`
	Diagnostics []uidoc.Diagnostic `json:"diagnostics,omitempty"`
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, prompt, at := s.current()
	if doc == nil {
		s.writeError(w, http.StatusNotFound, classNotFound, "no document yet")
		return
	}
	s.writeJSON(w, http.StatusOK, documentResponse{Document: doc, Prompt: prompt, UpdatedAt: &at})
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, classBadRequest, err.Error())
		return
	}
	doc, err := uidoc.Parse(data)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, string(generate.ClassSchema), err.Error())
		return
	}
	doc = uidoc.AssignIDs(doc)
	s.replace(r.Context(), doc, "")
	s.writeJSON(w, http.StatusOK, documentResponse{Document: doc, Diagnostics: uidoc.Diagnose(doc)})
}

func (s *Server) handleClearDocument(w http.ResponseWriter, r *http.Request) {
	s.clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// handleRender renders the posted document, or the current one when the body
// is empty. ?page=1 wraps the fragment in a standalone page.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("backend")
	if name == "" {
		name = render.DefaultBackend
	}
	backend, err := render.New(name, render.Options{
		Editable: flag(q.Get("editable")),
		Actions:  s.actions,
	})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, classBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, classBadRequest, err.Error())
		return
	}
	var doc *uidoc.Document
	if len(bytes.TrimSpace(data)) == 0 {
		doc, _, _ = s.current()
		if doc == nil {
			s.writeError(w, http.StatusNotFound, classNotFound, "no document yet")
			return
		}
	} else {
		doc, err = uidoc.Parse(data)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, string(generate.ClassSchema), err.Error())
			return
		}
		doc = uidoc.AssignIDs(doc)
	}

	res := render.Render(doc, backend)
	s.log.Render(res.Backend, res.Nodes)
	labels := observability.Labels{"backend": res.Backend}
	s.metrics.Record(observability.MetricRenders, 1, labels)
	s.metrics.Record(observability.MetricRenderNodes, float64(res.Nodes), labels)
	s.metrics.IncrementBy("rendered_nodes_total", int64(res.Nodes))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Node-Count", strconv.Itoa(res.Nodes))
	out := res.HTML
	if flag(q.Get("page")) {
		out = render.Page(doc.Title, res)
	}
	if _, err := io.WriteString(w, out); err != nil {
		s.log.Warn("write render", "error", err)
	}
}

func flag(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, _, _ := s.current()
	if doc == nil {
		s.writeError(w, http.StatusNotFound, classNotFound, export.ErrNoDocument.Error())
		return
	}
	now := s.now()
	var buf bytes.Buffer
	m, err := export.Write(&buf, doc, export.Options{AppName: s.appName, Version: s.version, Now: now})
	if err != nil {
		s.log.Error("export failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, classInternal, err.Error())
		return
	}
	s.log.Info("exported", "bundle_id", m.BundleID, "components", m.ComponentCount, "bytes", buf.Len())
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(doc, now)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("write export", "error", err)
	}
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var c plain.Click
	if _, err := decodeJSON(r, &c, true); err != nil {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "invalid json: "+err.Error())
		return
	}
	c.Action = plain.Action(chi.URLParam(r, "action"))
	resolved, _ := s.actions.Resolve(c.Action)
	msg, err := s.actions.Dispatch(r.Context(), c)
	if errors.Is(err, plain.ErrNoHandler) {
		s.writeError(w, http.StatusNotFound, classNotFound, err.Error()+" "+string(c.Action))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, classInternal, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"action": string(resolved), "message": msg})
}
