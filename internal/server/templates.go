package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nlui/studio/internal/templates"
)

func (s *Server) templateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, templates.ErrNotFound):
		s.writeError(w, http.StatusNotFound, classNotFound, err.Error())
	case errors.Is(err, templates.ErrInvalid):
		s.writeError(w, http.StatusBadRequest, classBadRequest, err.Error())
	default:
		s.log.Error("template store", "error", err)
		s.writeError(w, http.StatusInternalServerError, classInternal, err.Error())
	}
}

// templateStore reports 503 and false when no store is wired.
func (s *Server) templateStore(w http.ResponseWriter) bool {
	if s.templates == nil {
		s.writeError(w, http.StatusServiceUnavailable, classUnavailable, "template store disabled")
		return false
	}
	return true
}

func templateID(r *http.Request) string {
	return strings.Trim(chi.URLParam(r, "*"), "/")
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	if !s.templateStore(w) {
		return
	}
	list, err := s.templates.List(r.Context())
	if err != nil {
		s.templateError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSearchTemplates(w http.ResponseWriter, r *http.Request) {
	if !s.templateStore(w) {
		return
	}
	q := r.URL.Query()
	list, err := s.templates.Search(r.Context(), q.Get("q"), q.Get("tag"))
	if err != nil {
		s.templateError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleTemplateTags(w http.ResponseWriter, r *http.Request) {
	if !s.templateStore(w) {
		return
	}
	tags, err := s.templates.Tags(r.Context())
	if err != nil {
		s.templateError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	if !s.templateStore(w) {
		return
	}
	t, err := s.templates.Get(r.Context(), templateID(r))
	if err != nil {
		s.templateError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAddTemplate(w http.ResponseWriter, r *http.Request) {
	if !s.templateStore(w) {
		return
	}
	var t templates.Template
	if _, err := decodeJSON(r, &t, false); err != nil {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "invalid json: "+err.Error())
		return
	}
	t.BuiltIn = false
	saved, err := s.templates.Add(r.Context(), t)
	if err != nil {
		s.templateError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	if !s.templateStore(w) {
		return
	}
	var p templates.Patch
	if _, err := decodeJSON(r, &p, false); err != nil {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "invalid json: "+err.Error())
		return
	}
	t, err := s.templates.Update(r.Context(), templateID(r), p)
	if err != nil {
		s.templateError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleRemoveTemplate(w http.ResponseWriter, r *http.Request) {
	if !s.templateStore(w) {
		return
	}
	if err := s.templates.Remove(r.Context(), templateID(r)); err != nil {
		s.templateError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
