package server

import (
	"encoding/json"
	"io"
	"net/http"
)

// Error classes reported alongside generation classes in error bodies.
const (
	classBadRequest  = "bad_request"
	classNotFound    = "not_found"
	classBusy        = "busy"
	classUnavailable = "unavailable"
	classInternal    = "internal"
	classFixed       = "not_draggable"
)

// maxBody bounds request bodies.
const maxBody = 4 << 20

type errorBody struct {
	Error string `json:"error"`
	Class string `json:"class"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, class, message string) {
	s.writeJSON(w, status, errorBody{Error: message, Class: class})
}

// decodeJSON decodes the request body into v. An empty body is not an error
// when allowEmpty is set; it reports false so the caller can fall back.
func decodeJSON(r *http.Request, v any, allowEmpty bool) (bool, error) {
	defer r.Body.Close()
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
	if err == io.EOF && allowEmpty {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
