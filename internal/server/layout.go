package server

import (
	"net/http"

	"github.com/nlui/studio/internal/layout"
	"github.com/nlui/studio/internal/observability"
	"github.com/nlui/studio/internal/uidoc"
)

type moveRequest struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Resolve bool    `json:"resolve,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
}

type moveResponse struct {
	Document  *uidoc.Document       `json:"document"`
	Position  uidoc.Position        `json:"position"`
	Displaced []layout.Displacement `json:"displaced,omitempty"`
}

// Z-index operations.
const (
	zSet   = "set"
	zFront = "front"
	zBack  = "back"
)

type zIndexRequest struct {
	ID string `json:"id"`
	Z  *int   `json:"z,omitempty"`
	Op string `json:"op,omitempty"`
}

// mutate applies fn to the current document and installs the result when fn
// reports success. exists is false when there is no document.
func (s *Server) mutate(r *http.Request, fn func(*uidoc.Document) (*uidoc.Document, bool)) (out *uidoc.Document, ok, exists bool) {
	s.mu.Lock()
	if s.doc == nil {
		s.mu.Unlock()
		return nil, false, false
	}
	out, ok = fn(s.doc)
	if !ok {
		s.mu.Unlock()
		return out, false, true
	}
	u := s.installLocked(out, "")
	s.mu.Unlock()
	s.publish(r.Context(), u)
	return out, true, true
}

func (s *Server) layoutOp(op, id string, applied bool) {
	s.log.Layout(op, id, applied)
	s.metrics.Record(observability.MetricLayoutOps, 1, observability.Labels{"op": op})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if _, err := decodeJSON(r, &req, false); err != nil || req.ID == "" {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "body must be {id, x, y}")
		return
	}
	pos := layout.Snap(uidoc.Position{X: req.X, Y: req.Y})

	var (
		displaced []layout.Displacement
		fixed     uidoc.Kind
	)
	doc, ok, exists := s.mutate(r, func(d *uidoc.Document) (*uidoc.Document, bool) {
		n, _ := uidoc.Find(d.Tree, req.ID)
		if n == nil {
			return d, false
		}
		if !layout.Draggable(n.Kind) {
			fixed = n.Kind
			return d, false
		}
		if req.Resolve {
			d, displaced = layout.ResolveCollisions(d, req.ID, pos, layout.Size{W: req.Width, H: req.Height})
		}
		return layout.Move(d, req.ID, pos)
	})
	if !exists {
		s.writeError(w, http.StatusNotFound, classNotFound, "no document yet")
		return
	}
	s.layoutOp("move", req.ID, ok)
	switch {
	case fixed != "":
		s.writeError(w, http.StatusUnprocessableEntity, classFixed, string(fixed)+" nodes move with their container")
		return
	case !ok:
		s.writeError(w, http.StatusNotFound, classNotFound, "no node with id "+req.ID)
		return
	}
	s.writeJSON(w, http.StatusOK, moveResponse{Document: doc, Position: pos, Displaced: displaced})
}

func (s *Server) handleZIndex(w http.ResponseWriter, r *http.Request) {
	var req zIndexRequest
	if _, err := decodeJSON(r, &req, false); err != nil || req.ID == "" {
		s.writeError(w, http.StatusBadRequest, classBadRequest, "body must be {id, op, z?}")
		return
	}
	if req.Op == "" {
		req.Op = zSet
	}
	var fn func(*uidoc.Document) (*uidoc.Document, bool)
	switch req.Op {
	case zSet:
		if req.Z == nil {
			s.writeError(w, http.StatusBadRequest, classBadRequest, "op set needs z")
			return
		}
		z := *req.Z
		fn = func(d *uidoc.Document) (*uidoc.Document, bool) { return layout.SetZIndex(d, req.ID, z) }
	case zFront:
		fn = func(d *uidoc.Document) (*uidoc.Document, bool) { return layout.BringToFront(d, req.ID) }
	case zBack:
		fn = func(d *uidoc.Document) (*uidoc.Document, bool) { return layout.SendToBack(d, req.ID) }
	default:
		s.writeError(w, http.StatusBadRequest, classBadRequest, "op must be set, front or back")
		return
	}

	doc, ok, exists := s.mutate(r, fn)
	if !exists {
		s.writeError(w, http.StatusNotFound, classNotFound, "no document yet")
		return
	}
	s.layoutOp("zindex."+req.Op, req.ID, ok)
	if !ok {
		s.writeError(w, http.StatusNotFound, classNotFound, "no node with id "+req.ID)
		return
	}
	s.writeJSON(w, http.StatusOK, documentResponse{Document: doc})
}
