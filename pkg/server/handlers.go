package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/matzehuels/conceptmap/pkg/buildinfo"
	"github.com/matzehuels/conceptmap/pkg/engine"
	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/render/sink"
	"github.com/matzehuels/conceptmap/pkg/state"
)

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

type knownBody struct {
	ID      string       `json:"id"`
	Known   bool         `json:"known"`
	Overall progressPair `json:"overall"`
}

type progressPair struct {
	Known   int `json:"known"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

type collapsedBody struct {
	ID        string `json:"id"`
	Collapsed bool   `json:"collapsed"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Current(),
	})
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	view, width, height, err := s.viewParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var snap *engine.Snapshot
	err = s.withSession(r.Context(), chi.URLParam(r, "mapID"), func(sess *engine.Session) error {
		snap, err = sess.Layout(r.Context(), view, width, height)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) renderSVG(w http.ResponseWriter, r *http.Request) {
	view, width, height, err := s.viewParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var out []byte
	err = s.withSession(r.Context(), chi.URLParam(r, "mapID"), func(sess *engine.Session) error {
		snap, err := sess.Layout(r.Context(), view, width, height)
		if err != nil {
			return err
		}
		out = sink.RenderSVG(snap.Result, sink.WithProgress(snap.Progress), sink.WithKnown(snap.Known))
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) toggleKnown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body knownBody
	err := s.withSession(r.Context(), chi.URLParam(r, "mapID"), func(sess *engine.Session) error {
		v, err := sess.ToggleKnown(r.Context(), id)
		if err != nil {
			return err
		}
		body = newKnownBody(sess, id, v)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) setKnown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Known *bool `json:"known"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Known == nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, `request body needs a "known" field`))
		return
	}

	id := chi.URLParam(r, "id")
	var body knownBody
	err := s.withSession(r.Context(), chi.URLParam(r, "mapID"), func(sess *engine.Session) error {
		if err := sess.SetKnown(r.Context(), id, *req.Known); err != nil {
			return err
		}
		body = newKnownBody(sess, id, *req.Known)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func newKnownBody(sess *engine.Session, id string, v bool) knownBody {
	o := sess.Overall()
	return knownBody{
		ID:      id,
		Known:   v,
		Overall: progressPair{Known: o.Known, Total: o.Total, Percent: o.Percent()},
	}
}

func (s *Server) toggleCollapsed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body collapsedBody
	err := s.withSession(r.Context(), chi.URLParam(r, "mapID"), func(sess *engine.Session) error {
		v, err := sess.ToggleCollapsed(r.Context(), id)
		body = collapsedBody{ID: id, Collapsed: v}
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) expandAll(open bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var collapsed state.Set
		err := s.withSession(r.Context(), chi.URLParam(r, "mapID"), func(sess *engine.Session) error {
			sess.ExpandAll(r.Context(), open)
			collapsed = sess.Collapsed()
			return nil
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]state.Set{"collapsed": collapsed})
	}
}

func (s *Server) resetProgress(w http.ResponseWriter, r *http.Request) {
	var known state.Set
	err := s.withSession(r.Context(), chi.URLParam(r, "mapID"), func(sess *engine.Session) error {
		sess.ResetProgress(r.Context())
		known = sess.Known()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]state.Set{"known": known})
}

// viewParams reads ?view=&width=&height=, falling back to server defaults.
func (s *Server) viewParams(r *http.Request) (layout.View, float64, float64, error) {
	q := r.URL.Query()

	view := s.opts.DefaultView
	if v := q.Get("view"); v != "" {
		parsed, err := layout.ParseView(v)
		if err != nil {
			return "", 0, 0, err
		}
		view = parsed
	}

	width, err := dimension(q.Get("width"), s.opts.Width)
	if err != nil {
		return "", 0, 0, err
	}
	height, err := dimension(q.Get("height"), s.opts.Height)
	if err != nil {
		return "", 0, 0, err
	}
	return view, width, height, nil
}

func dimension(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 100000 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid dimension %q", raw)
	}
	return v, nil
}

func statusFor(code errors.Code) int {
	switch code.Class() {
	case errors.ClassInvalid:
		return http.StatusBadRequest
	case errors.ClassMissing:
		return http.StatusNotFound
	case errors.ClassUnsupported:
		return http.StatusNotImplemented
	case errors.ClassUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.opts.Logger.Error("request failed", "err", err)
	}
	var body errorBody
	body.Error.Code = code
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
