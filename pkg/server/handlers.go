package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/netchart/pkg/buildinfo"
	"github.com/matzehuels/netchart/pkg/draw"
	"github.com/matzehuels/netchart/pkg/errors"
	"github.com/matzehuels/netchart/pkg/graph"
	"github.com/matzehuels/netchart/pkg/observability"
	"github.com/matzehuels/netchart/pkg/pipeline"
)

// =============================================================================
// Request Types
// =============================================================================

// DrawRequest is the body of POST /api/v1/draw.
type DrawRequest struct {
	Graph     graph.Document  `json:"graph"`
	Positions graph.Positions `json:"positions,omitempty"`
	Layout    string          `json:"layout,omitempty"`
	Options   *draw.Options   `json:"options,omitempty"`
	Refresh   bool            `json:"refresh,omitempty"`
}

// LayoutRequest is the body of POST /api/v1/layout.
type LayoutRequest struct {
	Graph   graph.Document `json:"graph"`
	Layout  string         `json:"layout,omitempty"`
	Refresh bool           `json:"refresh,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// Headers set on successful responses.
const (
	headerCache     = "X-Cache"
	headerGraphHash = "X-Graph-Hash"
)

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	var req DrawRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := req.Graph.ToGraph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.options(req.Layout, req.Refresh)
	if req.Options != nil {
		opts.Draw = *req.Options
	}

	result, err := s.runner.Execute(r.Context(), g, req.Positions, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(headerCache, cacheStatus(result.CacheInfo.ChartHit))
	w.Header().Set(headerGraphHash, result.GraphHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.JSON)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := req.Graph.ToGraph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	pos, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), g, s.options(req.Layout, req.Refresh))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set(headerCache, cacheStatus(hit))
	writeJSON(w, http.StatusOK, pos)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Code:    errors.ErrCodeUnsupported,
		Message: r.Method + " is not allowed on " + r.URL.Path,
	})
}

// =============================================================================
// Helpers
// =============================================================================

// options builds pipeline options from the server defaults. Request options
// are not validated here; Execute reports their errors.
func (s *Server) options(layoutName string, refresh bool) pipeline.Options {
	opts := pipeline.Options{
		Layout:  s.defaults.Layout,
		Force:   s.defaults.Force,
		Draw:    s.defaults.Draw,
		Refresh: refresh,
	}
	if layoutName != "" {
		opts.Layout = layoutName
	}
	return opts
}

// decode reads a JSON body into v. Unknown fields are rejected.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsUserError(err):
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "error", err)
	} else {
		s.logger.Debug("request rejected", "id", requestIDFrom(r.Context()), "code", code, "error", err)
	}

	writeJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
