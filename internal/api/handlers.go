package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/matzehuels/depflow/pkg/buildinfo"
	errs "github.com/matzehuels/depflow/pkg/errors"
	"github.com/matzehuels/depflow/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Files) == 0 {
		s.fail(w, errs.New(errs.ErrCodeInvalidInput, "files must not be empty"))
		return
	}

	layout := req.Layout.config()
	opts := pipeline.Options{
		Layout:   &layout,
		Rules:    req.Rules,
		SkipDeps: req.SkipDeps,
	}
	result, err := s.runner.Analyze(r.Context(), req.files(), opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{
		ID:     result.ID,
		Graph:  result.Graph,
		Stats:  result.Stats,
		Cached: result.CacheHit,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	g, err := s.runner.Relayout(r.Context(), req.Graph, req.Layout.config())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{Graph: g})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Formats:     []string{req.Format},
		Detailed:    req.Detailed,
		Directories: req.Directories,
		Pinned:      req.Pinned,
		Scale:       req.Scale,
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), req.Graph, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[req.Format])
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[req.Format])
}

// decode reads a JSON body into v. Unknown fields are rejected. On failure
// the error response has been written and false is returned.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:    string(errs.ErrCodeInvalidInput),
			Message: "request body too large",
		})
	case errors.Is(err, io.EOF):
		s.fail(w, errs.New(errs.ErrCodeInvalidInput, "request body is empty"))
	default:
		s.fail(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid JSON body"))
	}
	return false
}

// fail writes err as an ErrorResponse. Validation errors are the client's
// fault; everything else is logged and reported as internal.
func (s *Server) fail(w http.ResponseWriter, err error) {
	if errs.IsValidation(err) {
		msg := errs.UserMessage(err)
		if cause := errors.Unwrap(err); cause != nil && errs.GetCode(cause) == "" {
			msg += ": " + cause.Error()
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    string(errs.GetCode(err)),
			Message: msg,
		})
		return
	}
	s.logger.Error("request failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Code:    string(errs.ErrCodeInternal),
		Message: "internal error",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
