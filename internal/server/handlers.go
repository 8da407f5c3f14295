package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/matzehuels/clusterpanel/pkg/buildinfo"
	"github.com/matzehuels/clusterpanel/pkg/errors"
	"github.com/matzehuels/clusterpanel/pkg/frame"
	"github.com/matzehuels/clusterpanel/pkg/ingest"
	"github.com/matzehuels/clusterpanel/pkg/observability"
	"github.com/matzehuels/clusterpanel/pkg/panel"
	"github.com/matzehuels/clusterpanel/pkg/pipeline"
)

// HeaderCache reports whether the artifact came from the cache.
const HeaderCache = "X-Cache"

// RenderRequest is the body of the render and layout endpoints. Options
// missing from the body keep the service defaults.
type RenderRequest struct {
	Data     json.RawMessage   `json:"data"`
	Options  panel.Options     `json:"options"`
	Origins  ingest.OriginMode `json:"origins,omitempty"`
	Edges    ingest.EdgePolicy `json:"edges,omitempty"`
	Detailed bool              `json:"detailed,omitempty"`
	Refresh  bool              `json:"refresh,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
	ID    string      `json:"id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := errors.ValidateFormat(format, pipeline.Formats...); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.render(w, r, format)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pipeline.FormatJSON)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, format string) {
	data, opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("id", RenderID(r.Context()))

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Render.Timeout)
	defer cancel()

	res, err := s.runner.Execute(ctx, data, opts)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if res.CacheInfo.RenderHit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifacts[format]); err != nil {
		s.logger.Warn("write response", "id", RenderID(r.Context()), "error", err)
	}
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (frame.Data, pipeline.Options, error) {
	req := RenderRequest{Options: s.cfg.Panel.Options()}

	body := http.MaxBytesReader(w, r.Body, s.cfg.Render.MaxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return frame.Data{}, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return frame.Data{}, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}

	var data frame.Data
	if len(bytes.TrimSpace(req.Data)) > 0 && !bytes.Equal(bytes.TrimSpace(req.Data), []byte("null")) {
		d, err := frame.ReadJSON(bytes.NewReader(req.Data))
		if err != nil {
			return frame.Data{}, pipeline.Options{}, err
		}
		data = d
	}

	return data, pipeline.Options{
		Panel:    req.Options,
		Origins:  req.Origins,
		Edges:    req.Edges,
		Detailed: req.Detailed,
		Refresh:  req.Refresh,
	}, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, context.DeadlineExceeded) && errors.GetCode(err) == "" {
		err = errors.Wrap(errors.ErrCodeTimeout, err, "render timed out after %s", s.cfg.Render.Timeout)
	}
	status := errors.HTTPStatus(err)
	id := RenderID(r.Context())

	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", id, "error", err)
	} else {
		s.logger.Debug("request rejected", "id", id, "error", err)
	}

	s.respondJSON(w, status, ErrorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
		ID:    id,
	})
}
