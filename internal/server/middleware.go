package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/clusterpanel/pkg/observability"
)

// HeaderRenderID carries the per-request ID.
const HeaderRenderID = "X-Render-ID"

type ctxKey int

const renderIDKey ctxKey = 0

// RenderID returns the request ID stored by the renderID middleware.
func RenderID(ctx context.Context) string {
	id, _ := ctx.Value(renderIDKey).(string)
	return id
}

// renderID assigns every request a fresh UUID.
func (s *Server) renderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(HeaderRenderID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), renderIDKey, id)))
	})
}

// instrument reports requests to the HTTP hooks, labelled by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))

		s.logger.Debug("request",
			"id", RenderID(r.Context()),
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start))
	})
}
