package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	hierarchyhandler "coldcheck/internal/hierarchy/handler"
	platformmetrics "coldcheck/internal/platform/metrics"
	reporthandler "coldcheck/internal/report/handler"
	"coldcheck/pkg/platform/httputil"
	"coldcheck/pkg/platform/middleware/auth"
	"coldcheck/pkg/platform/middleware/metadata"
	"coldcheck/pkg/platform/middleware/request"
	"coldcheck/pkg/platform/middleware/requesttime"
)

type routerDeps struct {
	logger    *slog.Logger
	metrics   *platformmetrics.Metrics
	validator auth.JWTValidator
	hierarchy *hierarchyhandler.Handler
	reports   *reporthandler.Handler
	ping      func(context.Context) error
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(d.logger))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(d.logger))
	r.Use(d.metrics.Middleware)

	r.Get("/healthz", healthHandler(d.ping))
	r.Handle("/metrics", d.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(d.validator, d.logger))
		d.hierarchy.Register(r)
		d.reports.Register(r)
	})
	return r
}

func healthHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
