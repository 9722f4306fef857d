// Package httptransport assembles the HTTP surface: the shared middleware
// chain, the per-module route groups and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"harborbank/internal/platform/metrics"
	adminmw "harborbank/pkg/platform/middleware/admin"
	authmw "harborbank/pkg/platform/middleware/auth"
	"harborbank/pkg/platform/middleware/metadata"
	"harborbank/pkg/platform/middleware/request"
	"harborbank/pkg/platform/middleware/requesttime"
)

// RouteRegistrar is implemented by every module handler.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// Deps lists everything the router mounts. Public routes need no token;
// Customer routes need one; Admin routes need an admin token.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Validator authmw.TokenValidator

	Public   []RouteRegistrar
	Customer []RouteRegistrar
	Admin    []RouteRegistrar
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.RequestID)
	r.Use(request.Recovery(deps.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(instrument(deps.Metrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		for _, h := range deps.Public {
			h.Register(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(authmw.RequireAuth(deps.Validator, deps.Logger))
		for _, h := range deps.Customer {
			h.Register(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(authmw.RequireAuth(deps.Validator, deps.Logger))
		r.Use(adminmw.RequireAdmin(deps.Logger))
		for _, h := range deps.Admin {
			h.Register(r)
		}
	})

	return r
}

// instrument records request counts and latency by chi route pattern so
// path parameters do not explode label cardinality.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(route, r.Method, strconv.Itoa(status), time.Since(start).Seconds())
		})
	}
}
