package apiserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kostscope/kostscope/internal/apiserver/handler"
	"github.com/kostscope/kostscope/internal/metrics"
	"github.com/kostscope/kostscope/internal/mock"
	"github.com/kostscope/kostscope/internal/store"
	"github.com/kostscope/kostscope/pkg/insight"
)

// NewRouter creates the API router with all endpoints.
func NewRouter(db *store.DB, seeder *mock.Seeder, svc *insight.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(instrument)

	healthHandler := handler.NewHealthHandler()
	clusterHandler := handler.NewClusterHandler(db, seeder, svc)
	dashboardHandler := handler.NewDashboardHandler(db, seeder)
	alertHandler := handler.NewAlertHandler(db, seeder)
	analysisHandler := handler.NewAnalysisHandler(db)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Get)

		r.Get("/clusters", clusterHandler.List)
		r.Get("/clusters/{id}", clusterHandler.Get)
		r.Post("/clusters/{id}/analyze", clusterHandler.Analyze)
		r.Get("/clusters/{id}/recommendations", clusterHandler.GetRecommendations)

		r.Get("/dashboard/overview", dashboardHandler.GetOverview)
		r.Get("/dashboard/history", dashboardHandler.GetHistory)

		r.Get("/alerts", alertHandler.List)
		r.Post("/alerts/{id}/resolve", alertHandler.Resolve)

		r.Get("/cost-analysis", analysisHandler.List)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// instrument records request counts and latency per route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
