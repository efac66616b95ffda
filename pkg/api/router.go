package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(desk Backoffice, store RecordStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	return applyRoutes(r, &handler{desk: desk, store: store})
}

func applyRoutes(r chi.Router, h *handler) chi.Router {
	r.Get("/healthz", getHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/sales", h.getSales)
		r.Get("/cobranzas", h.getCollections)
		r.Get("/cobranzas/diagnostico", h.getCollectionsDiagnosis)
		r.Get("/mentions", h.getMentions)
		r.Get("/ventas/consulta", h.getSalesLookup)
		r.Get("/leaderboard", h.getLeaderboard)
		r.Get("/dashboard", h.getDashboard)
		r.Get("/asesores", h.getAdvisors)
		r.Get("/registros/total", h.getRecordCount)
		r.Post("/login", h.postLogin)

		r.Get("/records/{book}/{sheet}", h.getRecords)
		r.Post("/records/{book}/{sheet}", h.postRecord)
		r.Post("/cache/clear", h.postClearCache)
	})

	return r
}
