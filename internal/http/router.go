// Package http wires the API surface: routing, middleware, and the
// dependency set the handlers need.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"journalmind/internal/continuity"
	"journalmind/internal/embedding"
	"journalmind/internal/handlers"
	"journalmind/internal/service"
	"journalmind/internal/storage"
	"journalmind/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Analysis    service.AnalysisService
	Connections service.ConnectionService
	Entries     storage.EntryStore
	Records     continuity.Store
	Processor   handlers.EntryProcessor

	// DB backs the health check.
	DB *sql.DB

	// Provider and Vectors are optional; without them the similar-entry
	// route is not registered.
	Provider   embedding.Provider
	Vectors    vectorstore.VectorStore
	Collection string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analysis)
	connectionsHandler := handlers.NewConnectionsHandler(deps.Connections)
	entriesHandler := handlers.NewEntriesHandler(deps.Entries, deps.Processor)
	recordsHandler := handlers.NewRecordsHandler(deps.Records)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Records)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodPost, "/analyze", analyzeHandler)

		r.Route("/connections", func(r chi.Router) {
			r.Post("/detect", connectionsHandler.Detect)
			r.Post("/regenerate", connectionsHandler.Regenerate)
			r.Get("/cached", connectionsHandler.Cached)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", entriesHandler.Create)
			r.Get("/", entriesHandler.List)
			r.Get("/{id}", entriesHandler.Get)
			r.Put("/{id}", entriesHandler.Update)
			r.Delete("/{id}", entriesHandler.Delete)

			if deps.Provider != nil && deps.Vectors != nil {
				similarHandler := handlers.NewSimilarHandler(deps.Entries, deps.Provider, deps.Vectors, deps.Collection)
				r.Method(http.MethodGet, "/{id}/similar", similarHandler)
			}
		})

		r.Route("/records", func(r chi.Router) {
			r.Get("/", recordsHandler.List)
			r.Get("/counts", recordsHandler.Counts)
		})
	})

	return r
}
