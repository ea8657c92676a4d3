package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"persona-admin/internal/handlers"
	"persona-admin/internal/metrics"
	"persona-admin/internal/service"
	"persona-admin/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	PersonaService      service.PersonaService
	ConversationService service.ConversationService
	AnalysisService     service.AnalysisService

	// DB is pinged by the health check.
	DB handlers.Pinger
	// VectorStore is nil when the similarity index is disabled.
	VectorStore    vectorstore.VectorStore
	CollectionName string

	// Metrics is optional; when set, requests are instrumented and /metrics is served.
	Metrics *metrics.Metrics
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	personaHandler := handlers.NewPersonaHandler(deps.PersonaService)
	promptHandler := handlers.NewSystemPromptHandler(deps.PersonaService, deps.AnalysisService)
	conversationHandler := handlers.NewConversationHandler(deps.ConversationService, deps.AnalysisService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.CollectionName)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/personas-with-prompts", personaHandler.ListWithPrompts)

		r.Route("/personas", func(r chi.Router) {
			r.Get("/", personaHandler.List)
			r.Post("/", personaHandler.Create)
			r.Get("/search", personaHandler.Search)
			r.Get("/similar", personaHandler.Similar)
			r.Get("/codes", personaHandler.Codes)
			r.Get("/changes", personaHandler.Changes)
			r.Get("/export", personaHandler.Export)
			r.Post("/import", personaHandler.Import)

			r.Route("/{code}", func(r chi.Router) {
				r.Get("/", personaHandler.Get)
				r.Put("/", personaHandler.Update)
				r.Delete("/", personaHandler.Delete)
				r.Get("/history", personaHandler.History)
			})
		})

		r.Route("/system-prompt", func(r chi.Router) {
			r.Post("/test", promptHandler.Test)
			r.Post("/validate", promptHandler.Validate)
			r.Put("/{code}", promptHandler.Update)
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Get("/", conversationHandler.List)
			r.Post("/", conversationHandler.Record)
			r.Get("/stats", conversationHandler.Stats)
			r.Get("/summary", conversationHandler.Summary)
		})

		r.Get("/categories", personaHandler.Categories)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
