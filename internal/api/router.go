package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/good-yellow-bee/mcp-showcase/internal/api/middleware"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(s.logger, s.config.Verbose))
	r.Use(middleware.Recoverer(s.logger))
	r.Use(middleware.PrometheusMiddleware)
	r.Use(middleware.SecurityHeaders)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
			MaxAge:         300,
		}))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getProject)
				r.Get("/download", s.downloadProject)
				r.Get("/related", s.relatedProjects)
			})
		})
		r.Get("/levels", s.listLevels)
		r.Get("/tags", s.listTags)
		r.Get("/languages", s.listLanguages)
		r.Get("/stats", s.getStats)

		r.Get("/posts", s.listPosts)
		r.Get("/posts/{slug}", s.getPost)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(s.limiter))
			r.Post("/newsletter", s.subscribe)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			JSONError(w, ErrNotFound)
		})
	})

	r.Get("/health", s.healthHandler.Health)
	r.Get("/health/live", s.healthHandler.Live)
	r.Get("/health/ready", s.healthHandler.Ready)

	if s.deps.Web != nil {
		r.Mount("/", s.deps.Web)
	}

	return r
}
