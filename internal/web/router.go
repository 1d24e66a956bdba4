package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	apimw "github.com/good-yellow-bee/mcp-showcase/internal/api/middleware"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/middleware"
)

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	// Static files (no CSRF)
	r.Handle("/static/*", http.StripPrefix("/static/", s.StaticFS()))
	r.Get("/static/chroma.css", s.handler.ChromaCSS)

	r.Group(func(r chi.Router) {
		r.Use(markPlaintext)
		r.Use(csrf.Protect(
			s.csrfKey,
			csrf.Secure(s.useSecureCookies),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
		))
		r.Use(middleware.LoadFlash(s.flash))
		r.Use(middleware.VaryHTMX)

		r.Get("/", s.handler.ShowHome)
		r.Get("/about", s.handler.ShowAbout)

		r.Get("/projects", s.handler.ShowProjects)
		r.Get("/projects/{id}", s.handler.ShowProject)
		r.Get("/projects/{id}/download.json", s.handler.DownloadProject)
		r.Get("/projects/{id}/snippet", s.handler.DownloadSnippet)

		r.Get("/blog", s.handler.ShowBlog)
		r.Get("/blog/{slug}", s.handler.ShowPost)
		r.Post("/newsletter", s.handler.HandleSubscribe)
	})

	r.NotFound(s.handler.NotFound)

	return r
}

// markPlaintext tells csrf when a request arrived over plain HTTP so the
// strict Referer check only applies to TLS traffic.
func markPlaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !apimw.IsRequestSecure(r) {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(w, r)
	})
}
